package probes

import "context"

// Probe checks one dependency the service needs to be ready
type Probe interface {
	// Type returns the dependency type name
	Type() string

	// HealthCheck checks if the dependency is available
	HealthCheck(ctx context.Context) error
}

// BaseProbe provides common functionality for probes
type BaseProbe struct {
	probeType string
}

// Type returns the probe type
func (p *BaseProbe) Type() string {
	return p.probeType
}
