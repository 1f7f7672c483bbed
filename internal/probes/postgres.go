package probes

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresProbe checks PostgreSQL over a dedicated database/sql handle,
// independent of the repository pool
type PostgresProbe struct {
	BaseProbe
	db *sql.DB
}

// NewPostgresProbe opens a single-connection handle for health checks
func NewPostgresProbe(dsn string) (*PostgresProbe, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &PostgresProbe{
		BaseProbe: BaseProbe{probeType: "postgres"},
		db:        db,
	}, nil
}

// HealthCheck runs a trivial query
func (p *PostgresProbe) HealthCheck(ctx context.Context) error {
	var one int
	if err := p.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	return nil
}

// Close closes the database handle
func (p *PostgresProbe) Close() error {
	return p.db.Close()
}
