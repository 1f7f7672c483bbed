package models

import "time"

// HomeworkRequest is the body of a homework submission
type HomeworkRequest struct {
	Problem string `json:"problem" validate:"required,max=500"`
}

// UsageEvent records one processed problem
type UsageEvent struct {
	ID             string    `json:"id"`
	ClientName     string    `json:"client_name"`
	Role           Role      `json:"role"`
	Operation      Operation `json:"operation"`
	Success        bool      `json:"success"`
	ErrorKind      ErrorKind `json:"error_kind,omitempty"`
	ProblemExcerpt string    `json:"problem_excerpt"`
	CreatedAt      time.Time `json:"created_at"`
}

// UsageCount is one row of a usage summary
type UsageCount struct {
	Role      Role      `json:"role"`
	Operation Operation `json:"operation"`
	Requests  int       `json:"requests"`
	Failures  int       `json:"failures"`
}

// UsageSummary aggregates usage events since a point in time
type UsageSummary struct {
	Since  time.Time    `json:"since"`
	Total  int          `json:"total"`
	Counts []UsageCount `json:"counts"`
}

// QuotaStatus reports a client's position against its daily limit
type QuotaStatus struct {
	Limit     int       `json:"limit"`
	Used      int       `json:"used"`
	Remaining int       `json:"remaining"`
	ResetsAt  time.Time `json:"resets_at"`
}
