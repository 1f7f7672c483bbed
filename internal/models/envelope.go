package models

import "time"

// ResponseEnvelope is the shaped result returned to callers
type ResponseEnvelope struct {
	Success   bool         `json:"success"`
	RequestID string       `json:"request_id,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
	Problem   string       `json:"problem"`
	Analysis  Analysis     `json:"analysis"`
	Guidance  *Guidance    `json:"guidance,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Help      *HelpContent `json:"help,omitempty"`
	User      RoleInfo     `json:"user"`
}

// Analysis summarizes what the classifier found
type Analysis struct {
	Operation  Operation  `json:"operation"`
	Numbers    []int      `json:"numbers"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
}

// Guidance carries the hints of a successful analysis
type Guidance struct {
	Strategy        string   `json:"strategy"`
	Steps           []string `json:"steps"`
	AbacusTip       string   `json:"abacus_tip"`
	MentalMathTrick string   `json:"mental_math_trick"`
	Encouragement   string   `json:"encouragement"`
	TeacherNotes    string   `json:"teacher_notes,omitempty"`
	ParentTips      string   `json:"parent_tips,omitempty"`
}

// ErrorDetail explains why no hints were produced
type ErrorDetail struct {
	Kind          ErrorKind `json:"kind"`
	Message       string    `json:"message"`
	Suggestion    string    `json:"suggestion,omitempty"`
	Encouragement string    `json:"encouragement,omitempty"`
}

// RoleInfo describes the requester in the envelope
type RoleInfo struct {
	Role       Role `json:"role"`
	DailyLimit int  `json:"daily_limit,omitempty"`
}
