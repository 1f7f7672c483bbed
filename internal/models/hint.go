package models

// ErrorKind classifies a problem the composer could not produce hints for
type ErrorKind string

const (
	ErrUnknownOperation    ErrorKind = "unknown_operation"
	ErrInsufficientNumbers ErrorKind = "insufficient_numbers"
	ErrProblemCheckNeeded  ErrorKind = "problem_check_needed"
	ErrDivisionByZero      ErrorKind = "division_by_zero"
)

// HintBundle is the composer's output for a single problem.
// Strategy and Steps are empty whenever Error is set.
type HintBundle struct {
	Operation       Operation    `json:"operation"`
	Difficulty      Difficulty   `json:"difficulty,omitempty"`
	Strategy        string       `json:"strategy,omitempty"`
	Steps           []string     `json:"steps,omitempty"`
	AbacusTip       string       `json:"abacus_tip,omitempty"`
	MentalMathTrick string       `json:"mental_math_trick,omitempty"`
	Encouragement   string       `json:"encouragement,omitempty"`
	Error           ErrorKind    `json:"error,omitempty"`
	Message         string       `json:"message,omitempty"`
	Suggestion      string       `json:"suggestion,omitempty"`
	TeacherNotes    string       `json:"teacher_notes,omitempty"`
	ParentTips      string       `json:"parent_tips,omitempty"`
	Help            *HelpContent `json:"help,omitempty"`
}

// HasError reports whether the bundle is error-shaped
func (b *HintBundle) HasError() bool {
	return b.Error != ""
}

// HelpContent is returned when no operation could be identified
type HelpContent struct {
	SupportedOperations []string `json:"supported_operations"`
	ExampleProblems     []string `json:"example_problems"`
	Tips                []string `json:"tips"`
}
