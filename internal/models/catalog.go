package models

// ProblemSet is a named group of practice problems for one operation
type ProblemSet struct {
	Name          string           `json:"name"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Grade         int              `json:"grade"`
	Operation     Operation        `json:"operation"`
	ProblemsCount int              `json:"problemsCount"`
	Problems      []CatalogProblem `json:"problems,omitempty"`
}

// CatalogProblem is a single practice problem within a set
type CatalogProblem struct {
	ID         string     `json:"id"`   // "two-digit-addition/carry-1"
	Code       string     `json:"code"` // "carry-1"
	Text       string     `json:"text"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	SetName    string     `json:"setName"`
}
