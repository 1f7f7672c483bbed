package models

import "strings"

// Operation is the arithmetic operation detected in a problem
type Operation string

const (
	OpAddition       Operation = "addition"
	OpSubtraction    Operation = "subtraction"
	OpMultiplication Operation = "multiplication"
	OpDivision       Operation = "division"
	OpUnknown        Operation = "unknown"
)

// Operations lists the supported operations in classification order
var Operations = []Operation{OpAddition, OpSubtraction, OpMultiplication, OpDivision}

// IsKnown returns true for the four arithmetic operations
func (o Operation) IsKnown() bool {
	switch o {
	case OpAddition, OpSubtraction, OpMultiplication, OpDivision:
		return true
	}
	return false
}

// Role is the requester class resolved by authentication
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
	RoleStudent Role = "student"
	RoleDemo    Role = "demo"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a free-form label onto a Role.
// Unrecognized labels resolve to student.
func ParseRole(s string) Role {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleTeacher, RoleParent, RoleStudent, RoleDemo, RoleAdmin:
		return r
	}
	return RoleStudent
}

// MaxOperand returns the largest integer kept when numbers are pulled out of
// a problem. Teachers work with bigger numbers.
func (r Role) MaxOperand() int {
	if r == RoleTeacher {
		return 10000
	}
	return 1000
}

// Difficulty is a coarse tier driving which step sequence is shown
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)
