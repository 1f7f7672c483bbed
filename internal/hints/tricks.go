package hints

import (
	"fmt"

	"github.com/terra-clan/homework-assistant/internal/models"
)

// trickRule is a mental-math shortcut guarded by an operand predicate
type trickRule struct {
	name    string
	applies func(a, b int) bool
	trick   func(a, b int) string
}

func always(a, b int) bool { return true }

// trickRules are evaluated in order; the first applicable rule wins.
// Every list ends with an unconditional rule.
var trickRules = map[models.Operation][]trickRule{
	models.OpAddition: {
		{
			name:    "plus-nine",
			applies: func(a, b int) bool { return b == 9 },
			trick: func(a, b int) string {
				return fmt.Sprintf("Adding 9? Try this: add 10 then subtract 1 (%d + 10 - 1)", a)
			},
		},
		{
			name:    "plus-teen",
			applies: func(a, b int) bool { return b >= 11 && b <= 15 },
			trick: func(a, b int) string {
				return fmt.Sprintf("Add 10 first, then add the remaining %d", b-10)
			},
		},
		{
			name:    "round-sum",
			applies: func(a, b int) bool { return (a+b)%10 == 0 },
			trick: func(a, b int) string {
				return fmt.Sprintf("%d and %d make a round number! Look for pairs that complete a ten", a, b)
			},
		},
		{
			name:    "generic",
			applies: always,
			trick: func(a, b int) string {
				return "Look for patterns: can you make a 10 first?"
			},
		},
	},
	models.OpSubtraction: {
		{
			name:    "minus-nine",
			applies: func(a, b int) bool { return b == 9 },
			trick: func(a, b int) string {
				return fmt.Sprintf("Subtracting 9? Try this: subtract 10 then add 1 back (%d - 10 + 1)", a)
			},
		},
		{
			name:    "round-start",
			applies: func(a, b int) bool { return a%10 == 0 },
			trick: func(a, b int) string {
				return fmt.Sprintf("%d is a round number: count back by tens first, then by ones", a)
			},
		},
		{
			name:    "generic",
			applies: always,
			trick: func(a, b int) string {
				return fmt.Sprintf("Try counting up from %d to %d instead of counting back", b, a)
			},
		},
	},
	models.OpMultiplication: {
		{
			name:    "times-two",
			applies: func(a, b int) bool { return b == 2 },
			trick: func(a, b int) string {
				return fmt.Sprintf("Multiplying by 2 is just doubling: %d + %d", a, a)
			},
		},
		{
			name:    "times-five",
			applies: func(a, b int) bool { return b == 5 },
			trick: func(a, b int) string {
				return fmt.Sprintf("Multiply %d by 10, then cut it in half", a)
			},
		},
		{
			name:    "times-ten",
			applies: func(a, b int) bool { return b == 10 },
			trick: func(a, b int) string {
				return fmt.Sprintf("Multiplying by 10? Just put a zero on the end of %d", a)
			},
		},
		{
			name:    "generic",
			applies: always,
			trick: func(a, b int) string {
				return fmt.Sprintf("Switch the order if it helps: %d × %d is the same as %d × %d", a, b, b, a)
			},
		},
	},
	models.OpDivision: {
		{
			name:    "by-two",
			applies: func(a, b int) bool { return b == 2 },
			trick: func(a, b int) string {
				return fmt.Sprintf("Dividing by 2 is the same as cutting %d in half", a)
			},
		},
		{
			name:    "by-ten",
			applies: func(a, b int) bool { return b == 10 },
			trick: func(a, b int) string {
				return fmt.Sprintf("Dividing by 10? Take the zero off the end (if %d ends in 0)", a)
			},
		},
		{
			name:    "generic",
			applies: always,
			trick: func(a, b int) string {
				return fmt.Sprintf("Think of multiplication backwards: what times %d gets close to %d?", b, a)
			},
		},
	},
}

// mentalMathTrick returns the shortcut of the first matching rule
func mentalMathTrick(op models.Operation, a, b int) string {
	for _, rule := range trickRules[op] {
		if rule.applies(a, b) {
			return rule.trick(a, b)
		}
	}
	return ""
}
