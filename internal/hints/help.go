package hints

import (
	"fmt"

	"github.com/terra-clan/homework-assistant/internal/models"
)

// ExampleProblems are phrasings the classifier is known to understand
var ExampleProblems = []string{
	"25 + 17",
	"What is 8 plus 5?",
	"subtract 5 from 12",
	"6 × 7",
	"divide 20 by 4",
	"Sam had 12 apples and gave away 5. How many are left?",
}

// SupportedOperations returns the operation names hints exist for
func SupportedOperations() []string {
	ops := make([]string, 0, len(models.Operations))
	for _, op := range models.Operations {
		ops = append(ops, string(op))
	}
	return ops
}

func unknownOperation() models.HintBundle {
	return models.HintBundle{
		Operation:     models.OpUnknown,
		Error:         models.ErrUnknownOperation,
		Message:       "I couldn't tell which kind of math this problem needs.",
		Suggestion:    `Try writing it like "25 + 17" or "subtract 5 from 12".`,
		Encouragement: "Every math problem is a puzzle waiting to be solved! 🧩",
		Help: &models.HelpContent{
			SupportedOperations: SupportedOperations(),
			ExampleProblems:     append([]string(nil), ExampleProblems...),
			Tips: []string{
				"Write numbers as digits (12, not twelve)",
				"Use words like plus, minus, times or divided by",
				"Ask about one calculation at a time",
			},
		},
	}
}

func insufficientNumbers(op models.Operation) models.HintBundle {
	return models.HintBundle{
		Operation:     op,
		Error:         models.ErrInsufficientNumbers,
		Message:       "I need at least two numbers to help with this problem.",
		Suggestion:    `Make sure your problem includes both numbers, like "8 + 5".`,
		Encouragement: "Almost there! Just add the missing number. ✏️",
	}
}

func problemCheckNeeded(a, b int) models.HintBundle {
	return models.HintBundle{
		Operation:     models.OpSubtraction,
		Error:         models.ErrProblemCheckNeeded,
		Message:       "Check your problem - you can't take away more than you have!",
		Suggestion:    fmt.Sprintf("Did you mean %d - %d instead?", b, a),
		Encouragement: "Double-check the order of your numbers! 🔍",
	}
}

func divisionByZero() models.HintBundle {
	return models.HintBundle{
		Operation:     models.OpDivision,
		Error:         models.ErrDivisionByZero,
		Message:       "You cannot divide by zero!",
		Suggestion:    "Check your problem - the second number should not be zero",
		Encouragement: "Math rules help keep everything working correctly! 📏",
	}
}
