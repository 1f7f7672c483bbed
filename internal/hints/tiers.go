package hints

import (
	"fmt"

	"github.com/terra-clan/homework-assistant/internal/models"
)

// tierPlan is the canned strategy for one (operation, difficulty) pair
type tierPlan struct {
	strategy string
	steps    func(a, b int) []string
}

// tierThresholds holds the inclusive upper bounds of the easy and medium
// tiers, applied to the larger operand
var tierThresholds = map[models.Operation][2]int{
	models.OpAddition:       {10, 50},
	models.OpSubtraction:    {10, 50},
	models.OpMultiplication: {5, 10},
}

// AssessDifficulty buckets a problem by its larger operand.
// Division has no tier table and is always medium.
func AssessDifficulty(op models.Operation, a, b int) models.Difficulty {
	limits, ok := tierThresholds[op]
	if !ok {
		return models.DifficultyMedium
	}

	largest := max(a, b)
	switch {
	case largest <= limits[0]:
		return models.DifficultyEasy
	case largest <= limits[1]:
		return models.DifficultyMedium
	default:
		return models.DifficultyHard
	}
}

var tierPlans = map[models.Operation]map[models.Difficulty]tierPlan{
	models.OpAddition: {
		models.DifficultyEasy: {
			strategy: "Use the counting-on strategy",
			steps: func(a, b int) []string {
				return []string{
					fmt.Sprintf("Start by counting %d on your fingers or abacus", a),
					fmt.Sprintf("Now add %d more", b),
					"Count all together to find your answer",
					"Double-check by counting again!",
				}
			},
		},
		models.DifficultyMedium: {
			strategy: "Use place value thinking",
			steps: func(a, b int) []string {
				return []string{
					fmt.Sprintf("Break down the larger number: %d", max(a, b)),
					fmt.Sprintf("Start with the bigger number: %d", max(a, b)),
					fmt.Sprintf("Add the smaller number: %d", min(a, b)),
					"Think about place values (tens and ones)",
					"Check if you need to regroup",
				}
			},
		},
		models.DifficultyHard: {
			strategy: "Use the standard algorithm",
			steps: func(a, b int) []string {
				return []string{
					fmt.Sprintf("Line up %d and %d by place value", a, b),
					"Start adding from the ones place",
					"If sum > 9, carry over to tens place",
					"Continue with tens place",
					"Check your work by estimating",
				}
			},
		},
	},
	models.OpSubtraction: {
		models.DifficultyEasy: {
			strategy: "Use take-away method",
			steps: func(a, b int) []string {
				return []string{
					fmt.Sprintf("Start with %d items", a),
					fmt.Sprintf("Take away %d items", b),
					"Count what's left",
					"You can use your fingers or abacus to help",
				}
			},
		},
		models.DifficultyMedium: {
			strategy: "Break down by place value",
			steps: func(a, b int) []string {
				return []string{
					fmt.Sprintf("Start with %d", a),
					fmt.Sprintf("Subtract %d", b),
					"Break it down if needed (subtract 10s first, then 1s)",
					"Check: does your answer make sense?",
				}
			},
		},
		models.DifficultyHard: {
			strategy: "Use borrowing method",
			steps: func(a, b int) []string {
				return []string{
					fmt.Sprintf("Line up %d and %d by place value", a, b),
					"Start subtracting from ones place",
					"If you need to borrow, take 1 from tens place",
					"Continue with tens place",
					fmt.Sprintf("Check by adding your answer to %d", b),
				}
			},
		},
	},
	models.OpMultiplication: {
		models.DifficultyEasy: {
			strategy: "Use repeated addition or grouping",
			steps: func(a, b int) []string {
				return []string{
					fmt.Sprintf("Think of %d groups with %d items each", a, b),
					fmt.Sprintf("Or think of adding %d to itself %d times", a, b),
					"You can draw pictures to help visualize",
					"Count all the items in your groups",
				}
			},
		},
		models.DifficultyMedium: {
			strategy: "Use multiplication tables and breaking down",
			steps: func(a, b int) []string {
				smaller, larger := min(a, b), max(a, b)
				return []string{
					fmt.Sprintf("Use the multiplication table for %d", smaller),
					fmt.Sprintf("Remember: %d × %d = %d × %d", smaller, larger, larger, smaller),
					"Break down if needed (like 6 × 12 = 6 × 10 + 6 × 2)",
					"Check your answer makes sense",
				}
			},
		},
		models.DifficultyHard: {
			strategy: "Use the distributive property",
			steps: func(a, b int) []string {
				return []string{
					fmt.Sprintf("Break %d and %d into tens and ones", a, b),
					"Multiply each part separately",
					"Add all the parts together",
					"Example: 23 × 15 = (20×15) + (3×15)",
				}
			},
		},
	},
}

// divisionPlan picks one of three explanations depending on how the
// dividend relates to the divisor. b must not be zero.
func divisionPlan(a, b int) (string, []string) {
	if a < b {
		return "Understanding division with smaller dividends", []string{
			fmt.Sprintf("Notice that %d is smaller than %d", a, b),
			"This means the answer will be less than 1",
			fmt.Sprintf("Think: How many whole groups of %d fit into %d?", b, a),
			fmt.Sprintf("The answer is 0 with remainder %d", a),
		}
	}

	quotient, remainder := a/b, a%b
	if remainder == 0 {
		return "Perfect division (no remainder)", []string{
			fmt.Sprintf("Ask: How many groups of %d can you make from %d?", b, a),
			fmt.Sprintf("Skip-count by %d until you reach %d", b, a),
			"Count how many jumps you made",
			fmt.Sprintf("Check: multiply your answer by %d to get back to %d", b, a),
		}
	}

	return "Division with remainders", []string{
		fmt.Sprintf("Find how many whole groups of %d fit into %d", b, a),
		fmt.Sprintf("%d × %d = %d is the closest you can get without going over %d", b, quotient, b*quotient, a),
		fmt.Sprintf("So %d ÷ %d = %d remainder %d", a, b, quotient, remainder),
		fmt.Sprintf("Check: %d × %d + %d = %d", b, quotient, remainder, a),
	}
}
