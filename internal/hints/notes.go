package hints

import (
	"fmt"

	"github.com/terra-clan/homework-assistant/internal/models"
)

var encouragements = map[models.Operation]string{
	models.OpAddition:       "Take your time and work step by step! 🌟",
	models.OpSubtraction:    "Remember: subtraction is the opposite of addition! 🔄",
	models.OpMultiplication: "Multiplication is just fast addition! 🚀",
	models.OpDivision:       "Division is just fair sharing. You've got this! 🍪",
}

var abacusTips = map[models.Operation]func(a, b int) string{
	models.OpAddition: func(a, b int) string {
		return fmt.Sprintf("Set %d on your abacus, then push up %d more beads and read the total", a, b)
	},
	models.OpSubtraction: func(a, b int) string {
		return fmt.Sprintf("Start with %d on your abacus, then remove %d beads", a, b)
	},
	models.OpMultiplication: func(a, b int) string {
		return fmt.Sprintf("Make %d rows of %d beads and count them all", a, b)
	},
	models.OpDivision: func(a, b int) string {
		return fmt.Sprintf("Set %d beads on your abacus and move them into groups of %d", a, b)
	},
}

func abacusTip(op models.Operation, a, b int) string {
	if tip, ok := abacusTips[op]; ok {
		return tip(a, b)
	}
	return ""
}

func teacherNotes(op models.Operation, a, b int) string {
	switch op {
	case models.OpAddition:
		return fmt.Sprintf("Common mistakes: Students might forget to carry over when adding %d + %d", a, b)
	case models.OpSubtraction:
		return fmt.Sprintf("Watch for borrowing errors with %d - %d", a, b)
	case models.OpMultiplication:
		return fmt.Sprintf("Great opportunity to review times tables for %d", min(a, b))
	case models.OpDivision:
		return fmt.Sprintf("Check if students understand remainders with %d ÷ %d", a, b)
	}
	return "Monitor student's problem-solving approach"
}

func parentTips(op models.Operation) string {
	switch op {
	case models.OpAddition:
		return "Use physical objects like coins or toys to make this concrete"
	case models.OpSubtraction:
		return "Try the 'counting backwards' method if your child struggles"
	case models.OpMultiplication:
		return "Relate to real-world grouping (like packs of items)"
	case models.OpDivision:
		return "Use sharing scenarios (like dividing snacks equally)"
	}
	return "Encourage your child to explain their thinking process"
}
