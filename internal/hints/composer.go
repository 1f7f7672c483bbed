// Package hints builds scaffolded guidance for a classified problem.
//
// Compose never computes or reveals a final answer for addition,
// subtraction or multiplication. Division with a remainder is the one case
// where the steps walk through the quotient.
package hints

import "github.com/terra-clan/homework-assistant/internal/models"

// Compose returns the hint bundle for an operation and its operands.
// Only the first two operands are used. Role-specific notes are attached to
// successful bundles only.
func Compose(op models.Operation, operands []int, role models.Role) models.HintBundle {
	if len(operands) < 2 {
		return insufficientNumbers(op)
	}
	if !op.IsKnown() {
		return unknownOperation()
	}

	a, b := operands[0], operands[1]
	switch {
	case op == models.OpSubtraction && a < b:
		return problemCheckNeeded(a, b)
	case op == models.OpDivision && b == 0:
		return divisionByZero()
	}

	bundle := models.HintBundle{
		Operation:       op,
		AbacusTip:       abacusTip(op, a, b),
		MentalMathTrick: mentalMathTrick(op, a, b),
		Encouragement:   encouragements[op],
	}

	if op == models.OpDivision {
		bundle.Difficulty = models.DifficultyMedium
		bundle.Strategy, bundle.Steps = divisionPlan(a, b)
	} else {
		bundle.Difficulty = AssessDifficulty(op, a, b)
		plan := tierPlans[op][bundle.Difficulty]
		bundle.Strategy = plan.strategy
		bundle.Steps = plan.steps(a, b)
	}

	switch role {
	case models.RoleTeacher:
		bundle.TeacherNotes = teacherNotes(op, a, b)
	case models.RoleParent:
		bundle.ParentTips = parentTips(op)
	}

	return bundle
}
