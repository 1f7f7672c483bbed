// Package response folds a hint bundle into the envelope returned to callers.
package response

import (
	"time"

	"github.com/terra-clan/homework-assistant/internal/models"
)

// Shape builds the envelope for one processed problem.
//
// Unknown-operation bundles become failures carrying help content, other
// error bundles become failures carrying the error detail, and everything
// else becomes a success carrying the guidance.
func Shape(
	problem string,
	op models.Operation,
	operands []int,
	bundle models.HintBundle,
	user models.RoleInfo,
	requestID string,
	now time.Time,
) models.ResponseEnvelope {
	numbers := operands
	if numbers == nil {
		numbers = []int{}
	}

	env := models.ResponseEnvelope{
		RequestID: requestID,
		Timestamp: now.UTC(),
		Problem:   problem,
		Analysis: models.Analysis{
			Operation:  op,
			Numbers:    numbers,
			Difficulty: bundle.Difficulty,
		},
		User: user,
	}

	switch {
	case bundle.Error == models.ErrUnknownOperation:
		env.Error = errorDetail(bundle)
		env.Help = bundle.Help
	case bundle.HasError():
		env.Error = errorDetail(bundle)
	default:
		env.Success = true
		env.Guidance = &models.Guidance{
			Strategy:        bundle.Strategy,
			Steps:           bundle.Steps,
			AbacusTip:       bundle.AbacusTip,
			MentalMathTrick: bundle.MentalMathTrick,
			Encouragement:   bundle.Encouragement,
			TeacherNotes:    bundle.TeacherNotes,
			ParentTips:      bundle.ParentTips,
		}
	}

	return env
}

func errorDetail(bundle models.HintBundle) *models.ErrorDetail {
	return &models.ErrorDetail{
		Kind:          bundle.Error,
		Message:       bundle.Message,
		Suggestion:    bundle.Suggestion,
		Encouragement: bundle.Encouragement,
	}
}
