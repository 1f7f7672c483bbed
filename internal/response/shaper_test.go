package response

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/homework-assistant/internal/hints"
	"github.com/terra-clan/homework-assistant/internal/models"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.FixedZone("EST", -5*3600))

func TestShape_Success(t *testing.T) {
	bundle := hints.Compose(models.OpAddition, []int{4, 6}, models.RoleTeacher)
	user := models.RoleInfo{Role: models.RoleTeacher, DailyLimit: 1000}

	env := Shape("4 + 6", models.OpAddition, []int{4, 6}, bundle, user, "req-1", fixedNow)

	require.True(t, env.Success)
	require.NotNil(t, env.Guidance)
	assert.Nil(t, env.Error)
	assert.Nil(t, env.Help)

	assert.Equal(t, bundle.Strategy, env.Guidance.Strategy)
	assert.Equal(t, bundle.Steps, env.Guidance.Steps)
	assert.NotEmpty(t, env.Guidance.TeacherNotes, "teacher notes are folded into guidance")
	assert.Equal(t, models.DifficultyEasy, env.Analysis.Difficulty)

	assert.Equal(t, "4 + 6", env.Problem)
	assert.Equal(t, "req-1", env.RequestID)
	assert.Equal(t, user, env.User)
	assert.Equal(t, time.UTC, env.Timestamp.Location())
	assert.True(t, env.Timestamp.Equal(fixedNow))
}

func TestShape_UnknownCarriesHelp(t *testing.T) {
	bundle := hints.Compose(models.OpUnknown, []int{4, 2}, models.RoleStudent)

	env := Shape("I have 4 cats and 2 dogs", models.OpUnknown, []int{4, 2}, bundle, models.RoleInfo{Role: models.RoleStudent}, "", fixedNow)

	require.False(t, env.Success)
	require.NotNil(t, env.Help)
	require.NotNil(t, env.Error)
	assert.Equal(t, models.ErrUnknownOperation, env.Error.Kind)
	assert.Nil(t, env.Guidance)
}

func TestShape_ErrorBundles(t *testing.T) {
	tests := []struct {
		name     string
		op       models.Operation
		operands []int
		kind     models.ErrorKind
	}{
		{"problem check", models.OpSubtraction, []int{3, 8}, models.ErrProblemCheckNeeded},
		{"division by zero", models.OpDivision, []int{5, 0}, models.ErrDivisionByZero},
		{"insufficient numbers", models.OpUnknown, []int{7}, models.ErrInsufficientNumbers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := hints.Compose(tt.op, tt.operands, models.RoleStudent)
			env := Shape("text", tt.op, tt.operands, bundle, models.RoleInfo{Role: models.RoleStudent}, "", fixedNow)

			assert.False(t, env.Success)
			assert.Nil(t, env.Guidance)
			assert.Nil(t, env.Help)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.kind, env.Error.Kind)
			assert.NotEmpty(t, env.Error.Message)
			assert.Empty(t, env.Analysis.Difficulty)
		})
	}
}

func TestShape_NilOperandsBecomeEmpty(t *testing.T) {
	bundle := hints.Compose(models.OpUnknown, nil, models.RoleStudent)
	env := Shape("hello", models.OpUnknown, nil, bundle, models.RoleInfo{Role: models.RoleStudent}, "", fixedNow)

	require.NotNil(t, env.Analysis.Numbers)
	assert.Empty(t, env.Analysis.Numbers)
}
