package hints

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/homework-assistant/internal/models"
)

func TestAssessDifficulty(t *testing.T) {
	tests := []struct {
		op   models.Operation
		a, b int
		want models.Difficulty
	}{
		{models.OpAddition, 3, 10, models.DifficultyEasy},
		{models.OpAddition, 11, 2, models.DifficultyMedium},
		{models.OpAddition, 50, 50, models.DifficultyMedium},
		{models.OpAddition, 51, 1, models.DifficultyHard},
		{models.OpSubtraction, 9, 4, models.DifficultyEasy},
		{models.OpSubtraction, 200, 4, models.DifficultyHard},
		{models.OpMultiplication, 5, 5, models.DifficultyEasy},
		{models.OpMultiplication, 6, 2, models.DifficultyMedium},
		{models.OpMultiplication, 10, 10, models.DifficultyMedium},
		{models.OpMultiplication, 11, 3, models.DifficultyHard},
		{models.OpDivision, 1000, 3, models.DifficultyMedium},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AssessDifficulty(tt.op, tt.a, tt.b), "%s(%d, %d)", tt.op, tt.a, tt.b)
	}
}

func TestCompose_Strategies(t *testing.T) {
	tests := []struct {
		op           models.Operation
		a, b         int
		wantStrategy string
	}{
		{models.OpAddition, 3, 4, "Use the counting-on strategy"},
		{models.OpAddition, 23, 38, "Use place value thinking"},
		{models.OpAddition, 120, 345, "Use the standard algorithm"},
		{models.OpSubtraction, 9, 4, "Use take-away method"},
		{models.OpSubtraction, 45, 12, "Break down by place value"},
		{models.OpSubtraction, 300, 125, "Use borrowing method"},
		{models.OpMultiplication, 3, 4, "Use repeated addition or grouping"},
		{models.OpMultiplication, 7, 8, "Use multiplication tables and breaking down"},
		{models.OpMultiplication, 12, 14, "Use the distributive property"},
		{models.OpDivision, 3, 7, "Understanding division with smaller dividends"},
		{models.OpDivision, 15, 5, "Perfect division (no remainder)"},
		{models.OpDivision, 17, 5, "Division with remainders"},
	}

	for _, tt := range tests {
		b := Compose(tt.op, []int{tt.a, tt.b}, models.RoleStudent)
		require.False(t, b.HasError(), "%s(%d, %d) unexpected error %s", tt.op, tt.a, tt.b, b.Error)

		assert.Equal(t, tt.wantStrategy, b.Strategy)
		assert.Equal(t, tt.op, b.Operation)
		assert.NotEmpty(t, b.Steps)
		assert.NotEmpty(t, b.AbacusTip)
		assert.NotEmpty(t, b.MentalMathTrick)
		assert.NotEmpty(t, b.Encouragement)
	}
}

func TestCompose_DivisionWithRemainderWalksThroughQuotient(t *testing.T) {
	b := Compose(models.OpDivision, []int{17, 5}, models.RoleStudent)

	assert.Contains(t, strings.Join(b.Steps, "\n"), "3 remainder 2")
	assert.Equal(t, models.DifficultyMedium, b.Difficulty)
}

func TestCompose_DoesNotRevealAnswer(t *testing.T) {
	tests := []struct {
		op     models.Operation
		a, b   int
		answer int
	}{
		{models.OpAddition, 7, 9, 16},
		{models.OpAddition, 23, 38, 61},
		{models.OpAddition, 120, 345, 465},
		{models.OpSubtraction, 15, 6, 9},
		{models.OpSubtraction, 80, 27, 53},
		{models.OpMultiplication, 3, 4, 12},
		{models.OpMultiplication, 7, 8, 56},
		{models.OpMultiplication, 12, 14, 168},
	}

	for _, tt := range tests {
		b := Compose(tt.op, []int{tt.a, tt.b}, models.RoleTeacher)
		re := regexp.MustCompile(`\b` + strconv.Itoa(tt.answer) + `\b`)
		texts := append([]string{b.AbacusTip, b.MentalMathTrick, b.TeacherNotes}, b.Steps...)
		for _, s := range texts {
			assert.NotRegexp(t, re, s, "%s(%d, %d) reveals the answer", tt.op, tt.a, tt.b)
		}
	}
}

func TestCompose_MentalMathTricks(t *testing.T) {
	tests := []struct {
		op       models.Operation
		a, b     int
		contains []string
	}{
		{models.OpAddition, 7, 9, []string{"add 10", "subtract 1"}},
		{models.OpAddition, 20, 13, []string{"Add 10 first", "remaining 3"}},
		{models.OpAddition, 4, 6, []string{"round number"}},
		{models.OpAddition, 4, 7, []string{"make a 10"}},
		{models.OpSubtraction, 25, 9, []string{"subtract 10", "add 1"}},
		{models.OpSubtraction, 40, 12, []string{"count back by tens"}},
		{models.OpMultiplication, 8, 2, []string{"doubling"}},
		{models.OpMultiplication, 8, 5, []string{"cut it in half"}},
		{models.OpMultiplication, 8, 10, []string{"zero on the end"}},
		{models.OpDivision, 18, 2, []string{"in half"}},
		{models.OpDivision, 18, 4, []string{"backwards"}},
	}

	for _, tt := range tests {
		trick := Compose(tt.op, []int{tt.a, tt.b}, models.RoleStudent).MentalMathTrick
		for _, want := range tt.contains {
			assert.Contains(t, trick, want, "%s(%d, %d)", tt.op, tt.a, tt.b)
		}
	}
}

func TestCompose_ErrorBundles(t *testing.T) {
	tests := []struct {
		name     string
		op       models.Operation
		operands []int
		wantKind models.ErrorKind
	}{
		{"subtraction larger second", models.OpSubtraction, []int{3, 8}, models.ErrProblemCheckNeeded},
		{"divide by zero", models.OpDivision, []int{5, 0}, models.ErrDivisionByZero},
		{"unknown operation", models.OpUnknown, []int{4, 2}, models.ErrUnknownOperation},
		{"one number", models.OpUnknown, []int{7}, models.ErrInsufficientNumbers},
		{"no numbers", models.OpUnknown, []int{}, models.ErrInsufficientNumbers},
		{"known op one number", models.OpAddition, []int{7}, models.ErrInsufficientNumbers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, role := range []models.Role{models.RoleStudent, models.RoleTeacher, models.RoleParent} {
				b := Compose(tt.op, tt.operands, role)
				require.Equal(t, tt.wantKind, b.Error)

				assert.Empty(t, b.Strategy, "error bundle carries guidance")
				assert.Empty(t, b.Steps, "error bundle carries guidance")
				assert.Empty(t, b.TeacherNotes, "error bundle carries role notes")
				assert.Empty(t, b.ParentTips, "error bundle carries role notes")
				assert.NotEmpty(t, b.Message)
				assert.NotEmpty(t, b.Encouragement)
			}
		})
	}
}

func TestCompose_ProblemCheckSuggestsSwap(t *testing.T) {
	b := Compose(models.OpSubtraction, []int{3, 8}, models.RoleStudent)
	assert.Contains(t, b.Suggestion, "8 - 3")
}

func TestCompose_UnknownCarriesHelp(t *testing.T) {
	b := Compose(models.OpUnknown, []int{4, 2}, models.RoleStudent)

	require.NotNil(t, b.Help)
	assert.Len(t, b.Help.SupportedOperations, 4)
	assert.NotEmpty(t, b.Help.ExampleProblems)
	assert.NotEmpty(t, b.Help.Tips)
	assert.Empty(t, b.Difficulty)
}

func TestCompose_RoleNotes(t *testing.T) {
	teacher := Compose(models.OpAddition, []int{4, 6}, models.RoleTeacher)
	assert.NotEmpty(t, teacher.TeacherNotes)
	assert.Empty(t, teacher.ParentTips)

	parent := Compose(models.OpAddition, []int{4, 6}, models.RoleParent)
	assert.NotEmpty(t, parent.ParentTips)
	assert.Empty(t, parent.TeacherNotes)

	for _, role := range []models.Role{models.RoleStudent, models.RoleDemo, models.RoleAdmin} {
		b := Compose(models.OpAddition, []int{4, 6}, role)
		assert.Empty(t, b.TeacherNotes, role)
		assert.Empty(t, b.ParentTips, role)
	}
}

func TestCompose_UsesFirstTwoOperands(t *testing.T) {
	b := Compose(models.OpAddition, []int{3, 4, 900}, models.RoleStudent)
	assert.Equal(t, models.DifficultyEasy, b.Difficulty, "third operand is ignored")
}

func TestCompose_IsPure(t *testing.T) {
	for _, role := range []models.Role{models.RoleStudent, models.RoleTeacher, models.RoleParent} {
		assert.Equal(t,
			Compose(models.OpMultiplication, []int{7, 8}, role),
			Compose(models.OpMultiplication, []int{7, 8}, role),
		)
	}
}
