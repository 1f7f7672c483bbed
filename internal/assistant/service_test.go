package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/homework-assistant/internal/models"
)

type captureSink struct {
	events []models.UsageEvent
}

func (s *captureSink) Record(ctx context.Context, event models.UsageEvent) {
	s.events = append(s.events, event)
}

var clock = func() time.Time { return time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC) }

func TestService_Process(t *testing.T) {
	sink := &captureSink{}
	svc := NewService(sink, WithClock(clock))
	teacher := &models.ApiClient{Name: "School District Alpha", Role: models.RoleTeacher, DailyLimit: 1000, IsActive: true}

	env, bundle := svc.Process(context.Background(), "subtract 5 from 12", teacher, "req-42")

	assert.True(t, env.Success)
	assert.Equal(t, "req-42", env.RequestID)
	assert.Equal(t, clock(), env.Timestamp)
	assert.Equal(t, models.OpSubtraction, env.Analysis.Operation)
	assert.Equal(t, []int{12, 5}, env.Analysis.Numbers)
	assert.Equal(t, models.RoleInfo{Role: models.RoleTeacher, DailyLimit: 1000}, env.User)
	require.NotNil(t, env.Guidance)
	assert.NotEmpty(t, env.Guidance.TeacherNotes)
	assert.Equal(t, bundle.Strategy, env.Guidance.Strategy)

	require.Len(t, sink.events, 1)
	ev := sink.events[0]
	assert.Equal(t, "School District Alpha", ev.ClientName)
	assert.Equal(t, models.RoleTeacher, ev.Role)
	assert.Equal(t, models.OpSubtraction, ev.Operation)
	assert.True(t, ev.Success)
	assert.Empty(t, ev.ErrorKind)
}

func TestService_ProcessErrorKinds(t *testing.T) {
	sink := &captureSink{}
	svc := NewService(sink, WithClock(clock))
	student := &models.ApiClient{Name: "Kid", Role: models.RoleStudent, IsActive: true}

	tests := []struct {
		problem string
		kind    models.ErrorKind
	}{
		{"3 - 8", models.ErrProblemCheckNeeded},
		{"5 / 0", models.ErrDivisionByZero},
		{"I have 4 cats and 2 dogs", models.ErrUnknownOperation},
		{"What is 7?", models.ErrInsufficientNumbers},
	}

	for _, tt := range tests {
		env, bundle := svc.Process(context.Background(), tt.problem, student, "")
		assert.False(t, env.Success, tt.problem)
		assert.Equal(t, tt.kind, bundle.Error, tt.problem)
		require.NotNil(t, env.Error, tt.problem)
		assert.Equal(t, tt.kind, env.Error.Kind, tt.problem)
		assert.NotEmpty(t, env.RequestID, "request id should be generated")
	}

	require.Len(t, sink.events, len(tests))
	for i, ev := range sink.events {
		assert.False(t, ev.Success)
		assert.Equal(t, tests[i].kind, ev.ErrorKind)
	}
}

func TestService_NilClientActsAsStudent(t *testing.T) {
	svc := NewService(nil, WithClock(clock))

	env, _ := svc.Process(context.Background(), "12000 + 3", nil, "")

	assert.Equal(t, models.RoleStudent, env.User.Role)
	assert.Equal(t, models.OpUnknown, env.Analysis.Operation)
	assert.Equal(t, []int{3}, env.Analysis.Numbers)
	require.NotNil(t, env.Error)
	assert.Equal(t, models.ErrInsufficientNumbers, env.Error.Kind)
}

func TestService_TeacherKeepsLargeOperands(t *testing.T) {
	svc := NewService(nil, WithClock(clock))
	teacher := &models.ApiClient{Name: "Math Dept", Role: models.RoleTeacher, IsActive: true}

	env, _ := svc.Process(context.Background(), "12000 + 3", teacher, "")

	assert.True(t, env.Success)
	assert.Equal(t, models.OpAddition, env.Analysis.Operation)
	assert.Equal(t, []int{12000, 3}, env.Analysis.Numbers)
}

func TestService_UnrecognizedRoleActsAsStudent(t *testing.T) {
	svc := NewService(nil)
	odd := &models.ApiClient{Name: "Odd", Role: models.Role("principal"), IsActive: true}

	env, _ := svc.Process(context.Background(), "1500 + 2", odd, "")

	assert.Equal(t, models.OpUnknown, env.Analysis.Operation)
}
