package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/homework-assistant/internal/models"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		hintCmd.Flags().Set("role", string(models.RoleStudent))
		hintCmd.Flags().Set("server", "")
	})

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestHintCommand_Local(t *testing.T) {
	out := runCLI(t, "hint", "--role", "teacher", "subtract", "5", "from", "12")

	var env models.ResponseEnvelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.True(t, env.Success)
	assert.Equal(t, models.OpSubtraction, env.Analysis.Operation)
	assert.Equal(t, []int{12, 5}, env.Analysis.Numbers)
	assert.Equal(t, models.RoleTeacher, env.User.Role)
	require.NotNil(t, env.Guidance)
	assert.NotEmpty(t, env.Guidance.TeacherNotes)
}

func TestHintCommand_ErrorEnvelope(t *testing.T) {
	out := runCLI(t, "hint", "5 / 0")

	var env models.ResponseEnvelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, models.ErrDivisionByZero, env.Error.Kind)
}

func TestHintCommand_Server(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/homework", r.URL.Path)
		assert.Equal(t, "remote_key_123", r.Header.Get("X-API-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"success":true,"problem":"2 + 2","analysis":{"operation":"addition","numbers":[2,2]},"user":{"role":"demo"}}}`))
	}))
	defer ts.Close()

	out := runCLI(t, "hint", "--server", ts.URL+"/", "--api-key", "remote_key_123", "2 + 2")

	var env models.ResponseEnvelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, models.RoleDemo, env.User.Role)
	assert.Equal(t, []int{2, 2}, env.Analysis.Numbers)
}

func TestVersionCommand(t *testing.T) {
	assert.Contains(t, runCLI(t, "version"), "homework-assistant")
}
