package main

import (
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terra-clan/homework-assistant/internal/assistant"
	"github.com/terra-clan/homework-assistant/internal/models"
	"github.com/terra-clan/homework-assistant/pkg/client"
)

var hintCmd = &cobra.Command{
	Use:   "hint <problem>",
	Short: "Print hints for a problem as JSON",
	Example: `  homework-assistant hint "subtract 5 from 12"
  homework-assistant hint --role teacher "6 rows of 7 chairs"
  homework-assistant hint --server http://localhost:8080 --api-key demo_access_homework_2025 "25 + 17"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHint,
}

func init() {
	hintCmd.Flags().String("role", string(models.RoleStudent), "role to answer for (student, parent, teacher, demo, admin)")
	hintCmd.Flags().String("server", "", "ask a running server instead of answering locally")
	hintCmd.Flags().String("api-key", os.Getenv("HOMEWORK_API_KEY"), "API key used with --server")
}

func runHint(cmd *cobra.Command, args []string) error {
	problem := strings.Join(args, " ")
	server, _ := cmd.Flags().GetString("server")

	var env *models.ResponseEnvelope
	if server != "" {
		apiKey, _ := cmd.Flags().GetString("api-key")
		c := client.NewClient(strings.TrimRight(server, "/"), apiKey)

		result, err := c.ProcessHomework(cmd.Context(), problem)
		var hintErr *client.HintError
		if err != nil && !errors.As(err, &hintErr) {
			return err
		}
		env = result
	} else {
		role, _ := cmd.Flags().GetString("role")
		local := &models.ApiClient{Name: "local", Role: models.ParseRole(role), IsActive: true}

		result, _ := assistant.NewService(nil).Process(cmd.Context(), problem, local, "")
		env = &result
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(env)
}
