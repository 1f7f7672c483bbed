package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "homework-assistant",
	Short: "Step-by-step hints for arithmetic homework",
	Long: "homework-assistant reads an arithmetic or word problem, works out which operation it needs " +
		"and answers with hints for students, parents and teachers instead of the answer.",
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(versionCmd)
}
