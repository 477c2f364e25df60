package main

import (
	"fmt"
	"os"

	"github.com/jalennorris/taskplan/cmd/taskplan/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "taskplan",
		Short: "AI daily task planner",
		Long:  "Turn a goal into a reviewed, accepted multi-day task plan",
	}

	rootCmd.AddCommand(commands.NewPlanCmd())
	rootCmd.AddCommand(commands.NewGenerateCmd())
	rootCmd.AddCommand(commands.NewHistoryCmd())
	rootCmd.AddCommand(commands.NewIdeasCmd())
	rootCmd.AddCommand(commands.NewFeedbackCmd())
	rootCmd.AddCommand(commands.NewProfileCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
