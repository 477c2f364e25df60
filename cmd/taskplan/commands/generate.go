package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jalennorris/taskplan/internal/planner"
)

// NewGenerateCmd creates the one-shot generation command
func NewGenerateCmd() *cobra.Command {
	var (
		days        int
		contextGoal string
		accept      bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "generate <goal>",
		Short: "Generate a plan without the interactive screen",
		Long:  "Generate a task plan for a goal and print it, optionally accepting every task immediately",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			a.session.SetQuery(strings.Join(args, " "))
			if err := a.session.SetNumDays(days); err != nil {
				return err
			}
			a.session.SetContextGoal(contextGoal)

			if err := a.session.Generate(ctx); err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}
			tasks := a.session.Tasks()

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(tasks); err != nil {
					return err
				}
			} else {
				for i, t := range tasks {
					fmt.Printf("Day %d: %s\n", i+1, t.Title)
					if t.Description != "" {
						fmt.Printf("  %s\n", t.Description)
					}
					if t.SuggestedDeadline != "" {
						fmt.Printf("  due %s\n", t.SuggestedDeadline)
					}
				}
				if w := a.session.Warning(); w != "" {
					fmt.Println(w)
				}
			}

			if !accept {
				return nil
			}
			accepted, err := a.session.AcceptAll(ctx)
			if err != nil {
				return fmt.Errorf("accept failed: %w", err)
			}
			fmt.Printf("Accepted %d tasks.\n", len(accepted))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", planner.DefaultDays, "number of days to plan")
	cmd.Flags().StringVar(&contextGoal, "goal", "", "steering goal included in the prompt context")
	cmd.Flags().BoolVar(&accept, "accept", false, "accept every generated task immediately")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")

	return cmd
}
