package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past goals and accepted tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			hist := a.store.History()
			if len(hist.Goals) == 0 && len(hist.Accepted) == 0 {
				fmt.Println("No history yet.")
				return nil
			}

			if len(hist.Goals) > 0 {
				fmt.Println("Goals (most recent first):")
				for _, g := range hist.Goals {
					fmt.Printf("  - %s\n", g)
				}
			}
			if len(hist.Accepted) > 0 {
				fmt.Println("Accepted tasks (most recent first):")
				for _, t := range hist.Accepted {
					fmt.Printf("  - %s\n", t)
				}
			}
			if def := a.store.SmartDefault(); def != "" {
				fmt.Printf("Smart default: %s\n", def)
			}

			return nil
		},
	}

	return cmd
}
