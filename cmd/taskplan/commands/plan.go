package commands

import (
	"github.com/spf13/cobra"

	"github.com/jalennorris/taskplan/internal/tui"
)

// NewPlanCmd creates the interactive planning command
func NewPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan interactively",
		Long:  "Interactive planning screen: type a goal, review the suggested tasks, edit or delete them, accept the plan and rate it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			return tui.Run(ctx, a.session, a.store, a.backend, a.cfg.UserID)
		},
	}

	return cmd
}
