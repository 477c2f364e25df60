package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jalennorris/taskplan/internal/validation"
)

// NewProfileCmd creates the profile command group
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the user profile",
	}

	cmd.AddCommand(newUpdateEmailCmd())

	return cmd
}

func newUpdateEmailCmd() *cobra.Command {
	var (
		email   string
		confirm string
	)

	cmd := &cobra.Command{
		Use:   "update-email",
		Short: "Change the account email address",
		Long:  "Change the account email address. The update retries on transient server failures",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateEmail(email); err != nil {
				return err
			}
			if email != confirm {
				return fmt.Errorf("email addresses do not match")
			}

			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.backend.UpdateEmail(ctx, a.cfg.UserID, email); err != nil {
				return fmt.Errorf("failed to update email: %w", err)
			}

			fmt.Printf("Email updated to %s.\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "new email address (required)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "repeat the new email address (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("confirm")

	return cmd
}
