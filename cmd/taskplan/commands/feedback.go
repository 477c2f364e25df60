package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jalennorris/taskplan/internal/models"
	"github.com/jalennorris/taskplan/internal/validation"
)

// NewFeedbackCmd creates the feedback command
func NewFeedbackCmd() *cobra.Command {
	var (
		rating  int
		message string
	)

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Send a rating for the planner",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateRating(rating); err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			fb := models.Feedback{
				User:      a.cfg.UserID,
				Rating:    rating,
				Feedback:  validation.SanitizeText(message),
				CreatedAt: models.Timestamp(time.Now()),
			}
			if err := a.backend.SubmitFeedback(ctx, fb); err != nil {
				return fmt.Errorf("failed to send feedback: %w", err)
			}

			fmt.Println("Thanks for the feedback!")
			return nil
		},
	}

	cmd.Flags().IntVar(&rating, "rating", 0, "rating from 1 to 5 (required)")
	cmd.Flags().StringVar(&message, "message", "", "optional comment")
	_ = cmd.MarkFlagRequired("rating")

	return cmd
}
