package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jalennorris/taskplan/internal/suggest"
)

// NewIdeasCmd creates the ideas command
func NewIdeasCmd() *cobra.Command {
	var surprise bool

	cmd := &cobra.Command{
		Use:   "ideas",
		Short: "Show example goals, templates and shortcuts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if surprise {
				fmt.Println(suggest.RandomSurprise())
				return nil
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			if recent := a.store.RecentIdeas(); len(recent) > 0 {
				fmt.Println("Recently used:")
				for _, r := range recent {
					fmt.Printf("  - %s\n", r)
				}
				fmt.Println()
			}

			fmt.Println("Ideas:")
			for _, idea := range suggest.Ideas {
				fmt.Printf("  - %s\n", idea)
			}

			fmt.Println("Templates:")
			for _, t := range suggest.Templates {
				fmt.Printf("  - %s (%d days): %s\n", t.Label, t.Days, t.Prompt)
			}

			fmt.Println("Shortcuts:")
			for _, s := range suggest.Shortcuts {
				if s.Prompt != "" {
					fmt.Printf("  - %s (%d days): %s\n", s.Label, s.Days, s.Prompt)
				} else {
					fmt.Printf("  - %s (%d days)\n", s.Label, s.Days)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&surprise, "surprise", false, "print one random surprise prompt")

	return cmd
}
