package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sarahbetts/fieldrota/pkg/core/review"
	"github.com/sarahbetts/fieldrota/pkg/core/services"
)

// ShiftReviewCmd creates the shiftReview command
func ShiftReviewCmd(app *AppContext) *cobra.Command {
	var reviewer string

	cmd := &cobra.Command{
		Use:   "shiftReview <shift_id>",
		Short: "Mark a shift's coverage exception as reviewed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := services.DismissException(app.Ctx, app.Store, app.Logger, args[0], reviewer, time.Now().UTC())
			if errors.Is(err, review.ErrNothingToReview) {
				return fmt.Errorf("shift %s has no exception awaiting review", args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to review exception: %w", err)
			}

			fmt.Printf("Exception reviewed by %s at %s\n", state.Reviewer, state.ReviewedAt.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&reviewer, "reviewer", "", "Operator recording the review")
	cmd.MarkFlagRequired("reviewer")

	return cmd
}
