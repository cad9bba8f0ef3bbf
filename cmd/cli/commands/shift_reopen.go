package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarahbetts/fieldrota/pkg/core/review"
	"github.com/sarahbetts/fieldrota/pkg/core/services"
)

// ShiftReopenCmd creates the shiftReopen command
func ShiftReopenCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shiftReopen <shift_id>",
		Short: "Reopen a reviewed coverage exception",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := services.ReopenException(app.Ctx, app.Store, app.Logger, args[0])
			if errors.Is(err, review.ErrNothingToReview) {
				return fmt.Errorf("shift %s has no reviewed exception to reopen", args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to reopen exception: %w", err)
			}

			fmt.Println("Exception reopened for review")
			return nil
		},
	}
}
