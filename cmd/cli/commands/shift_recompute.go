package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarahbetts/fieldrota/pkg/core/services"
)

// ShiftRecomputeCmd creates the shiftRecompute command
func ShiftRecomputeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shiftRecompute <shift_id>",
		Short: "Re-evaluate a shift's coverage and update its exception state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.RecomputeShiftCoverage(app.Ctx, app.Store, app.Logger, args[0])
			if err != nil {
				return fmt.Errorf("failed to recompute coverage: %w", err)
			}

			if !result.Evaluation.HasException {
				fmt.Println("Shift is fully staffed")
				return nil
			}

			fmt.Printf("Shift has a coverage exception (%s):\n", result.State.Status)
			for _, note := range result.Evaluation.Notes {
				fmt.Printf("  - %s\n", note)
			}
			return nil
		},
	}
}
