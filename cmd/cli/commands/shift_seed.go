package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarahbetts/fieldrota/pkg/core/services"
	"github.com/sarahbetts/fieldrota/pkg/core/wallclock"
)

// ShiftSeedCmd creates the shiftSeed command
func ShiftSeedCmd(app *AppContext) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "shiftSeed",
		Short: "Create shift records from the configured shift patterns",
		Long:  "Expands the shiftPatterns in the config over [--from, --to) and inserts a shift for every occurrence. Existing shifts are left alone, so re-running is safe.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, err := wallclock.ParseLocalDate(from)
			if err != nil {
				return err
			}
			toDate, err := wallclock.ParseLocalDate(to)
			if err != nil {
				return err
			}

			result, err := services.SeedShifts(app.Ctx, app.Store, app.Cfg, app.Logger, fromDate, toDate)
			if err != nil {
				return fmt.Errorf("failed to seed shifts: %w", err)
			}

			fmt.Printf("Created %d shifts (%d dates already seeded)\n", len(result.Created), result.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First date to seed (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "Last date to seed (YYYY-MM-DD, exclusive)")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	return cmd
}
