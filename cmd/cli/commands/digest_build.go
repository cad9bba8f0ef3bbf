package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarahbetts/fieldrota/pkg/core/services"
)

// DigestBuildCmd creates the digestBuild command
func DigestBuildCmd(app *AppContext) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "digestBuild",
		Short: "Build and print the weekly coverage digest",
		Long:  "Builds the coverage report for the week containing --date (default: today) and prints it without sending any email.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor, err := resolveAnchorDate(app, date)
			if err != nil {
				return err
			}

			report, err := services.BuildWeeklyDigest(app.Ctx, app.Store, app.Cfg, app.Logger, anchor)
			if err != nil {
				return fmt.Errorf("failed to build digest: %w", err)
			}

			fmt.Print(services.RenderDigest(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any date inside the week of interest (YYYY-MM-DD, default today)")

	return cmd
}
