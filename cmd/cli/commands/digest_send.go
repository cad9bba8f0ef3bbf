package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarahbetts/fieldrota/pkg/core/services"
)

// DigestSendCmd creates the digestSend command
func DigestSendCmd(app *AppContext) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "digestSend",
		Short: "Build the weekly coverage digest and email it to the configured recipients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor, err := resolveAnchorDate(app, date)
			if err != nil {
				return err
			}

			gmailClient, err := app.GmailClient()
			if err != nil {
				return err
			}

			result, err := services.SendWeeklyDigest(app.Ctx, app.Store, gmailClient, app.Cfg, app.Logger, anchor)
			if err != nil {
				return fmt.Errorf("failed to send digest: %w", err)
			}

			fmt.Printf("Digest sent to %d recipients\n", len(result.Sent))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any date inside the week of interest (YYYY-MM-DD, default today)")

	return cmd
}
