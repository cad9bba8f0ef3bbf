package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sarahbetts/fieldrota/internal/config"
	"github.com/sarahbetts/fieldrota/pkg/clients/gmailclient"
	"github.com/sarahbetts/fieldrota/pkg/core/wallclock"
	"github.com/sarahbetts/fieldrota/pkg/postgres"
	"github.com/sarahbetts/fieldrota/pkg/utils"
)

// AppContext holds the application dependencies shared by all commands.
// Fields are populated by initApp before any RunE executes.
type AppContext struct {
	Ctx      context.Context
	Cfg      *config.Config
	OAuthCfg *config.OAuthClientConfig
	Store    *postgres.DB
	Logger   *zap.Logger

	gmailClient *gmailclient.Client
}

// GmailClient lazily creates the Gmail client, running the interactive
// OAuth flow on first use so database-only commands never prompt for it.
func (app *AppContext) GmailClient() (*gmailclient.Client, error) {
	if app.gmailClient != nil {
		return app.gmailClient, nil
	}

	oauthConfig, err := utils.GetOAuthConfig(app.OAuthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	token, err := utils.GetTokenWithFlow(app.Ctx, oauthConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain oauth token: %w", err)
	}

	client, err := gmailclient.NewClient(app.Ctx, app.OAuthCfg, token, app.Cfg.GmailSender)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}

	app.gmailClient = client
	return client, nil
}

// resolveAnchorDate parses a --date flag value, defaulting to today in the
// organization's timezone when the flag is empty.
func resolveAnchorDate(app *AppContext, dateFlag string) (wallclock.LocalDate, error) {
	if dateFlag != "" {
		return wallclock.ParseLocalDate(dateFlag)
	}

	loc, err := wallclock.LoadZone(app.Cfg.Timezone)
	if err != nil {
		return wallclock.LocalDate{}, err
	}
	return wallclock.ToLocalDate(time.Now(), loc), nil
}
