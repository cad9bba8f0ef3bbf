package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sarahbetts/fieldrota/internal/config"
	"github.com/sarahbetts/fieldrota/pkg/core/wallclock"
	"github.com/sarahbetts/fieldrota/pkg/core/weekly"
)

// EmailClient defines the operations needed to deliver digest emails
type EmailClient interface {
	SendEmail(to, subject, body string) error
}

// FailedEmail represents a recipient a digest could not be delivered to
type FailedEmail struct {
	Email string
	Err   error
}

// SendDigestResult represents the result of building and sending a digest
type SendDigestResult struct {
	Report *weekly.Report
	Sent   []string
	Failed []FailedEmail
}

// SendWeeklyDigest builds the coverage report for the week containing
// anchorDate and emails it to the configured recipients. Delivery failures
// are per-recipient: a bounce for one address never blocks the others. The
// first delivery error is returned after all sends are attempted.
func SendWeeklyDigest(ctx context.Context, store DigestStore, emailClient EmailClient, cfg *config.Config, logger *zap.Logger, anchorDate wallclock.LocalDate) (*SendDigestResult, error) {
	if len(cfg.DigestRecipients) == 0 {
		return nil, fmt.Errorf("no digest recipients configured")
	}

	report, err := BuildWeeklyDigest(ctx, store, cfg, logger, anchorDate)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Coverage digest: week of %s", report.Days[0].Date)
	body := RenderDigest(report)

	result := &SendDigestResult{Report: report}
	for _, recipient := range cfg.DigestRecipients {
		if err := emailClient.SendEmail(recipient, subject, body); err != nil {
			logger.Error("Failed to send digest email",
				zap.String("recipient", recipient),
				zap.Error(err))
			result.Failed = append(result.Failed, FailedEmail{Email: recipient, Err: err})
			continue
		}
		logger.Info("Digest email sent", zap.String("recipient", recipient))
		result.Sent = append(result.Sent, recipient)
	}

	if len(result.Failed) > 0 {
		return result, fmt.Errorf("failed to send digest to %d of %d recipients: %w",
			len(result.Failed), len(cfg.DigestRecipients), result.Failed[0].Err)
	}

	return result, nil
}
