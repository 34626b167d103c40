// Package email delivers counselor notification email over SMTP.
package email

import (
	"context"

	"edulead_backend/platform/config"
)

// Sender delivers notification email.
type Sender interface {
	SendLeadAssignedEmail(ctx context.Context, toEmail, counselorName, studentName, courseName, branchName string) error
}

// NoopSender discards all email. Used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) SendLeadAssignedEmail(ctx context.Context, toEmail, counselorName, studentName, courseName, branchName string) error {
	return nil
}

// NewSender returns the configured sender, falling back to a no-op when
// email delivery is disabled.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}
