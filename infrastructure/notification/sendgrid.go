// Package notification implements the outbound mail and staff-alert ports.
package notification

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"sweetshop-backend/application/ports"
	apperrors "sweetshop-backend/pkg/errors"
)

// SendGridMailer implements ports.Mailer using SendGrid.
type SendGridMailer struct {
	apiKey   string
	fromName string
	fromAddr string
	logger   *zap.Logger
}

// NewSendGridMailer creates a mailer sending from the given address.
func NewSendGridMailer(apiKey, fromName, fromAddr string, logger *zap.Logger) ports.Mailer {
	return &SendGridMailer{
		apiKey:   apiKey,
		fromName: fromName,
		fromAddr: fromAddr,
		logger:   logger,
	}
}

// Send delivers one plain-text email.
func (m *SendGridMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.apiKey == "" {
		return apperrors.NewExternalError("sendgrid", fmt.Errorf("api key is empty"))
	}
	if to == "" {
		return apperrors.NewValidationError("recipient address is empty")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(m.fromName, m.fromAddr),
		subject,
		mail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return apperrors.NewExternalError("sendgrid", err)
	}
	if response.StatusCode >= 400 {
		m.logger.Warn("sendgrid rejected message",
			zap.Int("status", response.StatusCode),
			zap.String("to", to),
		)
		return apperrors.NewExternalError("sendgrid",
			fmt.Errorf("send failed: status=%d body=%s", response.StatusCode, response.Body))
	}

	m.logger.Debug("mail sent",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("status", response.StatusCode),
	)
	return nil
}
