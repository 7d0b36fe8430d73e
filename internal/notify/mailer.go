package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/ndanilin/accountd/internal/config"
	"github.com/ndanilin/accountd/internal/model"
)

// MailerSink renders lifecycle events as emails and sends them over SMTP.
type MailerSink struct {
	from   string
	dialer *gomail.Dialer
}

var _ Sink = (*MailerSink)(nil)

func NewMailerSink(cfg config.SMTP) *MailerSink {
	return &MailerSink{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *MailerSink) Emit(ctx context.Context, event string, payload map[string]any) error {
	to, _ := payload["email"].(string)
	if to == "" {
		return fmt.Errorf("event %q has no recipient", event)
	}

	subject, body, err := renderEmail(event, payload)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func renderEmail(event string, payload map[string]any) (subject, body string, err error) {
	username, _ := payload["username"].(string)

	switch event {
	case model.EventLoginTokenEmail:
		loginURL, _ := payload["loginUrl"].(string)
		token, _ := payload["token"].(string)
		subject = "Your sign-in link"
		body = fmt.Sprintf(
			"Hi %s,\n\nUse this link to sign in:\n\n%s\n\nOr enter the code %s directly.\n\nThe link expires shortly and works only once.\n",
			username, loginURL, token)
	case model.EventResetCodeCreated:
		resetURL, _ := payload["resetUrl"].(string)
		subject = "Reset your password"
		body = fmt.Sprintf(
			"Hi %s,\n\nSomeone requested a password reset for your account. Follow this link to choose a new password:\n\n%s\n\nIf that was not you, you can ignore this message.\n",
			username, resetURL)
	case model.EventPasswordChanged:
		subject = "Your password was changed"
		body = fmt.Sprintf(
			"Hi %s,\n\nThe password on your account was just changed. If that was not you, reset your password immediately.\n",
			username)
	default:
		return "", "", fmt.Errorf("unknown event %q", event)
	}

	return subject, body, nil
}
