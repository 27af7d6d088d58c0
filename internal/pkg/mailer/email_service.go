package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"gopkg.in/gomail.v2"

	"ai-tutor-be/internal/pkg/logger"
)

var (
	ErrNotConfigured  = errors.New("SMTP is not configured")
	ErrInvalidAddress = errors.New("invalid e-mail address")
)

// MailError is shown to the user as is
type MailError struct {
	Address string
	Err     error
}

func (e *MailError) Error() string {
	return fmt.Sprintf("Échec envoi e-mail à %s: %v", e.Address, e.Err)
}

func (e *MailError) Unwrap() error {
	return e.Err
}

type IEmailService interface {
	Send(ctx context.Context, to, subject, body string) error
}

// sender is the part of *gomail.Dialer the service uses
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	dialer      sender
	senderEmail string
	logger      logger.ILogger
}

// NewEmailService returns a service that fails every Send with
// ErrNotConfigured when host is empty.
func NewEmailService(host string, port int, username, password, senderEmail string, log logger.ILogger) IEmailService {
	var d sender
	if host != "" {
		d = gomail.NewDialer(host, port, username, password)
	}
	if senderEmail == "" {
		senderEmail = username
	}
	return &emailService{dialer: d, senderEmail: senderEmail, logger: log}
}

func (s *emailService) Send(ctx context.Context, to, subject, body string) error {
	if s.dialer == nil {
		return &MailError{Address: to, Err: ErrNotConfigured}
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return &MailError{Address: to, Err: ErrInvalidAddress}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	// gomail has no context support; the send goroutine is left to finish
	// on its own when ctx expires first
	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			s.logger.Error("MAILER", "Send failed", map[string]interface{}{"to": to, "error": err})
			return &MailError{Address: to, Err: err}
		}
	case <-ctx.Done():
		s.logger.Warn("MAILER", "Send abandoned", map[string]interface{}{"to": to, "error": ctx.Err()})
		return &MailError{Address: to, Err: ctx.Err()}
	}

	s.logger.Info("MAILER", "Mail sent", map[string]interface{}{"to": to, "subject": subject})
	return nil
}
