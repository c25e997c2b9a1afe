package services

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/medregistry/clinic-backend/internal/config"
	"gopkg.in/gomail.v2"
)

var (
	ErrRecipientsRequired = errors.New("at least one recipient is required")
	// ErrMailDelivery is the opaque failure surfaced when the mail
	// transport rejects a message; the underlying cause is logged but
	// never shown to the caller.
	ErrMailDelivery = errors.New("mail delivery failed")
)

// Sender dispatches assembled messages; satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type MailService struct {
	cfg    *config.Config
	sender Sender
}

func NewMailService(cfg *config.Config) *MailService {
	return &MailService{
		cfg:    cfg,
		sender: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

// NewMailServiceWithSender injects a custom transport, used in tests.
func NewMailServiceWithSender(cfg *config.Config, sender Sender) *MailService {
	return &MailService{cfg: cfg, sender: sender}
}

// SendClientReport mails the client registry PDF to a comma-separated
// recipient list. Blank entries are dropped after trimming.
func (s *MailService) SendClientReport(recipients string, pdf []byte) error {
	var to []string
	for _, r := range strings.Split(recipients, ",") {
		if r = strings.TrimSpace(r); r != "" {
			to = append(to, r)
		}
	}
	if len(to) == 0 {
		return ErrRecipientsRequired
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SMTPFrom)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", "Client Registry Report")
	m.SetBody("text/plain", "Attached is the filtered client registry report.")
	m.Attach("client_registry_filtered.pdf", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))

	if err := s.sender.DialAndSend(m); err != nil {
		slog.Error("report mail dispatch failed", "error", err, "recipients", len(to))
		return ErrMailDelivery
	}

	return nil
}
