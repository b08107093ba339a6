// Package mailer sends account notices over SMTP.
package mailer

import (
	"fmt"
	"html"
	"sync"

	"gopkg.in/gomail.v2"

	"github.com/Dhairyash-1/videotube-api/internal/logger"
)

// Config holds the SMTP settings. An empty Host disables sending.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer delivers notices in the background; failures are logged, never returned.
type Mailer struct {
	sender sender
	from   string
	wg     sync.WaitGroup
}

// New returns a Mailer, or nil when cfg.Host is empty. A nil *Mailer is a valid no-op.
func New(cfg Config) *Mailer {
	if cfg.Host == "" {
		return nil
	}
	return &Mailer{
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Recipient is who a notice is addressed to.
type Recipient struct {
	Email    string
	FullName string
	Username string
}

// Welcome greets a newly registered user.
func (m *Mailer) Welcome(to Recipient) {
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Your VideoTube channel <b>@%s</b> is ready. Start uploading!</p>`,
		html.EscapeString(to.FullName), html.EscapeString(to.Username))
	m.send(to.Email, "Welcome to VideoTube", body)
}

// PasswordChanged warns the user their password was changed.
func (m *Mailer) PasswordChanged(to Recipient) {
	body := fmt.Sprintf(`<p>Hi %s,</p><p>The password of your VideoTube account was just changed. `+
		`If this was not you, reset it immediately.</p>`, html.EscapeString(to.FullName))
	m.send(to.Email, "Your VideoTube password was changed", body)
}

func (m *Mailer) send(to, subject, body string) {
	if m == nil || to == "" {
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.sender.DialAndSend(msg); err != nil {
			logger.WithModule("mailer").WithError(err).WithField("subject", subject).Warn("Failed to send email")
		}
	}()
}

// Wait blocks until queued messages are sent; used on shutdown.
func (m *Mailer) Wait() {
	if m == nil {
		return
	}
	m.wg.Wait()
}
