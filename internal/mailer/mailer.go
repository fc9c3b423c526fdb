// Package mailer formats and dispatches notification emails through an SMTP
// transport. One attempt per call; transport errors surface to the caller.
package mailer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"

	"github.com/Gachagokimani/Cybersmarter-business-system/config"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/domain"
)

var addressPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidAddress reports whether s looks like an email address. This is the
// same lightweight pattern the UI applies before submitting.
func ValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

type Mailer struct {
	cfg config.SmtpConfig
}

func NewMailer(cfg config.SmtpConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Configured reports whether transport credentials are present.
func (m *Mailer) Configured() bool {
	return m.cfg.Username != "" && m.cfg.Password != ""
}

// Send dispatches a single HTML message. Returns ErrMailNotConfigured when
// credentials are unset, or the wrapped transport error on failure.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if !m.Configured() {
		return domain.ErrMailNotConfigured
	}
	if !ValidAddress(to) {
		return domain.NewValidationError("invalid email address %q", to)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from())
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return errors.Wrap(err, "send mail")
	}
	return nil
}

func (m *Mailer) from() string {
	if strings.TrimSpace(m.cfg.From) != "" {
		return m.cfg.From
	}
	return fmt.Sprintf("CyberSmarter Reports <%s>", m.cfg.Username)
}
