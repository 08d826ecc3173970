// Package email sends HTML mail over SMTP with plain auth.
package email

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Sender is an SMTP mail transport.
type Sender struct {
	Server   string
	Port     int
	Username string
	Password string
	FromName string
}

// Send delivers one HTML message. It returns an error for an invalid
// recipient or any SMTP failure.
func (s *Sender) Send(to, subject, htmlBody string) error {
	if !strings.Contains(to, "@") {
		return fmt.Errorf("invalid email address: %s", to)
	}
	if s.Server == "" || s.Port == 0 || s.Username == "" || s.Password == "" {
		return fmt.Errorf("missing SMTP configuration: server, port, username, or password is empty")
	}

	from := s.Username
	if s.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.FromName, s.Username)
	}
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n",
		from, to, subject, htmlBody))

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Server)
	addr := fmt.Sprintf("%s:%d", s.Server, s.Port)
	if err := smtp.SendMail(addr, auth, s.Username, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
