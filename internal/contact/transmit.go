package contact

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// Message is a validated form ready for delivery.
type Message struct {
	Name string
	Comp string
	Body string
}

// Transmitter delivers a message somewhere.
type Transmitter interface {
	Transmit(ctx context.Context, m Message) error
	Name() string
}

// Simulated pretends to send: it waits Delay and reports success. Nothing
// leaves the process.
type Simulated struct {
	Delay time.Duration
}

func (Simulated) Name() string { return "simulate" }

func (s Simulated) Transmit(ctx context.Context, _ Message) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.Delay):
		return nil
	}
}

// SendMailFunc matches smtp.SendMail.
type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTP mails the message to the site owner.
type SMTP struct {
	Host string
	Port string
	User string
	Pass string
	To   string

	// Send defaults to smtp.SendMail.
	Send SendMailFunc
}

func (*SMTP) Name() string { return "smtp" }

func (s *SMTP) Transmit(ctx context.Context, m Message) error {
	if s.User == "" || s.Pass == "" {
		return fmt.Errorf("SMTP credentials not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	send := s.Send
	if send == nil {
		send = smtp.SendMail
	}

	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	if err := send(s.Host+":"+s.Port, auth, s.User, []string{s.To}, s.compose(m)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (s *SMTP) compose(m Message) []byte {
	org := m.Comp
	if org == "" {
		org = "-"
	}
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Organisation: %s
Message:
%s

---
Sent from your portfolio contact form
`, m.Name, org, m.Body)

	var b strings.Builder
	b.WriteString("To: " + s.To + "\r\n")
	b.WriteString("Subject: Portfolio Contact: " + headerSafe(m.Name) + "\r\n")
	b.WriteString("From: " + s.User + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(body + "\r\n")
	return []byte(b.String())
}

// headerSafe strips line breaks so form input cannot inject headers.
func headerSafe(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
