package services

import (
	"fmt"
	"log"

	"formhub/config"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends transactional mail. The SMTP implementation is swapped for a
// logging no-op when no relay is configured, so local runs work without one.
type Mailer interface {
	Send(to, subject, html string) error
}

type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewMailer(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" || cfg.SMTPFrom == "" {
		log.Println("SMTP not configured, outgoing mail will be logged and dropped")
		return &noopMailer{}
	}
	return &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.SMTPFrom,
	}
}

func (s *SMTPMailer) Send(to, subject, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

type noopMailer struct{}

func (n *noopMailer) Send(to, subject, _ string) error {
	log.Printf("mail dropped (no SMTP): to=%s subject=%q", to, subject)
	return nil
}

func verificationEmailBody(link string) string {
	return "<p>Hello,</p>" +
		"<p>Thanks for signing up. Click the link below to verify your account:</p>" +
		"<a href=\"" + link + "\">Verify account</a>" +
		"<p>If you did not sign up, you can ignore this email.</p>"
}

func verifiedEmailBody() string {
	return "<p>Hello,</p>" +
		"<p>Your email address has been verified successfully.</p>" +
		"<p>You can now create and publish forms with your account.</p>" +
		"<p>Thanks for joining us!</p>"
}
