package mailer

import (
	"context"
	"fmt"
	"time"

	mail "gopkg.in/mail.v2"

	"github.com/senkudev/otaku_shop/internal/logging"
)

type Mailer struct {
	host        string
	port        int
	username    string
	password    string
	from        string
	frontendURL string
}

func New(host string, port int, username, password, from, frontendURL string) *Mailer {
	return &Mailer{
		host:        host,
		port:        port,
		username:    username,
		password:    password,
		from:        from,
		frontendURL: frontendURL,
	}
}

func (m *Mailer) SendVerificationEmail(ctx context.Context, to, firstName, token string) {
	if m == nil {
		return
	}
	link := fmt.Sprintf("%s/verify-email?token=%s", m.frontendURL, token)
	subject := "Verify your email"
	body := fmt.Sprintf("Hi %s,\n\nPlease verify your email by opening the link below:\n%s\n\nThe link expires in 24 hours.", firstName, link)
	m.sendAsync(ctx, to, subject, body)
}

func (m *Mailer) SendPasswordResetEmail(ctx context.Context, to, firstName, token string) {
	if m == nil {
		return
	}
	link := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token)
	subject := "Reset your password"
	body := fmt.Sprintf("Hi %s,\n\nA password reset was requested for your account. Open the link below to choose a new password:\n%s\n\nThe link expires in 1 hour. If you did not request this, ignore this email.", firstName, link)
	m.sendAsync(ctx, to, subject, body)
}

// sendAsync is fire-and-forget: delivery failures are logged, never surfaced
// to the request that triggered the email. Nil receiver (no SMTP configured)
// is a no-op.
func (m *Mailer) sendAsync(ctx context.Context, to, subject, body string) {
	if m == nil || m.host == "" {
		return
	}
	l := logging.FromContext(ctx)
	go func() {
		if err := m.send(to, subject, body); err != nil {
			l.Error("mail_send_failed", "to", to, "subject", subject, "error", err)
		}
	}()
}

func (m *Mailer) send(to, subject, body string) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := mail.NewDialer(m.host, m.port, m.username, m.password)
	d.Timeout = 20 * time.Second

	return d.DialAndSend(msg)
}
