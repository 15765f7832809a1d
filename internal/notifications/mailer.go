package notifications

import (
	"fmt"

	"github.com/go-mail/mail/v2"
)

// Mailer sends the queued transactional emails over SMTP.
type Mailer struct {
	dialer *mail.Dialer
	sender string
}

// NewMailer creates a new Mailer.
func NewMailer(host string, port int, username, password, sender string) *Mailer {
	return &Mailer{
		dialer: mail.NewDialer(host, port, username, password),
		sender: sender,
	}
}

// Send delivers the email for one job. Unknown job kinds are an error so the
// consumer can decide what to do with the message.
func (m *Mailer) Send(job EmailJob) error {
	var subject, body string
	switch job.Kind {
	case KindWelcome:
		subject = "Thanks for joining us"
		body = fmt.Sprintf("Welcome to the app, %s. Let me know how you get along with the app.", job.Name)
	case KindCancellation:
		subject = "Sorry to see you go"
		body = fmt.Sprintf("Good bye, %s.", job.Name)
	default:
		return fmt.Errorf("unknown email job kind %q", job.Kind)
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", job.Email)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send %s email to %s: %w", job.Kind, job.Email, err)
	}
	return nil
}
