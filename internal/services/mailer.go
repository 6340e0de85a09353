package services

import (
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// Mailer sends transactional email through Resend. Failures are logged and
// returned; nothing retries, the caller decides whether the request dies.
type Mailer struct {
	client *resend.Client
	from   string
}

func NewMailer(apiKey string) *Mailer {
	return &Mailer{
		client: resend.NewClient(apiKey),
		from:   "ChefIt <onboarding@resend.dev>",
	}
}

func (m *Mailer) send(to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	if _, err := m.client.Emails.Send(params); err != nil {
		log.Printf("Resend send error: %v", err)
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

func (m *Mailer) SendVerificationEmail(to, code string) error {
	html := fmt.Sprintf(`<p>Welcome to ChefIt!</p>
<p>Your email verification code is: <strong>%s</strong></p>
<p>The code expires in 24 hours.</p>`, code)
	return m.send(to, "Email Address Verification", html)
}

func (m *Mailer) SendWelcomeEmail(to string) error {
	html := `<p>Your email address has been verified.</p>
<p>You can now log in and start planning your meals.</p>`
	return m.send(to, "Welcome to ChefIt", html)
}

func (m *Mailer) SendPasswordResetEmail(to, resetURL string) error {
	html := fmt.Sprintf(`<p>We received a request to reset your password.</p>
<p><a href="%s">Reset your password</a></p>
<p>The link expires in 1 hour. If you didn't ask for this, ignore this email.</p>`, resetURL)
	return m.send(to, "Password Reset", html)
}

func (m *Mailer) SendPasswordResetSuccessEmail(to string) error {
	html := `<p>Your password has been reset successfully.</p>`
	return m.send(to, "Password Reset Successful", html)
}
