package services

import (
	"errors"
	"fmt"
	"net/smtp"
	"os"
	"strconv"
	"strings"
)

// ErrMailerNotConfigured is returned when SMTP credentials are absent.
// Outside production callers tolerate it and log the link instead.
var ErrMailerNotConfigured = errors.New("mailer is not configured")

// EmailService sends transactional email over SMTP.
type EmailService struct {
	host        string
	port        int
	username    string
	password    string
	from        string
	frontendURL string
}

// NewEmailService creates a new email service from the environment
func NewEmailService() *EmailService {
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}
	return &EmailService{
		host:        getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
		port:        port,
		username:    os.Getenv("SMTP_USERNAME"),
		password:    os.Getenv("SMTP_PASSWORD"),
		from:        getEnvOrDefault("SMTP_FROM", "noreply@university-finder.app"),
		frontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// FrontendURL returns the base URL reset links are built against.
func (e *EmailService) FrontendURL() string {
	return e.frontendURL
}

// IsConfigured checks if SMTP is properly configured
func (e *EmailService) IsConfigured() bool {
	return e.username != "" && e.password != ""
}

// SendPasswordResetEmail sends a password reset link to the user.
func (e *EmailService) SendPasswordResetEmail(toEmail, resetLink string) error {
	if !e.IsConfigured() {
		return ErrMailerNotConfigured
	}

	subject := "Reset your password"
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; line-height: 1.5;">
  <h2>Password Reset Request</h2>
  <p>You requested a password reset for your account.</p>
  <p>Click the link below to set a new password:</p>
  <p><a href="%s" target="_blank" rel="noopener noreferrer">%s</a></p>
  <p>This link will expire in 1 hour.</p>
  <p>If you did not request this, you can ignore this email.</p>
</div>`, resetLink, resetLink)

	return e.sendEmail(toEmail, subject, body)
}

func (e *EmailService) sendEmail(to, subject, htmlBody string) error {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", e.from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", e.host, e.port)
	auth := smtp.PlainAuth("", e.username, e.password, e.host)

	if err := smtp.SendMail(addr, auth, e.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
