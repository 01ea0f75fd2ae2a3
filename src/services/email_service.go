package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/username/gainledger/src/config"
	"github.com/username/gainledger/src/logger"
)

func NewEmailService() EmailService {
	if config.Cfg == nil {
		slog.Error("Configuration (config.Cfg) is nil. Email service will default to mock.")
		return &MockEmailService{}
	}

	provider := strings.ToLower(config.Cfg.EmailServiceProvider)
	logger.L.Info("Initializing email service", "provider", provider)

	switch provider {
	case "mailgun":
		if config.Cfg.MailgunDomain == "" || config.Cfg.MailgunPrivateAPIKey == "" || config.Cfg.SenderEmail == "" {
			logger.L.Warn("Mailgun configuration incomplete. Falling back to MockEmailService.")
			return newMockEmailService()
		}
		mg := mailgun.NewMailgun(config.Cfg.MailgunDomain, config.Cfg.MailgunPrivateAPIKey)
		logger.L.Info("Mailgun client initialized", "domain", config.Cfg.MailgunDomain)
		return &MailgunEmailService{
			mg:                       mg,
			senderEmail:              config.Cfg.SenderEmail,
			senderName:               config.Cfg.SenderName,
			verificationEmailBaseURL: config.Cfg.VerificationEmailBaseURL,
			passwordResetBaseURL:     config.Cfg.PasswordResetBaseURL,
		}
	case "smtp":
		if config.Cfg.SMTPServer == "" || config.Cfg.SMTPUser == "" || config.Cfg.SMTPPassword == "" || config.Cfg.SenderEmail == "" {
			logger.L.Warn("SMTP configuration incomplete. Falling back to MockEmailService.")
			return newMockEmailService()
		}
		return &SMTPEmailService{
			server:                   config.Cfg.SMTPServer,
			port:                     config.Cfg.SMTPPort,
			user:                     config.Cfg.SMTPUser,
			password:                 config.Cfg.SMTPPassword,
			senderEmail:              config.Cfg.SenderEmail,
			verificationEmailBaseURL: config.Cfg.VerificationEmailBaseURL,
			passwordResetBaseURL:     config.Cfg.PasswordResetBaseURL,
		}
	default:
		logger.L.Info("Defaulting to MockEmailService.")
		return newMockEmailService()
	}
}

type MailgunEmailService struct {
	mg                       *mailgun.MailgunImpl
	senderEmail              string
	senderName               string
	verificationEmailBaseURL string
	passwordResetBaseURL     string
}

func (s *MailgunEmailService) send(toEmail, subject, body string) error {
	sender := fmt.Sprintf("%s <%s>", s.senderName, s.senderEmail)
	message := mailgun.NewMessage(sender, subject, body, toEmail)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, id, err := s.mg.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("sending email via mailgun: %w", err)
	}
	logger.L.Info("Email sent via Mailgun", "to", toEmail, "subject", subject, "messageID", id)
	return nil
}

func (s *MailgunEmailService) SendVerificationEmail(toEmail, username, token string) error {
	link := fmt.Sprintf("%s?token=%s", s.verificationEmailBaseURL, token)
	body := fmt.Sprintf("Hi %s,\n\nPlease verify your GainLedger account by clicking this link:\n%s\n\nThe link expires in 24 hours.", username, link)
	return s.send(toEmail, "Verify your GainLedger account", body)
}

func (s *MailgunEmailService) SendPasswordResetEmail(toEmail, username, token string) error {
	link := fmt.Sprintf("%s?token=%s", s.passwordResetBaseURL, token)
	body := fmt.Sprintf("Hi %s,\n\nA password reset was requested for your GainLedger account. Reset it here:\n%s\n\nIf you did not request this, ignore this email.", username, link)
	return s.send(toEmail, "Reset your GainLedger password", body)
}

type SMTPEmailService struct {
	server                   string
	port                     int
	user                     string
	password                 string
	senderEmail              string
	verificationEmailBaseURL string
	passwordResetBaseURL     string
}

func (s *SMTPEmailService) send(toEmail, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", s.senderEmail, toEmail, subject, body)
	addr := fmt.Sprintf("%s:%d", s.server, s.port)
	auth := smtp.PlainAuth("", s.user, s.password, s.server)
	if err := smtp.SendMail(addr, auth, s.senderEmail, []string{toEmail}, []byte(msg)); err != nil {
		return fmt.Errorf("sending email via smtp: %w", err)
	}
	logger.L.Info("Email sent via SMTP", "to", toEmail, "subject", subject)
	return nil
}

func (s *SMTPEmailService) SendVerificationEmail(toEmail, username, token string) error {
	link := fmt.Sprintf("%s?token=%s", s.verificationEmailBaseURL, token)
	body := fmt.Sprintf("Hi %s, please verify your GainLedger account: %s", username, link)
	return s.send(toEmail, "Verify your GainLedger account", body)
}

func (s *SMTPEmailService) SendPasswordResetEmail(toEmail, username, token string) error {
	link := fmt.Sprintf("%s?token=%s", s.passwordResetBaseURL, token)
	body := fmt.Sprintf("Hi %s, reset your GainLedger password: %s", username, link)
	return s.send(toEmail, "Reset your GainLedger password", body)
}

// MockEmailService logs the would-be email instead of sending it.
type MockEmailService struct {
	verificationEmailBaseURL string
	passwordResetBaseURL     string
}

func newMockEmailService() *MockEmailService {
	return &MockEmailService{
		verificationEmailBaseURL: config.Cfg.VerificationEmailBaseURL,
		passwordResetBaseURL:     config.Cfg.PasswordResetBaseURL,
	}
}

func (s *MockEmailService) SendVerificationEmail(toEmail, username, token string) error {
	logger.L.Info("MOCK verification email",
		"to", toEmail, "username", username,
		"link", fmt.Sprintf("%s?token=%s", s.verificationEmailBaseURL, token))
	return nil
}

func (s *MockEmailService) SendPasswordResetEmail(toEmail, username, token string) error {
	logger.L.Info("MOCK password reset email",
		"to", toEmail, "username", username,
		"link", fmt.Sprintf("%s?token=%s", s.passwordResetBaseURL, token))
	return nil
}
