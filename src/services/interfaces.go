package services

import (
	"time"

	"github.com/username/gainledger/src/models"
)

// SummaryService is the boundary between the HTTP layer and the gain/loss
// engine: it loads a user's transactions, invokes the computation and caches
// the result per (user, period).
type SummaryService interface {
	GetTaxSummary(userID int64, periodStart, periodEnd time.Time) (*models.TaxSummary, error)
	GetHoldings(userID int64) ([]models.Lot, error)
	// InvalidateUser drops every cached report for a user; called after any
	// write to their transaction history.
	InvalidateUser(userID int64)
}

// EmailService delivers account emails. Implementations: Mailgun, plain
// SMTP, and a mock that only logs (the default for local development).
type EmailService interface {
	SendVerificationEmail(toEmail, username, token string) error
	SendPasswordResetEmail(toEmail, username, token string) error
}
