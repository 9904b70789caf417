package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           int       `db:"id"`
	Email        string    `db:"email"`
	FullName     string    `db:"full_name"`
	PasswordHash string    `db:"password_hash"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
}

// Account is the per-user dashboard record. The core never mutates
// TotalInvested outside of activation; ActivationDate stays nil until an
// administrator activates the portfolio.
type Account struct {
	ID                    int        `db:"id"`
	UserID                int        `db:"user_id"`
	TotalInvested         float64    `db:"total_invested"`
	CurrentPortfolioValue float64    `db:"current_portfolio_value"`
	DailyProfitPercentage float64    `db:"daily_profit_percentage"`
	PortfolioActive       bool       `db:"portfolio_active"`
	ActivationDate        *time.Time `db:"activation_date"`
	LastUpdate            time.Time  `db:"last_update"`
}

// WithdrawalLimit is derived from an Account at a point in time and never
// persisted. Reason is informational while CanWithdraw is true and the tier
// is below 100; it is the ineligibility cause otherwise.
type WithdrawalLimit struct {
	CanWithdraw    bool
	TierPercentage int
	MaxAmount      float64
	MonthsActive   int
	Reason         string
}

type WithdrawalRequest struct {
	ID             uuid.UUID        `db:"id"`
	UserID         int              `db:"user_id"`
	Email          string           `db:"email"`
	Amount         float64          `db:"amount"`
	Currency       string           `db:"currency"`
	WalletAddress  string           `db:"wallet_address"`
	Network        string           `db:"network"`
	Status         WithdrawalStatus `db:"status"`
	IdempotencyKey string           `db:"idempotency_key"`
	RequestDate    time.Time        `db:"request_date"`
}

type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
)

type Transaction struct {
	ID          int             `db:"id"`
	UserID      int             `db:"user_id"`
	Type        TransactionType `db:"type"`
	Amount      float64         `db:"amount"`
	Currency    string          `db:"currency"`
	Status      string          `db:"status"`
	Description string          `db:"description"`
	Date        time.Time       `db:"date"`
}
