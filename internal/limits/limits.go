// Package limits computes the time-tiered withdrawal allowance for an
// account. All functions are pure: the current time is always passed in, and
// nothing here touches storage.
package limits

import (
	"errors"
	"math"
	"time"

	"github.com/Potduo/earnpark/internal/domain"
)

// A month is fixed at 30 days so elapsed-time arithmetic is deterministic
// and free of calendar ambiguity.
const monthDuration = 30 * 24 * time.Hour

const (
	reasonNotActivated       = "Account not activated"
	reasonProgressiveRelease = "Progressive release schedule: invested capital unlocks in stages during the first 12 months"
)

// ErrInvalidAccountState signals corrupt upstream data (negative or
// non-finite invested total). It is a hard fault, not an eligibility result.
var ErrInvalidAccountState = errors.New("invalid account state")

type tier struct {
	fromMonths float64
	percentage int
}

// Ordered descending; lookup takes the first tier whose lower bound the
// elapsed months has reached, giving half-open intervals [from, next).
var tiers = []tier{
	{fromMonths: 12, percentage: 100},
	{fromMonths: 9, percentage: 50},
	{fromMonths: 6, percentage: 35},
	{fromMonths: 3, percentage: 20},
	{fromMonths: 0, percentage: 10},
}

// Compute derives the current withdrawal limit for an account. An inactive
// or never-activated account yields CanWithdraw=false rather than an error;
// only malformed data fails.
func Compute(account *domain.Account, now time.Time) (*domain.WithdrawalLimit, error) {
	if math.IsNaN(account.TotalInvested) || math.IsInf(account.TotalInvested, 0) || account.TotalInvested < 0 {
		return nil, ErrInvalidAccountState
	}

	if !account.PortfolioActive || account.ActivationDate == nil {
		return &domain.WithdrawalLimit{
			CanWithdraw: false,
			MaxAmount:   0,
			Reason:      reasonNotActivated,
		}, nil
	}

	// Boundary comparison uses the real-valued elapsed months: exactly
	// 3.0 months lands in the 20% tier.
	monthsElapsed := float64(now.Sub(*account.ActivationDate)) / float64(monthDuration)
	if monthsElapsed < 0 {
		monthsElapsed = 0
	}

	percentage := tiers[len(tiers)-1].percentage
	for _, t := range tiers {
		if monthsElapsed >= t.fromMonths {
			percentage = t.percentage
			break
		}
	}

	limit := &domain.WithdrawalLimit{
		CanWithdraw:    true,
		TierPercentage: percentage,
		MaxAmount:      account.TotalInvested * float64(percentage) / 100,
		MonthsActive:   int(math.Floor(monthsElapsed)),
	}
	if percentage < 100 {
		limit.Reason = reasonProgressiveRelease
	}
	return limit, nil
}
