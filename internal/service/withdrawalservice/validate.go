package withdrawalservice

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Potduo/earnpark/internal/domain"
	"github.com/Potduo/earnpark/internal/limits"
)

type ErrorKind string

const (
	KindInvalidEmail          ErrorKind = "InvalidEmail"
	KindMissingAddress        ErrorKind = "MissingAddress"
	KindAddressMismatch       ErrorKind = "AddressMismatch"
	KindInvalidAmount         ErrorKind = "InvalidAmount"
	KindInvalidNetwork        ErrorKind = "InvalidNetwork"
	KindWithdrawalNotEligible ErrorKind = "WithdrawalNotEligible"
	KindAmountExceedsLimit    ErrorKind = "AmountExceedsLimit"
)

type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Message string
	// Limit carries the current cap for AmountExceedsLimit.
	Limit float64
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ValidationErrors is the full batch of violations for one proposal; the
// validator never stops at the first failure.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// Proposal is a raw withdrawal submission. Amount is kept textual so a
// malformed value becomes an InvalidAmount violation, not a decode error.
type Proposal struct {
	Email                string
	Currency             string
	WalletAddress        string
	ConfirmWalletAddress string
	Amount               string
	Network              string
	IdempotencyKey       string
}

// validated is the outcome of a successful validation: the parsed amount and
// the (possibly auto-selected) network.
type validated struct {
	amount  float64
	network string
}

// validateProposal checks a proposal against the account's current limit and
// the structural rules, collecting every violation. A hard
// limits.ErrInvalidAccountState fault is returned as err.
func validateProposal(account *domain.Account, p Proposal, now time.Time) (*validated, ValidationErrors, error) {
	var verrs ValidationErrors

	if !validEmail(p.Email) {
		verrs = append(verrs, ValidationError{
			Kind:    KindInvalidEmail,
			Field:   "email",
			Message: "a valid contact email address is required",
		})
	}

	if p.WalletAddress == "" {
		verrs = append(verrs, ValidationError{
			Kind:    KindMissingAddress,
			Field:   "wallet_address",
			Message: "wallet address is required",
		})
	}

	if p.ConfirmWalletAddress == "" || p.ConfirmWalletAddress != p.WalletAddress {
		verrs = append(verrs, ValidationError{
			Kind:    KindAddressMismatch,
			Field:   "confirm_wallet_address",
			Message: "wallet addresses do not match",
		})
	}

	amount, err := strconv.ParseFloat(p.Amount, 64)
	amountValid := err == nil && amount > 0 && !math.IsInf(amount, 0) && !math.IsNaN(amount)
	if !amountValid {
		verrs = append(verrs, ValidationError{
			Kind:    KindInvalidAmount,
			Field:   "amount",
			Message: "amount must be a positive number",
		})
	}

	limit, err := limits.Compute(account, now)
	if err != nil {
		return nil, nil, err
	}
	switch {
	case !limit.CanWithdraw:
		verrs = append(verrs, ValidationError{
			Kind:    KindWithdrawalNotEligible,
			Message: limit.Reason,
		})
	case amountValid && amount > limit.MaxAmount:
		verrs = append(verrs, ValidationError{
			Kind:    KindAmountExceedsLimit,
			Field:   "amount",
			Message: fmt.Sprintf("maximum withdrawal amount is $%.2f", limit.MaxAmount),
			Limit:   limit.MaxAmount,
		})
	}

	network := p.Network
	networks, known := NetworksFor(p.Currency)
	switch {
	case !known:
		verrs = append(verrs, ValidationError{
			Kind:    KindInvalidNetwork,
			Field:   "currency",
			Message: fmt.Sprintf("unsupported currency %q", p.Currency),
		})
	case network == "" && len(networks) == 1:
		network = networks[0]
	case !containsNetwork(networks, network):
		verrs = append(verrs, ValidationError{
			Kind:    KindInvalidNetwork,
			Field:   "network",
			Message: fmt.Sprintf("network must be one of %s", strings.Join(networks, ", ")),
		})
	}

	if len(verrs) > 0 {
		return nil, verrs, nil
	}
	return &validated{amount: amount, network: network}, nil, nil
}

// validEmail applies the minimal address-syntax rule: a single @ with
// non-empty local and domain parts.
func validEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && strings.Count(s, "@") == 1
}

func containsNetwork(networks []string, network string) bool {
	for _, n := range networks {
		if n == network {
			return true
		}
	}
	return false
}
