package withdrawalservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Potduo/earnpark/internal/domain"
	"github.com/Potduo/earnpark/internal/limits"
)

func activeAccount(invested float64, monthsAgo float64, now time.Time) *domain.Account {
	activation := now.Add(-time.Duration(monthsAgo * 30 * 24 * float64(time.Hour)))
	return &domain.Account{
		UserID:          1,
		TotalInvested:   invested,
		PortfolioActive: true,
		ActivationDate:  &activation,
	}
}

func goodProposal() Proposal {
	return Proposal{
		Email:                "user@example.com",
		Currency:             "USDT",
		WalletAddress:        "TQn9Y2khEsLJW1ChVWFMSMeRDow5ANLG7Q",
		ConfirmWalletAddress: "TQn9Y2khEsLJW1ChVWFMSMeRDow5ANLG7Q",
		Amount:               "500",
		Network:              "Tron Network (TRC-20)",
	}
}

func kindsOf(verrs ValidationErrors) []ErrorKind {
	kinds := make([]ErrorKind, len(verrs))
	for i, ve := range verrs {
		kinds[i] = ve.Kind
	}
	return kinds
}

func TestValidateProposal(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		account       *domain.Account
		mutate        func(p *Proposal)
		expectedKinds []ErrorKind
		checkResult   func(t *testing.T, v *validated)
	}{
		{
			name:    "Valid proposal passes",
			account: activeAccount(10000, 6.5, now),
			mutate:  func(p *Proposal) {},
			checkResult: func(t *testing.T, v *validated) {
				assert.Equal(t, 500.0, v.amount)
				assert.Equal(t, "Tron Network (TRC-20)", v.network)
			},
		},
		{
			name:    "Single-network currency auto-selects",
			account: activeAccount(10000, 6.5, now),
			mutate: func(p *Proposal) {
				p.Currency = "BTC"
				p.Network = ""
			},
			checkResult: func(t *testing.T, v *validated) {
				assert.Equal(t, "Bitcoin Network", v.network)
			},
		},
		{
			name:    "Missing email",
			account: activeAccount(10000, 6.5, now),
			mutate: func(p *Proposal) {
				p.Email = ""
			},
			expectedKinds: []ErrorKind{KindInvalidEmail},
		},
		{
			name:    "Email without domain part",
			account: activeAccount(10000, 6.5, now),
			mutate: func(p *Proposal) {
				p.Email = "user@"
			},
			expectedKinds: []ErrorKind{KindInvalidEmail},
		},
		{
			name:    "Missing address also fails confirmation",
			account: activeAccount(10000, 6.5, now),
			mutate: func(p *Proposal) {
				p.WalletAddress = ""
				p.ConfirmWalletAddress = ""
			},
			expectedKinds: []ErrorKind{KindMissingAddress, KindAddressMismatch},
		},
		{
			name:    "Mismatched confirmation address",
			account: activeAccount(10000, 6.5, now),
			mutate: func(p *Proposal) {
				p.ConfirmWalletAddress = "TDifferentAddress"
			},
			expectedKinds: []ErrorKind{KindAddressMismatch},
		},
		{
			name:    "Non-numeric amount",
			account: activeAccount(10000, 6.5, now),
			mutate: func(p *Proposal) {
				p.Amount = "lots"
			},
			expectedKinds: []ErrorKind{KindInvalidAmount},
		},
		{
			name:    "Zero amount",
			account: activeAccount(10000, 6.5, now),
			mutate: func(p *Proposal) {
				p.Amount = "0"
			},
			expectedKinds: []ErrorKind{KindInvalidAmount},
		},
		{
			name:    "Negative amount",
			account: activeAccount(10000, 6.5, now),
			mutate: func(p *Proposal) {
				p.Amount = "-5"
			},
			expectedKinds: []ErrorKind{KindInvalidAmount},
		},
		{
			name:    "Amount at the cap passes",
			account: activeAccount(10000, 6.5, now),
			mutate: func(p *Proposal) {
				p.Amount = "3500"
			},
			checkResult: func(t *testing.T, v *validated) {
				assert.Equal(t, 3500.0, v.amount)
			},
		},
		{
			name:    "Amount just over the cap",
			account: activeAccount(10000, 6.5, now),
			mutate: func(p *Proposal) {
				p.Amount = "3500.01"
			},
			expectedKinds: []ErrorKind{KindAmountExceedsLimit},
		},
		{
			name:    "Not activated yields a single eligibility violation",
			account: &domain.Account{UserID: 1, TotalInvested: 10000},
			mutate:  func(p *Proposal) {},
			expectedKinds: []ErrorKind{
				KindWithdrawalNotEligible,
			},
		},
		{
			name:    "Not eligible suppresses the limit comparison",
			account: &domain.Account{UserID: 1, TotalInvested: 10000},
			mutate: func(p *Proposal) {
				p.Amount = "999999"
			},
			expectedKinds: []ErrorKind{KindWithdrawalNotEligible},
		},
		{
			name:    "Unsupported currency",
			account: activeAccount(10000, 6.5, now),
			mutate: func(p *Proposal) {
				p.Currency = "DOGE"
			},
			expectedKinds: []ErrorKind{KindInvalidNetwork},
		},
		{
			name:    "Wrong network for currency",
			account: activeAccount(10000, 6.5, now),
			mutate: func(p *Proposal) {
				p.Currency = "BTC"
				p.Network = "Solana Network"
			},
			expectedKinds: []ErrorKind{KindInvalidNetwork},
		},
		{
			name:    "Multi-network currency requires explicit choice",
			account: activeAccount(10000, 6.5, now),
			mutate: func(p *Proposal) {
				p.Network = ""
			},
			expectedKinds: []ErrorKind{KindInvalidNetwork},
		},
		{
			name:    "All structural violations reported together",
			account: &domain.Account{UserID: 1, TotalInvested: 10000},
			mutate: func(p *Proposal) {
				p.Email = "not-an-email"
				p.WalletAddress = ""
				p.ConfirmWalletAddress = ""
				p.Amount = "abc"
				p.Currency = "DOGE"
			},
			expectedKinds: []ErrorKind{
				KindInvalidEmail, KindMissingAddress, KindAddressMismatch,
				KindInvalidAmount, KindWithdrawalNotEligible, KindInvalidNetwork,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := goodProposal()
			tt.mutate(&p)

			v, verrs, err := validateProposal(tt.account, p, now)
			assert.NoError(t, err)

			if len(tt.expectedKinds) > 0 {
				assert.Nil(t, v)
				assert.ElementsMatch(t, tt.expectedKinds, kindsOf(verrs))
			} else {
				assert.Empty(t, verrs)
				if assert.NotNil(t, v) && tt.checkResult != nil {
					tt.checkResult(t, v)
				}
			}
		})
	}
}

func TestValidateProposal_ExceedsLimitCarriesCap(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := goodProposal()
	p.Amount = "4000"

	_, verrs, err := validateProposal(activeAccount(10000, 6.5, now), p, now)
	assert.NoError(t, err)
	if assert.Len(t, verrs, 1) {
		assert.Equal(t, KindAmountExceedsLimit, verrs[0].Kind)
		assert.Equal(t, 3500.0, verrs[0].Limit)
	}
}

func TestValidateProposal_CorruptAccountIsHardFault(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	account := activeAccount(-100, 6.5, now)

	v, verrs, err := validateProposal(account, goodProposal(), now)
	assert.ErrorIs(t, err, limits.ErrInvalidAccountState)
	assert.Nil(t, v)
	assert.Nil(t, verrs)
}

func TestNetworksFor(t *testing.T) {
	tests := []struct {
		currency string
		known    bool
		networks []string
	}{
		{currency: "BTC", known: true, networks: []string{"Bitcoin Network"}},
		{currency: "ETH", known: true, networks: []string{"Ethereum Network (ERC-20)"}},
		{currency: "USDT", known: true, networks: []string{"Ethereum Network (ERC-20)", "Tron Network (TRC-20)", "BSC Network (BEP-20)"}},
		{currency: "SOL", known: true, networks: []string{"Solana Network"}},
		{currency: "DOGE", known: false},
	}

	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			networks, known := NetworksFor(tt.currency)
			assert.Equal(t, tt.known, known)
			if tt.known {
				assert.Equal(t, tt.networks, networks)
			}
		})
	}
}
