package accountservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/Potduo/earnpark/internal/domain"
	"github.com/Potduo/earnpark/pkg/metrics"
)

func NewMockService(t *testing.T) (*Service, *MockAccountRepo, *MockTransactionRepo) {
	ctrl := gomock.NewController(t)
	accountRepo := NewMockAccountRepo(ctrl)
	transactionRepo := NewMockTransactionRepo(ctrl)
	service := New(accountRepo, transactionRepo, metrics.New())
	defer ctrl.Finish()
	return service, accountRepo, transactionRepo
}

func TestGetAccount(t *testing.T) {
	tests := []struct {
		name          string
		prepareMock   func(accountRepo *MockAccountRepo)
		expected      *domain.Account
		expectedError error
	}{
		{
			name: "Existing account returned as-is",
			prepareMock: func(accountRepo *MockAccountRepo) {
				accountRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(&domain.Account{
					UserID:        1,
					TotalInvested: 10000,
				}, nil)
			},
			expected: &domain.Account{UserID: 1, TotalInvested: 10000},
		},
		{
			name: "Missing account is created on first read",
			prepareMock: func(accountRepo *MockAccountRepo) {
				accountRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(nil, nil)
				accountRepo.EXPECT().Create(gomock.Any(), 1).Return(&domain.Account{UserID: 1}, nil)
			},
			expected: &domain.Account{UserID: 1},
		},
		{
			name: "Repository error",
			prepareMock: func(accountRepo *MockAccountRepo) {
				accountRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, accountRepo, _ := NewMockService(t)
			tt.prepareMock(accountRepo)

			account, err := service.GetAccount(context.Background(), 1)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Nil(t, account)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, account)
			}
		})
	}
}

func TestActivate(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		investment    float64
		prepareMock   func(accountRepo *MockAccountRepo)
		expectedError error
	}{
		{
			name:       "Activates with the minimum investment",
			investment: 100,
			prepareMock: func(accountRepo *MockAccountRepo) {
				accountRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(&domain.Account{UserID: 1}, nil)
				accountRepo.EXPECT().Activate(gomock.Any(), 1, 100.0, now).Return(&domain.Account{
					UserID:          1,
					TotalInvested:   100,
					PortfolioActive: true,
					ActivationDate:  &now,
				}, nil)
			},
		},
		{
			name:          "Rejects investment below the minimum",
			investment:    99.99,
			prepareMock:   func(accountRepo *MockAccountRepo) {},
			expectedError: ErrBelowMinimumDeposit,
		},
		{
			name:       "Unknown account",
			investment: 500,
			prepareMock: func(accountRepo *MockAccountRepo) {
				accountRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(nil, nil)
			},
			expectedError: ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, accountRepo, _ := NewMockService(t)
			tt.prepareMock(accountRepo)

			account, err := service.Activate(context.Background(), 1, tt.investment, now)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, account)
			} else {
				assert.NoError(t, err)
				assert.True(t, account.PortfolioActive)
				assert.Equal(t, tt.investment, account.TotalInvested)
			}
		})
	}
}

func TestRecordDeposit(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		currency      string
		amount        float64
		prepareMock   func(transactionRepo *MockTransactionRepo)
		expectedError error
	}{
		{
			name:     "Records pending deposit intent",
			currency: "BTC",
			amount:   500,
			prepareMock: func(transactionRepo *MockTransactionRepo) {
				transactionRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
						assert.Equal(t, domain.TransactionDeposit, tx.Type)
						assert.Equal(t, "pending", tx.Status)
						return tx, nil
					})
			},
		},
		{
			name:          "Rejects unsupported currency",
			currency:      "DOGE",
			amount:        500,
			prepareMock:   func(transactionRepo *MockTransactionRepo) {},
			expectedError: ErrUnsupportedCurrency,
		},
		{
			name:          "Rejects amount below the minimum",
			currency:      "BTC",
			amount:        50,
			prepareMock:   func(transactionRepo *MockTransactionRepo) {},
			expectedError: ErrBelowMinimumDeposit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, transactionRepo := NewMockService(t)
			tt.prepareMock(transactionRepo)

			tx, err := service.RecordDeposit(context.Background(), 1, tt.currency, tt.amount, now)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, tx)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.amount, tx.Amount)
			}
		})
	}
}

func TestGetTransactions(t *testing.T) {
	service, _, transactionRepo := NewMockService(t)

	expected := []domain.Transaction{{ID: 1, UserID: 1, Type: domain.TransactionDeposit}}
	transactionRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(expected, nil)

	result, err := service.GetTransactions(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestDepositAddresses(t *testing.T) {
	service, _, _ := NewMockService(t)

	addresses := service.DepositAddresses()
	assert.Len(t, addresses, 4)

	currencies := make([]string, 0, len(addresses))
	for _, a := range addresses {
		assert.NotEmpty(t, a.Address)
		assert.NotEmpty(t, a.Network)
		currencies = append(currencies, a.Currency)
	}
	assert.ElementsMatch(t, []string{"BTC", "ETH", "USDT", "SOL"}, currencies)
}
