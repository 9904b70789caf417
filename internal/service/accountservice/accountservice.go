package accountservice

import (
	"context"
	"errors"
	"time"

	"github.com/Potduo/earnpark/internal/domain"
	"github.com/Potduo/earnpark/pkg/metrics"
	"go.uber.org/zap"
)

//go:generate mockgen -source=accountservice.go -destination=accountservice_mock.go -package=accountservice

type AccountRepo interface {
	GetByUserID(ctx context.Context, userID int) (*domain.Account, error)
	Create(ctx context.Context, userID int) (*domain.Account, error)
	Activate(ctx context.Context, userID int, initialInvestment float64, now time.Time) (*domain.Account, error)
}

type TransactionRepo interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	GetByUserID(ctx context.Context, userID int) ([]domain.Transaction, error)
}

// MinDeposit is the smallest accepted deposit or activation amount, in USD
// equivalent.
const MinDeposit = 100.0

var (
	ErrBelowMinimumDeposit = errors.New("amount is below the minimum deposit")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrAccountNotFound     = errors.New("account not found")
)

// DepositAddress is a static receiving address for one currency.
type DepositAddress struct {
	Currency string
	Network  string
	Address  string
}

var depositAddresses = []DepositAddress{
	{Currency: "BTC", Network: "Bitcoin Network", Address: "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh"},
	{Currency: "ETH", Network: "Ethereum Network (ERC-20)", Address: "0x742d35Cc6634C0532925a3b8D4C9db96590b5c8e"},
	{Currency: "USDT", Network: "Tron Network (TRC-20)", Address: "TQn9Y2khEsLJW1ChVWFMSMeRDow5ANLG7Q"},
	{Currency: "SOL", Network: "Solana Network", Address: "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"},
}

type Service struct {
	accountRepo     AccountRepo
	transactionRepo TransactionRepo
	metrics         *metrics.Collector
}

func New(accountRepo AccountRepo, transactionRepo TransactionRepo, collector *metrics.Collector) *Service {
	return &Service{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		metrics:         collector,
	}
}

func (s *Service) CreateAccount(ctx context.Context, userID int) (*domain.Account, error) {
	account, err := s.accountRepo.Create(ctx, userID)
	if err != nil {
		zap.L().Error("failed to create account", zap.Error(err))
		return nil, err
	}
	return account, nil
}

// GetAccount returns the dashboard record, creating a zero-value one if the
// user has none yet.
func (s *Service) GetAccount(ctx context.Context, userID int) (*domain.Account, error) {
	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get account", zap.Error(err))
		return nil, err
	}
	if account == nil {
		return s.CreateAccount(ctx, userID)
	}
	return account, nil
}

// Activate turns on the portfolio and starts the withdrawal tier clock.
// Admin-only; authorization happens at the HTTP layer.
func (s *Service) Activate(ctx context.Context, userID int, initialInvestment float64, now time.Time) (*domain.Account, error) {
	if initialInvestment < MinDeposit {
		return nil, ErrBelowMinimumDeposit
	}

	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	activated, err := s.accountRepo.Activate(ctx, userID, initialInvestment, now)
	if err != nil {
		zap.L().Error("failed to activate account", zap.Error(err), zap.Int("userID", userID))
		return nil, err
	}

	zap.L().Info("portfolio activated",
		zap.Int("userID", userID),
		zap.Float64("initialInvestment", initialInvestment),
	)
	return activated, nil
}

// RecordDeposit stores a pending deposit intent. Funds are credited later by
// an operator; no payment processing happens here.
func (s *Service) RecordDeposit(ctx context.Context, userID int, currency string, amount float64, now time.Time) (*domain.Transaction, error) {
	if !currencySupported(currency) {
		return nil, ErrUnsupportedCurrency
	}
	if amount < MinDeposit {
		return nil, ErrBelowMinimumDeposit
	}

	tx := &domain.Transaction{
		UserID:      userID,
		Type:        domain.TransactionDeposit,
		Amount:      amount,
		Currency:    currency,
		Status:      "pending",
		Description: "Deposit intent",
		Date:        now,
	}
	created, err := s.transactionRepo.Create(ctx, tx)
	if err != nil {
		zap.L().Error("failed to record deposit", zap.Error(err))
		return nil, err
	}

	s.metrics.DepositRecorded()
	return created, nil
}

func (s *Service) GetTransactions(ctx context.Context, userID int) ([]domain.Transaction, error) {
	transactions, err := s.transactionRepo.GetByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	return transactions, nil
}

func (s *Service) DepositAddresses() []DepositAddress {
	return depositAddresses
}

func currencySupported(currency string) bool {
	for _, a := range depositAddresses {
		if a.Currency == currency {
			return true
		}
	}
	return false
}
