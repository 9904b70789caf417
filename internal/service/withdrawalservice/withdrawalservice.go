package withdrawalservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Potduo/earnpark/internal/domain"
	"github.com/Potduo/earnpark/internal/limits"
	"github.com/Potduo/earnpark/internal/pg"
	withdrawalrepo "github.com/Potduo/earnpark/internal/repo/withdrawal-repo"
	"github.com/Potduo/earnpark/pkg/metrics"
	"go.uber.org/zap"
)

//go:generate mockgen -source=withdrawalservice.go -destination=withdrawalservice_mock.go -package=withdrawalservice

type AccountRepo interface {
	GetByUserID(ctx context.Context, userID int) (*domain.Account, error)
}

type WithdrawalRepo interface {
	Create(ctx context.Context, request *domain.WithdrawalRequest) (*domain.WithdrawalRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error)
	GetByUserID(ctx context.Context, userID int) ([]domain.WithdrawalRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, current, next domain.WithdrawalStatus) error
}

type TransactionRepo interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
}

var (
	ErrRequestNotFound = errors.New("withdrawal request not found")
	// ErrDuplicateRequest surfaces a repeated idempotency key; the original
	// submission already went through.
	ErrDuplicateRequest = errors.New("duplicate withdrawal request")
	// ErrStatusConflict means the status changed between our read and the
	// guarded update, so the requested transition no longer applies.
	ErrStatusConflict = errors.New("withdrawal status changed concurrently")
)

type Service struct {
	accountRepo     AccountRepo
	withdrawalRepo  WithdrawalRepo
	transactionRepo TransactionRepo
	txManager       pg.TXManager
	metrics         *metrics.Collector
}

func New(accountRepo AccountRepo, withdrawalRepo WithdrawalRepo, transactionRepo TransactionRepo, txManager pg.TXManager, collector *metrics.Collector) *Service {
	return &Service{
		accountRepo:     accountRepo,
		withdrawalRepo:  withdrawalRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
		metrics:         collector,
	}
}

// GetLimits computes the current withdrawal allowance for the UI. A user
// without an account row is simply not eligible yet.
func (s *Service) GetLimits(ctx context.Context, userID int, now time.Time) (*domain.WithdrawalLimit, error) {
	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get account", zap.Error(err))
		return nil, err
	}
	if account == nil {
		account = &domain.Account{UserID: userID}
	}
	return limits.Compute(account, now)
}

// RequestWithdrawal is the sole entry point for submitting a withdrawal. All
// rule violations come back together as ValidationErrors; on success the
// request is persisted in pending state along with its history row.
func (s *Service) RequestWithdrawal(ctx context.Context, userID int, p Proposal, now time.Time) (*domain.WithdrawalRequest, error) {
	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get account", zap.Error(err))
		return nil, err
	}
	if account == nil {
		account = &domain.Account{UserID: userID}
	}

	v, verrs, err := validateProposal(account, p, now)
	if err != nil {
		zap.L().Error("account state rejected by limit calculator", zap.Error(err), zap.Int("userID", userID))
		return nil, err
	}
	if len(verrs) > 0 {
		s.metrics.WithdrawalRejected()
		return nil, verrs
	}

	request := &domain.WithdrawalRequest{
		ID:             uuid.New(),
		UserID:         userID,
		Email:          p.Email,
		Amount:         v.amount,
		Currency:       p.Currency,
		WalletAddress:  p.WalletAddress,
		Network:        v.network,
		Status:         domain.StatusPending,
		IdempotencyKey: p.IdempotencyKey,
		RequestDate:    now,
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.withdrawalRepo.Create(ctx, request); err != nil {
			return err
		}
		_, err := s.transactionRepo.Create(ctx, &domain.Transaction{
			UserID:      userID,
			Type:        domain.TransactionWithdrawal,
			Amount:      v.amount,
			Currency:    p.Currency,
			Status:      string(domain.StatusPending),
			Description: "Withdrawal request",
			Date:        now,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, withdrawalrepo.ErrDuplicateRequest) {
			return nil, ErrDuplicateRequest
		}
		zap.L().Error("failed to create withdrawal request", zap.Error(err))
		return nil, err
	}

	s.metrics.WithdrawalAccepted(p.Currency)
	zap.L().Info("withdrawal request accepted",
		zap.String("requestID", request.ID.String()),
		zap.Int("userID", userID),
		zap.Float64("amount", v.amount),
		zap.String("currency", p.Currency),
	)
	return request, nil
}

func (s *Service) GetWithdrawals(ctx context.Context, userID int) ([]domain.WithdrawalRequest, error) {
	requests, err := s.withdrawalRepo.GetByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawal requests", zap.Error(err))
		return nil, err
	}
	return requests, nil
}

// AdvanceStatus moves a request along the lifecycle on behalf of the
// fulfillment side. Illegal transitions never reach the store; attempts to
// leave a terminal state are logged loudly since they indicate a
// double-fulfillment bug upstream.
func (s *Service) AdvanceStatus(ctx context.Context, id uuid.UUID, next domain.WithdrawalStatus) (*domain.WithdrawalRequest, error) {
	request, err := s.withdrawalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}

	if err := domain.CheckTransition(request.Status, next); err != nil {
		s.metrics.StatusTransition("rejected")
		if errors.Is(err, domain.ErrTerminalState) {
			zap.L().Error("attempted transition out of terminal state",
				zap.String("requestID", id.String()),
				zap.String("current", string(request.Status)),
				zap.String("next", string(next)),
			)
		}
		return nil, err
	}

	if err := s.withdrawalRepo.UpdateStatus(ctx, id, request.Status, next); err != nil {
		if errors.Is(err, withdrawalrepo.ErrStatusChanged) {
			s.metrics.StatusTransition("rejected")
			zap.L().Warn("withdrawal status changed under a concurrent update",
				zap.String("requestID", id.String()),
				zap.String("observed", string(request.Status)),
				zap.String("next", string(next)),
			)
			return nil, ErrStatusConflict
		}
		return nil, err
	}

	s.metrics.StatusTransition("accepted")
	request.Status = next
	return request, nil
}
