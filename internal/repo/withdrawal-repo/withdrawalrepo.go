package withdrawalrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Potduo/earnpark/internal/domain"
	"github.com/Potduo/earnpark/internal/pg"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateRequest is returned when a request with the same idempotency
	// key already exists for the user.
	ErrDuplicateRequest = errors.New("duplicate withdrawal request")
	// ErrStatusChanged is returned when the stored status no longer matches
	// the one the caller observed, meaning another writer got there first.
	ErrStatusChanged = errors.New("withdrawal status changed concurrently")
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, request *domain.WithdrawalRequest) (*domain.WithdrawalRequest, error) {
	query := `
		INSERT INTO withdrawal_requests (id, user_id, email, amount, currency, wallet_address, network, status, idempotency_key, request_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		request.ID, request.UserID, request.Email, request.Amount, request.Currency,
		request.WalletAddress, request.Network, request.Status, request.IdempotencyKey, request.RequestDate,
	).Scan(&request.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateRequest
		}
		zap.L().Error("can't save withdrawal request", zap.Error(err))
		return nil, err
	}
	return request, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error) {
	query := `
        SELECT id, user_id, email, amount, currency, wallet_address, network, status, request_date
        FROM withdrawal_requests
        WHERE id = $1
    `
	var request domain.WithdrawalRequest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&request.ID, &request.UserID, &request.Email, &request.Amount, &request.Currency,
		&request.WalletAddress, &request.Network, &request.Status, &request.RequestDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to fetch withdrawal request", zap.Error(err))
		return nil, err
	}
	return &request, nil
}

func (r *Repository) GetByUserID(ctx context.Context, userID int) ([]domain.WithdrawalRequest, error) {
	query := `
        SELECT id, user_id, email, amount, currency, wallet_address, network, status, request_date
        FROM withdrawal_requests
        WHERE user_id = $1
        ORDER BY request_date DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawal requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var requests []domain.WithdrawalRequest
	for rows.Next() {
		var wr domain.WithdrawalRequest
		err := rows.Scan(
			&wr.ID, &wr.UserID, &wr.Email, &wr.Amount, &wr.Currency,
			&wr.WalletAddress, &wr.Network, &wr.Status, &wr.RequestDate,
		)
		if err != nil {
			zap.L().Error("failed to scan withdrawal request row", zap.Error(err))
			return nil, err
		}
		requests = append(requests, wr)
	}

	return requests, nil
}

// UpdateStatus moves a request from current to next. The update is guarded by
// the status the caller observed, so a row rewritten by a concurrent caller is
// never overwritten blindly.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, current, next domain.WithdrawalStatus) error {
	query := `
		UPDATE withdrawal_requests
		SET status = $1
		WHERE id = $2 AND status = $3
	`
	tag, err := r.db.Exec(ctx, query, next, id, current)
	if err != nil {
		zap.L().Error("failed to update withdrawal status", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStatusChanged
	}
	return nil
}
