package accountrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Potduo/earnpark/internal/domain"
	"github.com/Potduo/earnpark/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) GetByUserID(ctx context.Context, userID int) (*domain.Account, error) {
	query := `
        SELECT id, user_id, total_invested, current_portfolio_value,
               daily_profit_percentage, portfolio_active, activation_date, last_update
        FROM accounts
        WHERE user_id = $1
    `
	row := r.db.QueryRow(ctx, query, userID)
	var account domain.Account
	err := row.Scan(
		&account.ID, &account.UserID, &account.TotalInvested, &account.CurrentPortfolioValue,
		&account.DailyProfitPercentage, &account.PortfolioActive, &account.ActivationDate, &account.LastUpdate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get account", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

func (r *Repository) Create(ctx context.Context, userID int) (*domain.Account, error) {
	query := `
        INSERT INTO accounts (user_id)
        VALUES ($1)
        RETURNING id, user_id, total_invested, current_portfolio_value,
                  daily_profit_percentage, portfolio_active, activation_date, last_update
    `
	row := r.db.QueryRow(ctx, query, userID)
	var account domain.Account
	err := row.Scan(
		&account.ID, &account.UserID, &account.TotalInvested, &account.CurrentPortfolioValue,
		&account.DailyProfitPercentage, &account.PortfolioActive, &account.ActivationDate, &account.LastUpdate,
	)
	if err != nil {
		zap.L().Error("failed to create account", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

// Activate marks the portfolio active and starts the tier clock. The
// activation date is only set once; re-activation keeps the original date.
func (r *Repository) Activate(ctx context.Context, userID int, initialInvestment float64, now time.Time) (*domain.Account, error) {
	query := `
		UPDATE accounts
		SET total_invested = $1,
		    current_portfolio_value = $1,
		    portfolio_active = TRUE,
		    activation_date = COALESCE(activation_date, $2),
		    last_update = $2
		WHERE user_id = $3
		RETURNING id, user_id, total_invested, current_portfolio_value,
		          daily_profit_percentage, portfolio_active, activation_date, last_update
	`
	var account domain.Account
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query, initialInvestment, now, userID)
		err := row.Scan(
			&account.ID, &account.UserID, &account.TotalInvested, &account.CurrentPortfolioValue,
			&account.DailyProfitPercentage, &account.PortfolioActive, &account.ActivationDate, &account.LastUpdate,
		)
		if err != nil {
			zap.L().Error("failed to activate account", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}
