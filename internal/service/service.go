package service

import (
	"github.com/Potduo/earnpark/internal/handlers/account"
	"github.com/Potduo/earnpark/internal/handlers/auth"
	"github.com/Potduo/earnpark/internal/handlers/withdrawal"

	pkgauth "github.com/Potduo/earnpark/pkg/auth"
	"github.com/Potduo/earnpark/pkg/metrics"

	"github.com/Potduo/earnpark/internal/pg"
	"github.com/Potduo/earnpark/internal/repo"
	"github.com/Potduo/earnpark/internal/service/accountservice"
	"github.com/Potduo/earnpark/internal/service/authservice"
	"github.com/Potduo/earnpark/internal/service/withdrawalservice"
)

type Services struct {
	AuthService       auth.Service
	AccountService    account.Service
	WithdrawalService withdrawal.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, collector *metrics.Collector) *Services {
	accountService := accountservice.New(repo.AccountRepo, repo.TransactionRepo, collector)
	withdrawalService := withdrawalservice.New(repo.AccountRepo, repo.WithdrawalRepo, repo.TransactionRepo, txManager, collector)
	authService := authservice.New(repo.UserRepo, accountService, &pkgauth.HashService{}, &pkgauth.JWTService{})

	return &Services{
		AuthService:       authService,
		AccountService:    accountService,
		WithdrawalService: withdrawalService,
	}
}
