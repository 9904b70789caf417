package repo

import (
	"github.com/Potduo/earnpark/internal/pg"
	accountrepo "github.com/Potduo/earnpark/internal/repo/account-repo"
	transactionrepo "github.com/Potduo/earnpark/internal/repo/transaction-repo"
	userrepo "github.com/Potduo/earnpark/internal/repo/user-repo"
	withdrawalrepo "github.com/Potduo/earnpark/internal/repo/withdrawal-repo"
	"github.com/Potduo/earnpark/internal/service/accountservice"
	"github.com/Potduo/earnpark/internal/service/authservice"
	"github.com/Potduo/earnpark/internal/service/withdrawalservice"
)

type Repositories struct {
	UserRepo        authservice.Repo
	AccountRepo     accountservice.AccountRepo
	WithdrawalRepo  withdrawalservice.WithdrawalRepo
	TransactionRepo accountservice.TransactionRepo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	userRepo := userrepo.New(conn)
	accountRepo := accountrepo.New(conn, txManager)
	withdrawalRepo := withdrawalrepo.New(conn)
	transactionRepo := transactionrepo.New(conn)

	return &Repositories{
		UserRepo:        userRepo,
		AccountRepo:     accountRepo,
		WithdrawalRepo:  withdrawalRepo,
		TransactionRepo: transactionRepo,
	}
}
