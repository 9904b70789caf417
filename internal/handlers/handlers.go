package handlers

import (
	"net/http"

	_ "github.com/Potduo/earnpark/docs"
	accounthandlers "github.com/Potduo/earnpark/internal/handlers/account"
	authhandlers "github.com/Potduo/earnpark/internal/handlers/auth"
	marketshandlers "github.com/Potduo/earnpark/internal/handlers/markets"
	withdrawalhandlers "github.com/Potduo/earnpark/internal/handlers/withdrawal"
	"github.com/Potduo/earnpark/internal/service"
	"github.com/Potduo/earnpark/pkg/auth"
	"github.com/Potduo/earnpark/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	GetAccount(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
	Deposit(w http.ResponseWriter, r *http.Request)
	DepositAddresses(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
}

type WithdrawalHandler interface {
	GetLimits(w http.ResponseWriter, r *http.Request)
	RequestWithdrawal(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type MarketsHandler interface {
	GetQuotes(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler       AuthHandler
	AccountHandler    AccountHandler
	WithdrawalHandler WithdrawalHandler
	MarketsHandler    MarketsHandler

	metrics *metrics.Collector
}

func New(s *service.Services, quoter marketshandlers.Quoter, collector *metrics.Collector) *Handlers {
	return &Handlers{
		AuthHandler:       authhandlers.New(s.AuthService),
		AccountHandler:    accounthandlers.New(s.AccountService),
		WithdrawalHandler: withdrawalhandlers.New(s.WithdrawalService),
		MarketsHandler:    marketshandlers.New(quoter),
		metrics:           collector,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	r.Get("/api/markets", h.MarketsHandler.GetQuotes)

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Get("/account", h.AccountHandler.GetAccount)
			r.Get("/limits", h.WithdrawalHandler.GetLimits)
			r.Get("/deposit-addresses", h.AccountHandler.DepositAddresses)
			r.Post("/deposits", h.AccountHandler.Deposit)
			r.Get("/transactions", h.AccountHandler.GetTransactions)
			r.Route("/withdrawals", func(r chi.Router) {
				r.Post("/", h.WithdrawalHandler.RequestWithdrawal)
				r.Get("/", h.WithdrawalHandler.GetWithdrawals)
			})
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(auth.AuthMiddleware, auth.AdminMiddleware)
		r.Post("/accounts/{userID}/activate", h.AccountHandler.Activate)
		r.Post("/withdrawals/{id}/status", h.WithdrawalHandler.UpdateStatus)
	})

	return r
}
