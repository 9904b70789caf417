package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Potduo/earnpark/internal/domain"
	"github.com/Potduo/earnpark/internal/dto"
	"github.com/Potduo/earnpark/internal/service/accountservice"
	"github.com/Potduo/earnpark/pkg/auth"
	"github.com/Potduo/earnpark/pkg/utils"
)

//go:generate mockgen -source=account.go -destination=account_mock.go -package=account

type Service interface {
	CreateAccount(ctx context.Context, userID int) (*domain.Account, error)
	GetAccount(ctx context.Context, userID int) (*domain.Account, error)
	Activate(ctx context.Context, userID int, initialInvestment float64, now time.Time) (*domain.Account, error)
	RecordDeposit(ctx context.Context, userID int, currency string, amount float64, now time.Time) (*domain.Transaction, error)
	GetTransactions(ctx context.Context, userID int) ([]domain.Transaction, error)
	DepositAddresses() []accountservice.DepositAddress
}

type AccountHandler struct {
	accountService Service
	now            func() time.Time
}

func New(accountService Service) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		now:            time.Now,
	}
}

// GetAccount godoc
//
//	@Summary		Get dashboard account record
//	@Description	Retrieve the invested total, portfolio value and activation state for the authenticated user.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.AccountResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/account [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	account, err := h.accountService.GetAccount(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AccountResponseDTO{
		TotalInvested:         account.TotalInvested,
		CurrentPortfolioValue: account.CurrentPortfolioValue,
		DailyProfitPercentage: account.DailyProfitPercentage,
		PortfolioActive:       account.PortfolioActive,
		ActivationDate:        account.ActivationDate,
		LastUpdate:            account.LastUpdate,
	})
}

// Activate godoc
//
//	@Summary		Activate a user portfolio
//	@Description	Set the initial investment and start the withdrawal tier clock. Admin only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			userID	path		int								true	"User ID"
//	@Param			request	body		dto.ActivateAccountRequestDTO	true	"Activation payload"
//	@Success		200		{object}	dto.AccountResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		403		{object}	utils.Response	"Forbidden"
//	@Failure		404		{object}	utils.Response	"Account not found"
//	@Failure		422		{object}	utils.Response	"Investment below minimum"
//	@Router			/api/admin/accounts/{userID}/activate [post]
func (h *AccountHandler) Activate(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req dto.ActivateAccountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.accountService.Activate(r.Context(), userID, req.InitialInvestment, h.now())
	if err != nil {
		switch {
		case errors.Is(err, accountservice.ErrBelowMinimumDeposit):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, accountservice.ErrAccountNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AccountResponseDTO{
		TotalInvested:         account.TotalInvested,
		CurrentPortfolioValue: account.CurrentPortfolioValue,
		DailyProfitPercentage: account.DailyProfitPercentage,
		PortfolioActive:       account.PortfolioActive,
		ActivationDate:        account.ActivationDate,
		LastUpdate:            account.LastUpdate,
	})
}

// Deposit godoc
//
//	@Summary		Record a deposit intent
//	@Description	Register an incoming deposit for later confirmation by an operator. No funds move here.
//	@Tags			Account
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.DepositRequestDTO	true	"Deposit payload"
//	@Success		200		{object}	dto.TransactionResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		422		{object}	utils.Response	"Unsupported currency or amount below minimum"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/deposits [post]
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.DepositRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.accountService.RecordDeposit(r.Context(), userID, req.Currency, req.Amount, h.now())
	if err != nil {
		switch {
		case errors.Is(err, accountservice.ErrUnsupportedCurrency),
			errors.Is(err, accountservice.ErrBelowMinimumDeposit):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.TransactionResponseDTO{
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		Status:      tx.Status,
		Description: tx.Description,
		Date:        tx.Date,
	})
}

// DepositAddresses godoc
//
//	@Summary		List deposit addresses
//	@Description	Static receiving addresses per supported currency.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}	dto.DepositAddressDTO
//	@Router			/api/user/deposit-addresses [get]
func (h *AccountHandler) DepositAddresses(w http.ResponseWriter, r *http.Request) {
	addresses := h.accountService.DepositAddresses()

	response := make([]dto.DepositAddressDTO, len(addresses))
	for i, a := range addresses {
		response[i] = dto.DepositAddressDTO{
			Currency: a.Currency,
			Network:  a.Network,
			Address:  a.Address,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetTransactions godoc
//
//	@Summary		Get transaction history
//	@Description	Deposit and withdrawal history for the authenticated user, newest first.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.TransactionResponseDTO
//	@Success		204	{object}	utils.Response	"No transactions"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/transactions [get]
func (h *AccountHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	transactions, err := h.accountService.GetTransactions(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	if len(transactions) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Transactions not found")
		return
	}

	response := make([]dto.TransactionResponseDTO, len(transactions))
	for i, tx := range transactions {
		response[i] = dto.TransactionResponseDTO{
			Type:        string(tx.Type),
			Amount:      tx.Amount,
			Currency:    tx.Currency,
			Status:      tx.Status,
			Description: tx.Description,
			Date:        tx.Date,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
