package withdrawal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Potduo/earnpark/internal/domain"
	"github.com/Potduo/earnpark/internal/dto"
	"github.com/Potduo/earnpark/internal/limits"
	"github.com/Potduo/earnpark/internal/service/withdrawalservice"
	"github.com/Potduo/earnpark/pkg/auth"
	"github.com/Potduo/earnpark/pkg/utils"
)

//go:generate mockgen -source=withdrawal.go -destination=withdrawal_mock.go -package=withdrawal

type Service interface {
	GetLimits(ctx context.Context, userID int, now time.Time) (*domain.WithdrawalLimit, error)
	RequestWithdrawal(ctx context.Context, userID int, p withdrawalservice.Proposal, now time.Time) (*domain.WithdrawalRequest, error)
	GetWithdrawals(ctx context.Context, userID int) ([]domain.WithdrawalRequest, error)
	AdvanceStatus(ctx context.Context, id uuid.UUID, next domain.WithdrawalStatus) (*domain.WithdrawalRequest, error)
}

type WithdrawalHandler struct {
	withdrawalService Service
	now               func() time.Time
}

func New(withdrawalService Service) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
		now:               time.Now,
	}
}

// GetLimits godoc
//
//	@Summary		Get current withdrawal limit
//	@Description	Eligibility, tier percentage and maximum withdrawable amount for the authenticated user.
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.WithdrawalLimitResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/limits [get]
func (h *WithdrawalHandler) GetLimits(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	limit, err := h.withdrawalService.GetLimits(r.Context(), userID, h.now())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WithdrawalLimitResponseDTO{
		CanWithdraw:    limit.CanWithdraw,
		TierPercentage: limit.TierPercentage,
		MaxAmount:      limit.MaxAmount,
		MonthsActive:   limit.MonthsActive,
		Reason:         limit.Reason,
	})
}

// RequestWithdrawal godoc
//
//	@Summary		Submit a withdrawal request
//	@Description	Validate a withdrawal proposal against the current limit and queue it for fulfillment. All rule violations are returned together.
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawalRequestDTO	true	"Withdrawal proposal"
//	@Success		200		{object}	dto.WithdrawalResponseDTO
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		409		{object}	utils.Response			"Duplicate request"
//	@Failure		422		{array}		dto.ValidationErrorDTO	"Validation errors"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/user/withdrawals [post]
func (h *WithdrawalHandler) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WithdrawalRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	proposal := withdrawalservice.Proposal{
		Email:                req.Email,
		Currency:             req.Currency,
		WalletAddress:        req.WalletAddress,
		ConfirmWalletAddress: req.ConfirmWalletAddress,
		Amount:               req.Amount,
		Network:              req.Network,
		IdempotencyKey:       req.IdempotencyKey,
	}

	request, err := h.withdrawalService.RequestWithdrawal(r.Context(), userID, proposal, h.now())
	if err != nil {
		var verrs withdrawalservice.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			utils.RespondWithJSON(w, http.StatusUnprocessableEntity, toValidationDTOs(verrs))
		case errors.Is(err, withdrawalservice.ErrDuplicateRequest):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, limits.ErrInvalidAccountState):
			utils.RespondWithError(w, http.StatusInternalServerError, "Account data is inconsistent")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponseDTO(request))
}

// GetWithdrawals godoc
//
//	@Summary		Get withdrawal history
//	@Description	Withdrawal requests of the authenticated user, newest first.
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalResponseDTO
//	@Success		204	{object}	utils.Response	"No withdrawal requests"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/withdrawals [get]
func (h *WithdrawalHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	requests, err := h.withdrawalService.GetWithdrawals(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}

	if len(requests) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Withdrawals not found")
		return
	}

	response := make([]dto.WithdrawalResponseDTO, len(requests))
	for i, req := range requests {
		response[i] = toResponseDTO(&req)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// UpdateStatus godoc
//
//	@Summary		Advance a withdrawal request status
//	@Description	Move a request along its lifecycle on behalf of the fulfillment process. Terminal states are immutable. Admin only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Withdrawal request ID"
//	@Param			request	body		dto.UpdateStatusRequestDTO	true	"Target status"
//	@Success		200		{object}	dto.WithdrawalResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		403		{object}	utils.Response	"Forbidden"
//	@Failure		404		{object}	utils.Response	"Request not found"
//	@Failure		409		{object}	utils.Response	"Illegal transition"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/withdrawals/{id}/status [post]
func (h *WithdrawalHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	var req dto.UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.withdrawalService.AdvanceStatus(r.Context(), id, domain.WithdrawalStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrRequestNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrTerminalState),
			errors.Is(err, domain.ErrInvalidTransition),
			errors.Is(err, domain.ErrUnknownStatus),
			errors.Is(err, withdrawalservice.ErrStatusConflict):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponseDTO(request))
}

func toResponseDTO(request *domain.WithdrawalRequest) dto.WithdrawalResponseDTO {
	return dto.WithdrawalResponseDTO{
		ID:          request.ID.String(),
		Amount:      request.Amount,
		Currency:    request.Currency,
		Network:     request.Network,
		Status:      string(request.Status),
		RequestDate: request.RequestDate,
	}
}

func toValidationDTOs(verrs withdrawalservice.ValidationErrors) []dto.ValidationErrorDTO {
	out := make([]dto.ValidationErrorDTO, len(verrs))
	for i, ve := range verrs {
		out[i] = dto.ValidationErrorDTO{
			Kind:    string(ve.Kind),
			Field:   ve.Field,
			Message: ve.Message,
			Limit:   ve.Limit,
		}
	}
	return out
}
