package withdrawal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/Potduo/earnpark/internal/domain"
	"github.com/Potduo/earnpark/internal/dto"
	"github.com/Potduo/earnpark/internal/limits"
	"github.com/Potduo/earnpark/internal/service/withdrawalservice"
	"github.com/Potduo/earnpark/pkg/auth"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func NewMock(t *testing.T) (*WithdrawalHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	handler.now = func() time.Time { return testNow }
	defer ctrl.Finish()
	return handler, service
}

func authedRequest(method, target string, body []byte) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	return r.WithContext(context.WithValue(r.Context(), auth.UserIDKey, 1))
}

func TestGetLimitsHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody dto.WithdrawalLimitResponseDTO
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				service.EXPECT().GetLimits(gomock.Any(), 1, testNow).Return(&domain.WithdrawalLimit{
					CanWithdraw:    true,
					TierPercentage: 35,
					MaxAmount:      3500,
					MonthsActive:   6,
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.WithdrawalLimitResponseDTO{
				CanWithdraw:    true,
				TierPercentage: 35,
				MaxAmount:      3500,
				MonthsActive:   6,
			},
		},
		{
			name: "Not eligible carries a reason",
			prepareMock: func() {
				service.EXPECT().GetLimits(gomock.Any(), 1, testNow).Return(&domain.WithdrawalLimit{
					CanWithdraw: false,
					Reason:      "Account not activated",
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.WithdrawalLimitResponseDTO{
				CanWithdraw: false,
				Reason:      "Account not activated",
			},
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetLimits(gomock.Any(), 1, testNow).Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := authedRequest(http.MethodGet, "/api/user/limits", nil)
			w := httptest.NewRecorder()

			handler.GetLimits(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.WithdrawalLimitResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, tt.expectedBody, body)
			}
		})
	}
}

func TestRequestWithdrawalHandler(t *testing.T) {
	handler, service := NewMock(t)
	requestID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	validBody := dto.WithdrawalRequestDTO{
		Email:                "user@example.com",
		Currency:             "USDT",
		WalletAddress:        "TQn9Y2khEsLJW1ChVWFMSMeRDow5ANLG7Q",
		ConfirmWalletAddress: "TQn9Y2khEsLJW1ChVWFMSMeRDow5ANLG7Q",
		Amount:               "500",
		Network:              "Tron Network (TRC-20)",
	}

	tests := []struct {
		name          string
		body          any
		rawBody       string
		prepareMock   func()
		expectedCode  int
		checkResponse func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "Accepted request",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().RequestWithdrawal(gomock.Any(), 1, gomock.Any(), testNow).
					Return(&domain.WithdrawalRequest{
						ID:          requestID,
						UserID:      1,
						Amount:      500,
						Currency:    "USDT",
						Network:     "Tron Network (TRC-20)",
						Status:      domain.StatusPending,
						RequestDate: testNow,
					}, nil)
			},
			expectedCode: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var body dto.WithdrawalResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, requestID.String(), body.ID)
				assert.Equal(t, "pending", body.Status)
			},
		},
		{
			name:         "Malformed JSON",
			rawBody:      "{not json",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Validation errors returned as a batch",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().RequestWithdrawal(gomock.Any(), 1, gomock.Any(), testNow).
					Return(nil, withdrawalservice.ValidationErrors{
						{Kind: withdrawalservice.KindAddressMismatch, Field: "confirm_wallet_address", Message: "wallet addresses do not match"},
						{Kind: withdrawalservice.KindAmountExceedsLimit, Field: "amount", Message: "maximum withdrawal amount is $3500.00", Limit: 3500},
					})
			},
			expectedCode: http.StatusUnprocessableEntity,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var body []dto.ValidationErrorDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Len(t, body, 2)
				assert.Equal(t, "AddressMismatch", body[0].Kind)
				assert.Equal(t, 3500.0, body[1].Limit)
			},
		},
		{
			name: "Duplicate request",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().RequestWithdrawal(gomock.Any(), 1, gomock.Any(), testNow).
					Return(nil, withdrawalservice.ErrDuplicateRequest)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Corrupt account state",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().RequestWithdrawal(gomock.Any(), 1, gomock.Any(), testNow).
					Return(nil, limits.ErrInvalidAccountState)
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			var payload []byte
			if tt.rawBody != "" {
				payload = []byte(tt.rawBody)
			} else {
				payload, _ = json.Marshal(tt.body)
			}
			r := authedRequest(http.MethodPost, "/api/user/withdrawals", payload)
			w := httptest.NewRecorder()

			handler.RequestWithdrawal(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestGetWithdrawalsHandler(t *testing.T) {
	handler, service := NewMock(t)
	requestID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name: "History newest first",
			prepareMock: func() {
				service.EXPECT().GetWithdrawals(gomock.Any(), 1).Return([]domain.WithdrawalRequest{
					{ID: requestID, UserID: 1, Status: domain.StatusCompleted, RequestDate: testNow},
					{ID: uuid.New(), UserID: 1, Status: domain.StatusPending, RequestDate: testNow.Add(-time.Hour)},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name: "Empty history is no content",
			prepareMock: func() {
				service.EXPECT().GetWithdrawals(gomock.Any(), 1).Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetWithdrawals(gomock.Any(), 1).Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := authedRequest(http.MethodGet, "/api/user/withdrawals", nil)
			w := httptest.NewRecorder()

			handler.GetWithdrawals(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.WithdrawalResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Len(t, body, tt.expectedLen)
			}
		})
	}
}

func TestUpdateStatusHandler(t *testing.T) {
	handler, service := NewMock(t)
	requestID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	tests := []struct {
		name         string
		id           string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Advances pending to processing",
			id:   requestID.String(),
			body: `{"status":"processing"}`,
			prepareMock: func() {
				service.EXPECT().AdvanceStatus(gomock.Any(), requestID, domain.StatusProcessing).
					Return(&domain.WithdrawalRequest{
						ID:     requestID,
						Status: domain.StatusProcessing,
					}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid request id",
			id:           "not-a-uuid",
			body:         `{"status":"processing"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Unknown request",
			id:   requestID.String(),
			body: `{"status":"processing"}`,
			prepareMock: func() {
				service.EXPECT().AdvanceStatus(gomock.Any(), requestID, domain.StatusProcessing).
					Return(nil, withdrawalservice.ErrRequestNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Terminal state conflict",
			id:   requestID.String(),
			body: `{"status":"processing"}`,
			prepareMock: func() {
				service.EXPECT().AdvanceStatus(gomock.Any(), requestID, domain.StatusProcessing).
					Return(nil, domain.ErrTerminalState)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Illegal transition conflict",
			id:   requestID.String(),
			body: `{"status":"completed"}`,
			prepareMock: func() {
				service.EXPECT().AdvanceStatus(gomock.Any(), requestID, domain.StatusCompleted).
					Return(nil, domain.ErrInvalidTransition)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Concurrent update conflict",
			id:   requestID.String(),
			body: `{"status":"completed"}`,
			prepareMock: func() {
				service.EXPECT().AdvanceStatus(gomock.Any(), requestID, domain.StatusCompleted).
					Return(nil, withdrawalservice.ErrStatusConflict)
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := authedRequest(http.MethodPost, "/api/admin/withdrawals/"+tt.id+"/status", []byte(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()

			handler.UpdateStatus(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
