package auth

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/Potduo/earnpark/internal/domain"
	"github.com/Potduo/earnpark/internal/service/authservice"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestRegisterHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedToken string
	}{
		{
			name: "Successful registration",
			body: `{"email":"user@example.com","full_name":"Alex Doe","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Register(gomock.Any(), "user@example.com", "Alex Doe", "password123").
					Return(&domain.User{ID: 1, Email: "user@example.com"}, nil)
				service.EXPECT().GenerateToken(1, false).Return("token", nil)
			},
			expectedCode:  http.StatusOK,
			expectedToken: "Bearer token",
		},
		{
			name:         "Malformed JSON",
			body:         "{not json",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Invalid email fails validation",
			body:         `{"email":"not-an-email","full_name":"Alex Doe","password":"password123"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Short password fails validation",
			body:         `{"email":"user@example.com","full_name":"Alex Doe","password":"short"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Taken email conflicts",
			body: `{"email":"user@example.com","full_name":"Alex Doe","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Register(gomock.Any(), "user@example.com", "Alex Doe", "password123").
					Return(nil, authservice.ErrEmailTaken)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Internal server error",
			body: `{"email":"user@example.com","full_name":"Alex Doe","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Register(gomock.Any(), "user@example.com", "Alex Doe", "password123").
					Return(nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.Register(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedToken != "" {
				assert.Equal(t, tt.expectedToken, w.Header().Get("Authorization"))
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedToken string
	}{
		{
			name: "Successful login",
			body: `{"email":"user@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Authenticate(gomock.Any(), "user@example.com", "password123").
					Return(&domain.User{ID: 1, Email: "user@example.com", IsAdmin: true}, nil)
				service.EXPECT().GenerateToken(1, true).Return("token", nil)
			},
			expectedCode:  http.StatusOK,
			expectedToken: "Bearer token",
		},
		{
			name: "Invalid credentials",
			body: `{"email":"user@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Authenticate(gomock.Any(), "user@example.com", "password123").
					Return(nil, errors.New("invalid credentials"))
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Malformed JSON",
			body:         "{not json",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Token generation failure",
			body: `{"email":"user@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Authenticate(gomock.Any(), "user@example.com", "password123").
					Return(&domain.User{ID: 1}, nil)
				service.EXPECT().GenerateToken(1, false).Return("", errors.New("sign error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.Login(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedToken != "" {
				assert.Equal(t, tt.expectedToken, w.Header().Get("Authorization"))
			}
		})
	}
}
