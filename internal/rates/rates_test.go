package rates

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/Potduo/earnpark/internal/config"
	"github.com/Potduo/earnpark/pkg/clients"
)

func newTestService(t *testing.T) (*Service, *clients.MockHTTPClientI) {
	ctrl := gomock.NewController(t)
	client := clients.NewMockHTTPClientI(ctrl)
	service := New(&config.Config{MarketsAddress: "http://markets.local"}, client)
	defer ctrl.Finish()
	return service, client
}

func TestFetchQuote(t *testing.T) {
	tests := []struct {
		name        string
		prepareMock func(client *clients.MockHTTPClientI)
		expectErr   bool
		wantPrice   float64
	}{
		{
			name: "Stores quote on success",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Get(gomock.Any(), "http://markets.local/api/v1/prices/BTC", gomock.Nil()).
					Return(http.StatusOK, []byte(`{"symbol":"BTC","price_usd":64000.5}`), nil, nil)
			},
			wantPrice: 64000.5,
		},
		{
			name: "Retries transient failures",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Get(gomock.Any(), "http://markets.local/api/v1/prices/BTC", gomock.Nil()).
					Return(0, nil, nil, errors.New("connection refused"))
				client.EXPECT().Get(gomock.Any(), "http://markets.local/api/v1/prices/BTC", gomock.Nil()).
					Return(http.StatusOK, []byte(`{"symbol":"BTC","price_usd":64000.5}`), nil, nil)
			},
			wantPrice: 64000.5,
		},
		{
			name: "Gives up after max retries",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Get(gomock.Any(), "http://markets.local/api/v1/prices/BTC", gomock.Nil()).
					Return(0, nil, nil, errors.New("connection refused")).Times(3)
			},
			expectErr: true,
		},
		{
			name: "Rejects mismatched symbol",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Get(gomock.Any(), "http://markets.local/api/v1/prices/BTC", gomock.Nil()).
					Return(http.StatusOK, []byte(`{"symbol":"ETH","price_usd":3100.25}`), nil, nil)
			},
			expectErr: true,
		},
		{
			name: "Rejects malformed payload",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Get(gomock.Any(), "http://markets.local/api/v1/prices/BTC", gomock.Nil()).
					Return(http.StatusOK, []byte(`{not json`), nil, nil)
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, client := newTestService(t)
			tt.prepareMock(client)

			err := service.fetchQuote(context.Background(), "BTC")
			if tt.expectErr {
				assert.Error(t, err)
				assert.Empty(t, service.Quotes())
			} else {
				assert.NoError(t, err)
				quotes := service.Quotes()
				if assert.Len(t, quotes, 1) {
					assert.Equal(t, "BTC", quotes[0].Symbol)
					assert.Equal(t, tt.wantPrice, quotes[0].PriceUSD)
				}
			}
		})
	}
}

func TestFetchQuoteStopsBackoffOnCancel(t *testing.T) {
	service, client := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	client.EXPECT().Get(gomock.Any(), "http://markets.local/api/v1/prices/BTC", gomock.Nil()).
		DoAndReturn(func(context.Context, string, http.Header) (int, []byte, http.Header, error) {
			cancel()
			return 0, nil, nil, errors.New("connection refused")
		})

	start := time.Now()
	err := service.fetchQuote(ctx, "BTC")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), retryInterval)
}

func TestQuotesSortedBySymbol(t *testing.T) {
	service, _ := newTestService(t)

	assert.NoError(t, service.storeQuote("ETH", []byte(`{"symbol":"ETH","price_usd":3100.25}`)))
	assert.NoError(t, service.storeQuote("BTC", []byte(`{"symbol":"BTC","price_usd":64000.5}`)))

	quotes := service.Quotes()
	if assert.Len(t, quotes, 2) {
		assert.Equal(t, "BTC", quotes[0].Symbol)
		assert.Equal(t, "ETH", quotes[1].Symbol)
	}
}
