// Package rates keeps an in-memory snapshot of spot prices for the supported
// currencies, refreshed from an external market-data provider.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/Potduo/earnpark/internal/config"
	"github.com/Potduo/earnpark/pkg/clients"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

var symbols = []string{"BTC", "ETH", "USDT", "SOL"}

type Quote struct {
	Symbol    string    `json:"symbol"`
	PriceUSD  float64   `json:"price_usd"`
	UpdatedAt time.Time `json:"updated_at"`
}

type providerResponse struct {
	Symbol   string  `json:"symbol"`
	PriceUSD float64 `json:"price_usd"`
}

type Service struct {
	url            string
	client         clients.HTTPClientI
	fetchPool      FetchPoolI
	updateInterval time.Duration

	mu     sync.RWMutex
	quotes map[string]Quote
}

func New(cfg *config.Config, client clients.HTTPClientI) *Service {
	return &Service{
		url:            cfg.MarketsAddress,
		client:         client,
		fetchPool:      NewFetchPool(4),
		updateInterval: time.Second * 30,
		quotes:         make(map[string]Quote),
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Market rates service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	s.refresh(ctx)

	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping rates service")
			s.fetchPool.Close()
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *Service) refresh(ctx context.Context) {
	var g errgroup.Group
	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			return s.fetchPool.Submit(ctx, symbol, func() error {
				return s.fetchQuote(ctx, symbol)
			})
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error refreshing market rates", zap.Error(err))
	}
}

func (s *Service) fetchQuote(ctx context.Context, symbol string) error {
	url := s.url + "/api/v1/prices/" + symbol

	var statusCode int
	var respBody []byte
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		statusCode, respBody, _, err = s.client.Get(ctx, url, nil)
		if err == nil && statusCode == http.StatusOK {
			return s.storeQuote(symbol, respBody)
		}
		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryInterval * time.Duration(attempt)):
			}
		}
	}
	if err != nil {
		return fmt.Errorf("failed to fetch quote for %s after %d retries: %w", symbol, maxRetries, err)
	}
	return fmt.Errorf("unexpected status code %d for %s", statusCode, symbol)
}

func (s *Service) storeQuote(symbol string, respBody []byte) error {
	var response providerResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return fmt.Errorf("failed to parse provider response: %w", err)
	}
	if response.Symbol != symbol {
		return fmt.Errorf("symbol mismatch: expected %s, got %s", symbol, response.Symbol)
	}

	s.mu.Lock()
	s.quotes[symbol] = Quote{
		Symbol:    symbol,
		PriceUSD:  response.PriceUSD,
		UpdatedAt: time.Now(),
	}
	s.mu.Unlock()
	return nil
}

// Quotes returns the latest snapshot, ordered by symbol.
func (s *Service) Quotes() []Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}
