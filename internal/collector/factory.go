package collector

import (
	"fmt"
	"time"

	"StockPulse/internal/model"
)

// NewFetcher builds the fetcher named by provider.
func NewFetcher(provider, baseURL, apiKey, proxyURL string) (Fetcher, error) {
	switch provider {
	case "", "yahoo":
		return NewYahooFetcher(baseURL, proxyURL), nil
	case "finance-go":
		return NewFinanceGoFetcher(), nil
	case "rest":
		if baseURL == "" {
			return nil, fmt.Errorf("%w: rest provider needs a base url", model.ErrInvalidConfiguration)
		}
		return NewRESTFetcher(baseURL, apiKey, proxyURL), nil
	case "mock":
		return &MockFetcher{Bars: GenerateMockBars(100, time.Now(), 300)}, nil
	}
	return nil, fmt.Errorf("%w: unknown data provider %q", model.ErrInvalidConfiguration, provider)
}
