package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"MarketSweep/internal/model"
)

// CoinGeckoFetcher implements Fetcher using the CoinGecko v3 REST API.
type CoinGeckoFetcher struct {
	BaseURL    string
	APIKey     string
	VsCurrency string
	Order      string
	PerPage    int
	Page       int
	Client     *http.Client
}

// NewCoinGeckoFetcher creates a new fetcher with optional proxy support.
func NewCoinGeckoFetcher(baseURL, apiKey, proxyURL string) *CoinGeckoFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CoinGeckoFetcher{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		VsCurrency: "usd",
		Order:      "market_cap_desc",
		PerPage:    250,
		Page:       1,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

func (f *CoinGeckoFetcher) endpoint() string {
	q := url.Values{}
	q.Set("vs_currency", f.VsCurrency)
	q.Set("order", f.Order)
	q.Set("per_page", strconv.Itoa(f.PerPage))
	q.Set("page", strconv.Itoa(f.Page))
	return f.BaseURL + "/coins/markets?" + q.Encode()
}

// FetchMarkets issues a single GET. Any non-200 response is an
// UpstreamError and is not retried.
func (f *CoinGeckoFetcher) FetchMarkets(ctx context.Context) ([]model.Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if f.APIKey != "" {
		req.Header.Set("x-cg-demo-api-key", f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &model.UpstreamError{Source: f.Name(), Err: fmt.Errorf("fetch markets: %w", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &model.UpstreamError{
			Source:     f.Name(),
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("fetch markets: body: %s", strings.TrimSpace(string(body))),
		}
	}
	var assets []model.Asset
	if err := json.NewDecoder(resp.Body).Decode(&assets); err != nil {
		return nil, &model.UpstreamError{Source: f.Name(), StatusCode: resp.StatusCode, Err: fmt.Errorf("decode markets: %w", err)}
	}
	return assets, nil
}
