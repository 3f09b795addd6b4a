package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketSweep/internal/model"
)

const marketsJSON = `[
  {"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":65000.5,"market_cap":1280000000000,
   "market_cap_rank":1,"high_24h":66000,"low_24h":64000,"price_change_percentage_24h":2.5,
   "ath":73000,"atl":67.81,"last_updated":"2026-10-19T08:00:00.000Z"},
  {"id":"tether","symbol":"usdt","name":"Tether","current_price":1.0,"market_cap":110000000000,
   "market_cap_rank":3,"high_24h":1.001,"low_24h":0.999,"price_change_percentage_24h":null,
   "ath":1.32,"atl":0.57,"last_updated":"2026-10-19T08:00:00.000Z"}
]`

func TestCoinGeckoFetcher_FetchMarkets(t *testing.T) {
	var gotPath, gotQuery, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("x-cg-demo-api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(marketsJSON))
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher(srv.URL+"/", "demo-key", "")
	assets, err := f.FetchMarkets(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/coins/markets", gotPath)
	assert.Equal(t, "order=market_cap_desc&page=1&per_page=250&vs_currency=usd", gotQuery)
	assert.Equal(t, "demo-key", gotKey)

	require.Len(t, assets, 2)
	assert.Equal(t, "bitcoin", assets[0].ID)
	require.NotNil(t, assets[0].CurrentPrice)
	assert.InDelta(t, 65000.5, *assets[0].CurrentPrice, 1e-9)
	require.NotNil(t, assets[0].MarketCapRank)
	assert.Equal(t, 1, *assets[0].MarketCapRank)
	assert.Nil(t, assets[1].PriceChangePercentage24h)
}

func TestCoinGeckoFetcher_NoKeyHeader(t *testing.T) {
	var present bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["X-Cg-Demo-Api-Key"]
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	assets, err := NewCoinGeckoFetcher(srv.URL, "", "").FetchMarkets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, assets)
	assert.False(t, present)
}

func TestCoinGeckoFetcher_Non200IsUpstreamError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"status":{"error_code":429}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewCoinGeckoFetcher(srv.URL, "", "").FetchMarkets(context.Background())
	require.Error(t, err)

	var ue *model.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusTooManyRequests, ue.StatusCode)
	assert.Equal(t, "coingecko", ue.Source)
	assert.Equal(t, 1, calls, "non-200 must not be retried")
}

func TestCoinGeckoFetcher_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	_, err := NewCoinGeckoFetcher(srv.URL, "", "").FetchMarkets(context.Background())
	assert.True(t, model.IsUpstreamError(err))
}

func TestCoinGeckoFetcher_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCoinGeckoFetcher(srv.URL, "", "").FetchMarkets(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollector_Collect(t *testing.T) {
	fixed := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	mock := &MockFetcher{}
	c := NewCollector(mock, "usd")
	c.Now = func() time.Time { return fixed }

	snap, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Assets, 5)
	assert.Equal(t, "usd", snap.Currency)
	assert.Equal(t, fixed, snap.CapturedAt)
	assert.Equal(t, 1, mock.Calls)
}

func TestCollector_PropagatesError(t *testing.T) {
	upstream := &model.UpstreamError{Source: "mock", StatusCode: 500}
	c := NewCollector(&MockFetcher{Err: upstream}, "usd")
	_, err := c.Collect(context.Background())
	assert.ErrorIs(t, err, upstream)
}
