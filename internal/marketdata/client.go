package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// ErrNoPairs means the screener API found no trading pair for the
// token. A valid outcome, not a transport failure.
var ErrNoPairs = errors.New("no pairs found")

// MarketData is the per-token snapshot merged into DEX index rows.
type MarketData struct {
	PriceUSD      float64    `json:"price_usd"`
	Change1h      float64    `json:"change_1h"`
	Change6h      float64    `json:"change_6h"`
	Change24h     float64    `json:"change_24h"`
	Volume24h     float64    `json:"volume_24h"`
	LiquidityUSD  float64    `json:"liquidity_usd"`
	MarketCap     float64    `json:"market_cap"`
	FDV           float64    `json:"fdv"`
	PairCreatedAt *time.Time `json:"pair_created_at,omitempty"`
	ChartURL      string     `json:"chart_url,omitempty"`
}

// Client fetches token market data from a Dexscreener-compatible API.
// Requests are rate limited so a burst of per-record enrichment fetches
// stays inside the provider's public quota.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

const (
	defaultTimeout = 10 * time.Second
	requestsPerSec = 5
	requestBurst   = 10
)

// NewClient builds a client for the given base URL
// (e.g. https://api.dexscreener.com).
func NewClient(baseURL string) *Client {
	return &Client{
		client:  &http.Client{Timeout: defaultTimeout},
		baseURL: baseURL,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), requestBurst),
	}
}

// pairsResponse mirrors the screener /latest/dex/tokens/{address}
// payload. priceUsd arrives as a string.
type pairsResponse struct {
	Pairs []pair `json:"pairs"`
}

type pair struct {
	ChainID     string `json:"chainId"`
	URL         string `json:"url"`
	PriceUSD    string `json:"priceUsd"`
	PriceChange struct {
		H1  float64 `json:"h1"`
		H6  float64 `json:"h6"`
		H24 float64 `json:"h24"`
	} `json:"priceChange"`
	Volume struct {
		H24 float64 `json:"h24"`
	} `json:"volume"`
	Liquidity struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
	FDV           float64 `json:"fdv"`
	MarketCap     float64 `json:"marketCap"`
	PairCreatedAt int64   `json:"pairCreatedAt"`
}

// TokenMarketData fetches the best (highest-liquidity) pair for the
// token on the given network. Returns ErrNoPairs when the API has no
// matching pair.
func (c *Client) TokenMarketData(ctx context.Context, network, address string) (*MarketData, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/latest/dex/tokens/%s", c.baseURL, address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create market data request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("address", address).Msg("market data request failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market data API returned status %d", resp.StatusCode)
	}

	var body pairsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode market data response: %w", err)
	}

	best := bestPair(body.Pairs, network)
	if best == nil {
		return nil, ErrNoPairs
	}

	log.Debug().
		Str("address", address).
		Str("network", network).
		Dur("elapsed", time.Since(start)).
		Msg("market data fetched")

	return toMarketData(best), nil
}

// bestPair picks the matching-network pair with the deepest liquidity.
// When no pair matches the network the token has no listing there.
func bestPair(pairs []pair, network string) *pair {
	var best *pair
	for i := range pairs {
		p := &pairs[i]
		if network != "" && p.ChainID != network {
			continue
		}
		if best == nil || p.Liquidity.USD > best.Liquidity.USD {
			best = p
		}
	}
	return best
}

func toMarketData(p *pair) *MarketData {
	price, _ := strconv.ParseFloat(p.PriceUSD, 64)
	md := &MarketData{
		PriceUSD:     price,
		Change1h:     p.PriceChange.H1,
		Change6h:     p.PriceChange.H6,
		Change24h:    p.PriceChange.H24,
		Volume24h:    p.Volume.H24,
		LiquidityUSD: p.Liquidity.USD,
		MarketCap:    p.MarketCap,
		FDV:          p.FDV,
		ChartURL:     p.URL,
	}
	if p.PairCreatedAt > 0 {
		t := time.UnixMilli(p.PairCreatedAt).UTC()
		md.PairCreatedAt = &t
	}
	return md
}
