package dex

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"tokenlaunch-backend/internal/marketdata"
	"tokenlaunch-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// mapFetcher resolves market data from a fixed table keyed by address.
type mapFetcher struct {
	mu      sync.Mutex
	results map[string]*marketdata.MarketData
}

func (f *mapFetcher) TokenMarketData(ctx context.Context, network, address string) (*marketdata.MarketData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if md, ok := f.results[address]; ok {
		return md, nil
	}
	return nil, marketdata.ErrNoPairs
}

func (f *mapFetcher) set(address string, md *marketdata.MarketData) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[address] = md
}

func setupDexTest(t *testing.T) (*fiber.App, *gorm.DB, *mapFetcher) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.DexToken{}))

	f := &mapFetcher{results: make(map[string]*marketdata.MarketData)}
	enricher := marketdata.NewEnricher(f, nil)
	t.Cleanup(enricher.Close)

	h := &Handlers{Service: &Service{DB: db, Enricher: enricher}}
	app := fiber.New()
	app.Get("/dex/tokens", h.Index)
	app.Post("/dex/tokens/refresh", h.Refresh)
	app.Get("/dex/tokens/:token_id", h.GetByID)
	app.Post("/dex/tokens/submit", h.Submit)
	return app, db, f
}

func seedToken(t *testing.T, db *gorm.DB, name, symbol, address string) *models.DexToken {
	t.Helper()
	tok := &models.DexToken{
		Name:            name,
		Symbol:          symbol,
		ContractAddress: address,
		Network:         "ethereum",
		IsActive:        true,
		IsApproved:      true,
	}
	require.NoError(t, db.Create(tok).Error)
	return tok
}

func getJSON(t *testing.T, app *fiber.App, url string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// The index responds immediately; rows whose enrichment has not
// resolved yet carry a loading attachment.
func TestIndex_RendersBeforeEnrichmentResolves(t *testing.T) {
	app, db, _ := setupDexTest(t)
	seedToken(t, db, "Moon Token", "MOON", "0xmoon")

	code, out := getJSON(t, app, "/dex/tokens")
	assert.Equal(t, 200, code)
	data := out["data"].([]interface{})
	require.Len(t, data, 1)
	md := data[0].(map[string]interface{})["market_data"].(map[string]interface{})
	assert.Contains(t, []string{"pending", "success", "not_found"}, md["status"])
}

func waitForIndexStatus(t *testing.T, app *fiber.App, symbol, want string) map[string]interface{} {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		_, out := getJSON(t, app, "/dex/tokens")
		for _, item := range out["data"].([]interface{}) {
			row := item.(map[string]interface{})
			if row["symbol"] != symbol {
				continue
			}
			md := row["market_data"].(map[string]interface{})
			if md["status"] == want {
				return md
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("token %s never reached market data status %s", symbol, want)
	return nil
}

func TestIndex_EnrichmentMergesIntoRows(t *testing.T) {
	app, db, f := setupDexTest(t)
	seedToken(t, db, "Moon Token", "MOON", "0xmoon")
	f.set("0xmoon", &marketdata.MarketData{PriceUSD: 4.2, Volume24h: 1000})

	md := waitForIndexStatus(t, app, "MOON", "success")
	data := md["data"].(map[string]interface{})
	assert.Equal(t, 4.2, data["price_usd"])
}

// A token the screener has never seen resolves to not_found without
// affecting sibling tokens.
func TestIndex_NotFoundIsPerRecord(t *testing.T) {
	app, db, f := setupDexTest(t)
	seedToken(t, db, "Moon Token", "MOON", "0xmoon")
	seedToken(t, db, "Ghost Token", "GHOST", "0xghost")
	f.set("0xmoon", &marketdata.MarketData{PriceUSD: 4.2})

	waitForIndexStatus(t, app, "MOON", "success")
	ghost := waitForIndexStatus(t, app, "GHOST", "not_found")
	assert.Nil(t, ghost["data"])
}

func TestIndex_SortByPriceDescending(t *testing.T) {
	app, db, f := setupDexTest(t)
	seedToken(t, db, "Cheap", "CHEAP", "0xcheap")
	seedToken(t, db, "Expensive", "EXP", "0xexp")
	seedToken(t, db, "Unpriced", "NONE", "0xnone")
	f.set("0xcheap", &marketdata.MarketData{PriceUSD: 1})
	f.set("0xexp", &marketdata.MarketData{PriceUSD: 100})

	waitForIndexStatus(t, app, "CHEAP", "success")
	waitForIndexStatus(t, app, "EXP", "success")
	waitForIndexStatus(t, app, "NONE", "not_found")

	_, out := getJSON(t, app, "/dex/tokens?sort_by=price&sort_dir=desc")
	data := out["data"].([]interface{})
	require.Len(t, data, 3)
	assert.Equal(t, "EXP", data[0].(map[string]interface{})["symbol"])
	assert.Equal(t, "CHEAP", data[1].(map[string]interface{})["symbol"])
	// Missing market data sorts as 0, at the bottom.
	assert.Equal(t, "NONE", data[2].(map[string]interface{})["symbol"])

	_, out = getJSON(t, app, "/dex/tokens?sort_by=price&sort_dir=asc")
	data = out["data"].([]interface{})
	assert.Equal(t, "NONE", data[0].(map[string]interface{})["symbol"])
	assert.Equal(t, "EXP", data[2].(map[string]interface{})["symbol"])
}

func TestIndex_SearchByContractAddress(t *testing.T) {
	app, db, _ := setupDexTest(t)
	seedToken(t, db, "Moon Token", "MOON", "0xAbCd1234")
	seedToken(t, db, "Other", "OTH", "0xFFFF")

	_, out := getJSON(t, app, "/dex/tokens?search=abcd")
	data := out["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "MOON", data[0].(map[string]interface{})["symbol"])
}

func TestRefresh_ReEnriches(t *testing.T) {
	app, db, f := setupDexTest(t)
	seedToken(t, db, "Moon Token", "MOON", "0xmoon")
	f.set("0xmoon", &marketdata.MarketData{PriceUSD: 1})

	waitForIndexStatus(t, app, "MOON", "success")
	f.set("0xmoon", &marketdata.MarketData{PriceUSD: 2})

	resp, err := app.Test(httptest.NewRequest("POST", "/dex/tokens/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		md := waitForIndexStatus(t, app, "MOON", "success")
		if md["data"].(map[string]interface{})["price_usd"] == 2.0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("refresh never delivered the new price")
}

func TestSubmit_MissingContractAddress(t *testing.T) {
	app, _, _ := setupDexTest(t)
	body, _ := json.Marshal(map[string]interface{}{
		"name": "Moon", "symbol": "MOON", "network": "ethereum",
	})
	req := httptest.NewRequest("POST", "/dex/tokens/submit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestSubmit_NotListedUntilApproved(t *testing.T) {
	app, db, _ := setupDexTest(t)
	body, _ := json.Marshal(map[string]interface{}{
		"name": "Moon", "symbol": "MOON", "network": "ethereum",
		"contract_address": "0xmoon",
	})
	req := httptest.NewRequest("POST", "/dex/tokens/submit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var stored models.DexToken
	require.NoError(t, db.Where("symbol = ?", "MOON").First(&stored).Error)
	assert.False(t, stored.IsApproved)

	_, out := getJSON(t, app, "/dex/tokens")
	assert.Empty(t, out["data"])
}
