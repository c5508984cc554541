package dex

import (
	"encoding/json"
	"fmt"

	"tokenlaunch-backend/internal/marketdata"
	"tokenlaunch-backend/internal/models"
	"tokenlaunch-backend/internal/pipeline"
	"tokenlaunch-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

const (
	defaultPageSize = 15
	maxPageSize     = 50
)

// tokenRow is one DEX index row: the token plus its market-data
// attachment in whatever state enrichment has reached.
type tokenRow struct {
	models.DexToken
	MarketData marketdata.Attachment `json:"market_data"`
}

// Numeric sort accessors read the attachment; records still loading
// (or failed) sort as 0.
func marketValue(pick func(*marketdata.MarketData) float64) func(tokenRow) float64 {
	return func(r tokenRow) float64 {
		if r.MarketData.Data == nil {
			return 0
		}
		return pick(r.MarketData.Data)
	}
}

var dexPipeline = pipeline.Config[tokenRow]{
	SearchFields: []func(tokenRow) string{
		func(r tokenRow) string { return r.Name },
		func(r tokenRow) string { return r.Symbol },
		func(r tokenRow) string { return r.ContractAddress },
	},
	SortFields: map[string]func(tokenRow) float64{
		"price":      marketValue(func(m *marketdata.MarketData) float64 { return m.PriceUSD }),
		"market_cap": marketValue(func(m *marketdata.MarketData) float64 { return m.MarketCap }),
		"volume_24h": marketValue(func(m *marketdata.MarketData) float64 { return m.Volume24h }),
		"change_24h": marketValue(func(m *marketdata.MarketData) float64 { return m.Change24h }),
		"liquidity":  marketValue(func(m *marketdata.MarketData) float64 { return m.LiquidityUSD }),
	},
	PageSize:    defaultPageSize,
	MaxPageSize: maxPageSize,
}

// GET /api/v1/dex/tokens — search, sort_by, sort_dir, page, page_size
func (h *Handlers) Index(c *fiber.Ctx) error {
	tokens, err := h.Service.FetchCollection(c.Context())
	if err != nil {
		return response.Error(c, "Failed to fetch DEX tokens", 500, nil)
	}

	rows := make([]tokenRow, len(tokens))
	for i, tok := range tokens {
		rows[i] = tokenRow{
			DexToken:   tok,
			MarketData: h.Service.Enricher.Snapshot(tok.ID.String()),
		}
	}

	st := pipeline.NewState(dexPipeline)
	st.DataLoaded(rows)
	st.SetSearch(c.Query("search"))
	if sortBy := c.Query("sort_by"); sortBy != "" {
		st.SetSort(sortBy, c.Query("sort_dir", "desc") != "asc")
	}
	st.SetPageSize(c.QueryInt("page_size", defaultPageSize))
	st.SetPage(c.QueryInt("page", 1))

	page := st.CurrentPage()
	return response.Success(c, "DEX tokens fetched successfully", page.Items, page.Pagination)
}

// POST /api/v1/dex/tokens/refresh — reset all attachments to loading
// and re-enrich; returns immediately.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	count, err := h.Service.Refresh(c.Context())
	if err != nil {
		return response.Error(c, "Failed to refresh DEX tokens", 500, nil)
	}
	return response.Success(c, "Market data refresh started", fiber.Map{"tokens": count}, nil)
}

// GET /api/v1/dex/tokens/:token_id
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("token_id"))
	if err != nil {
		return response.Error(c, "Invalid token_id format", 400, nil)
	}
	token, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		if err.Error() == "Token not found" {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Token fetched successfully", tokenRow{
		DexToken:   *token,
		MarketData: h.Service.Enricher.Snapshot(token.ID.String()),
	}, nil)
}

// POST /api/v1/dex/tokens/submit
func (h *Handlers) Submit(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	for _, f := range []string{"name", "symbol", "contract_address", "network"} {
		if body[f] == nil || body[f] == "" {
			return response.Error(c, fmt.Sprintf("Missing required field: %s", f), 400, nil)
		}
	}

	token, err := h.Service.Submit(c.Context(), SubmitInput{
		Name:            asString(body["name"]),
		Symbol:          asString(body["symbol"]),
		ContractAddress: asString(body["contract_address"]),
		Network:         asString(body["network"]),
		LogoURL:         asString(body["logo_url"]),
	})
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}

	return response.SuccessCreated(c, "Token submitted for review", token, nil)
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
