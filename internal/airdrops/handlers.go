package airdrops

import (
	"encoding/json"
	"fmt"
	"time"

	"tokenlaunch-backend/internal/models"
	"tokenlaunch-backend/internal/pipeline"
	"tokenlaunch-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

const pageSize = 15

func pipelineConfig(now time.Time) pipeline.Config[models.Airdrop] {
	return pipeline.Config[models.Airdrop]{
		SearchFields: []func(models.Airdrop) string{
			func(a models.Airdrop) string { return a.Name },
			func(a models.Airdrop) string { return a.Symbol },
			func(a models.Airdrop) string { return a.Description },
		},
		Categorical: map[string]func(models.Airdrop) string{
			"status": func(a models.Airdrop) string {
				return string(pipeline.Classify(now, a.StartDate, a.EndDate))
			},
			"network": func(a models.Airdrop) string { return a.Network },
		},
		PageSize: pageSize,
	}
}

type airdropRow struct {
	models.Airdrop
	Status pipeline.Status `json:"status"`
	Badge  pipeline.Badge  `json:"status_badge"`
}

// GET /api/v1/airdrops — search, status, network, page
func (h *Handlers) Index(c *fiber.Ctx) error {
	airdrops, err := h.Service.FetchCollection(c.Context())
	if err != nil {
		return response.Error(c, "Failed to fetch airdrops", 500, nil)
	}

	now := time.Now()
	st := pipeline.NewState(pipelineConfig(now))
	st.DataLoaded(airdrops)
	st.SetSearch(c.Query("search"))
	st.SetFilter("status", c.Query("status", pipeline.FilterAll))
	st.SetFilter("network", c.Query("network", pipeline.FilterAll))
	st.SetPage(c.QueryInt("page", 1))

	page := st.CurrentPage()
	rows := make([]airdropRow, len(page.Items))
	for i, a := range page.Items {
		status := pipeline.Classify(now, a.StartDate, a.EndDate)
		rows[i] = airdropRow{Airdrop: a, Status: status, Badge: pipeline.BadgeFor(status)}
	}

	return response.Success(c, "Airdrops fetched successfully", rows, page.Pagination)
}

// GET /api/v1/airdrops/:airdrop_id
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("airdrop_id"))
	if err != nil {
		return response.Error(c, "Invalid airdrop_id format", 400, nil)
	}
	airdrop, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		if err.Error() == "Airdrop not found" {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	status := pipeline.Classify(time.Now(), airdrop.StartDate, airdrop.EndDate)
	return response.Success(c, "Airdrop fetched successfully", airdropRow{
		Airdrop: *airdrop,
		Status:  status,
		Badge:   pipeline.BadgeFor(status),
	}, nil)
}

// POST /api/v1/airdrops/submit
func (h *Handlers) Submit(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	for _, f := range []string{"name", "symbol", "network"} {
		if body[f] == nil || body[f] == "" {
			return response.Error(c, fmt.Sprintf("Missing required field: %s", f), 400, nil)
		}
	}

	start, err := parseDate(body["start_date"])
	if err != nil {
		return response.Error(c, "Invalid start_date format", 400, nil)
	}
	end, err := parseDate(body["end_date"])
	if err != nil {
		return response.Error(c, "Invalid end_date format", 400, nil)
	}

	airdrop, err := h.Service.Submit(c.Context(), SubmitInput{
		Name:        asString(body["name"]),
		Symbol:      asString(body["symbol"]),
		Description: asString(body["description"]),
		LogoURL:     asString(body["logo_url"]),
		ClaimURL:    asString(body["claim_url"]),
		Network:     asString(body["network"]),
		TotalReward: asFloat(body["total_reward"]),
		WinnerCount: int(asFloat(body["winner_count"])),
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}

	return response.SuccessCreated(c, "Airdrop submitted for review", airdrop, nil)
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) float64 {
	f, _ := v.(float64)
	return f
}

func parseDate(v interface{}) (*time.Time, error) {
	s, _ := v.(string)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
