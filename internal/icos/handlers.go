package icos

import (
	"encoding/json"
	"fmt"
	"time"

	"tokenlaunch-backend/internal/models"
	"tokenlaunch-backend/internal/pipeline"
	"tokenlaunch-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Handlers struct {
	Service *Service
}

const pageSize = 15

// pipelineConfig binds the listing pipeline to ICO projects. The
// status filter re-derives the lifecycle status per record from the
// passed clock; status is never stored.
func pipelineConfig(now time.Time) pipeline.Config[models.ICOProject] {
	return pipeline.Config[models.ICOProject]{
		SearchFields: []func(models.ICOProject) string{
			func(p models.ICOProject) string { return p.Name },
			func(p models.ICOProject) string { return p.Symbol },
			func(p models.ICOProject) string { return p.Description },
		},
		Categorical: map[string]func(models.ICOProject) string{
			"status": func(p models.ICOProject) string {
				return string(pipeline.Classify(now, p.StartDate, p.EndDate))
			},
			"network": func(p models.ICOProject) string { return p.Network },
		},
		PageSize: pageSize,
	}
}

// icoRow is one index row: the project plus its derived status and
// display badge.
type icoRow struct {
	models.ICOProject
	Status pipeline.Status `json:"status"`
	Badge  pipeline.Badge  `json:"status_badge"`
}

// GET /api/v1/icos — search, status, network, page
func (h *Handlers) Index(c *fiber.Ctx) error {
	projects, err := h.Service.FetchCollection(c.Context())
	if err != nil {
		return response.Error(c, "Failed to fetch ICO projects", 500, nil)
	}

	now := time.Now()
	st := pipeline.NewState(pipelineConfig(now))
	st.DataLoaded(projects)
	st.SetSearch(c.Query("search"))
	st.SetFilter("status", c.Query("status", pipeline.FilterAll))
	st.SetFilter("network", c.Query("network", pipeline.FilterAll))
	st.SetPage(c.QueryInt("page", 1))

	page := st.CurrentPage()
	rows := make([]icoRow, len(page.Items))
	for i, p := range page.Items {
		status := pipeline.Classify(now, p.StartDate, p.EndDate)
		rows[i] = icoRow{ICOProject: p, Status: status, Badge: pipeline.BadgeFor(status)}
	}

	return response.Success(c, "ICO projects fetched successfully", rows, page.Pagination)
}

// GET /api/v1/icos/:ico_id
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("ico_id"))
	if err != nil {
		return response.Error(c, "Invalid ico_id format", 400, nil)
	}
	project, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		if err.Error() == "ICO project not found" {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	now := time.Now()
	status := pipeline.Classify(now, project.StartDate, project.EndDate)
	return response.Success(c, "ICO project fetched successfully", icoRow{
		ICOProject: *project,
		Status:     status,
		Badge:      pipeline.BadgeFor(status),
	}, nil)
}

// POST /api/v1/icos/submit
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

	project, err := h.Service.Submit(c.Context(), SubmitInput{
		Name:        asString(body["name"]),
		Symbol:      asString(body["symbol"]),
		Description: asString(body["description"]),
		LogoURL:     asString(body["logo_url"]),
		WebsiteURL:  asString(body["website_url"]),
		Network:     asString(body["network"]),
		ListingType: asString(body["listing_type"]),
		TokenPrice:  asFloat(body["token_price"]),
		TotalSupply: asFloat(body["total_supply"]),
		Tags:        asJSONArray(body["tags"]),
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}

	return response.SuccessCreated(c, "ICO project submitted for review", project, nil)
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) float64 {
	f, _ := v.(float64)
	return f
}

func asJSONArray(v interface{}) datatypes.JSON {
	if v == nil {
		return datatypes.JSON([]byte("[]"))
	}
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
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
