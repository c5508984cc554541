package nfts

import (
	"encoding/json"
	"fmt"

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

const (
	defaultPageSize = 15
	maxPageSize     = 50
)

// No lifecycle window on NFTs: no status filter, just blockchain.
var nftPipeline = pipeline.Config[models.NFT]{
	SearchFields: []func(models.NFT) string{
		func(n models.NFT) string { return n.Name },
		func(n models.NFT) string { return n.Symbol },
		func(n models.NFT) string { return n.Description },
	},
	Categorical: map[string]func(models.NFT) string{
		"blockchain": func(n models.NFT) string { return n.Blockchain },
	},
	PageSize:    defaultPageSize,
	MaxPageSize: maxPageSize,
}

// GET /api/v1/nfts — search, blockchain, page, page_size
func (h *Handlers) Index(c *fiber.Ctx) error {
	nfts, err := h.Service.FetchCollection(c.Context())
	if err != nil {
		return response.Error(c, "Failed to fetch NFTs", 500, nil)
	}

	st := pipeline.NewState(nftPipeline)
	st.DataLoaded(nfts)
	st.SetSearch(c.Query("search"))
	st.SetFilter("blockchain", c.Query("blockchain", pipeline.FilterAll))
	st.SetPageSize(c.QueryInt("page_size", defaultPageSize))
	st.SetPage(c.QueryInt("page", 1))

	page := st.CurrentPage()
	return response.Success(c, "NFTs fetched successfully", page.Items, page.Pagination)
}

// GET /api/v1/nfts/:nft_id
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("nft_id"))
	if err != nil {
		return response.Error(c, "Invalid nft_id format", 400, nil)
	}
	nft, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		if err.Error() == "NFT not found" {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "NFT fetched successfully", nft, nil)
}

// POST /api/v1/nfts/submit
func (h *Handlers) Submit(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	for _, f := range []string{"name", "blockchain", "image_url"} {
		if body[f] == nil || body[f] == "" {
			return response.Error(c, fmt.Sprintf("Missing required field: %s", f), 400, nil)
		}
	}

	nft, err := h.Service.Submit(c.Context(), SubmitInput{
		Name:           asString(body["name"]),
		Symbol:         asString(body["symbol"]),
		Description:    asString(body["description"]),
		ImageURL:       asString(body["image_url"]),
		MarketplaceURL: asString(body["marketplace_url"]),
		Blockchain:     asString(body["blockchain"]),
		ListingType:    asString(body["listing_type"]),
		FloorPrice:     asFloat(body["floor_price"]),
		CollectionSize: int(asFloat(body["collection_size"])),
		Traits:         asJSONValue(body["traits"]),
	})
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}

	return response.SuccessCreated(c, "NFT submitted for review", nft, nil)
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) float64 {
	f, _ := v.(float64)
	return f
}

func asJSONValue(v interface{}) datatypes.JSON {
	if v == nil {
		return datatypes.JSON([]byte("{}"))
	}
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(b)
}
