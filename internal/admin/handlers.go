package admin

import (
	"context"

	"tokenlaunch-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// PATCH /api/v1/admin/:kind/:id/approve
func (h *Handlers) Approve(c *fiber.Ctx) error {
	return h.moderate(c, h.Service.Approve, "Listing approved")
}

// PATCH /api/v1/admin/:kind/:id/reject
func (h *Handlers) Reject(c *fiber.Ctx) error {
	return h.moderate(c, h.Service.Reject, "Listing rejected")
}

func (h *Handlers) moderate(c *fiber.Ctx, op func(context.Context, string, uuid.UUID) error, message string) error {
	kind := c.Params("kind")
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid id format", 400, nil)
	}

	if err := op(c.Context(), kind, id); err != nil {
		switch err.Error() {
		case "Unknown listing kind":
			return response.Error(c, err.Error(), 400, nil)
		case "Listing not found":
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, message, fiber.Map{"id": id, "kind": kind}, nil)
}
