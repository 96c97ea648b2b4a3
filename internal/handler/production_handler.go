package handler

import (
	"go-creamery-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductionHandler struct {
	service service.ProductionService
}

func NewProductionHandler(s service.ProductionService) *ProductionHandler {
	return &ProductionHandler{service: s}
}

// Produce runs a recipe. A shortage of any ingredient answers 422 and changes nothing.
// POST /api/v1/production
func (h *ProductionHandler) Produce(c *fiber.Ctx) error {
	var req service.ProduceRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	result, err := h.service.Produce(c.UserContext(), &req, getUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Production successful", result)
}

// GET /api/v1/production?page=&limit=
func (h *ProductionHandler) ListBatches(c *fiber.Ctx) error {
	page, err := h.service.ListBatches(c.UserContext(), listQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, "", page)
}
