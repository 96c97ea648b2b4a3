package handler

import (
	"go-creamery-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IngredientHandler struct {
	service service.InventoryService
}

func NewIngredientHandler(s service.InventoryService) *IngredientHandler {
	return &IngredientHandler{service: s}
}

// CreateIngredient
// POST /api/v1/ingredients
func (h *IngredientHandler) CreateIngredient(c *fiber.Ctx) error {
	var req service.IngredientRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	ingredient, err := h.service.CreateIngredient(c.UserContext(), &req, getUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Ingredient created", ingredient)
}

// UpdateIngredient changes metadata only. Stock and cost move through purchases and adjustments.
// PUT /api/v1/ingredients/:id
func (h *IngredientHandler) UpdateIngredient(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid ingredient ID")
	}
	var req service.IngredientRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	ingredient, err := h.service.UpdateIngredient(c.UserContext(), id, &req, getUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, "Ingredient updated", ingredient)
}

// GET /api/v1/ingredients/:id
func (h *IngredientHandler) GetIngredient(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid ingredient ID")
	}
	ingredient, err := h.service.GetIngredient(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, "", ingredient)
}

// GET /api/v1/ingredients?page=&limit=&search=
func (h *IngredientHandler) ListIngredients(c *fiber.Ctx) error {
	page, err := h.service.ListIngredients(c.UserContext(), listQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, "", page)
}

// AdjustStock
// POST /api/v1/ingredients/:id/adjust
func (h *IngredientHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid ingredient ID")
	}
	var req service.StockAdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	ingredient, err := h.service.AdjustStock(c.UserContext(), id, &req, getUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, "Stock adjusted", ingredient)
}

// RecordPurchase
// POST /api/v1/purchases
func (h *IngredientHandler) RecordPurchase(c *fiber.Ctx) error {
	var req service.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	result, err := h.service.RecordPurchase(c.UserContext(), &req, getUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Purchase recorded", result)
}

// GET /api/v1/purchases?ingredient_id=&page=&limit=
func (h *IngredientHandler) ListPurchases(c *fiber.Ctx) error {
	var ingredientID *uuid.UUID
	if raw := c.Query("ingredient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid ingredient ID")
		}
		ingredientID = &id
	}

	page, err := h.service.ListPurchases(c.UserContext(), ingredientID, listQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, "", page)
}
