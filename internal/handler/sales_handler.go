package handler

import (
	"go-creamery-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SalesHandler struct {
	service service.SalesService
}

func NewSalesHandler(s service.SalesService) *SalesHandler {
	return &SalesHandler{service: s}
}

// Checkout
// POST /api/v1/sales/checkout
func (h *SalesHandler) Checkout(c *fiber.Ctx) error {
	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	sale, err := h.service.Checkout(c.UserContext(), &req, getUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Transaction Successful", sale)
}

// GET /api/v1/sales?page=&limit=&search=
func (h *SalesHandler) ListSales(c *fiber.Ctx) error {
	page, err := h.service.ListSales(c.UserContext(), listQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, "", page)
}

// GET /api/v1/sales/:id
func (h *SalesHandler) GetSale(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid sale ID")
	}
	sale, err := h.service.GetSale(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, "", sale)
}
