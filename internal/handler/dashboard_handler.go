package handler

import (
	"strconv"

	"go-creamery-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStockMovement returns inbound/outbound quantities per day for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}

	data, err := h.service.GetStockMovement(c.UserContext(), days)
	if err != nil {
		return respondError(c, err)
	}

	return ok(c, "", fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetAdminStats returns revenue, profit, low stock and best sellers
func (h *DashboardHandler) GetAdminStats(c *fiber.Ctx) error {
	stats, err := h.service.GetAdminStats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, "", stats)
}
