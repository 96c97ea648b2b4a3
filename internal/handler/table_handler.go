package handler

import (
	"go-creamery-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TableHandler struct {
	service service.TableService
}

func NewTableHandler(s service.TableService) *TableHandler {
	return &TableHandler{service: s}
}

// POST /api/v1/tables
func (h *TableHandler) AddTable(c *fiber.Ctx) error {
	var req service.TableRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	table, err := h.service.AddTable(c.UserContext(), &req, getUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Table added", table)
}

// GET /api/v1/tables
func (h *TableHandler) ListTables(c *fiber.Ctx) error {
	tables, err := h.service.ListTables(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, "", tables)
}

// PUT /api/v1/tables/:id/active
func (h *TableHandler) SetTableActive(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid table ID")
	}
	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	if err := h.service.SetTableActive(c.UserContext(), id, req.IsActive, getUserID(c)); err != nil {
		return respondError(c, err)
	}
	return ok(c, "Table updated", nil)
}

// VerifyPasscode opens a customer session for a table.
// POST /api/v1/public/tables/verify
func (h *TableHandler) VerifyPasscode(c *fiber.Ctx) error {
	var req service.PasscodeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	tableID, err := h.service.VerifyPasscode(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, "Access Granted", fiber.Map{"table_id": tableID})
}

// POST /api/v1/public/orders
func (h *TableHandler) PlaceOrder(c *fiber.Ctx) error {
	var req service.TableOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	order, err := h.service.PlaceOrder(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Order Sent to Kitchen", order)
}

// GetOrderStatus is polled by the customer's phone.
// GET /api/v1/public/orders/:id/status
func (h *TableHandler) GetOrderStatus(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid order ID")
	}
	status, err := h.service.GetOrderStatus(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, "", fiber.Map{"id": id, "status": status})
}

// GET /api/v1/orders/live
func (h *TableHandler) ListLiveOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListLiveOrders(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, "", orders)
}

// PUT /api/v1/orders/:id/status
func (h *TableHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid order ID")
	}
	var req service.OrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	order, err := h.service.UpdateOrderStatus(c.UserContext(), id, &req, getUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, "Order "+string(order.Status), order)
}
