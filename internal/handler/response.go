package handler

import (
	"errors"
	"log"
	"strconv"

	"go-creamery-pos/internal/repository"
	"go-creamery-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ok(c *fiber.Ctx, message string, data interface{}) error {
	body := fiber.Map{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	return c.JSON(body)
}

func created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": message, "data": data})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

func invalidJSON(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "Invalid JSON")
}

// respondError maps service error kinds onto status codes. Anything
// unrecognised is logged and reported as a generic failure.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInsufficientStock):
		return fail(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		return fail(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, err.Error())
	}
	log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	return fail(c, fiber.StatusInternalServerError, "Internal server error")
}

// getUserID returns the acting user set by the auth middleware.
func getUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return "system"
	}
	return userID
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// listQuery reads ?page=&limit=&search= from the request.
func listQuery(c *fiber.Ctx) repository.ListQuery {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	return repository.ListQuery{Page: page, Limit: limit, Search: c.Query("search")}
}
