package handler

import (
	"go-creamery-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RecipeHandler struct {
	service service.RecipeService
}

func NewRecipeHandler(s service.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: s}
}

// POST /api/v1/recipes
func (h *RecipeHandler) CreateRecipe(c *fiber.Ctx) error {
	var req service.RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	recipe, err := h.service.CreateRecipe(c.UserContext(), &req, getUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Recipe created", recipe)
}

// PUT /api/v1/recipes/:id
func (h *RecipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid recipe ID")
	}
	var req service.RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	recipe, err := h.service.UpdateRecipe(c.UserContext(), id, &req, getUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, "Recipe updated", recipe)
}

// DELETE /api/v1/recipes/:id
func (h *RecipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid recipe ID")
	}
	if err := h.service.DeleteRecipe(c.UserContext(), id, getUserID(c)); err != nil {
		return respondError(c, err)
	}
	return ok(c, "Recipe deleted", nil)
}

// GET /api/v1/recipes/:id
func (h *RecipeHandler) GetRecipe(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid recipe ID")
	}
	recipe, err := h.service.GetRecipe(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, "", recipe)
}

// GET /api/v1/recipes?page=&limit=&search=
func (h *RecipeHandler) ListRecipes(c *fiber.Ctx) error {
	page, err := h.service.ListRecipes(c.UserContext(), listQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, "", page)
}
