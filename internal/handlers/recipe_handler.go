package handlers

import (
	"fmt"

	"recipebook/internal/middleware"
	"recipebook/internal/models"
	"recipebook/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RecipeHandler handles HTTP requests for recipes.
type RecipeHandler struct {
	service *services.RecipeService
	log     *zap.Logger
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service *services.RecipeService, log *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the recipe routes. Mutating routes are wrapped
// with requireSession.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router, requireSession fiber.Handler) {
	router.Get("/categories", h.HandleListCategories)

	recipeRoutes := router.Group("/recipes")
	recipeRoutes.Get("/", h.HandleListRecipes)
	recipeRoutes.Get("/:id", h.HandleGetRecipe)
	recipeRoutes.Post("/", requireSession, h.HandleCreateRecipe)
	recipeRoutes.Put("/:id", requireSession, h.HandleUpdateRecipe)
	recipeRoutes.Delete("/:id", requireSession, h.HandleDeleteRecipe)
}

// HandleListCategories returns the suggested category vocabulary.
func (h *RecipeHandler) HandleListCategories(c *fiber.Ctx) error {
	return c.JSON(models.Categories)
}

// HandleListRecipes lists recipes filtered by the search and category query
// parameters.
func (h *RecipeHandler) HandleListRecipes(c *fiber.Ctx) error {
	filter := models.RecipeFilter{
		Term:     c.Query("search"),
		Category: c.Query("category"),
	}
	recipes, err := h.service.List(filter)
	if err != nil {
		return respondError(c, h.log, err, "Could not retrieve recipes")
	}
	return c.JSON(recipes)
}

// HandleGetRecipe retrieves a single recipe by its ID.
func (h *RecipeHandler) HandleGetRecipe(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return badRequest(c, "Invalid recipe ID", err)
	}
	recipe, err := h.service.Get(id)
	if err != nil {
		return respondError(c, h.log, err, "Could not retrieve recipe")
	}
	return c.JSON(recipe)
}

// HandleCreateRecipe creates a recipe owned by the caller.
func (h *RecipeHandler) HandleCreateRecipe(c *fiber.Ctx) error {
	var in models.RecipeInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	id, err := h.service.Create(middleware.CurrentSession(c), in)
	if err != nil {
		return respondError(c, h.log, err, "Could not create recipe")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Recipe created successfully!",
		"id":      id,
	})
}

// HandleUpdateRecipe replaces the editable fields of a recipe the caller owns.
func (h *RecipeHandler) HandleUpdateRecipe(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return badRequest(c, "Invalid recipe ID", err)
	}
	var in models.RecipeInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	if err := h.service.Update(middleware.CurrentSession(c), id, in); err != nil {
		return respondError(c, h.log, err, "Could not update recipe")
	}
	recipe, err := h.service.Get(id)
	if err != nil {
		return respondError(c, h.log, err, "Could not retrieve recipe")
	}
	return c.JSON(fiber.Map{
		"message": "Recipe updated!",
		"recipe":  recipe,
	})
}

// HandleDeleteRecipe deletes a recipe the caller owns.
func (h *RecipeHandler) HandleDeleteRecipe(c *fiber.Ctx) error {
	id, err := recipeID(c)
	if err != nil {
		return badRequest(c, "Invalid recipe ID", err)
	}
	if err := h.service.Delete(middleware.CurrentSession(c), id); err != nil {
		return respondError(c, h.log, err, "Could not delete recipe")
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Recipe %d deleted successfully", id),
	})
}

func recipeID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, err
	}
	if id < 1 {
		return 0, fmt.Errorf("id must be positive, got %d", id)
	}
	return uint(id), nil
}
