package repositories

import "recipebook/internal/models"

// RecipeRepository defines the interface for recipe data access.
type RecipeRepository interface {
	Find(filter models.RecipeFilter) ([]models.Recipe, error)
	GetByID(id uint) (*models.Recipe, error)
	Create(recipe *models.Recipe) error
	// Update rewrites title, category, ingredients and instructions of the
	// recipe with recipe.ID. Owner and creation date are never written.
	Update(recipe *models.Recipe) error
	Delete(id uint) error
}
