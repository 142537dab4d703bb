package repositories

import (
	"errors"
	"fmt"
	"strings"

	"recipebook/internal/models"

	"gorm.io/gorm"
)

// GORMRecipeRepository is a GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	db *gorm.DB
}

// NewGORMRecipeRepository creates a new instance of GORMRecipeRepository.
func NewGORMRecipeRepository(db *gorm.DB) *GORMRecipeRepository {
	return &GORMRecipeRepository{
		db: db,
	}
}

// FilterRecipes is a GORM scope restricting a recipes query to filter.
func FilterRecipes(filter models.RecipeFilter) func(*gorm.DB) *gorm.DB {
	filter = filter.Normalize()
	return func(db *gorm.DB) *gorm.DB {
		if filter.Term != "" {
			pattern := containsPattern(filter.Term)
			db = db.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(ingredients) LIKE ? ESCAPE '\')`, pattern, pattern)
		}
		if filter.Category != "" {
			db = db.Where(`LOWER(category) LIKE ? ESCAPE '\'`, containsPattern(filter.Category))
		}
		return db
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s literally anywhere in a
// lower-cased column.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// Find retrieves all recipes matching filter, oldest first.
func (r *GORMRecipeRepository) Find(filter models.RecipeFilter) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)
	if err := r.db.Scopes(FilterRecipes(filter)).Order("id").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to find recipes: %w", err)
	}
	return recipes, nil
}

// GetByID retrieves a single recipe by its ID.
func (r *GORMRecipeRepository) GetByID(id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipe with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get recipe by ID %d: %w", id, err)
	}
	return &recipe, nil
}

// Create inserts a new recipe and sets its ID.
func (r *GORMRecipeRepository) Create(recipe *models.Recipe) error {
	if err := r.db.Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// Update rewrites the mutable columns of an existing recipe in one statement.
func (r *GORMRecipeRepository) Update(recipe *models.Recipe) error {
	res := r.db.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(map[string]interface{}{
		"title":        recipe.Title,
		"category":     recipe.Category,
		"ingredients":  recipe.Ingredients,
		"instructions": recipe.Instructions,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("recipe with ID %d for update: %w", recipe.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a recipe permanently.
func (r *GORMRecipeRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Recipe{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("recipe with ID %d for deletion: %w", id, ErrNotFound)
	}
	return nil
}
