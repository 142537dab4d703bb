package repositories

import (
	"fmt"
	"sync"

	"recipebook/internal/models"
)

// MockRecipeRepository is an in-memory implementation of RecipeRepository.
// IDs are assigned from a counter and are never reused.
type MockRecipeRepository struct {
	recipes []models.Recipe
	nextID  uint
	mu      sync.RWMutex
}

// NewMockRecipeRepository creates a new instance of MockRecipeRepository.
func NewMockRecipeRepository() *MockRecipeRepository {
	return &MockRecipeRepository{
		recipes: make([]models.Recipe, 0),
		nextID:  1,
	}
}

// Find returns the recipes matching filter in insertion order.
func (r *MockRecipeRepository) Find(filter models.RecipeFilter) ([]models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Recipe, 0, len(r.recipes))
	for _, recipe := range r.recipes {
		if filter.Matches(recipe) {
			result = append(result, cloneRecipe(recipe))
		}
	}
	return result, nil
}

// GetByID returns a recipe by its ID.
func (r *MockRecipeRepository) GetByID(id uint) (*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("recipe with ID %d: %w", id, ErrNotFound)
	}
	recipe := cloneRecipe(r.recipes[i])
	return &recipe, nil
}

// Create stores a new recipe and assigns its ID.
func (r *MockRecipeRepository) Create(recipe *models.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recipe.ID = r.nextID
	r.nextID++
	r.recipes = append(r.recipes, cloneRecipe(*recipe))
	return nil
}

// Update rewrites the mutable fields of an existing recipe.
func (r *MockRecipeRepository) Update(recipe *models.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(recipe.ID)
	if i < 0 {
		return fmt.Errorf("recipe with ID %d for update: %w", recipe.ID, ErrNotFound)
	}
	models.InputFrom(*recipe).Apply(&r.recipes[i])
	return nil
}

// Delete removes a recipe by its ID.
func (r *MockRecipeRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("recipe with ID %d for deletion: %w", id, ErrNotFound)
	}
	r.recipes = append(r.recipes[:i], r.recipes[i+1:]...)
	return nil
}

func (r *MockRecipeRepository) indexOf(id uint) int {
	for i := range r.recipes {
		if r.recipes[i].ID == id {
			return i
		}
	}
	return -1
}

// cloneRecipe copies the owner pointer so callers cannot mutate stored state.
func cloneRecipe(recipe models.Recipe) models.Recipe {
	if recipe.UserID != nil {
		owner := *recipe.UserID
		recipe.UserID = &owner
	}
	return recipe
}
