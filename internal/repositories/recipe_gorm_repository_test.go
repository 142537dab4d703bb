package repositories_test

import (
	"path/filepath"
	"testing"

	"recipebook/internal/database"
	"recipebook/internal/models"
	"recipebook/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, filepath.Join(t.TempDir(), "recipes.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedRecipes(t *testing.T, repo repositories.RecipeRepository) []models.Recipe {
	t.Helper()
	recipes := []models.Recipe{
		{Title: "Tea", Category: "Drinks", Ingredients: "water, tea leaves", Instructions: "Boil and steep"},
		{Title: "Chocolate Cake", Category: "Dessert", Ingredients: "flour, cocoa, sugar", Instructions: "Bake"},
		{Title: "Iced Tea", Category: "Drinks", Ingredients: "tea, ice, lemon", Instructions: "Chill"},
		{Title: "Toast", Ingredients: "bread", Instructions: "Toast it"},
	}
	for i := range recipes {
		require.NoError(t, repo.Create(&recipes[i]))
	}
	return recipes
}

func titles(recipes []models.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Title)
	}
	return out
}

func TestGORMRecipeRepository_CreateAndGet(t *testing.T) {
	repo := repositories.NewGORMRecipeRepository(newTestDB(t))

	owner := uint(4)
	recipe := models.Recipe{
		Title:        "Pancakes",
		Category:     "Breakfast",
		Ingredients:  "flour, milk, egg",
		Instructions: "Whisk and fry",
		UserID:       &owner,
		DateAdded:    "2024-05-01",
	}
	require.NoError(t, repo.Create(&recipe))
	assert.NotZero(t, recipe.ID)

	got, err := repo.GetByID(recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe, *got)

	_, err = repo.GetByID(recipe.ID + 100)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMRecipeRepository_Find(t *testing.T) {
	repo := repositories.NewGORMRecipeRepository(newTestDB(t))
	seedRecipes(t, repo)

	tests := []struct {
		name   string
		filter models.RecipeFilter
		want   []string
	}{
		{"no filter returns all in insertion order", models.RecipeFilter{}, []string{"Tea", "Chocolate Cake", "Iced Tea", "Toast"}},
		{"term matches title or ingredients", models.RecipeFilter{Term: "TEA"}, []string{"Tea", "Iced Tea"}},
		{"term matches ingredients only", models.RecipeFilter{Term: "cocoa"}, []string{"Chocolate Cake"}},
		{"category substring", models.RecipeFilter{Category: "dess"}, []string{"Chocolate Cake"}},
		{"term and category", models.RecipeFilter{Term: "lemon", Category: "drinks"}, []string{"Iced Tea"}},
		{"term and category exclude", models.RecipeFilter{Term: "tea", Category: "Dessert"}, []string{}},
		{"nothing matches", models.RecipeFilter{Term: "garlic"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Find(tt.filter)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestGORMRecipeRepository_FindTreatsWildcardsLiterally(t *testing.T) {
	repo := repositories.NewGORMRecipeRepository(newTestDB(t))
	require.NoError(t, repo.Create(&models.Recipe{Title: "100% Juice", Ingredients: "oranges", Instructions: "Squeeze"}))
	require.NoError(t, repo.Create(&models.Recipe{Title: "1000 Island", Ingredients: "mayo_base", Instructions: "Stir"}))

	got, err := repo.Find(models.RecipeFilter{Term: "100%"})
	require.NoError(t, err)
	assert.Equal(t, []string{"100% Juice"}, titles(got))

	got, err = repo.Find(models.RecipeFilter{Term: "o_b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1000 Island"}, titles(got))
}

func TestFindFoldsNonASCIICaseOnEveryBackend(t *testing.T) {
	backends := map[string]repositories.RecipeRepository{
		"sqlite": repositories.NewGORMRecipeRepository(newTestDB(t)),
		"memory": repositories.NewMockRecipeRepository(),
	}
	filters := []struct {
		filter models.RecipeFilter
		want   []string
	}{
		{models.RecipeFilter{Term: "crème"}, []string{"CRÈME BRÛLÉE"}},
		{models.RecipeFilter{Term: "ÄPFEL"}, []string{"Strudel"}},
		{models.RecipeFilter{Category: "dessert"}, []string{"CRÈME BRÛLÉE", "Strudel"}},
		{models.RecipeFilter{Category: "ÉTÉ"}, []string{"Gazpacho"}},
	}

	for name, repo := range backends {
		t.Run(name, func(t *testing.T) {
			for _, r := range []models.Recipe{
				{Title: "CRÈME BRÛLÉE", Category: "DESSERT", Ingredients: "cream, sugar", Instructions: "Torch"},
				{Title: "Strudel", Category: "Dessert", Ingredients: "Äpfel, Teig", Instructions: "Roll"},
				{Title: "Gazpacho", Category: "Soupe d'été", Ingredients: "tomato", Instructions: "Blend"},
			} {
				r := r
				require.NoError(t, repo.Create(&r))
			}
			for _, tc := range filters {
				found, err := repo.Find(tc.filter)
				require.NoError(t, err)
				assert.Equal(t, tc.want, titles(found), "filter %+v", tc.filter)
			}
		})
	}
}

func TestGORMRecipeRepository_Update(t *testing.T) {
	repo := repositories.NewGORMRecipeRepository(newTestDB(t))

	owner := uint(2)
	recipe := models.Recipe{Title: "Soup", Category: "Main Course", Ingredients: "water", Instructions: "Boil", UserID: &owner, DateAdded: "2024-01-01"}
	require.NoError(t, repo.Create(&recipe))

	other := uint(99)
	changed := models.Recipe{ID: recipe.ID, Title: "Tomato Soup", Category: "", Ingredients: "water, tomato", Instructions: "Simmer", UserID: &other, DateAdded: "2030-12-31"}
	require.NoError(t, repo.Update(&changed))

	got, err := repo.GetByID(recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tomato Soup", got.Title)
	assert.Equal(t, "", got.Category)
	assert.Equal(t, "water, tomato", got.Ingredients)
	assert.Equal(t, "Simmer", got.Instructions)
	assert.Equal(t, &owner, got.UserID)
	assert.Equal(t, "2024-01-01", got.DateAdded)

	err = repo.Update(&models.Recipe{ID: recipe.ID + 50, Title: "x", Ingredients: "y", Instructions: "z"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMRecipeRepository_DeleteNeverReusesIDs(t *testing.T) {
	repo := repositories.NewGORMRecipeRepository(newTestDB(t))

	first := models.Recipe{Title: "A", Ingredients: "a", Instructions: "a"}
	second := models.Recipe{Title: "B", Ingredients: "b", Instructions: "b"}
	require.NoError(t, repo.Create(&first))
	require.NoError(t, repo.Create(&second))

	require.NoError(t, repo.Delete(second.ID))
	_, err := repo.GetByID(second.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(second.ID), repositories.ErrNotFound)

	third := models.Recipe{Title: "C", Ingredients: "c", Instructions: "c"}
	require.NoError(t, repo.Create(&third))
	assert.Greater(t, third.ID, second.ID)
}

func TestGORMUserRepository(t *testing.T) {
	repo := repositories.NewGORMUserRepository(newTestDB(t))

	user := models.User{Username: "alice", Password: "hash-1"}
	require.NoError(t, repo.Create(&user))
	assert.NotZero(t, user.ID)

	err := repo.Create(&models.User{Username: "alice", Password: "hash-2"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	// Usernames are case-sensitive.
	require.NoError(t, repo.Create(&models.User{Username: "Alice", Password: "hash-3"}))

	got, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "hash-1", got.Password)

	got, err = repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = repo.GetByUsername("bob")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repo.GetByID(999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
