package repositories

import (
	"testing"

	"recipebook/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupPostgresMock(t *testing.T) (*GORMRecipeRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return NewGORMRecipeRepository(db), mock
}

func recipeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "category", "ingredients", "instructions", "user_id", "date_added"})
}

func TestFind_NoFilterSelectsEverything(t *testing.T) {
	repo, mock := setupPostgresMock(t)

	mock.ExpectQuery(`SELECT \* FROM "recipes" ORDER BY id`).
		WillReturnRows(recipeRows().
			AddRow(1, "Tea", "Drinks", "water, tea leaves", "Boil and steep", nil, nil).
			AddRow(2, "Toast", nil, "bread", "Toast it", 3, "2024-01-02"))

	recipes, err := repo.Find(models.RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Tea", recipes[0].Title)
	assert.Nil(t, recipes[0].UserID)
	require.NotNil(t, recipes[1].UserID)
	assert.Equal(t, uint(3), *recipes[1].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFind_TermSearchesTitleOrIngredients(t *testing.T) {
	repo, mock := setupPostgresMock(t)

	mock.ExpectQuery(`SELECT \* FROM "recipes" WHERE .*LOWER\(title\) LIKE \$1 .*OR LOWER\(ingredients\) LIKE \$2 .*ORDER BY id`).
		WithArgs("%tea%", "%tea%").
		WillReturnRows(recipeRows())

	recipes, err := repo.Find(models.RecipeFilter{Term: " Tea "})
	require.NoError(t, err)
	assert.NotNil(t, recipes)
	assert.Empty(t, recipes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFind_TermAndCategoryAreCombined(t *testing.T) {
	repo, mock := setupPostgresMock(t)

	mock.ExpectQuery(`SELECT \* FROM "recipes" WHERE .*LOWER\(title\) LIKE \$1 .*LOWER\(ingredients\) LIKE \$2 .*AND LOWER\(category\) LIKE \$3 .*ORDER BY id`).
		WithArgs("%tea%", "%tea%", "%drink%").
		WillReturnRows(recipeRows().AddRow(1, "Tea", "Drinks", "water, tea leaves", "Boil and steep", nil, nil))

	recipes, err := repo.Find(models.RecipeFilter{Term: "tea", Category: "Drink"})
	require.NoError(t, err)
	assert.Len(t, recipes, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFind_CategoryOnly(t *testing.T) {
	repo, mock := setupPostgresMock(t)

	mock.ExpectQuery(`SELECT \* FROM "recipes" WHERE LOWER\(category\) LIKE \$1 .*ORDER BY id`).
		WithArgs("%dessert%").
		WillReturnRows(recipeRows())

	_, err := repo.Find(models.RecipeFilter{Category: "Dessert"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := setupPostgresMock(t)

	mock.ExpectQuery(`SELECT \* FROM "recipes" WHERE "recipes"."id" = \$1`).
		WillReturnRows(recipeRows())

	_, err := repo.GetByID(42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%tea%", containsPattern("TeA"))
	assert.Equal(t, `%50\%\_off%`, containsPattern("50%_OFF"))
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}
