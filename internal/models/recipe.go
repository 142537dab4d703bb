package models

import "strings"

// DateLayout is the calendar format used for Recipe.DateAdded.
const DateLayout = "2006-01-02"

// Categories is the suggested category vocabulary offered to users.
// The store accepts any category text.
var Categories = []string{
	"Appetizer",
	"Main Course",
	"Dessert",
	"Drinks",
	"Breakfast",
	"Snack",
	"Other",
}

// Recipe represents a single recipe record.
type Recipe struct {
	ID           uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Title        string `json:"title" gorm:"type:text;not null"`
	Category     string `json:"category" gorm:"type:text"`
	Ingredients  string `json:"ingredients" gorm:"type:text;not null"` // comma separated, stored as written
	Instructions string `json:"instructions" gorm:"type:text;not null"`
	UserID       *uint  `json:"user_id,omitempty" gorm:"index"` // owner, multi-user mode only
	DateAdded    string `json:"date_added,omitempty" gorm:"type:varchar(10)"`
}

// IngredientList splits the ingredients text on commas and drops blank items.
func (r Recipe) IngredientList() []string {
	parts := strings.Split(r.Ingredients, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// OwnedBy reports whether the recipe belongs to the given account.
func (r Recipe) OwnedBy(userID uint) bool {
	return r.UserID != nil && *r.UserID == userID
}

// RecipeInput carries the mutable fields of a recipe for create and update.
// The form tags match the web form field names.
type RecipeInput struct {
	Title        string `json:"title" form:"title" validate:"required"`
	Category     string `json:"category" form:"category"`
	Ingredients  string `json:"ingredients" form:"ingredients" validate:"required"`
	Instructions string `json:"instructions" form:"instructions" validate:"required"`
}

// Normalize trims surrounding whitespace from every field. Validation runs on
// the normalized copy; stored text keeps the caller's spacing.
func (in RecipeInput) Normalize() RecipeInput {
	return RecipeInput{
		Title:        strings.TrimSpace(in.Title),
		Category:     strings.TrimSpace(in.Category),
		Ingredients:  strings.TrimSpace(in.Ingredients),
		Instructions: strings.TrimSpace(in.Instructions),
	}
}

// Apply copies the input onto r, leaving ID, owner and creation date alone.
func (in RecipeInput) Apply(r *Recipe) {
	r.Title = in.Title
	r.Category = in.Category
	r.Ingredients = in.Ingredients
	r.Instructions = in.Instructions
}

// InputFrom returns the mutable fields of r as a RecipeInput.
func InputFrom(r Recipe) RecipeInput {
	return RecipeInput{
		Title:        r.Title,
		Category:     r.Category,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
}
