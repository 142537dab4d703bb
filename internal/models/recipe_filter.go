package models

import "strings"

// RecipeFilter selects recipes for listing. Empty fields are ignored.
//
// Term matches title or ingredients, Category matches category. Both are
// case-insensitive substring matches and are combined with AND.
type RecipeFilter struct {
	Term     string `query:"search"`
	Category string `query:"category"`
}

// Normalize trims both terms so that blank terms count as absent.
func (f RecipeFilter) Normalize() RecipeFilter {
	return RecipeFilter{
		Term:     strings.TrimSpace(f.Term),
		Category: strings.TrimSpace(f.Category),
	}
}

// IsEmpty reports whether the filter matches every recipe.
func (f RecipeFilter) IsEmpty() bool {
	n := f.Normalize()
	return n.Term == "" && n.Category == ""
}

// Matches evaluates the filter against a recipe in memory.
func (f RecipeFilter) Matches(r Recipe) bool {
	f = f.Normalize()
	if f.Term != "" && !containsFold(r.Title, f.Term) && !containsFold(r.Ingredients, f.Term) {
		return false
	}
	if f.Category != "" && !containsFold(r.Category, f.Category) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
