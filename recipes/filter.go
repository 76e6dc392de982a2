package recipes

import (
	"strings"

	"tastygram/models"
)

// FilterCatalog narrows a recipe list by optional category and title
// substrings, both case-insensitive. Order is preserved and the input
// slice is never mutated.
func FilterCatalog(catalog []models.Recipe, category, search string) []models.Recipe {
	category = strings.ToLower(strings.TrimSpace(category))
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]models.Recipe, 0, len(catalog))
	for _, recipe := range catalog {
		if category != "" && !strings.Contains(strings.ToLower(recipe.Category), category) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(recipe.Title), search) {
			continue
		}
		out = append(out, recipe)
	}
	return out
}

// FilterByAuthor keeps recipes whose author matches exactly, order
// preserved.
func FilterByAuthor(catalog []models.Recipe, author string) []models.Recipe {
	out := make([]models.Recipe, 0)
	for _, recipe := range catalog {
		if recipe.Author == author {
			out = append(out, recipe)
		}
	}
	return out
}
