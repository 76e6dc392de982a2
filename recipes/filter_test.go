package recipes

import (
	"testing"

	"tastygram/models"
)

func sampleCatalog() []models.Recipe {
	return []models.Recipe{
		{Title: "Milk Tart", Category: "Desserts", Author: "Chef Anna"},
		{Title: "Spaghetti Carbonara", Category: "Italian", Author: "Chef Luigi"},
		{Title: "Malva Pudding", Category: "Desserts", Author: "Chef Marco"},
		{Title: "Tiramisu", Category: "Italian", Author: "Chef Luigi"},
		{Title: "Chocolate Brownies", Category: "Desserts", Author: "Chef Anna"},
	}
}

func titles(recipes []models.Recipe) []string {
	out := make([]string, len(recipes))
	for i, recipe := range recipes {
		out[i] = recipe.Title
	}
	return out
}

func TestFilterCatalog_CategoryCaseInsensitive(t *testing.T) {
	got := FilterCatalog(sampleCatalog(), "dessert", "")

	if len(got) != 3 {
		t.Fatalf("got %d recipes %v, want 3", len(got), titles(got))
	}
	want := []string{"Milk Tart", "Malva Pudding", "Chocolate Brownies"}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("result[%d] = %q, want %q (order must be preserved)", i, got[i].Title, title)
		}
	}
}

func TestFilterCatalog_TitleSubstring(t *testing.T) {
	got := FilterCatalog(sampleCatalog(), "", "TART")
	if len(got) != 1 || got[0].Title != "Milk Tart" {
		t.Errorf("got %v, want [Milk Tart]", titles(got))
	}
}

func TestFilterCatalog_BothFilters(t *testing.T) {
	got := FilterCatalog(sampleCatalog(), "italian", "tira")
	if len(got) != 1 || got[0].Title != "Tiramisu" {
		t.Errorf("got %v, want [Tiramisu]", titles(got))
	}
}

func TestFilterCatalog_NoFilters(t *testing.T) {
	catalog := sampleCatalog()
	got := FilterCatalog(catalog, "", "")
	if len(got) != len(catalog) {
		t.Errorf("got %d recipes, want all %d", len(got), len(catalog))
	}
}

func TestFilterCatalog_NoMatch(t *testing.T) {
	got := FilterCatalog(sampleCatalog(), "thai", "")
	if len(got) != 0 {
		t.Errorf("got %v, want empty", titles(got))
	}
}

func TestFilterCatalog_DoesNotMutateInput(t *testing.T) {
	catalog := sampleCatalog()
	FilterCatalog(catalog, "dessert", "")
	if catalog[1].Title != "Spaghetti Carbonara" {
		t.Error("input slice was mutated")
	}
}

func TestFilterByAuthor_ExactMatch(t *testing.T) {
	got := FilterByAuthor(sampleCatalog(), "Chef Luigi")

	if len(got) != 2 {
		t.Fatalf("got %d recipes %v, want 2", len(got), titles(got))
	}
	if got[0].Title != "Spaghetti Carbonara" || got[1].Title != "Tiramisu" {
		t.Errorf("got %v, want [Spaghetti Carbonara Tiramisu]", titles(got))
	}

	// Substring of an author name must not match.
	if got := FilterByAuthor(sampleCatalog(), "Chef"); len(got) != 0 {
		t.Errorf("partial author matched %v, want none", titles(got))
	}
}

func TestParseIngredients(t *testing.T) {
	got := parseIngredients(" Eggs, Pancetta ,, Parmesan Cheese ")
	want := []string{"Eggs", "Pancetta", "Parmesan Cheese"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := parseIngredients(""); got != nil {
		t.Errorf("parseIngredients(\"\") = %v, want nil", got)
	}
}
