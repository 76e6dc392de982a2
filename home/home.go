package home

import (
	"context"
	"net/http"
	"strings"

	"tastygram/db"
	"tastygram/models"
	"tastygram/recipes"
	"tastygram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetHomeContent handles the dashboard endpoints under /home/:apiRoute
func GetHomeContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	apiRoute := strings.ToLower(ps.ByName("apiRoute"))

	var (
		data interface{}
		err  error
	)

	switch apiRoute {
	case "latest":
		data, err = latestRecipes(r.Context())
	case "most-loved":
		data, err = mostLovedRecipes(r.Context())
	case "categories":
		data, err = recipeCategories(r.Context())
	case "browse":
		data, err = browseCatalog(r.Context(), r.URL.Query().Get("category"), r.URL.Query().Get("search"))
	default:
		utils.RespondWithError(w, http.StatusNotFound, "invalid API route")
		return
	}

	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to fetch data: "+err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, data)
}

func latestRecipes(ctx context.Context) ([]models.Recipe, error) {
	return findRecipes(ctx, db.OptionsFindLatest(8))
}

// mostLovedRecipes ranks by the running like counter.
func mostLovedRecipes(ctx context.Context) ([]models.Recipe, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "likesCount", Value: -1}}).
		SetLimit(8)
	return findRecipes(ctx, opts)
}

func findRecipes(ctx context.Context, opts *options.FindOptions) ([]models.Recipe, error) {
	cursor, err := db.RecipeCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Recipe
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Recipe{}
	}
	return out, nil
}

func recipeCategories(ctx context.Context) ([]string, error) {
	values, err := db.RecipeCollection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	categories := []string{}
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

// browseCatalog loads the catalog and applies the in-memory filter, the
// way the original browse page filtered client-side.
func browseCatalog(ctx context.Context, category, search string) ([]models.Recipe, error) {
	catalog, err := findRecipes(ctx, db.OptionsFindLatest(500))
	if err != nil {
		return nil, err
	}
	return recipes.FilterCatalog(catalog, category, search), nil
}
