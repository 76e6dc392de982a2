package recipes

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tastygram/db"
	"tastygram/engagement"
	"tastygram/models"
	"tastygram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ledger = engagement.NewLedger(engagement.MongoStore())

const uploadFolder = "./static/uploads"

// Get all recipes
func GetRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	query := bson.M{}

	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")
	sortParam := r.URL.Query().Get("sort")
	offsetStr := r.URL.Query().Get("offset")
	limitStr := r.URL.Query().Get("limit")

	// Search by title or description (case-insensitive)
	if search != "" {
		query["$or"] = []bson.M{
			{"title": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	if category != "" {
		query["category"] = bson.M{"$regex": category, "$options": "i"}
	}

	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		offset = 0
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20
	}

	sort := bson.D{{Key: "createdAt", Value: -1}} // default: newest
	switch sortParam {
	case "oldest":
		sort = bson.D{{Key: "createdAt", Value: 1}}
	case "loved":
		sort = bson.D{{Key: "likesCount", Value: -1}}
	case "rated":
		sort = bson.D{{Key: "ratingSum", Value: -1}}
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := db.RecipeCollection.Find(ctx, query, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err = cursor.All(ctx, &recipes); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode recipes")
		return
	}

	if len(recipes) == 0 {
		recipes = []models.Recipe{}
	}

	utils.RespondWithJSON(w, http.StatusOK, recipes)
}

// Get one recipe with its engagement summary
func GetRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	var recipe models.Recipe
	if err := db.RecipeCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "recipe not found")
		return
	}

	liked := false
	if userID := utils.GetUserIDFromContext(r.Context()); userID != "" {
		liked, _ = ledger.Liked(r.Context(), recipe.ID.Hex(), userID)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"recipe":        recipe,
		"averageRating": recipe.AverageRating(),
		"liked":         liked,
	})
}

func parseIngredients(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Create
func CreateRecipe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromContext(r.Context())
	username := utils.GetUsernameFromContext(r.Context())

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "title is required")
		return
	}

	recipe := models.Recipe{
		UserID:      userID,
		Title:       title,
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Ingredients: parseIngredients(r.FormValue("ingredients")),
		Steps:       r.FormValue("steps"),
		Author:      username,
		CreatedAt:   time.Now(),
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		savedName, err := utils.SaveFile(file, header, uploadFolder)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "error saving image")
			return
		}
		recipe.ImageURL = "/static/uploads/" + savedName
		if thumbName, err := utils.SaveThumbnail(uploadFolder, savedName); err == nil {
			recipe.ThumbURL = "/static/uploads/" + thumbName
		}
	}

	result, err := db.RecipeCollection.InsertOne(r.Context(), recipe)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db insert failed")
		return
	}

	recipe.ID = result.InsertedID.(primitive.ObjectID)
	utils.RespondWithJSON(w, http.StatusCreated, recipe)
}

// fetchOwned loads a recipe and checks the caller may modify it.
func fetchOwned(ctx context.Context, w http.ResponseWriter, id primitive.ObjectID) (*models.Recipe, bool) {
	var recipe models.Recipe
	if err := db.RecipeCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "recipe not found")
		return nil, false
	}

	userID := utils.GetUserIDFromContext(ctx)
	role := utils.GetRoleFromContext(ctx)
	if recipe.UserID != userID && role != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "not the recipe owner")
		return nil, false
	}
	return &recipe, true
}

// Update (owner or admin)
func UpdateRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	if _, ok := fetchOwned(r.Context(), w, id); !ok {
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	updates := bson.M{}
	for _, field := range []string{"title", "description", "category", "steps"} {
		if v := r.FormValue(field); v != "" {
			updates[field] = v
		}
	}
	if v := r.FormValue("ingredients"); v != "" {
		updates["ingredients"] = parseIngredients(v)
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		savedName, err := utils.SaveFile(file, header, uploadFolder)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "error saving image")
			return
		}
		updates["imageUrl"] = "/static/uploads/" + savedName
		if thumbName, err := utils.SaveThumbnail(uploadFolder, savedName); err == nil {
			updates["thumbUrl"] = "/static/uploads/" + thumbName
		}
	}

	if len(updates) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	_, err = db.RecipeCollection.UpdateOne(r.Context(), bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db update failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "updated"})
}

// Delete (owner or admin) — cascades to likes, mirrors and reviews.
func DeleteRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	if _, ok := fetchOwned(r.Context(), w, id); !ok {
		return
	}

	if err := ledger.DeleteRecipe(r.Context(), id.Hex()); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db delete failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}

// ListForAuthor returns every recipe by the exact author name, newest
// first, no pagination.
func ListForAuthor(ctx context.Context, author string) ([]models.Recipe, error) {
	cursor, err := db.RecipeCollection.Find(ctx, bson.M{"author": author},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	return recipes, nil
}

// GetRecipesByAuthor serves /recipes/author/:username.
func GetRecipesByAuthor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	recipes, err := ListForAuthor(r.Context(), ps.ByName("username"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, recipes)
}

// GetCategories returns the distinct categories in the catalog.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	values, err := db.RecipeCollection.Distinct(r.Context(), "category", bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	categories := []string{}
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, categories)
}
