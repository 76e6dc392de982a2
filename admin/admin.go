package admin

import (
	"net/http"

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

func ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cursor, err := db.UserCollection.Find(r.Context(), bson.M{},
		options.Find().SetProjection(bson.M{"hashedPassword": 0}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	defer cursor.Close(r.Context())

	var users []models.User
	if err := cursor.All(r.Context(), &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	utils.RespondWithJSON(w, http.StatusOK, users)
}

func DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("id")

	res, err := db.UserCollection.DeleteOne(r.Context(), bson.M{"userId": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db delete failed")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "user not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}

// DeleteRecipe is the admin override; it cascades like the owner path.
func DeleteRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	if err := ledger.DeleteRecipe(r.Context(), id.Hex()); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db delete failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}

// ListAllReviews flattens every recipe's reviews for the moderation
// view, tagging each with its recipe title.
func ListAllReviews(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cursor, err := db.ReviewsCollection.Find(r.Context(), bson.M{}, db.OptionsFindLatest(500))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to list reviews")
		return
	}
	defer cursor.Close(r.Context())

	var reviews []models.Review
	if err := cursor.All(r.Context(), &reviews); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode reviews")
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	titles := map[string]string{}
	out := make([]utils.M, 0, len(reviews))
	for _, review := range reviews {
		title, ok := titles[review.RecipeID]
		if !ok {
			if oid, err := primitive.ObjectIDFromHex(review.RecipeID); err == nil {
				var recipe models.Recipe
				if db.RecipeCollection.FindOne(r.Context(), bson.M{"_id": oid},
					options.FindOne().SetProjection(bson.M{"title": 1})).Decode(&recipe) == nil {
					title = recipe.Title
				}
			}
			titles[review.RecipeID] = title
		}
		out = append(out, utils.M{
			"review":      review,
			"recipeTitle": title,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// GetAnalytics returns the dashboard totals.
func GetAnalytics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	totalUsers, err := db.UserCollection.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to count users")
		return
	}
	totalRecipes, err := db.RecipeCollection.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to count recipes")
		return
	}
	totalReviews, err := db.ReviewsCollection.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to count reviews")
		return
	}
	totalLikes, err := db.LikesCollection.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to count likes")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"totalUsers":   totalUsers,
		"totalRecipes": totalRecipes,
		"totalReviews": totalReviews,
		"totalLikes":   totalLikes,
	})
}
