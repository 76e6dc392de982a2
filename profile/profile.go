package profile

import (
	"encoding/json"
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

func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromContext(r.Context())

	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userId": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "profile not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

type editRequest struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl"`
}

func EditProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromContext(r.Context())

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updates := bson.M{}
	if strings.TrimSpace(req.Name) != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.Bio != "" {
		updates["bio"] = req.Bio
	}
	if req.AvatarURL != "" {
		updates["avatarUrl"] = req.AvatarURL
	}
	if len(updates) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	_, err := db.UserCollection.UpdateOne(r.Context(), bson.M{"userId": userID}, bson.M{"$set": updates})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "profile update failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "updated"})
}

// GetMyRecipes lists the caller's own recipes by exact author match.
func GetMyRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	username := utils.GetUsernameFromContext(r.Context())

	out, err := recipes.ListForAuthor(r.Context(), username)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// GetMyLikes reads the user-side mirror records, newest first. This is
// the lookup the mirror exists for.
func GetMyLikes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromContext(r.Context())

	cursor, err := db.UserLikesCollection.Find(r.Context(), bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to list likes")
		return
	}
	defer cursor.Close(r.Context())

	var likes []models.UserLike
	if err := cursor.All(r.Context(), &likes); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode likes")
		return
	}
	if likes == nil {
		likes = []models.UserLike{}
	}
	utils.RespondWithJSON(w, http.StatusOK, likes)
}

// GetUserProfile is the public view of another user.
func GetUserProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	username := ps.ByName("username")

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"username": username},
		options.FindOne().SetProjection(bson.M{
			"userId": 1, "username": 1, "name": 1, "bio": 1, "avatarUrl": 1, "userType": 1, "createdAt": 1,
		})).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "user not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}
