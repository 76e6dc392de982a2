package engagement

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"tastygram/mq"
	"tastygram/utils"

	"github.com/julienschmidt/httprouter"
)

var ledger = NewLedger(MongoStore())

func respondLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrRecipeNotFound), errors.Is(err, ErrReviewNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidRating), errors.Is(err, ErrEmptyComment):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "operation failed")
	}
}

func emitEngagement(ctx context.Context, kind, recipeID string) {
	likes, err := ledger.store.LikeCount(ctx, recipeID)
	if err != nil {
		likes = 0
	}
	sum, count, err := ledger.store.RatingAggregates(ctx, recipeID)
	if err != nil {
		sum, count = 0, 0
	}
	mq.Emit(ctx, mq.Event{
		Kind:        kind,
		RecipeID:    recipeID,
		LikesCount:  likes,
		RatingSum:   sum,
		RatingCount: count,
	})
}

// ToggleLike flips the caller's like on a recipe.
func ToggleLike(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	recipeID := ps.ByName("id")
	userID := utils.GetUserIDFromContext(r.Context())
	username := utils.GetUsernameFromContext(r.Context())

	result, err := ledger.ToggleLike(r.Context(), recipeID, userID, username)
	if err != nil {
		respondLedgerError(w, err)
		return
	}

	kind := "like"
	if !result.Liked {
		kind = "unlike"
	}
	emitEngagement(r.Context(), kind, recipeID)

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetLikeStatus returns the current count and whether the caller likes
// the recipe.
func GetLikeStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	recipeID := ps.ByName("id")
	userID := utils.GetUserIDFromContext(r.Context())

	count, err := ledger.store.LikeCount(r.Context(), recipeID)
	if err != nil {
		respondLedgerError(w, err)
		return
	}

	liked, err := ledger.Liked(r.Context(), recipeID, userID)
	if err != nil {
		respondLedgerError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"count": count, "liked": liked})
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// AddReview appends a review to a recipe.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	recipeID := ps.ByName("id")
	userID := utils.GetUserIDFromContext(r.Context())
	username := utils.GetUsernameFromContext(r.Context())

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := ledger.AddReview(r.Context(), recipeID, userID, username, req.Rating, req.Comment)
	if err != nil {
		respondLedgerError(w, err)
		return
	}

	emitEngagement(r.Context(), "review", recipeID)

	utils.RespondWithJSON(w, http.StatusCreated, review)
}

// GetReviews lists a recipe's reviews with the current average rating.
func GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	recipeID := ps.ByName("id")

	reviews, err := ledger.Reviews(r.Context(), recipeID)
	if err != nil {
		respondLedgerError(w, err)
		return
	}

	average, err := ledger.AverageRating(r.Context(), recipeID)
	if err != nil {
		respondLedgerError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"reviews":       reviews,
		"reviewCount":   len(reviews),
		"averageRating": average,
	})
}

// DeleteReview removes a review. Admin only, wired in routes.
func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	recipeID := ps.ByName("id")
	reviewID := ps.ByName("reviewId")

	if err := ledger.DeleteReview(r.Context(), recipeID, reviewID); err != nil {
		respondLedgerError(w, err)
		return
	}

	emitEngagement(r.Context(), "review_deleted", recipeID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}
