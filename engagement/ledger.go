package engagement

import (
	"context"
	"errors"
	"strings"
	"time"

	"tastygram/models"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrEmptyComment    = errors.New("comment must not be empty")
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrReviewNotFound  = errors.New("review not found")
)

// Store is the persistence surface the ledger runs on. The mongo
// implementation keeps both sides of a like mirror and the recipe's
// running aggregates consistent within one call.
type Store interface {
	LikeExists(ctx context.Context, recipeID, userID string) (bool, error)
	CreateLike(ctx context.Context, like models.Like, mirror models.UserLike) error
	DeleteLike(ctx context.Context, recipeID, userID string) error
	LikeCount(ctx context.Context, recipeID string) (int64, error)

	RecipeTitle(ctx context.Context, recipeID string) (string, error)

	InsertReview(ctx context.Context, review models.Review) error
	DeleteReview(ctx context.Context, recipeID, reviewID string) error
	ReviewsFor(ctx context.Context, recipeID string) ([]models.Review, error)
	RatingAggregates(ctx context.Context, recipeID string) (sum, count int64, err error)

	// DeleteRecipeCascade removes the recipe and every dependent
	// record it owns: likes, user-side mirrors, reviews.
	DeleteRecipeCascade(ctx context.Context, recipeID string) error
}

// Ledger owns like toggling and review bookkeeping for recipes.
type Ledger struct {
	store Store
	now   func() time.Time
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

type ToggleResult struct {
	Liked    bool  `json:"liked"`
	NewCount int64 `json:"newCount"`
}

// ToggleLike flips the like state for (recipe, user). It is a toggle,
// not a set: two rapid calls cancel each other out.
func (l *Ledger) ToggleLike(ctx context.Context, recipeID, userID, username string) (ToggleResult, error) {
	if userID == "" {
		return ToggleResult{}, ErrUnauthenticated
	}

	title, err := l.store.RecipeTitle(ctx, recipeID)
	if err != nil {
		return ToggleResult{}, err
	}

	exists, err := l.store.LikeExists(ctx, recipeID, userID)
	if err != nil {
		return ToggleResult{}, err
	}

	if exists {
		if err := l.store.DeleteLike(ctx, recipeID, userID); err != nil {
			return ToggleResult{}, err
		}
	} else {
		now := l.now()
		like := models.Like{
			RecipeID:  recipeID,
			UserID:    userID,
			Username:  username,
			CreatedAt: now,
		}
		mirror := models.UserLike{
			UserID:    userID,
			RecipeID:  recipeID,
			Title:     title,
			CreatedAt: now,
		}
		if err := l.store.CreateLike(ctx, like, mirror); err != nil {
			return ToggleResult{}, err
		}
	}

	count, err := l.store.LikeCount(ctx, recipeID)
	if err != nil {
		return ToggleResult{}, err
	}
	if count < 0 {
		count = 0
	}

	return ToggleResult{Liked: !exists, NewCount: count}, nil
}

// Liked reports whether the user currently likes the recipe.
func (l *Ledger) Liked(ctx context.Context, recipeID, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return l.store.LikeExists(ctx, recipeID, userID)
}

// AddReview appends an immutable review. Rating bounds and a non-empty
// comment are enforced here, not left to the client.
func (l *Ledger) AddReview(ctx context.Context, recipeID, userID, username string, rating int, comment string) (models.Review, error) {
	if userID == "" {
		return models.Review{}, ErrUnauthenticated
	}
	if rating < 1 || rating > 5 {
		return models.Review{}, ErrInvalidRating
	}
	if strings.TrimSpace(comment) == "" {
		return models.Review{}, ErrEmptyComment
	}

	if _, err := l.store.RecipeTitle(ctx, recipeID); err != nil {
		return models.Review{}, err
	}

	review := models.Review{
		ReviewID:  uuid.NewString(),
		RecipeID:  recipeID,
		UserID:    userID,
		Username:  username,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: l.now(),
	}

	if err := l.store.InsertReview(ctx, review); err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// DeleteReview removes a review and its contribution to the recipe's
// rating aggregates.
func (l *Ledger) DeleteReview(ctx context.Context, recipeID, reviewID string) error {
	return l.store.DeleteReview(ctx, recipeID, reviewID)
}

// DeleteRecipe removes a recipe as an aggregate root: the recipe
// document plus all of its like records, mirrors and reviews, so no
// orphaned sub-records accumulate.
func (l *Ledger) DeleteRecipe(ctx context.Context, recipeID string) error {
	return l.store.DeleteRecipeCascade(ctx, recipeID)
}

// Reviews lists a recipe's reviews, newest first.
func (l *Ledger) Reviews(ctx context.Context, recipeID string) ([]models.Review, error) {
	return l.store.ReviewsFor(ctx, recipeID)
}

// AverageRating returns the recipe's current average from its running
// aggregates, nil when it has no reviews.
func (l *Ledger) AverageRating(ctx context.Context, recipeID string) (*float64, error) {
	sum, count, err := l.store.RatingAggregates(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return models.AverageFromAggregates(sum, count), nil
}

// ComputeAverage is the pure form over a review slice: nil for an empty
// set, otherwise the mean rounded to one decimal.
func ComputeAverage(reviews []models.Review) *float64 {
	if len(reviews) == 0 {
		return nil
	}
	var sum int64
	for _, review := range reviews {
		sum += int64(review.Rating)
	}
	return models.AverageFromAggregates(sum, int64(len(reviews)))
}
