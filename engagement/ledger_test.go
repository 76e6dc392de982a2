package engagement

import (
	"context"
	"testing"
	"time"

	"tastygram/models"
)

// memStore is an in-memory Store that keeps both sides of the mirror,
// so tests can assert the pairing invariant directly.
type memStore struct {
	recipes   map[string]string          // recipeID -> title
	likes     map[string]models.Like     // recipeID|userID
	mirrors   map[string]models.UserLike // userID|recipeID
	reviews   map[string]models.Review   // reviewID
	ratingSum map[string]int64
	ratingCnt map[string]int64
}

func newMemStore() *memStore {
	return &memStore{
		recipes:   map[string]string{},
		likes:     map[string]models.Like{},
		mirrors:   map[string]models.UserLike{},
		reviews:   map[string]models.Review{},
		ratingSum: map[string]int64{},
		ratingCnt: map[string]int64{},
	}
}

func likeKey(recipeID, userID string) string { return recipeID + "|" + userID }

func (s *memStore) LikeExists(_ context.Context, recipeID, userID string) (bool, error) {
	_, ok := s.likes[likeKey(recipeID, userID)]
	return ok, nil
}

func (s *memStore) CreateLike(_ context.Context, like models.Like, mirror models.UserLike) error {
	s.likes[likeKey(like.RecipeID, like.UserID)] = like
	s.mirrors[likeKey(mirror.UserID, mirror.RecipeID)] = mirror
	return nil
}

func (s *memStore) DeleteLike(_ context.Context, recipeID, userID string) error {
	delete(s.likes, likeKey(recipeID, userID))
	delete(s.mirrors, likeKey(userID, recipeID))
	return nil
}

func (s *memStore) LikeCount(_ context.Context, recipeID string) (int64, error) {
	var n int64
	for _, like := range s.likes {
		if like.RecipeID == recipeID {
			n++
		}
	}
	return n, nil
}

func (s *memStore) RecipeTitle(_ context.Context, recipeID string) (string, error) {
	title, ok := s.recipes[recipeID]
	if !ok {
		return "", ErrRecipeNotFound
	}
	return title, nil
}

func (s *memStore) InsertReview(_ context.Context, review models.Review) error {
	s.reviews[review.ReviewID] = review
	s.ratingSum[review.RecipeID] += int64(review.Rating)
	s.ratingCnt[review.RecipeID]++
	return nil
}

func (s *memStore) DeleteReview(_ context.Context, recipeID, reviewID string) error {
	review, ok := s.reviews[reviewID]
	if !ok || review.RecipeID != recipeID {
		return ErrReviewNotFound
	}
	delete(s.reviews, reviewID)
	s.ratingSum[recipeID] -= int64(review.Rating)
	s.ratingCnt[recipeID]--
	return nil
}

func (s *memStore) ReviewsFor(_ context.Context, recipeID string) ([]models.Review, error) {
	out := []models.Review{}
	for _, review := range s.reviews {
		if review.RecipeID == recipeID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (s *memStore) RatingAggregates(_ context.Context, recipeID string) (int64, int64, error) {
	if _, ok := s.recipes[recipeID]; !ok {
		return 0, 0, ErrRecipeNotFound
	}
	return s.ratingSum[recipeID], s.ratingCnt[recipeID], nil
}

func (s *memStore) DeleteRecipeCascade(_ context.Context, recipeID string) error {
	if _, ok := s.recipes[recipeID]; !ok {
		return ErrRecipeNotFound
	}
	delete(s.recipes, recipeID)
	for k, like := range s.likes {
		if like.RecipeID == recipeID {
			delete(s.likes, k)
		}
	}
	for k, mirror := range s.mirrors {
		if mirror.RecipeID == recipeID {
			delete(s.mirrors, k)
		}
	}
	for k, review := range s.reviews {
		if review.RecipeID == recipeID {
			delete(s.reviews, k)
		}
	}
	delete(s.ratingSum, recipeID)
	delete(s.ratingCnt, recipeID)
	return nil
}

func newTestLedger() (*Ledger, *memStore) {
	store := newMemStore()
	store.recipes["r1"] = "Spaghetti Carbonara"
	ledger := NewLedger(store)
	ledger.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return ledger, store
}

func TestToggleLike_RequiresUser(t *testing.T) {
	ledger, _ := newTestLedger()

	_, err := ledger.ToggleLike(context.Background(), "r1", "", "anon")
	if err != ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestToggleLike_UnknownRecipe(t *testing.T) {
	ledger, _ := newTestLedger()

	_, err := ledger.ToggleLike(context.Background(), "missing", "u1", "alice")
	if err != ErrRecipeNotFound {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestToggleLike_Parity(t *testing.T) {
	ledger, store := newTestLedger()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		result, err := ledger.ToggleLike(ctx, "r1", "u1", "alice")
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}

		wantLiked := i%2 == 1
		if result.Liked != wantLiked {
			t.Errorf("toggle %d: liked = %v, want %v", i, result.Liked, wantLiked)
		}

		_, recipeSide := store.likes[likeKey("r1", "u1")]
		_, userSide := store.mirrors[likeKey("u1", "r1")]
		if recipeSide != wantLiked || userSide != wantLiked {
			t.Errorf("toggle %d: mirror records diverged: recipe-side=%v user-side=%v want %v",
				i, recipeSide, userSide, wantLiked)
		}
	}
}

func TestToggleLike_DoubleClickNetsOut(t *testing.T) {
	ledger, store := newTestLedger()
	ctx := context.Background()

	before, _ := store.LikeCount(ctx, "r1")

	if _, err := ledger.ToggleLike(ctx, "r1", "u1", "alice"); err != nil {
		t.Fatal(err)
	}
	result, err := ledger.ToggleLike(ctx, "r1", "u1", "alice")
	if err != nil {
		t.Fatal(err)
	}

	if result.Liked {
		t.Error("expected liked=false after a pair of toggles")
	}
	if result.NewCount != before {
		t.Errorf("count = %d, want %d (unchanged)", result.NewCount, before)
	}
}

func TestToggleLike_CountsDistinctUsers(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	ledger.ToggleLike(ctx, "r1", "u1", "alice")
	result, err := ledger.ToggleLike(ctx, "r1", "u2", "bob")
	if err != nil {
		t.Fatal(err)
	}
	if result.NewCount != 2 {
		t.Errorf("count = %d, want 2", result.NewCount)
	}
}

func TestAddReview_Validation(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	cases := []struct {
		name    string
		userID  string
		rating  int
		comment string
		wantErr error
	}{
		{"anonymous", "", 4, "great", ErrUnauthenticated},
		{"rating too low", "u1", 0, "great", ErrInvalidRating},
		{"rating too high", "u1", 6, "great", ErrInvalidRating},
		{"empty comment", "u1", 4, "   ", ErrEmptyComment},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.AddReview(ctx, "r1", tc.userID, "alice", tc.rating, tc.comment)
			if err != tc.wantErr {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestAddReview_AveragesFromAggregates(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	avg, err := ledger.AverageRating(ctx, "r1")
	if err != nil {
		t.Fatal(err)
	}
	if avg != nil {
		t.Errorf("average with no reviews = %v, want nil", *avg)
	}

	if _, err := ledger.AddReview(ctx, "r1", "u1", "alice", 5, "superb"); err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.AddReview(ctx, "r1", "u2", "bob", 3, "fine"); err != nil {
		t.Fatal(err)
	}

	avg, err = ledger.AverageRating(ctx, "r1")
	if err != nil {
		t.Fatal(err)
	}
	if avg == nil || *avg != 4.0 {
		t.Errorf("average = %v, want 4.0", avg)
	}
}

func TestDeleteReview_ExcludedFromAverage(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	ledger.AddReview(ctx, "r1", "u1", "alice", 5, "superb")
	low, err := ledger.AddReview(ctx, "r1", "u2", "bob", 1, "burnt")
	if err != nil {
		t.Fatal(err)
	}

	if err := ledger.DeleteReview(ctx, "r1", low.ReviewID); err != nil {
		t.Fatal(err)
	}

	avg, err := ledger.AverageRating(ctx, "r1")
	if err != nil {
		t.Fatal(err)
	}
	if avg == nil || *avg != 5.0 {
		t.Errorf("average after delete = %v, want 5.0", avg)
	}

	reviews, _ := ledger.Reviews(ctx, "r1")
	for _, review := range reviews {
		if review.ReviewID == low.ReviewID {
			t.Error("deleted review still listed")
		}
	}
}

func TestDeleteRecipe_Cascades(t *testing.T) {
	ledger, store := newTestLedger()
	ctx := context.Background()

	ledger.ToggleLike(ctx, "r1", "u1", "alice")
	ledger.AddReview(ctx, "r1", "u2", "bob", 4, "solid")

	if err := ledger.DeleteRecipe(ctx, "r1"); err != nil {
		t.Fatal(err)
	}

	if len(store.likes) != 0 || len(store.mirrors) != 0 || len(store.reviews) != 0 {
		t.Errorf("orphaned records after cascade: likes=%d mirrors=%d reviews=%d",
			len(store.likes), len(store.mirrors), len(store.reviews))
	}
}

func TestComputeAverage(t *testing.T) {
	if avg := ComputeAverage(nil); avg != nil {
		t.Errorf("ComputeAverage(nil) = %v, want nil", *avg)
	}
	if avg := ComputeAverage([]models.Review{}); avg != nil {
		t.Errorf("ComputeAverage(empty) = %v, want nil", *avg)
	}

	avg := ComputeAverage([]models.Review{{Rating: 5}, {Rating: 3}})
	if avg == nil || *avg != 4.0 {
		t.Errorf("ComputeAverage([5 3]) = %v, want 4.0", avg)
	}

	// One-decimal rounding.
	avg = ComputeAverage([]models.Review{{Rating: 5}, {Rating: 4}, {Rating: 4}})
	if avg == nil || *avg != 4.3 {
		t.Errorf("ComputeAverage([5 4 4]) = %v, want 4.3", avg)
	}
}
