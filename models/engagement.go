package models

import (
	"math"
	"time"
)

// Like is the recipe-side record: its existence means "this user likes
// this recipe". Keyed uniquely by (recipeId, userId).
type Like struct {
	RecipeID  string    `bson:"recipeId" json:"recipeId"`
	UserID    string    `bson:"userId" json:"userId"`
	Username  string    `bson:"username" json:"username"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// UserLike mirrors a Like under the user, so "recipes I liked" is a
// single-key lookup instead of a scan across all recipes.
type UserLike struct {
	UserID    string    `bson:"userId" json:"userId"`
	RecipeID  string    `bson:"recipeId" json:"recipeId"`
	Title     string    `bson:"title" json:"title"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type Review struct {
	ReviewID  string    `bson:"reviewId" json:"reviewId"`
	RecipeID  string    `bson:"recipeId" json:"recipeId"`
	UserID    string    `bson:"userId" json:"userId"`
	Username  string    `bson:"username" json:"username"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// AverageFromAggregates computes the display rating from a running
// sum/count pair, rounded to one decimal. Nil means no reviews.
func AverageFromAggregates(sum, count int64) *float64 {
	if count <= 0 {
		return nil
	}
	avg := math.Round(float64(sum)/float64(count)*10) / 10
	return &avg
}
