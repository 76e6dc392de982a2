package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Recipe struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	ImageURL    string             `bson:"imageUrl" json:"imageUrl"`
	ThumbURL    string             `bson:"thumbUrl,omitempty" json:"thumbUrl,omitempty"`
	Ingredients []string           `bson:"ingredients" json:"ingredients"`
	Steps       string             `bson:"steps" json:"steps"`
	Author      string             `bson:"author" json:"author"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`

	// Running engagement aggregates, updated alongside like/review writes
	// so reads never scan the sub-collections.
	LikesCount  int64 `bson:"likesCount" json:"likesCount"`
	RatingSum   int64 `bson:"ratingSum" json:"-"`
	RatingCount int64 `bson:"ratingCount" json:"ratingCount"`
}

// AverageRating returns nil when the recipe has no reviews, so the
// client can render "no reviews" instead of 0.0.
func (r *Recipe) AverageRating() *float64 {
	return AverageFromAggregates(r.RatingSum, r.RatingCount)
}
