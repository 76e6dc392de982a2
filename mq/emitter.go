package mq

import (
	"context"
	"encoding/json"
	"log"

	"tastygram/rdx"
)

const EngagementChannel = "engagement"

// Event is a change notification for a recipe's engagement counters.
// Subscribers (the live websocket feed) reconcile their counts from
// these rather than re-reading the collections.
type Event struct {
	Kind        string `json:"kind"` // like, unlike, review, review_deleted, recipe_deleted
	RecipeID    string `json:"recipeId"`
	LikesCount  int64  `json:"likesCount"`
	RatingCount int64  `json:"ratingCount"`
	RatingSum   int64  `json:"ratingSum"`
}

// Emit publishes an engagement event. Failures are logged and dropped:
// the feed is advisory, the collections stay the source of truth.
func Emit(ctx context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("mq: marshal event: %v", err)
		return
	}
	if err := rdx.Publish(ctx, EngagementChannel, payload); err != nil {
		log.Printf("mq: publish %s for %s: %v", ev.Kind, ev.RecipeID, err)
	}
}
