package engagement

import (
	"context"
	"errors"
	"log"
	"strings"

	"tastygram/db"
	"tastygram/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoStore keeps the like mirror and the recipe's running aggregates
// consistent by wrapping the writes in a multi-document transaction.
// On deployments without transaction support (standalone mongod) it
// degrades to sequential writes: a failed mirror write is logged and
// skipped rather than rolled back.
type mongoStore struct{}

// MongoStore returns the Store backed by the shared collections.
func MongoStore() Store {
	return mongoStore{}
}

func recipeFilter(recipeID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return nil, ErrRecipeNotFound
	}
	return bson.M{"_id": oid}, nil
}

func (mongoStore) withTxn(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := db.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// transactionsUnsupported detects the standalone-deployment error so
// callers can fall back to plain writes.
func transactionsUnsupported(err error) bool {
	if err == nil {
		return false
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == 20 {
		return true
	}
	return strings.Contains(err.Error(), "Transaction numbers are only allowed")
}

func (mongoStore) LikeExists(ctx context.Context, recipeID, userID string) (bool, error) {
	count, err := db.LikesCollection.CountDocuments(ctx, bson.M{"recipeId": recipeID, "userId": userID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s mongoStore) CreateLike(ctx context.Context, like models.Like, mirror models.UserLike) error {
	filter, err := recipeFilter(like.RecipeID)
	if err != nil {
		return err
	}

	write := func(sc context.Context, mirrorBestEffort bool) error {
		if _, err := db.LikesCollection.InsertOne(sc, like); err != nil {
			return err
		}
		if _, err := db.UserLikesCollection.InsertOne(sc, mirror); err != nil {
			if !mirrorBestEffort {
				return err
			}
			log.Printf("⚠️ like mirror write failed for recipe %s user %s: %v", like.RecipeID, like.UserID, err)
		}
		_, err := db.RecipeCollection.UpdateOne(sc, filter, bson.M{"$inc": bson.M{"likesCount": 1}})
		return err
	}

	txnErr := s.withTxn(ctx, func(sc mongo.SessionContext) error {
		return write(sc, false)
	})
	if !transactionsUnsupported(txnErr) {
		return txnErr
	}
	return write(ctx, true)
}

func (s mongoStore) DeleteLike(ctx context.Context, recipeID, userID string) error {
	filter, err := recipeFilter(recipeID)
	if err != nil {
		return err
	}

	write := func(sc context.Context, mirrorBestEffort bool) error {
		if _, err := db.LikesCollection.DeleteOne(sc, bson.M{"recipeId": recipeID, "userId": userID}); err != nil {
			return err
		}
		if _, err := db.UserLikesCollection.DeleteOne(sc, bson.M{"userId": userID, "recipeId": recipeID}); err != nil {
			if !mirrorBestEffort {
				return err
			}
			log.Printf("⚠️ like mirror delete failed for recipe %s user %s: %v", recipeID, userID, err)
		}
		// Floors the counter at zero.
		guarded := bson.M{"_id": filter["_id"], "likesCount": bson.M{"$gt": 0}}
		_, err := db.RecipeCollection.UpdateOne(sc, guarded, bson.M{"$inc": bson.M{"likesCount": -1}})
		return err
	}

	txnErr := s.withTxn(ctx, func(sc mongo.SessionContext) error {
		return write(sc, false)
	})
	if !transactionsUnsupported(txnErr) {
		return txnErr
	}
	return write(ctx, true)
}

func (mongoStore) LikeCount(ctx context.Context, recipeID string) (int64, error) {
	return db.LikesCollection.CountDocuments(ctx, bson.M{"recipeId": recipeID})
}

func (mongoStore) RecipeTitle(ctx context.Context, recipeID string) (string, error) {
	filter, err := recipeFilter(recipeID)
	if err != nil {
		return "", err
	}

	var recipe models.Recipe
	err = db.RecipeCollection.FindOne(ctx, filter,
		options.FindOne().SetProjection(bson.M{"title": 1})).Decode(&recipe)
	if err == mongo.ErrNoDocuments {
		return "", ErrRecipeNotFound
	}
	if err != nil {
		return "", err
	}
	return recipe.Title, nil
}

func (s mongoStore) InsertReview(ctx context.Context, review models.Review) error {
	filter, err := recipeFilter(review.RecipeID)
	if err != nil {
		return err
	}

	write := func(sc context.Context) error {
		if _, err := db.ReviewsCollection.InsertOne(sc, review); err != nil {
			return err
		}
		_, err := db.RecipeCollection.UpdateOne(sc, filter, bson.M{
			"$inc": bson.M{"ratingSum": int64(review.Rating), "ratingCount": 1},
		})
		return err
	}

	txnErr := s.withTxn(ctx, func(sc mongo.SessionContext) error {
		return write(sc)
	})
	if !transactionsUnsupported(txnErr) {
		return txnErr
	}
	return write(ctx)
}

func (s mongoStore) DeleteReview(ctx context.Context, recipeID, reviewID string) error {
	filter, err := recipeFilter(recipeID)
	if err != nil {
		return err
	}

	var review models.Review
	err = db.ReviewsCollection.FindOne(ctx, bson.M{"recipeId": recipeID, "reviewId": reviewID}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return ErrReviewNotFound
	}
	if err != nil {
		return err
	}

	write := func(sc context.Context) error {
		res, err := db.ReviewsCollection.DeleteOne(sc, bson.M{"recipeId": recipeID, "reviewId": reviewID})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return ErrReviewNotFound
		}
		_, err = db.RecipeCollection.UpdateOne(sc, filter, bson.M{
			"$inc": bson.M{"ratingSum": -int64(review.Rating), "ratingCount": -1},
		})
		return err
	}

	txnErr := s.withTxn(ctx, func(sc mongo.SessionContext) error {
		return write(sc)
	})
	if !transactionsUnsupported(txnErr) {
		return txnErr
	}
	return write(ctx)
}

func (s mongoStore) DeleteRecipeCascade(ctx context.Context, recipeID string) error {
	filter, err := recipeFilter(recipeID)
	if err != nil {
		return err
	}

	write := func(sc context.Context) error {
		res, err := db.RecipeCollection.DeleteOne(sc, filter)
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return ErrRecipeNotFound
		}
		if _, err := db.LikesCollection.DeleteMany(sc, bson.M{"recipeId": recipeID}); err != nil {
			return err
		}
		if _, err := db.UserLikesCollection.DeleteMany(sc, bson.M{"recipeId": recipeID}); err != nil {
			return err
		}
		_, err = db.ReviewsCollection.DeleteMany(sc, bson.M{"recipeId": recipeID})
		return err
	}

	txnErr := s.withTxn(ctx, func(sc mongo.SessionContext) error {
		return write(sc)
	})
	if !transactionsUnsupported(txnErr) {
		return txnErr
	}
	return write(ctx)
}

func (mongoStore) ReviewsFor(ctx context.Context, recipeID string) ([]models.Review, error) {
	cursor, err := db.ReviewsCollection.Find(ctx, bson.M{"recipeId": recipeID}, db.OptionsFindLatest(200))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

func (mongoStore) RatingAggregates(ctx context.Context, recipeID string) (int64, int64, error) {
	filter, err := recipeFilter(recipeID)
	if err != nil {
		return 0, 0, err
	}

	var recipe models.Recipe
	err = db.RecipeCollection.FindOne(ctx, filter,
		options.FindOne().SetProjection(bson.M{"ratingSum": 1, "ratingCount": 1})).Decode(&recipe)
	if err == mongo.ErrNoDocuments {
		return 0, 0, ErrRecipeNotFound
	}
	if err != nil {
		return 0, 0, err
	}
	return recipe.RatingSum, recipe.RatingCount, nil
}
