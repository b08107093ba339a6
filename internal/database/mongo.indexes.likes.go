package database

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// likeTargets are the mutually exclusive target fields of a like edge.
var likeTargets = []string{"video", "comment", "tweet"}

// likeIndexModels returns one unique index per like target, partial on the target existing,
// so each (likedBy, target) edge is stored at most once.
func likeIndexModels() []mongo.IndexModel {
	models := make([]mongo.IndexModel, 0, 2*len(likeTargets)+1)
	for _, target := range likeTargets {
		models = append(models, mongo.IndexModel{
			Keys: bson.D{
				{Key: "likedBy", Value: 1},
				{Key: target, Value: 1},
			},
			Options: options.Index().
				SetName("like_" + target + "_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{target: bson.M{"$exists": true}}),
		})
	}
	// like counts are looked up by target alone
	for _, target := range likeTargets {
		models = append(models, mongo.IndexModel{
			Keys: bson.D{{Key: target, Value: 1}},
			Options: options.Index().
				SetName("like_" + target + "_lookup").
				SetPartialFilterExpression(bson.M{target: bson.M{"$exists": true}}),
		})
	}
	// liked videos listing sorts newest first per user
	models = append(models, mongo.IndexModel{
		Keys:    bson.D{{Key: "likedBy", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("like_user_recent"),
	})
	return models
}

// CreateLikeIndexes creates the partial unique indexes on the likes collection.
// They cannot be declared through model tags.
func CreateLikeIndexes(ctx context.Context, likes *mongo.Collection) error {
	for _, model := range likeIndexModels() {
		if _, err := likes.Indexes().CreateOne(ctx, model); err != nil && !isIndexExistsError(err) {
			return err
		}
	}
	return nil
}

// isIndexExistsError reports an index that already exists with the same name or keys.
func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	var cmdErr mongo.CommandError
	// 85 IndexOptionsConflict, 86 IndexKeySpecsConflict
	if errors.As(err, &cmdErr) && (cmdErr.Code == 85 || cmdErr.Code == 86) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "IndexOptionsConflict")
}
