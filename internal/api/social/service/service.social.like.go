// Package socialsvc toggles like and subscription edges.
package socialsvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	basesvc "github.com/Dhairyash-1/videotube-api/internal/api/base/service"
	"github.com/Dhairyash-1/videotube-api/internal/api/social/models"
	"github.com/Dhairyash-1/videotube-api/internal/common"
	"github.com/Dhairyash-1/videotube-api/internal/global"
)

// LikeService owns the likes collection.
type LikeService struct {
	*basesvc.BaseServiceMongoImpl[models.Like]
	targets map[models.TargetKind]*mongo.Collection
}

// NewLikeService uses the likes collection and the collections of every like target.
func NewLikeService(db *mongo.Database) *LikeService {
	names := global.MongoDB_ColNames
	return &LikeService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Like](db.Collection(names.Likes)),
		targets: map[models.TargetKind]*mongo.Collection{
			models.TargetVideo:   db.Collection(names.Videos),
			models.TargetComment: db.Collection(names.Comments),
			models.TargetTweet:   db.Collection(names.Tweets),
		},
	}
}

func targetNotFound(kind models.TargetKind) error {
	switch kind {
	case models.TargetVideo:
		return common.NotFound("Video not found")
	case models.TargetComment:
		return common.NotFound("Comment not found")
	}
	return common.NotFound("Tweet not found")
}

// checkTarget fails with NotFound unless the target exists and, for videos, is visible to actor.
func (s *LikeService) checkTarget(ctx context.Context, kind models.TargetKind, actor, id primitive.ObjectID) error {
	collection, ok := s.targets[kind]
	if !ok {
		return common.BadRequest("Unknown like target")
	}
	filter := bson.M{"_id": id}
	if kind == models.TargetVideo {
		filter["$or"] = []bson.M{{"isPublished": true}, {"owner": actor}}
	}
	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if count == 0 {
		return targetNotFound(kind)
	}
	return nil
}

// Toggle likes the target when actor has not liked it yet and unlikes it otherwise.
// It reports whether the like exists afterwards.
func (s *LikeService) Toggle(ctx context.Context, kind models.TargetKind, actor, id primitive.ObjectID) (bool, error) {
	if err := s.checkTarget(ctx, kind, actor, id); err != nil {
		return false, err
	}

	edge := bson.M{"likedBy": actor, string(kind): id}
	deleted, err := s.DeleteOne(ctx, edge)
	if err != nil {
		return false, err
	}
	if deleted > 0 {
		return false, nil
	}

	like := models.Like{LikedBy: actor}
	switch kind {
	case models.TargetVideo:
		like.Video = &id
	case models.TargetComment:
		like.Comment = &id
	case models.TargetTweet:
		like.Tweet = &id
	}
	if _, err := s.InsertOne(ctx, like); err != nil && !common.IsDuplicate(err) {
		return false, err
	}
	// a duplicate means a concurrent toggle created the same edge
	return true, nil
}
