// Package commentsvc implements adding and editing comments on videos.
package commentsvc

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	basesvc "github.com/Dhairyash-1/videotube-api/internal/api/base/service"
	"github.com/Dhairyash-1/videotube-api/internal/api/comment/models"
	"github.com/Dhairyash-1/videotube-api/internal/common"
	"github.com/Dhairyash-1/videotube-api/internal/global"
	"github.com/Dhairyash-1/videotube-api/internal/logger"
)

var (
	ErrCommentNotFound = common.NotFound("Comment not found")
	ErrVideoNotFound   = common.NotFound("Video not found")
)

// CommentService owns the comments collection.
type CommentService struct {
	*basesvc.BaseServiceMongoImpl[models.Comment]
	videos *mongo.Collection
	likes  *mongo.Collection
}

// NewCommentService uses the comments, videos and likes collections of db.
func NewCommentService(db *mongo.Database) *CommentService {
	names := global.MongoDB_ColNames
	return &CommentService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Comment](db.Collection(names.Comments)),
		videos:               db.Collection(names.Videos),
		likes:                db.Collection(names.Likes),
	}
}

// Add comments on a video the actor can see.
func (s *CommentService) Add(ctx context.Context, actor, videoID primitive.ObjectID, content string) (models.Comment, error) {
	visible := bson.M{"_id": videoID, "$or": []bson.M{{"isPublished": true}, {"owner": actor}}}
	count, err := s.videos.CountDocuments(ctx, visible)
	if err != nil {
		return models.Comment{}, common.ConvertMongoError(err)
	}
	if count == 0 {
		return models.Comment{}, ErrVideoNotFound
	}

	return s.InsertOne(ctx, models.Comment{
		Content: content,
		Video:   videoID,
		Owner:   actor,
	})
}

func (s *CommentService) findOwned(ctx context.Context, actor, id primitive.ObjectID, action string) error {
	comment, err := s.FindOneById(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return ErrCommentNotFound
	}
	if err != nil {
		return err
	}
	return basesvc.CheckOwner(comment.Owner, actor, action)
}

// Update replaces the content of an owned comment.
func (s *CommentService) Update(ctx context.Context, actor, id primitive.ObjectID, content string) (models.Comment, error) {
	if err := s.findOwned(ctx, actor, id, "update this comment"); err != nil {
		return models.Comment{}, err
	}
	updated, err := s.UpdateOne(ctx, bson.M{"_id": id, "owner": actor}, &basesvc.UpdateData{
		Set: map[string]interface{}{"content": content},
	})
	if errors.Is(err, common.ErrNotFound) {
		return updated, ErrCommentNotFound
	}
	return updated, err
}

// Delete removes an owned comment and then, best-effort, the likes on it.
func (s *CommentService) Delete(ctx context.Context, actor, id primitive.ObjectID) error {
	if err := s.findOwned(ctx, actor, id, "delete this comment"); err != nil {
		return err
	}
	deleted, err := s.DeleteOne(ctx, bson.M{"_id": id, "owner": actor})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrCommentNotFound
	}

	if _, err := s.likes.DeleteMany(ctx, bson.M{"comment": id}); err != nil {
		logger.WithContext(ctx).WithError(err).WithField("comment_id", id.Hex()).Warn("Failed to delete likes of deleted comment")
	}
	return nil
}
