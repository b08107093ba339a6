// Package tweetsvc implements channel tweets.
package tweetsvc

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	basesvc "github.com/Dhairyash-1/videotube-api/internal/api/base/service"
	"github.com/Dhairyash-1/videotube-api/internal/api/tweet/models"
	"github.com/Dhairyash-1/videotube-api/internal/common"
	"github.com/Dhairyash-1/videotube-api/internal/global"
	"github.com/Dhairyash-1/videotube-api/internal/logger"
)

// ErrTweetNotFound is returned for unknown tweet ids.
var ErrTweetNotFound = common.NotFound("Tweet not found")

// TweetService owns the tweets collection.
type TweetService struct {
	*basesvc.BaseServiceMongoImpl[models.Tweet]
	likes *mongo.Collection
}

// NewTweetService uses the tweets and likes collections of db.
func NewTweetService(db *mongo.Database) *TweetService {
	names := global.MongoDB_ColNames
	return &TweetService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Tweet](db.Collection(names.Tweets)),
		likes:                db.Collection(names.Likes),
	}
}

// Create posts a tweet for owner.
func (s *TweetService) Create(ctx context.Context, owner primitive.ObjectID, content string) (models.Tweet, error) {
	return s.InsertOne(ctx, models.Tweet{Content: content, Owner: owner})
}

func (s *TweetService) checkOwner(ctx context.Context, actor, id primitive.ObjectID, action string) error {
	tweet, err := s.FindOneById(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return ErrTweetNotFound
	}
	if err != nil {
		return err
	}
	return basesvc.CheckOwner(tweet.Owner, actor, action)
}

// Update replaces the content of an owned tweet.
func (s *TweetService) Update(ctx context.Context, actor, id primitive.ObjectID, content string) (models.Tweet, error) {
	if err := s.checkOwner(ctx, actor, id, "update this tweet"); err != nil {
		return models.Tweet{}, err
	}
	tweet, err := s.UpdateOne(ctx, bson.M{"_id": id, "owner": actor}, &basesvc.UpdateData{
		Set: map[string]interface{}{"content": content},
	})
	if errors.Is(err, common.ErrNotFound) {
		return tweet, ErrTweetNotFound
	}
	return tweet, err
}

// Delete removes an owned tweet and then, best-effort, the likes on it.
func (s *TweetService) Delete(ctx context.Context, actor, id primitive.ObjectID) error {
	if err := s.checkOwner(ctx, actor, id, "delete this tweet"); err != nil {
		return err
	}
	deleted, err := s.DeleteOne(ctx, bson.M{"_id": id, "owner": actor})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrTweetNotFound
	}

	if _, err := s.likes.DeleteMany(ctx, bson.M{"tweet": id}); err != nil {
		logger.WithContext(ctx).WithError(err).WithField("tweet_id", id.Hex()).Warn("Failed to delete likes of deleted tweet")
	}
	return nil
}
