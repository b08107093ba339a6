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

var (
	ErrChannelNotFound = common.NotFound("Channel not found")
	ErrSelfSubscribe   = common.BadRequest("You cannot subscribe to your own channel")
)

// SubscriptionService owns the subscriptions collection.
type SubscriptionService struct {
	*basesvc.BaseServiceMongoImpl[models.Subscription]
	users *mongo.Collection
}

// NewSubscriptionService uses the subscriptions and users collections of db.
func NewSubscriptionService(db *mongo.Database) *SubscriptionService {
	names := global.MongoDB_ColNames
	return &SubscriptionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Subscription](db.Collection(names.Subscriptions)),
		users:                db.Collection(names.Users),
	}
}

// Toggle subscribes subscriber to channel, or unsubscribes when already subscribed.
// It reports whether the subscription exists afterwards.
func (s *SubscriptionService) Toggle(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	if subscriber == channel {
		return false, ErrSelfSubscribe
	}
	count, err := s.users.CountDocuments(ctx, bson.M{"_id": channel})
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	if count == 0 {
		return false, ErrChannelNotFound
	}

	deleted, err := s.DeleteOne(ctx, bson.M{"subscriber": subscriber, "channel": channel})
	if err != nil {
		return false, err
	}
	if deleted > 0 {
		return false, nil
	}

	if _, err := s.InsertOne(ctx, models.Subscription{Subscriber: subscriber, Channel: channel}); err != nil && !common.IsDuplicate(err) {
		return false, err
	}
	return true, nil
}
