package socialsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/Dhairyash-1/videotube-api/internal/api/social/models"
	"github.com/Dhairyash-1/videotube-api/internal/common"
)

func count(n int32) bson.D {
	return mtest.CreateCursorResponse(0, "videotube.videos", mtest.FirstBatch, bson.D{{Key: "n", Value: n}})
}

func deleted(n int32) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: n})
}

func inserted(doc bson.D) []bson.D {
	return []bson.D{
		mtest.CreateSuccessResponse(),
		mtest.CreateCursorResponse(0, "videotube.likes", mtest.FirstBatch, doc),
	}
}

func TestLikeService_Toggle(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	user := primitive.NewObjectID()
	video := primitive.NewObjectID()

	mt.Run("twice gives liked then unliked", func(mt *mtest.T) {
		svc := NewLikeService(mt.DB)
		mt.AddMockResponses(count(1), deleted(0))
		mt.AddMockResponses(inserted(bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "likedBy", Value: user}, {Key: "video", Value: video}})...)

		liked, err := svc.Toggle(ctx, models.TargetVideo, user, video)
		require.NoError(mt, err)
		assert.True(mt, liked)

		insert := mt.GetAllStartedEvents()[2]
		require.Equal(mt, "insert", insert.CommandName)
		doc := insert.Command.Lookup("documents").Array().Index(0).Value().Document()
		assert.Equal(mt, video, doc.Lookup("video").ObjectID())
		_, err = doc.LookupErr("comment")
		assert.Error(mt, err)

		mt.ClearEvents()
		mt.AddMockResponses(count(1), deleted(1))
		liked, err = svc.Toggle(ctx, models.TargetVideo, user, video)
		require.NoError(mt, err)
		assert.False(mt, liked)
	})

	mt.Run("concurrent insert counts as liked", func(mt *mtest.T) {
		svc := NewLikeService(mt.DB)
		mt.AddMockResponses(count(1), deleted(0),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		liked, err := svc.Toggle(ctx, models.TargetComment, user, primitive.NewObjectID())
		require.NoError(mt, err)
		assert.True(mt, liked)
	})

	mt.Run("missing target is not found", func(mt *mtest.T) {
		svc := NewLikeService(mt.DB)
		mt.AddMockResponses(count(0))

		_, err := svc.Toggle(ctx, models.TargetTweet, user, primitive.NewObjectID())
		assert.Equal(mt, common.StatusNotFound, common.StatusOf(err))
		assert.Equal(mt, "Tweet not found", err.Error())
	})

	mt.Run("unknown kind is rejected", func(mt *mtest.T) {
		svc := NewLikeService(mt.DB)
		_, err := svc.Toggle(ctx, models.TargetKind("playlist"), user, primitive.NewObjectID())
		assert.Equal(mt, common.StatusBadRequest, common.StatusOf(err))
	})
}

func TestSubscriptionService_Toggle(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	user := primitive.NewObjectID()

	mt.Run("self subscribe is bad request", func(mt *mtest.T) {
		svc := NewSubscriptionService(mt.DB)
		_, err := svc.Toggle(ctx, user, user)
		assert.ErrorIs(mt, err, ErrSelfSubscribe)
		assert.Empty(mt, mt.GetAllStartedEvents())
	})

	mt.Run("missing channel is not found", func(mt *mtest.T) {
		svc := NewSubscriptionService(mt.DB)
		mt.AddMockResponses(count(0))
		_, err := svc.Toggle(ctx, user, primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrChannelNotFound)
	})

	mt.Run("subscribe then unsubscribe", func(mt *mtest.T) {
		svc := NewSubscriptionService(mt.DB)
		channel := primitive.NewObjectID()
		mt.AddMockResponses(count(1), deleted(0),
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, "videotube.subscriptions", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()}, {Key: "subscriber", Value: user}, {Key: "channel", Value: channel},
			}),
		)
		subscribed, err := svc.Toggle(ctx, user, channel)
		require.NoError(mt, err)
		assert.True(mt, subscribed)

		mt.AddMockResponses(count(1), deleted(1))
		subscribed, err = svc.Toggle(ctx, user, channel)
		require.NoError(mt, err)
		assert.False(mt, subscribed)
	})
}
