package tweetsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/Dhairyash-1/videotube-api/internal/common"
)

func tweetCursor(id, owner primitive.ObjectID, content string) bson.D {
	return mtest.CreateCursorResponse(0, "videotube.tweets", mtest.FirstBatch, bson.D{
		{Key: "_id", Value: id},
		{Key: "content", Value: content},
		{Key: "owner", Value: owner},
	})
}

func TestTweetService(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	owner := primitive.NewObjectID()

	mt.Run("create", func(mt *mtest.T) {
		svc := NewTweetService(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(), tweetCursor(id, owner, "hello"))

		tweet, err := svc.Create(ctx, owner, "hello")
		require.NoError(mt, err)
		assert.Equal(mt, id, tweet.ID)
		assert.Equal(mt, owner, tweet.Owner)
	})

	mt.Run("update by owner", func(mt *mtest.T) {
		svc := NewTweetService(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			tweetCursor(id, owner, "hello"),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: id}, {Key: "content", Value: "edited"}, {Key: "owner", Value: owner},
			}}),
		)

		tweet, err := svc.Update(ctx, owner, id, "edited")
		require.NoError(mt, err)
		assert.Equal(mt, "edited", tweet.Content)
	})

	mt.Run("delete by another user is forbidden", func(mt *mtest.T) {
		svc := NewTweetService(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(tweetCursor(id, owner, "hello"))

		err := svc.Delete(ctx, primitive.NewObjectID(), id)
		assert.Equal(mt, common.StatusForbidden, common.StatusOf(err))
		assert.Len(mt, mt.GetAllStartedEvents(), 1)
	})

	mt.Run("delete missing tweet is not found", func(mt *mtest.T) {
		svc := NewTweetService(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "videotube.tweets", mtest.FirstBatch))

		assert.ErrorIs(mt, svc.Delete(ctx, owner, primitive.NewObjectID()), ErrTweetNotFound)
	})

	mt.Run("delete removes likes", func(mt *mtest.T) {
		svc := NewTweetService(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			tweetCursor(id, owner, "hello"),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}),
		)

		require.NoError(mt, svc.Delete(ctx, owner, id))
		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 3)
		assert.Equal(mt, "likes", events[2].Command.Lookup("delete").StringValue())
	})
}
