package tweethdl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/Dhairyash-1/videotube-api/internal/api/base/handler"
	"github.com/Dhairyash-1/videotube-api/internal/api/tweet/models"
	tweetsvc "github.com/Dhairyash-1/videotube-api/internal/api/tweet/service"
)

type fakeTweets struct{ created string }

func (f *fakeTweets) Create(_ context.Context, owner primitive.ObjectID, content string) (models.Tweet, error) {
	f.created = content
	return models.Tweet{ID: primitive.NewObjectID(), Owner: owner, Content: content}, nil
}

func (f *fakeTweets) Update(_ context.Context, _, id primitive.ObjectID, content string) (models.Tweet, error) {
	return models.Tweet{ID: id, Content: content}, nil
}

func (f *fakeTweets) Delete(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return tweetsvc.ErrTweetNotFound
}

func TestTweetHandler(t *testing.T) {
	tweets := &fakeTweets{}
	h := NewTweetHandler(tweets)
	user := func(c fiber.Ctx) error {
		c.Locals(basehdl.LocalUserID, primitive.NewObjectID().Hex())
		return c.Next()
	}
	app := fiber.New()
	app.Post("/tweets", user, h.HandleCreate)
	app.Patch("/tweets/:tweetId", user, h.HandleUpdate)
	app.Delete("/tweets/:tweetId", user, h.HandleDelete)

	do := func(method, target, body string) int {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}
	id := primitive.NewObjectID().Hex()

	assert.Equal(t, http.StatusCreated, do(http.MethodPost, "/tweets", `{"content":" first "}`))
	assert.Equal(t, "first", tweets.created)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/tweets", `{"content":""}`))
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/tweets", `{"content":`))
	assert.Equal(t, http.StatusOK, do(http.MethodPatch, "/tweets/"+id, `{"content":"edited"}`))
	assert.Equal(t, http.StatusNotFound, do(http.MethodDelete, "/tweets/"+id, ``))
}
