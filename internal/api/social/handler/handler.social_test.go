package socialhdl

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/Dhairyash-1/videotube-api/internal/api/base/handler"
	"github.com/Dhairyash-1/videotube-api/internal/api/social/models"
	"github.com/Dhairyash-1/videotube-api/internal/common"
)

// fakeEdges keeps edges in memory so toggles alternate.
type fakeEdges struct {
	likes map[string]bool
	kinds []models.TargetKind
}

func (f *fakeEdges) Toggle(_ context.Context, kind models.TargetKind, actor, id primitive.ObjectID) (bool, error) {
	f.kinds = append(f.kinds, kind)
	key := actor.Hex() + string(kind) + id.Hex()
	f.likes[key] = !f.likes[key]
	return f.likes[key], nil
}

type fakeSubscriptions struct{}

func (fakeSubscriptions) Toggle(_ context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	if subscriber == channel {
		return false, common.BadRequest("You cannot subscribe to your own channel")
	}
	return true, nil
}

func TestSocialHandler(t *testing.T) {
	edges := &fakeEdges{likes: map[string]bool{}}
	h := NewSocialHandler(edges, fakeSubscriptions{})
	userID := primitive.NewObjectID()
	user := func(c fiber.Ctx) error {
		c.Locals(basehdl.LocalUserID, userID.Hex())
		return c.Next()
	}
	app := fiber.New()
	app.Post("/likes/toggle/v/:videoId", user, h.HandleToggleLike(models.TargetVideo, "videoId"))
	app.Post("/likes/toggle/t/:tweetId", user, h.HandleToggleLike(models.TargetTweet, "tweetId"))
	app.Post("/subscriptions/c/:channelId", user, h.HandleToggleSubscription)

	post := func(target string) (int, map[string]interface{}) {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, target, nil))
		require.NoError(t, err)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &body))
		return resp.StatusCode, body
	}

	video := primitive.NewObjectID().Hex()
	status, body := post("/likes/toggle/v/" + video)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["data"].(map[string]interface{})["isLiked"])

	_, body = post("/likes/toggle/v/" + video)
	assert.Equal(t, false, body["data"].(map[string]interface{})["isLiked"])

	post("/likes/toggle/t/" + primitive.NewObjectID().Hex())
	assert.Equal(t, []models.TargetKind{models.TargetVideo, models.TargetVideo, models.TargetTweet}, edges.kinds)

	status, body = post("/subscriptions/c/" + primitive.NewObjectID().Hex())
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["data"].(map[string]interface{})["isSubscribed"])

	status, _ = post("/subscriptions/c/" + userID.Hex())
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = post("/subscriptions/c/nope")
	assert.Equal(t, http.StatusBadRequest, status)
}
