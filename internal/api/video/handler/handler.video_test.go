package videohdl

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/Dhairyash-1/videotube-api/internal/api/base/handler"
	videodto "github.com/Dhairyash-1/videotube-api/internal/api/video/dto"
	"github.com/Dhairyash-1/videotube-api/internal/api/video/models"
	"github.com/Dhairyash-1/videotube-api/internal/common"
	"github.com/Dhairyash-1/videotube-api/internal/storage/media"
)

type fakeVideos struct {
	published *videodto.PublishVideoInput
	updated   *videodto.UpdateVideoInput
	deleted   primitive.ObjectID
}

func (f *fakeVideos) Publish(_ context.Context, owner primitive.ObjectID, in *videodto.PublishVideoInput, videoFile, _ *media.LocalFile) (models.Video, error) {
	f.published = in
	if videoFile == nil {
		return models.Video{}, common.BadRequest("Video file is required")
	}
	return models.Video{ID: primitive.NewObjectID(), Owner: owner, Title: in.Title}, nil
}

func (f *fakeVideos) Update(_ context.Context, actor, id primitive.ObjectID, in *videodto.UpdateVideoInput, _ *media.LocalFile) (models.Video, error) {
	f.updated = in
	return models.Video{ID: id, Owner: actor, Title: in.Title}, nil
}

func (f *fakeVideos) Delete(_ context.Context, _, id primitive.ObjectID) error {
	f.deleted = id
	return nil
}

func (f *fakeVideos) TogglePublish(_ context.Context, _, id primitive.ObjectID) (models.Video, error) {
	return models.Video{ID: id, IsPublished: false}, nil
}

func newApp(videos *fakeVideos) *fiber.App {
	h := NewVideoHandler(videos)
	user := func(c fiber.Ctx) error {
		c.Locals(basehdl.LocalUserID, primitive.NewObjectID().Hex())
		return c.Next()
	}
	app := fiber.New()
	app.Post("/videos", user, h.HandlePublish)
	app.Post("/anonymous", h.HandlePublish)
	app.Patch("/videos/:videoId", user, h.HandleUpdate)
	app.Delete("/videos/:videoId", user, h.HandleDelete)
	app.Patch("/videos/toggle/publish/:videoId", user, h.HandleTogglePublish)
	return app
}

func send(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestHandlePublish(t *testing.T) {
	videos := &fakeVideos{}
	app := newApp(videos)

	status, body := send(t, app, http.MethodPost, "/videos", `{"title":"  Hi  ","description":"long enough description"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "title", body["errors"].([]interface{})[0].(map[string]interface{})["field"])

	status, _ = send(t, app, http.MethodPost, "/videos", `{"title":"<script>x</script>","description":"long enough description"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = send(t, app, http.MethodPost, "/videos", `{"title":" A good title ","description":"long enough description"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Video file is required", body["message"])
	assert.Equal(t, "A good title", videos.published.Title)

	status, _ = send(t, app, http.MethodPost, "/anonymous", `{}`)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHandleUpdateDeleteToggle(t *testing.T) {
	videos := &fakeVideos{}
	app := newApp(videos)
	id := primitive.NewObjectID()

	status, body := send(t, app, http.MethodPatch, "/videos/"+id.Hex(), `{"title":"Renamed video"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Renamed video", body["data"].(map[string]interface{})["title"])

	status, _ = send(t, app, http.MethodPatch, "/videos/not-an-id", `{"title":"Renamed video"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = send(t, app, http.MethodDelete, "/videos/"+id.Hex(), ``)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, videos.deleted)

	status, body = send(t, app, http.MethodPatch, "/videos/toggle/publish/"+id.Hex(), ``)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["data"].(map[string]interface{})["isPublished"])
}
