package viewhdl

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
	basemodels "github.com/Dhairyash-1/videotube-api/internal/api/base/models"
	"github.com/Dhairyash-1/videotube-api/internal/api/view/models"
	viewsvc "github.com/Dhairyash-1/videotube-api/internal/api/view/service"
)

// fakeViews implements the few ViewService methods these tests reach.
type fakeViews struct {
	ViewService
	calls   []string
	listing viewsvc.VideoListing
	caller  primitive.ObjectID
}

func (f *fakeViews) VideoDetail(_ context.Context, videoID, _ primitive.ObjectID) (models.VideoDetail, error) {
	f.calls = append(f.calls, "detail")
	return models.VideoDetail{ID: videoID, Title: "Cats", Views: 1}, nil
}

func (f *fakeViews) ListVideos(_ context.Context, in viewsvc.VideoListing, caller primitive.ObjectID) (*basemodels.PaginateResult[models.VideoCard], error) {
	f.listing, f.caller = in, caller
	return basemodels.NewPaginateResult([]models.VideoCard{{Title: "Cats"}}, in.Page, in.Limit, 1), nil
}

func (f *fakeViews) ChannelProfile(_ context.Context, username string, viewer primitive.ObjectID) (models.ChannelProfile, error) {
	if username != "alice" {
		return models.ChannelProfile{}, viewsvc.ErrChannelNotFound
	}
	return models.ChannelProfile{Username: username, IsSubscribed: !viewer.IsZero()}, nil
}

func (f *fakeViews) WatchHistory(context.Context, primitive.ObjectID) ([]models.VideoCard, error) {
	return []models.VideoCard{}, nil
}

type fakeRecorder struct {
	views *fakeViews
	err   error
}

func (r *fakeRecorder) RecordView(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	r.views.calls = append(r.views.calls, "record")
	return r.err
}

func newTestApp(h *ViewHandler, userID primitive.ObjectID) *fiber.App {
	as := func(c fiber.Ctx) error {
		if !userID.IsZero() {
			c.Locals(basehdl.LocalUserID, userID.Hex())
		}
		return c.Next()
	}
	app := fiber.New()
	app.Get("/users/c/:username", as, h.HandleChannelProfile)
	app.Get("/users/history", as, h.HandleWatchHistory)
	app.Get("/videos", as, h.HandleListVideos)
	app.Get("/videos/:videoId", as, h.HandleVideoDetail)
	return app
}

func get(t *testing.T, app *fiber.App, target string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestHandleVideoDetail_RecordsViewFirst(t *testing.T) {
	views := &fakeViews{}
	h := NewViewHandler(views, &fakeRecorder{views: views})
	app := newTestApp(h, primitive.NewObjectID())

	status, body := get(t, app, "/videos/"+primitive.NewObjectID().Hex())
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Cats", body["data"].(map[string]interface{})["title"])
	assert.Equal(t, []string{"record", "detail"}, views.calls)
}

func TestHandleVideoDetail_HiddenVideo(t *testing.T) {
	views := &fakeViews{}
	h := NewViewHandler(views, &fakeRecorder{views: views, err: viewsvc.ErrVideoNotFound})
	app := newTestApp(h, primitive.NilObjectID)

	status, body := get(t, app, "/videos/"+primitive.NewObjectID().Hex())
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Video not found", body["message"])
	assert.Equal(t, []string{"record"}, views.calls)

	status, _ = get(t, app, "/videos/not-an-id")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHandleListVideos(t *testing.T) {
	views := &fakeViews{}
	caller := primitive.NewObjectID()
	app := newTestApp(NewViewHandler(views, &fakeRecorder{views: views}), caller)

	channel := primitive.NewObjectID()
	status, body := get(t, app, "/videos?page=2&limit=5&query=cats&sortBy=views&sortType=asc&userId="+channel.Hex())
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["data"].(map[string]interface{})["total"])
	assert.Equal(t, viewsvc.VideoListing{
		Page: 2, Limit: 5, Query: "cats", SortBy: "views", SortType: "asc", UserID: channel,
	}, views.listing)
	assert.Equal(t, caller, views.caller)

	for _, bad := range []string{"sortBy=password", "sortType=up", "userId=42"} {
		status, _ = get(t, app, "/videos?"+bad)
		assert.Equal(t, http.StatusBadRequest, status, bad)
	}
}

func TestHandleChannelProfile(t *testing.T) {
	views := &fakeViews{}
	anonymous := newTestApp(NewViewHandler(views, &fakeRecorder{views: views}), primitive.NilObjectID)

	status, body := get(t, anonymous, "/users/c/alice")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["data"].(map[string]interface{})["isSubscribed"])

	status, body = get(t, anonymous, "/users/c/bob")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Channel does not exist", body["message"])

	status, _ = get(t, anonymous, "/users/history")
	assert.Equal(t, http.StatusUnauthorized, status)

	signedIn := newTestApp(NewViewHandler(views, &fakeRecorder{views: views}), primitive.NewObjectID())
	status, body = get(t, signedIn, "/users/c/alice")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["data"].(map[string]interface{})["isSubscribed"])

	status, body = get(t, signedIn, "/users/history")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["data"])
}
