package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dhairyash-1/videotube-api/config"
	authhdl "github.com/Dhairyash-1/videotube-api/internal/api/auth/handler"
	commenthdl "github.com/Dhairyash-1/videotube-api/internal/api/comment/handler"
	playlisthdl "github.com/Dhairyash-1/videotube-api/internal/api/playlist/handler"
	socialhdl "github.com/Dhairyash-1/videotube-api/internal/api/social/handler"
	tweethdl "github.com/Dhairyash-1/videotube-api/internal/api/tweet/handler"
	videohdl "github.com/Dhairyash-1/videotube-api/internal/api/video/handler"
	viewhdl "github.com/Dhairyash-1/videotube-api/internal/api/view/handler"
	"github.com/Dhairyash-1/videotube-api/internal/global"
)

// testApp wires the routes with service-less handlers; only requests rejected before
// reaching a service are safe to send.
func testApp(t *testing.T, rateLimitMax int) *fiber.App {
	t.Helper()
	cfg := &config.Configuration{
		BodyLimitMB:           1,
		CORS_Origins:          "*",
		CORS_AllowCredentials: true,
		RateLimit_Enabled:     rateLimitMax > 0,
		RateLimit_Max:         rateLimitMax,
		RateLimit_Window:      60,
		UploadLimit_Max:       1,
		UploadLimit_Window:    60,
		UploadTmpDir:          t.TempDir(),
	}
	deps := &dependencies{
		userHandler:     authhdl.NewUserHandler(nil, authhdl.CookieConfig{}),
		videoHandler:    videohdl.NewVideoHandler(nil),
		commentHandler:  commenthdl.NewCommentHandler(nil),
		tweetHandler:    tweethdl.NewTweetHandler(nil),
		playlistHandler: playlisthdl.NewPlaylistHandler(nil),
		socialHandler:   socialhdl.NewSocialHandler(nil, nil),
		viewHandler:     viewhdl.NewViewHandler(nil, nil),
	}
	app, err := InitFiberApp(cfg, nil, deps)
	require.NoError(t, err)
	return app
}

func send(t *testing.T, app *fiber.App, method, target string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp, body
}

func TestInitFiberApp_ProtectedRoutes(t *testing.T) {
	app := testApp(t, 0)

	for _, route := range [][2]string{
		{http.MethodGet, "/api/v1/videos"},
		{http.MethodPost, "/api/v1/videos"},
		{http.MethodGet, "/api/v1/users/history"},
		{http.MethodPost, "/api/v1/likes/toggle/v/650000000000000000000000"},
		{http.MethodGet, "/api/v1/dashboard/stats"},
		{http.MethodDelete, "/api/v1/playlist/650000000000000000000000"},
	} {
		resp, body := send(t, app, route[0], route[1])
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, route[1])
		assert.Equal(t, false, body["success"], route[1])
	}
}

func TestInitFiberApp_GlobalMiddleware(t *testing.T) {
	app := testApp(t, 0)

	resp, body := send(t, app, http.MethodGet, "/api/v1/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}

func TestInitFiberApp_RateLimit(t *testing.T) {
	app := testApp(t, 2)

	for i := 0; i < 2; i++ {
		resp, _ := send(t, app, http.MethodGet, "/api/v1/users/current-user")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp, body := send(t, app, http.MethodGet, "/api/v1/users/current-user")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestCollectionModels(t *testing.T) {
	names := global.MongoDB_ColNames
	models := collectionModels()
	for _, name := range []string{names.Users, names.Videos, names.Comments, names.Tweets, names.Playlists, names.Subscriptions, names.Likes} {
		assert.Contains(t, models, name)
	}
	assert.Len(t, models, 7)
}

func TestSkipLimiter(t *testing.T) {
	app := fiber.New()
	app.All("/*", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"skip": skipLimiter(c)})
	})

	resp, body := send(t, app, http.MethodGet, healthPath)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["skip"])

	_, body = send(t, app, http.MethodOptions, "/api/v1/videos")
	assert.Equal(t, true, body["skip"])

	_, body = send(t, app, http.MethodGet, "/api/v1/videos")
	assert.Equal(t, false, body["skip"])
}
