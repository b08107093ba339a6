package basehdl

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dhairyash-1/videotube-api/internal/common"
)

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []any           `json:"errors"`
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

type titleInput struct {
	Title string `json:"title" form:"title" validate:"required,min=5"`
}

func TestHandleResponse(t *testing.T) {
	h := &BaseHandler{}
	app := fiber.New()
	app.Get("/ok", func(c fiber.Ctx) error {
		h.HandleResponse(c, fiber.Map{"a": 1}, nil)
		return nil
	})
	app.Get("/missing", func(c fiber.Ctx) error {
		h.HandleResponse(c, nil, common.ErrNotFound)
		return nil
	})
	app.Get("/boom", func(c fiber.Ctx) error {
		h.HandleResponse(c, nil, errors.New("socket closed"))
		return nil
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	env := decode(t, resp)
	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"a":1}`, string(env.Data))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	env = decode(t, resp)
	assert.Equal(t, 404, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, common.MsgNotFound, env.Message)
	assert.Empty(t, env.Errors)

	SetExposeInternalErrors(false)
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	env = decode(t, resp)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, common.MsgInternalError, env.Message)
}

func TestSafeHandler_RecoversPanic(t *testing.T) {
	h := &BaseHandler{}
	app := fiber.New()
	app.Get("/", func(c fiber.Ctx) error {
		return h.SafeHandler(c, func() error {
			panic("nil map")
		})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestParseAndValidate(t *testing.T) {
	h := &BaseHandler{}
	app := fiber.New()
	app.Post("/", func(c fiber.Ctx) error {
		var in titleInput
		if err := h.ParseAndValidate(c, &in); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, in, nil)
		return nil
	})

	send := func(contentType, body string) (*http.Response, envelope) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", contentType)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp, decode(t, resp)
	}

	resp, env := send("application/json", `{"title":"hello world"}`)
	assert.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"title":"hello world"}`, string(env.Data))

	resp, env = send("application/x-www-form-urlencoded", "title=hello+form")
	assert.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"title":"hello form"}`, string(env.Data))

	resp, env = send("application/json", `{"title":"hey"}`)
	assert.Equal(t, 400, resp.StatusCode)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "title", env.Errors[0].(map[string]any)["field"])

	resp, _ = send("application/json", `{"title":`)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestCurrentUserIDAndParams(t *testing.T) {
	h := &BaseHandler{}
	id := primitive.NewObjectID()
	app := fiber.New()
	app.Get("/anon", func(c fiber.Ctx) error {
		_, err := h.CurrentUserID(c)
		h.HandleResponse(c, nil, err)
		return nil
	})
	app.Get("/me/:videoId", func(c fiber.Ctx) error {
		c.Locals(LocalUserID, id.Hex())
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		videoID, err := h.ParamObjectID(c, "videoId")
		h.HandleResponse(c, fiber.Map{"user": userID.Hex(), "video": videoID.Hex()}, err)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/anon", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/me/not-an-id", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	video := primitive.NewObjectID()
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/me/"+video.Hex(), nil))
	require.NoError(t, err)
	env := decode(t, resp)
	assert.JSONEq(t, `{"user":"`+id.Hex()+`","video":"`+video.Hex()+`"}`, string(env.Data))
}

func TestHandleHealth(t *testing.T) {
	app := fiber.New()
	app.Get("/up", NewSystemHandler(func(context.Context) error { return nil }).HandleHealth)
	app.Get("/down", NewSystemHandler(func(context.Context) error { return errors.New("no primary") }).HandleHealth)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/up", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/down", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}
