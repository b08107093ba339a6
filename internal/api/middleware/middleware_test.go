package middleware

import (
	"bytes"
	"context"
	"encoding/binary"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dhairyash-1/videotube-api/internal/api/auth/models"
	basehdl "github.com/Dhairyash-1/videotube-api/internal/api/base/handler"
	"github.com/Dhairyash-1/videotube-api/internal/common"
	"github.com/Dhairyash-1/videotube-api/internal/storage/media"
)

type fakeAuth struct {
	user models.User
}

func (f fakeAuth) Authenticate(_ context.Context, token string) (models.User, error) {
	if token != "good" {
		return models.User{}, common.ErrTokenInvalid
	}
	return f.user, nil
}

func whoAmI(c fiber.Ctx) error {
	id, _ := c.Locals(basehdl.LocalUserID).(string)
	return c.SendString("user=" + id)
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return buf.String()
}

func TestAuthMiddleware(t *testing.T) {
	user := models.User{ID: primitive.NewObjectID()}
	app := fiber.New()
	app.Get("/private", AuthMiddleware(fakeAuth{user}), whoAmI)
	app.Get("/public", OptionalAuthMiddleware(fakeAuth{user}), whoAmI)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer bad")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "bearer good")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user="+user.ID.Hex(), body(t, resp))

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "good"})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/public", nil))
	require.NoError(t, err)
	assert.Equal(t, "user=", body(t, resp))

	req = httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer bad")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user=", body(t, resp))
}

func multipartBody(t *testing.T, field, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", "hello"))
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadMiddleware(t *testing.T) {
	tmp := t.TempDir()
	var seen *media.LocalFile
	app := fiber.New()
	app.Post("/upload", UploadMiddleware(tmp,
		UploadField{Name: "avatar", Label: "Avatar", Kind: media.KindImage, Required: true},
		UploadField{Name: "coverImage", Kind: media.KindImage},
	), func(c fiber.Ctx) error {
		seen = UploadedFile(c, "avatar")
		if _, err := os.Stat(seen.Path); err != nil {
			return err
		}
		if UploadedFile(c, "coverImage") != nil {
			return c.SendStatus(http.StatusConflict)
		}
		return c.SendStatus(http.StatusNoContent)
	})

	buf, ct := multipartBody(t, "avatar", "me.PNG", "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload", buf)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.NotNil(t, seen)
	assert.Equal(t, "me.PNG", seen.OriginalName)
	assert.Equal(t, int64(9), seen.Size)
	_, statErr := os.Stat(seen.Path)
	assert.True(t, os.IsNotExist(statErr), "leftover upload should be removed")

	buf, ct = multipartBody(t, "", "", "", nil)
	req = httptest.NewRequest(http.MethodPost, "/upload", buf)
	req.Header.Set("Content-Type", ct)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Avatar file is required")

	buf, ct = multipartBody(t, "avatar", "doc.pdf", "application/pdf", []byte("%PDF"))
	req = httptest.NewRequest(http.MethodPost, "/upload", buf)
	req.Header.Set("Content-Type", ct)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/upload", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// aviClip is a minimal RIFF AVI whose main header declares frames at microsPerFrame.
func aviClip(frames, microsPerFrame uint32) []byte {
	avih := make([]byte, 8+56)
	copy(avih, "avih")
	binary.LittleEndian.PutUint32(avih[4:], 56)
	binary.LittleEndian.PutUint32(avih[8:], microsPerFrame)
	binary.LittleEndian.PutUint32(avih[8+16:], frames)

	list := make([]byte, 12, 12+len(avih))
	copy(list, "LIST")
	binary.LittleEndian.PutUint32(list[4:], uint32(4+len(avih)))
	copy(list[8:], "hdrl")
	list = append(list, avih...)

	riff := make([]byte, 12, 12+len(list))
	copy(riff, "RIFF")
	binary.LittleEndian.PutUint32(riff[4:], uint32(4+len(list)))
	copy(riff[8:], "AVI ")
	return append(riff, list...)
}

func TestUploadMiddleware_VideoDuration(t *testing.T) {
	tmp := t.TempDir()
	var seen *media.LocalFile
	app := fiber.New()
	app.Post("/publish", UploadMiddleware(tmp,
		UploadField{Name: "videoFile", Label: "Video file", Kind: media.KindVideo, Required: true},
	), func(c fiber.Ctx) error {
		seen = UploadedFile(c, "videoFile")
		return c.SendStatus(http.StatusNoContent)
	})

	buf, ct := multipartBody(t, "videoFile", "clip.avi", "video/x-msvideo", aviClip(250, 40000))
	req := httptest.NewRequest(http.MethodPost, "/publish", buf)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.NotNil(t, seen)
	assert.InDelta(t, 10.0, seen.Duration, 1e-9)

	seen = nil
	buf, ct = multipartBody(t, "videoFile", "clip.mkv", "video/x-matroska", []byte("not a matroska file"))
	req = httptest.NewRequest(http.MethodPost, "/publish", buf)
	req.Header.Set("Content-Type", ct)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Could not read the duration of Video file")
	assert.Nil(t, seen)

	left, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, left, "rejected video should not stay in the temp dir")
}

func TestUploadMiddleware_MalformedMultipart(t *testing.T) {
	app := fiber.New()
	app.Post("/cover", UploadMiddleware(t.TempDir(),
		UploadField{Name: "coverImage", Kind: media.KindImage},
	), func(c fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/cover", bytes.NewBufferString("--broken\r\nno headers here"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=other")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Invalid multipart form data")

	// a well-formed form without the optional file passes through
	buf, ct := multipartBody(t, "", "", "", nil)
	req = httptest.NewRequest(http.MethodPost, "/cover", buf)
	req.Header.Set("Content-Type", ct)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimiter(LimiterConfig{Name: "test", Max: 2, Window: time.Minute}))
	app.Get("/", func(c fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, body(t, resp), common.MsgTooManyRequests)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/boom", func(c fiber.Ctx) error { return fiber.NewError(http.StatusTeapot, "short and stout") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body(t, resp), `"success":false`)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Contains(t, body(t, resp), "short and stout")
}
