//go:build e2e

package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server: API_BASE_URL=http://localhost:8000/api/v1 go test -tags e2e ./cmd/server

const onePixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{baseURL: strings.TrimRight(baseURL, "/"), http: &http.Client{Timeout: 30 * time.Second}}
}

func (c *apiClient) do(t *testing.T, method, path string, body io.Reader, contentType string) (int, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, c.baseURL+path, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func (c *apiClient) json(t *testing.T, method, path string, payload interface{}) (int, envelope) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	return c.do(t, method, path, body, "application/json")
}

func (c *apiClient) register(t *testing.T, username string) (int, envelope) {
	t.Helper()
	png, err := base64.StdEncoding.DecodeString(onePixelPNG)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"fullName": "E2E " + username,
		"email":    username + "@example.com",
		"username": username,
		"password": "secret123",
	} {
		require.NoError(t, w.WriteField(k, v))
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="avatar"; filename="avatar.png"`)
	h.Set("Content-Type", "image/png")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(png)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return c.do(t, http.MethodPost, "/users/register", &buf, w.FormDataContentType())
}

func (c *apiClient) login(t *testing.T, username string) {
	t.Helper()
	status, env := c.json(t, http.MethodPost, "/users/login", map[string]string{"username": username, "password": "secret123"})
	require.Equal(t, http.StatusOK, status, env.Message)
	var data struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	c.token = data.AccessToken
}

func dataID(t *testing.T, env envelope) string {
	t.Helper()
	var doc struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	require.NotEmpty(t, doc.ID)
	return doc.ID
}

func waitForHealth(t *testing.T, baseURL string, attempts int, delay time.Duration) {
	t.Helper()
	for i := 0; i < attempts; i++ {
		resp, err := http.Get(strings.TrimRight(baseURL, "/") + "/healthcheck")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(delay)
	}
	t.Fatalf("server at %s is not healthy", baseURL)
}

func TestEndToEnd(t *testing.T) {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		t.Skip("API_BASE_URL not set")
	}
	waitForHealth(t, baseURL, 10, time.Second)

	suffix := fmt.Sprintf("%d", time.Now().UnixNano()%1_000_000_000)
	alice, bob := newAPIClient(baseURL), newAPIClient(baseURL)
	aliceName, bobName := "alice"+suffix, "bob"+suffix

	t.Run("register login and current user", func(t *testing.T) {
		status, env := alice.register(t, aliceName)
		require.Equal(t, http.StatusCreated, status, env.Message)
		assert.NotContains(t, string(env.Data), "password")

		status, env = alice.register(t, aliceName)
		assert.Equal(t, http.StatusConflict, status)
		assert.False(t, env.Success)

		alice.login(t, aliceName)
		status, env = alice.json(t, http.MethodGet, "/users/current-user", nil)
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(env.Data), aliceName)
		assert.NotContains(t, string(env.Data), "password")
		assert.NotContains(t, string(env.Data), "refreshToken")

		status, _ = bob.register(t, bobName)
		require.Equal(t, http.StatusCreated, status)
		bob.login(t, bobName)
	})

	t.Run("like toggles on and off", func(t *testing.T) {
		status, env := alice.json(t, http.MethodPost, "/tweets", map[string]string{"content": "hello from e2e"})
		require.Equal(t, http.StatusCreated, status, env.Message)
		tweetID := dataID(t, env)

		for _, want := range []bool{true, false} {
			status, env = bob.json(t, http.MethodPost, "/likes/toggle/t/"+tweetID, nil)
			require.Equal(t, http.StatusOK, status, env.Message)
			var data struct {
				IsLiked bool `json:"isLiked"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.Equal(t, want, data.IsLiked)
		}
	})

	t.Run("deleted playlist is gone", func(t *testing.T) {
		status, env := alice.json(t, http.MethodPost, "/playlist", map[string]string{"name": "mix", "description": "e2e"})
		require.Equal(t, http.StatusCreated, status, env.Message)
		playlistID := dataID(t, env)

		status, _ = bob.json(t, http.MethodDelete, "/playlist/"+playlistID, nil)
		assert.Equal(t, http.StatusForbidden, status)

		status, _ = alice.json(t, http.MethodDelete, "/playlist/"+playlistID, nil)
		require.Equal(t, http.StatusOK, status)

		status, env = alice.json(t, http.MethodGet, "/playlist/"+playlistID, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.False(t, env.Success)
	})
}
