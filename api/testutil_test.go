package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskvault/task-api/db"
	"taskvault/task-api/model"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// newTestAPI spins up a router backed by a fresh in-memory SQLite
// database. Each test gets its own database named after the test.
func newTestAPI(t *testing.T) *API {
	t.Helper()

	gin.SetMode(gin.TestMode)

	viper.Set("jwt.secret", "test-secret")
	viper.Set("upload.max_size", 1_000_000)
	viper.Set("rate.requests_per_second", 1000)
	viper.Set("rate.burst", 1000)
	viper.Set("db.path", fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_")))

	database, err := db.New()
	require.NoError(t, err)

	a, err := NewRouter(database)
	require.NoError(t, err)

	return a
}

func doJSON(t *testing.T, a *API, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

type authResponse struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// signupUser registers a user and returns the created record plus the
// first session token.
func signupUser(t *testing.T, a *API, email string) authResponse {
	t.Helper()

	w := doJSON(t, a, http.MethodPost, "/users/signup", "", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.User.ID)
	require.NotEmpty(t, resp.Token)

	return resp
}

// makeTestPNG encodes a PNG of the given dimensions filled with c.
// Tests that compare stored avatars must use distinct colors, since
// normalization flattens everything else that differs between uploads.
func makeTestPNG(t *testing.T, width, height int, c color.RGBA) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// uploadAvatar posts content as the avatar form field under the given
// filename.
func uploadAvatar(t *testing.T, a *API, token, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("avatar", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/users/me/avatar", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}
