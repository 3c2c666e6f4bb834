package api

import (
	"bytes"
	"image/color"
	"image/png"
	"net/http"
	"testing"

	"taskvault/task-api/model"
	"taskvault/task-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testRed  = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	testBlue = color.RGBA{R: 30, G: 30, B: 200, A: 255}
)

func TestAvatarUploadRejectsWrongExtension(t *testing.T) {
	a := newTestAPI(t)

	resp := signupUser(t, a, "oren@example.com")

	// Valid PNG bytes under a .gif name still get rejected, the gate is
	// the filename
	w := uploadAvatar(t, a, resp.Token, "x.gif", makeTestPNG(t, 50, 50, testRed))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "jpg, jpeg or png")

	w = doJSON(t, a, http.MethodGet, "/users/"+resp.User.ID+"/avatar", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAvatarUploadRejectsOversizedFile(t *testing.T) {
	a := newTestAPI(t)

	resp := signupUser(t, a, "pete@example.com")

	w := uploadAvatar(t, a, resp.Token, "x.png", bytes.Repeat([]byte{0xAB}, 1_000_001))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "1 MB")
}

func TestAvatarUploadRejectsNonImageContent(t *testing.T) {
	a := newTestAPI(t)

	resp := signupUser(t, a, "quinn@example.com")

	w := uploadAvatar(t, a, resp.Token, "x.png", []byte("definitely not an image"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvatarUploadStoresNormalizedPNG(t *testing.T) {
	a := newTestAPI(t)

	resp := signupUser(t, a, "rosa@example.com")

	w := uploadAvatar(t, a, resp.Token, "x.png", makeTestPNG(t, 100, 40, testRed))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, a, http.MethodGet, "/users/"+resp.User.ID+"/avatar", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, service.AvatarSize, img.Bounds().Dx())
	assert.Equal(t, service.AvatarSize, img.Bounds().Dy())
}

func TestAvatarFetchServesStoredBytes(t *testing.T) {
	a := newTestAPI(t)

	resp := signupUser(t, a, "ruth@example.com")

	// Seed the blob directly so the fetch path is tested on its own
	stored, err := service.NormalizeAvatar(bytes.NewReader(makeTestPNG(t, 90, 90, testBlue)))
	require.NoError(t, err)
	require.NoError(t, a.DB.Model(model.User{}).Where("id = ?", resp.User.ID).Update("avatar", stored).Error)

	w := doJSON(t, a, http.MethodGet, "/users/"+resp.User.ID+"/avatar", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, stored, w.Body.Bytes())
}

func TestAvatarUploadOverwritesPrevious(t *testing.T) {
	a := newTestAPI(t)

	resp := signupUser(t, a, "sara@example.com")

	w := uploadAvatar(t, a, resp.Token, "first.png", makeTestPNG(t, 60, 60, testRed))
	require.Equal(t, http.StatusOK, w.Code)

	var first model.User
	require.NoError(t, a.DB.Where("id = ?", resp.User.ID).First(&first).Error)

	w = uploadAvatar(t, a, resp.Token, "second.png", makeTestPNG(t, 300, 300, testBlue))
	require.Equal(t, http.StatusOK, w.Code)

	var second model.User
	require.NoError(t, a.DB.Where("id = ?", resp.User.ID).First(&second).Error)

	assert.NotEmpty(t, second.Avatar)
	assert.NotEqual(t, first.Avatar, second.Avatar)

	img, err := png.Decode(bytes.NewReader(second.Avatar))
	require.NoError(t, err)
	assert.Equal(t, service.AvatarSize, img.Bounds().Dx())
}

func TestAvatarCacheInvalidatedOnChange(t *testing.T) {
	a := newTestAPI(t)

	resp := signupUser(t, a, "sidney@example.com")
	url := "/users/" + resp.User.ID + "/avatar"

	w := uploadAvatar(t, a, resp.Token, "x.png", makeTestPNG(t, 70, 70, testRed))
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, a, http.MethodGet, url, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	red := append([]byte(nil), w.Body.Bytes()...)

	// Re-upload must be visible immediately, not after the cache TTL
	w = uploadAvatar(t, a, resp.Token, "x.png", makeTestPNG(t, 70, 70, testBlue))
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, a, http.MethodGet, url, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, red, w.Body.Bytes())

	w = doJSON(t, a, http.MethodDelete, "/users/me/avatar", resp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, a, http.MethodGet, url, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAvatarDeleteIsIdempotent(t *testing.T) {
	a := newTestAPI(t)

	resp := signupUser(t, a, "tara@example.com")

	// Nothing uploaded yet, deleting must still succeed
	w := doJSON(t, a, http.MethodDelete, "/users/me/avatar", resp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = uploadAvatar(t, a, resp.Token, "x.png", makeTestPNG(t, 80, 80, testRed))
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, a, http.MethodDelete, "/users/me/avatar", resp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, a, http.MethodGet, "/users/"+resp.User.ID+"/avatar", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAvatarFetchUnknownUser(t *testing.T) {
	a := newTestAPI(t)

	w := doJSON(t, a, http.MethodGet, "/users/does-not-exist/avatar", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestAvatarMutationRequiresAuth(t *testing.T) {
	a := newTestAPI(t)

	w := uploadAvatar(t, a, "", "x.png", makeTestPNG(t, 50, 50, testRed))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, a, http.MethodDelete, "/users/me/avatar", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
