package validators

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNoAvatar          = errors.New("no avatar file provided")
	ErrAvatarTooLarge    = errors.New("avatar must be at most 1 MB")
	ErrAvatarWrongType   = errors.New("the file must either be a jpg, jpeg or png")
	ErrAvatarNotAnImage  = errors.New("file content is not a valid image")
	ErrAvatarNameTooLong = errors.New("file name is too long")
)

var allowedAvatarExts = []string{".jpg", ".jpeg", ".png"}

// MaxAvatarSize bounds per-request memory for avatar uploads.
const MaxAvatarSize = 1_000_000

const maxFileNameSize = 255

// AvatarValidator checks an uploaded avatar before it reaches the resize
// pipeline and returns the status code to respond with on failure. The
// file type gate is the filename extension. The content sniff only rejects
// bytes that no image decoder would accept anyway.
func AvatarValidator(fh *multipart.FileHeader) (int, multipart.File, error) {
	if fh == nil {
		return http.StatusBadRequest, nil, ErrNoAvatar
	}

	if len(fh.Filename) > maxFileNameSize {
		return http.StatusBadRequest, nil, ErrAvatarNameTooLong
	}

	ext := strings.ToLower(path.Ext(fh.Filename))
	if !slices.Contains(allowedAvatarExts, ext) {
		return http.StatusBadRequest, nil, ErrAvatarWrongType
	}

	if fh.Size > MaxAvatarSize {
		return http.StatusBadRequest, nil, ErrAvatarTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return http.StatusInternalServerError, nil, err
	}

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, err
	}

	if !strings.HasPrefix(mime.String(), "image/") {
		f.Close()
		return http.StatusBadRequest, nil, ErrAvatarNotAnImage
	}

	if _, err := f.Seek(0, 0); err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, err
	}

	return 0, f, nil
}
