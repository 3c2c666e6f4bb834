// Package service holds the processing steps handlers delegate to
package service

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// AvatarSize is the edge length every stored avatar is normalized to.
const AvatarSize = 250

// NormalizeAvatar decodes an uploaded image and returns it as a square
// 250x250 PNG. Non-square inputs are center-cropped by Fill so faces
// don't get squashed.
func NormalizeAvatar(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image, %w", err)
	}

	img = imaging.Fill(img, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png, %w", err)
	}

	return buf.Bytes(), nil
}
