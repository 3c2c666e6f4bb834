package api

import (
	"time"

	"taskvault/task-api/model"

	"github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
)

// Sessions outlive browser restarts but not forever
const tokenValidity = 30 * 24 * time.Hour

// issueToken mints a signed session token for a user and persists it so
// the auth middleware can find it. Returns the signed string.
func (a *API) issueToken(userID string) (string, error) {
	now := time.Now()
	expiresAt := now.Add(tokenValidity)

	// iat has second resolution, so two tokens minted back to back would
	// otherwise collide on the unique token column
	jti, err := gonanoid.New(12)
	if err != nil {
		return "", err
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"jti":     jti,
		"iat":     now.Unix(),
		"exp":     expiresAt.Unix(),
	})

	signed, err := t.SignedString([]byte(viper.GetString("jwt.secret")))
	if err != nil {
		return "", err
	}

	err = a.DB.Create(&model.Token{
		UserID:    userID,
		Token:     signed,
		ExpiresAt: expiresAt,
	}).Error
	if err != nil {
		return "", err
	}

	return signed, nil
}
