package validators

import (
	"errors"
	"strings"
)

var (
	ErrPasswordEmpty    = errors.New("no password provided")
	ErrPasswordTooShort = errors.New("password must be at least 7 characters long")
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrPasswordTrivial  = errors.New("password cannot contain the word \"password\"")
)

func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if len(p) < 7 {
		return ErrPasswordTooShort
	}

	if len(p) > 255 {
		return ErrPasswordTooLong
	}

	if strings.Contains(strings.ToLower(p), "password") {
		return ErrPasswordTrivial
	}

	return nil
}
