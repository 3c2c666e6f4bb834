// Package validators holds the input checks shared by the signup and
// profile-update handlers.
package validators

import (
	"errors"
	"net/mail"
)

// SMTP caps the full address at 254 usable characters (RFC 5321)
const maxEmailLen = 254

var (
	ErrEmailEmpty   = errors.New("email address is empty")
	ErrEmailTooLong = errors.New("email address is too long")
	ErrEmailInvalid = errors.New("email address is invalid")
)

// EmailValidator checks that e parses as a bare RFC 5322 address. Display
// names are not accepted, the stored value must be the address itself.
func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}

	if len(e) > maxEmailLen {
		return ErrEmailTooLong
	}

	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return ErrEmailInvalid
	}

	return nil
}
