// Package validator holds the input format rules for account fields.
package validator

import (
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	nameMinLen     = 3
	nameMaxLen     = 20
	passwordMinLen = 8
	passwordMaxLen = 20
	passwordDigits = 2

	// bcrypt rejects longer inputs.
	passwordMaxBytes = 72
)

var validate = validator.New()

// ValidateName reports whether name has between 3 and 20 characters.
func ValidateName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= nameMinLen && n <= nameMaxLen
}

// ValidateEmail reports whether email is a syntactically valid address.
func ValidateEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// ValidatePassword reports whether password has 8 to 20 characters, at least
// one ASCII upper and one ASCII lower case letter, at least two ASCII digits,
// no whitespace and fits in 72 bytes.
func ValidatePassword(password string) bool {
	n := utf8.RuneCountInString(password)
	if n < passwordMinLen || n > passwordMaxLen || len(password) > passwordMaxBytes {
		return false
	}

	var upper, lower bool
	digits := 0
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return false
		case 'A' <= r && r <= 'Z':
			upper = true
		case 'a' <= r && r <= 'z':
			lower = true
		case '0' <= r && r <= '9':
			digits++
		}
	}
	return upper && lower && digits >= passwordDigits
}
