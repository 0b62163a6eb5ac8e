package utils

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

func ValidatePasswordStrength(password string) error {
	if len(password) < PasswordMinLength {
		return errors.New("password too short")
	}
	if len(password) > PasswordMaxLength {
		return errors.New("password too long")
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return errors.New("password must contain letters and digits")
	}
	return nil
}

var (
	urlRegex  = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)
	htmlRegex = regexp.MustCompile(`<[^>]*>`)
)

func IsValidURL(url string) bool {
	return urlRegex.MatchString(url)
}

// SanitizeString strips HTML tags and surrounding whitespace from
// admin-entered display text.
func SanitizeString(input string) string {
	return strings.TrimSpace(htmlRegex.ReplaceAllString(input, ""))
}
