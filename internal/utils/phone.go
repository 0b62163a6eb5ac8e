package utils

import (
	"regexp"
	"strings"
)

var (
	phoneRegex    = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	nonDigitRegex = regexp.MustCompile(`[^\d]`)
)

func IsValidPhone(phone string) bool {
	// Remove all non-digit characters except +
	cleaned := regexp.MustCompile(`[^\d+]`).ReplaceAllString(phone, "")

	// Basic E.164 format validation
	return phoneRegex.MatchString(cleaned)
}

// FormatPhone converts user-entered phone numbers to international form.
// Local Ugandan conventions are recognized: a 10-digit number starting with
// "07" and a bare 9-digit number both get the +256 country code. Numbers
// already carrying the country code only get the leading "+" ensured.
func FormatPhone(phone string) string {
	digits := nonDigitRegex.ReplaceAllString(phone, "")

	switch {
	case strings.HasPrefix(digits, "07") && len(digits) == 10:
		return "+256" + digits[1:]
	case strings.HasPrefix(digits, "7") && len(digits) == 9:
		return "+256" + digits
	case strings.HasPrefix(digits, "256") && len(digits) == 12:
		return "+" + digits
	case len(digits) == 9:
		return "+256" + digits
	}

	// Anything else is taken as already international; formatting
	// characters are stripped and the leading + restored.
	return "+" + digits
}

// NormalizePhone strips formatting characters and ensures a leading +.
func NormalizePhone(phone string) string {
	normalized := regexp.MustCompile(`[^\d+]`).ReplaceAllString(phone, "")

	if !strings.HasPrefix(normalized, "+") {
		normalized = "+" + normalized
	}

	return normalized
}

// StripPlus returns the phone number without its leading +, the form the
// payment provider expects in the "number" field.
func StripPlus(phone string) string {
	return strings.TrimPrefix(phone, "+")
}

func MaskPhone(phone string) string {
	if len(phone) < 4 {
		return phone
	}

	// Show last 4 digits
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
