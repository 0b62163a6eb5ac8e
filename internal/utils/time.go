package utils

import (
	"errors"
	"strings"
	"time"
)

// Expiry dates come from admin forms and CSV imports as display strings, so
// several common layouts are accepted.
var expiryLayouts = []string{
	"2 Jan 2006",
	"02 Jan 2006",
	"2006-01-02",
	"02/01/2006",
	"Jan 2, 2006",
}

var ErrNoExpiryDate = errors.New("no expiry date")

// ParseExpiryDate parses a voucher expiry display string. "N/A" and the empty
// string report ErrNoExpiryDate, which callers treat as "never expires".
func ParseExpiryDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, "N/A") {
		return time.Time{}, ErrNoExpiryDate
	}

	var lastErr error
	for _, layout := range expiryLayouts {
		t, err := time.Parse(layout, trimmed)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// IsExpiryPast reports whether an expiry display string is in the past
// relative to now. Unparseable or absent dates never count as expired.
func IsExpiryPast(value string, now time.Time) bool {
	t, err := ParseExpiryDate(value)
	if err != nil {
		return false
	}
	// Expiry is inclusive of the named day.
	return EndOfDay(t).Before(now)
}

func FormatTimeISO(t time.Time) string {
	return t.Format(time.RFC3339)
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, 999999999, t.Location())
}
