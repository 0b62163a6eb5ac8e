package utils

import (
	"errors"
	"testing"
	"time"
)

func TestParseExpiryDate(t *testing.T) {
	t.Run("accepts common layouts", func(t *testing.T) {
		for _, value := range []string{"5 Sep 2026", "05 Sep 2026", "2026-09-05", "05/09/2026", "Sep 5, 2026"} {
			parsed, err := ParseExpiryDate(value)
			if err != nil {
				t.Errorf("ParseExpiryDate(%q) error: %v", value, err)
				continue
			}
			if parsed.Year() != 2026 || parsed.Month() != time.September || parsed.Day() != 5 {
				t.Errorf("ParseExpiryDate(%q) = %v", value, parsed)
			}
		}
	})

	t.Run("no expiry markers", func(t *testing.T) {
		for _, value := range []string{"", "N/A", "n/a", "  "} {
			if _, err := ParseExpiryDate(value); !errors.Is(err, ErrNoExpiryDate) {
				t.Errorf("ParseExpiryDate(%q) err = %v, want ErrNoExpiryDate", value, err)
			}
		}
	})

	t.Run("garbage is an error", func(t *testing.T) {
		if _, err := ParseExpiryDate("not a date"); err == nil || errors.Is(err, ErrNoExpiryDate) {
			t.Errorf("err = %v", err)
		}
	})
}

func TestIsExpiryPast(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"yesterday", "27 Aug 2026", true},
		{"named day is inclusive", "28 Aug 2026", false},
		{"tomorrow", "29 Aug 2026", false},
		{"no expiry never expires", "N/A", false},
		{"unparseable never expires", "whenever", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsExpiryPast(tt.value, now); got != tt.want {
				t.Errorf("IsExpiryPast(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
