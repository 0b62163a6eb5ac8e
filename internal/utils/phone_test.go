package utils

import "testing"

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"local 07 form", "0708215305", "+256708215305"},
		{"bare nine digits", "708215305", "+256708215305"},
		{"country code without plus", "256708215305", "+256708215305"},
		{"already international", "+256708215305", "+256708215305"},
		{"spaces and dashes", "0708-215 305", "+256708215305"},
		{"foreign international keeps its country code", "+44 20 7946 0958", "+442079460958"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPhone(tt.input); got != tt.want {
				t.Errorf("FormatPhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripPlus(t *testing.T) {
	if got := StripPlus("+256708215305"); got != "256708215305" {
		t.Errorf("StripPlus = %q", got)
	}
	if got := StripPlus("256708215305"); got != "256708215305" {
		t.Errorf("StripPlus without plus = %q", got)
	}
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{"+256708215305", "256708215305"}
	for _, phone := range valid {
		if !IsValidPhone(phone) {
			t.Errorf("IsValidPhone(%q) = false, want true", phone)
		}
	}

	invalid := []string{"", "+", "abc", "0"}
	for _, phone := range invalid {
		if IsValidPhone(phone) {
			t.Errorf("IsValidPhone(%q) = true, want false", phone)
		}
	}
}

func TestMaskPhone(t *testing.T) {
	if got := MaskPhone("+256708215305"); got != "*********5305" {
		t.Errorf("MaskPhone = %q", got)
	}
}
