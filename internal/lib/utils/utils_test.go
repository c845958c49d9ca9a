package utils

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{50, 0, 100, 50},
		{-3, 0, 100, 0},
		{101.5, 0, 100, 100},
		{0, 0, 100, 0},
		{100, 0, 100, 100},
	}

	for _, tt := range tests {
		if got := Clamp(tt.v, tt.min, tt.max); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		v, want float64
	}{
		{1.24, 1.2},
		{1.25, 1.3},
		{1.26, 1.3},
		{-2.36, -2.4},
		{0, 0},
		{99.99, 100},
	}

	for _, tt := range tests {
		if got := Round1(tt.v); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"hello", "Hello"},
		{"HELLO WORLD", "Hello world"},
		{"improve fractions", "Improve fractions"},
		{"7th grade", "7th grade"},
	}

	for _, tt := range tests {
		if got := Capitalize(tt.in); got != tt.want {
			t.Errorf("Capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
