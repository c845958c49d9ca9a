// Package utils contains small helper functions used across the project.
//
// These are generic helpers that don't belong to a specific domain.
package utils

import "math"

// Clamp bounds v to the inclusive range [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Round1 rounds v to one decimal place.
//
// All score columns store at most one decimal, so this is applied after
// every score update before persisting.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Capitalize uppercases the first rune of s and lowercases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	out := make([]rune, len(runes))
	for i, r := range runes {
		if i == 0 {
			out[i] = toUpper(r)
		} else {
			out[i] = toLower(r)
		}
	}
	return string(out)
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
