// Package phone normalizes recipient phone numbers for the WhatsApp API.
package phone

import (
	"errors"
	"strings"
)

// ErrInvalidFormat is returned when a phone string does not reduce to
// 8-15 digits.
var ErrInvalidFormat = errors.New("invalid phone number format, use country code + number, e.g. +14155552671")

// Normalize strips every non-digit character from raw and returns the
// remaining digits. The WhatsApp Cloud API addresses recipients by bare
// international digits, so "+1 (415) 555-2671" becomes "14155552671".
func Normalize(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < 8 || len(digits) > 15 {
		return "", ErrInvalidFormat
	}
	return digits, nil
}
