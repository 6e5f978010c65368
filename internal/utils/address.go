package utils

import (
	"errors"
	"strings"
)

// ErrEmptyAddress is returned when an address holds no digits at all.
var ErrEmptyAddress = errors.New("address has no digits")

// NormalizeAddress reduces a chat sender address to its canonical "+<digits>"
// form. Transport prefixes such as "whatsapp:" and all punctuation are dropped,
// and an international "00" prefix is folded into "+".
//
//	"whatsapp:+1 (555) 123-4567" -> "+15551234567"
//	"0044 20 7946 0958"          -> "+442079460958"
func NormalizeAddress(address string) (string, error) {
	var digits strings.Builder
	digits.Grow(len(address))
	for _, r := range address {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := strings.TrimPrefix(digits.String(), "00")
	if d == "" {
		return "", ErrEmptyAddress
	}
	return "+" + d, nil
}
