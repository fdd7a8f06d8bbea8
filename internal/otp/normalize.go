package otp

import "strings"

// Normalize converts a raw phone number into the canonical destination key.
// Numbers already carrying a + prefix pass through unchanged. Otherwise all
// non-digits are stripped: a 10-digit number gets the default country code,
// an 11-digit number starting with that country's trunk digit gets a bare +.
// Two spellings of the same number must normalize identically or store
// lookups miss.
func Normalize(raw, defaultCountry string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "+") {
		return raw
	}

	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 10:
		return "+" + defaultCountry + digits
	case len(digits) == 11 && strings.HasPrefix(digits, defaultCountry):
		return "+" + digits
	default:
		return "+" + digits
	}
}
