package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var codeSpace = big.NewInt(1000000)

// GenerateCode returns a 6-digit code uniform over 000000-999999.
// Leading zeros are significant.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("otp: failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
