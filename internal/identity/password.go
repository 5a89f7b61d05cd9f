package identity

import (
	"crypto/rand"
	"math/big"
)

const (
	// TempPasswordLength is used for passwords mailed to newly created accounts.
	TempPasswordLength = 12
	tempPasswordChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"
)

// GeneratePassword returns a random password drawn from letters, digits and symbols.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		length = TempPasswordLength
	}
	max := big.NewInt(int64(len(tempPasswordChars)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = tempPasswordChars[n.Int64()]
	}
	return string(out), nil
}
