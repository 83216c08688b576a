package random

import (
	crand "crypto/rand"
	"math/big"
	mrand "math/rand/v2"
)

const charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// String returns a non cryptographic random alphanumeric string.
func String(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[mrand.IntN(len(charset))]
	}
	return string(b)
}

func StringSecure(length int) (string, error) {
	b := make([]byte, length)
	size := big.NewInt(int64(len(charset)))
	for i := range b {
		num, err := crand.Int(crand.Reader, size)
		if err != nil {
			return "", err
		}
		b[i] = charset[num.Int64()]
	}
	return string(b), nil
}
