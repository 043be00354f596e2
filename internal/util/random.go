package util

import (
	"crypto/rand"
	"math/big"
)

const (
	digits       = "0123456789"
	alphanumeric = "abcdefghijklmnopqrstuvwxyz0123456789"
	passwordSet  = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

func randomString(n int, alphabet string) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}

// GenerateOTP returns a numeric one-time code of OTPLength digits.
func GenerateOTP() (string, error) {
	return randomString(OTPLength, digits)
}

// RandomSuffix is used to build unique logins for generated accounts.
func RandomSuffix(n int) (string, error) {
	return randomString(n, alphanumeric)
}

// GeneratePassword returns a short password for temporary accounts.
func GeneratePassword() (string, error) {
	return randomString(TempPasswordSize, passwordSet)
}
