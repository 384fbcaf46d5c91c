package tools

import (
	"crypto/rand"
	"math/big"
)

const (
	suffixCharset   = "abcdefghijklmnopqrstuvwxyz0123456789"
	passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	suffixLength   = 6
	passwordLength = 12
)

func randomString(n int, charset string) (string, error) {
	max := big.NewInt(int64(len(charset)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = charset[idx.Int64()]
	}
	return string(buf), nil
}

func randomSuffix() (string, error) {
	return randomString(suffixLength, suffixCharset)
}

func randomPassword() (string, error) {
	return randomString(passwordLength, passwordCharset)
}
