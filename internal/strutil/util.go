// Package strutil contains functions to help handling strings.
package strutil

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// RandomHex reads n random bytes and returns them hex encoded in upper case.
func RandomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// Truncate returns at most n characters of s followed by an ellipsis when
// something was cut. It is used to log secrets partially.
func Truncate(s string, n int) string {
	if n < 0 || len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
