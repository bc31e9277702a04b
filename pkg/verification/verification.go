// Package verification computes and checks user id verification codes: the
// lowercase hex HMAC-SHA256 of a user id under an organization's signing
// secret.
//
// Codes are meant to be computed by the host application's backend. The
// signing secret must never ship inside a client.
package verification

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

var ErrEmptySecret = errors.New("verification: signing secret is empty")

// Sign returns the verification code for userID.
func Sign(secret, userID string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(userID))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Verify reports whether code is the verification code of userID.
// Hex case is ignored.
func Verify(secret, userID, code string) bool {
	want, err := Sign(secret, userID)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(want), []byte(strings.ToLower(code)))
}
