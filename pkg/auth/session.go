package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidToken   = errors.New("invalid token format")
	ErrBadSignature   = errors.New("invalid signature")
	ErrSessionExpired = errors.New("session expired")
)

const (
	sessionCookieName = "folio_session"
	minSecretLen      = 32

	// SessionTTL is how long an admin session stays valid after login.
	SessionTTL = 12 * time.Hour
)

// CreateSessionToken signs subject together with its expiry.
// Token layout: base64(subject "|" unix-expiry) "." hex(hmac-sha256).
func CreateSessionToken(subject string, expires time.Time, secret []byte) string {
	payload := []byte(subject + "|" + strconv.FormatInt(expires.Unix(), 10))
	return base64.URLEncoding.EncodeToString(payload) + "." + sign(payload, secret)
}

// VerifySessionToken checks the signature and expiry and returns the subject.
func VerifySessionToken(token string, now time.Time, secret []byte) (string, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return "", ErrInvalidToken
	}
	payload, err := base64.URLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", ErrInvalidToken
	}
	if !hmac.Equal([]byte(sign(payload, secret)), []byte(parts[1])) {
		return "", ErrBadSignature
	}

	sep := strings.LastIndexByte(string(payload), '|')
	if sep < 0 {
		return "", ErrInvalidToken
	}
	exp, err := strconv.ParseInt(string(payload[sep+1:]), 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}
	if !now.Before(time.Unix(exp, 0)) {
		return "", ErrSessionExpired
	}
	return string(payload[:sep]), nil
}

func sign(payload, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// SessionCookieName is the name of the admin session cookie.
func SessionCookieName() string {
	return sessionCookieName
}

// SessionSecretBytes pads s to at least 32 bytes for use as an HMAC key.
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
