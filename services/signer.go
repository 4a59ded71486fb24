package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrBadSignature = errors.New("bad_signature")
	ErrTokenExpired = errors.New("token_expired")
)

// Signer issues and verifies time-boxed signed tokens, used for email
// confirmation links. The key and max age are explicit so no ambient
// configuration is involved.
type Signer struct {
	key    []byte
	maxAge time.Duration
	now    func() time.Time
}

func NewSigner(key []byte, maxAge time.Duration) *Signer {
	return &Signer{key: key, maxAge: maxAge, now: time.Now}
}

// Sign produces "value.timestamp.mac" with the value and mac base64-encoded.
func (s *Signer) Sign(value string) string {
	ts := strconv.FormatInt(s.now().UTC().Unix(), 10)
	payload := base64.RawURLEncoding.EncodeToString([]byte(value)) + "." + ts
	return payload + "." + s.mac(payload)
}

// Verify checks the signature and age of a token and returns the original
// value. Signature is checked before expiry so a forged timestamp cannot
// extend a token's life.
func (s *Signer) Verify(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", ErrBadSignature
	}
	payload := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(s.mac(payload)), []byte(parts[2])) {
		return "", ErrBadSignature
	}

	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", ErrBadSignature
	}
	if s.now().UTC().Sub(time.Unix(ts, 0)) > s.maxAge {
		return "", ErrTokenExpired
	}

	raw, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", ErrBadSignature
	}
	return string(raw), nil
}

func (s *Signer) mac(payload string) string {
	h := hmac.New(sha256.New, s.key)
	fmt.Fprint(h, payload)
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
