package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_RoundTrip(t *testing.T) {
	signer := NewSigner([]byte("test-key"), time.Hour)

	token := signer.Sign("42")
	value, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "42", value)
}

func TestSigner_RejectsTampering(t *testing.T) {
	signer := NewSigner([]byte("test-key"), time.Hour)
	token := signer.Sign("42")

	cases := map[string]string{
		"garbage":       "not-a-token",
		"missing part":  strings.Join(strings.Split(token, ".")[:2], "."),
		"flipped value": "X" + token,
		"flipped mac":   token[:len(token)-1] + "!",
		"other key":     NewSigner([]byte("other-key"), time.Hour).Sign("42"),
	}
	for name, tampered := range cases {
		_, err := signer.Verify(tampered)
		assert.ErrorIs(t, err, ErrBadSignature, name)
	}
}

func TestSigner_Expiry(t *testing.T) {
	signer := NewSigner([]byte("test-key"), time.Hour)

	issued := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	signer.now = func() time.Time { return issued }
	token := signer.Sign("42")

	signer.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err := signer.Verify(token)
	assert.NoError(t, err)

	signer.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = signer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSigner_StaleTimestampCannotBeForged(t *testing.T) {
	signer := NewSigner([]byte("test-key"), time.Hour)

	issued := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	signer.now = func() time.Time { return issued }
	token := signer.Sign("42")

	// rewrite the timestamp to the future without re-signing
	parts := strings.Split(token, ".")
	parts[1] = "99999999999"
	_, err := signer.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrBadSignature, "signature check must precede the age check")
}
