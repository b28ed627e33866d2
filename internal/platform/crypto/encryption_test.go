package crypto

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hexKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestRoundTrip(t *testing.T) {
	svc, err := New(hexKey)
	require.NoError(t, err)
	require.True(t, svc.Configured())

	plain := []byte("%PDF-1.3 paystub")
	sealed, err := svc.Encrypt(plain)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(sealed, plain))

	again, err := svc.Encrypt(plain)
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "fresh nonce per call")

	opened, err := svc.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, plain, opened)
}

func TestDecryptRejectsTampering(t *testing.T) {
	svc, err := New(hexKey)
	require.NoError(t, err)
	sealed, err := svc.Encrypt([]byte("net 164.40"))
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0xff
	_, err = svc.Decrypt(sealed)
	assert.Error(t, err)

	_, err = svc.Decrypt([]byte("short"))
	assert.ErrorIs(t, err, ErrSealedTooShort)
}

func TestUnconfiguredPassesThrough(t *testing.T) {
	svc, err := New("")
	require.NoError(t, err)
	assert.False(t, svc.Configured())

	out, err := svc.Encrypt([]byte("plain"))
	require.NoError(t, err)
	assert.Equal(t, []byte("plain"), out)
}

func TestNewKeyFormats(t *testing.T) {
	_, err := New(strings.Repeat("k!", 16))
	assert.NoError(t, err, "raw 32-byte key")

	_, err = New("AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8=")
	assert.NoError(t, err, "base64 key")

	_, err = New("too-short")
	assert.Error(t, err)
}
