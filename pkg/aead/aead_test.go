package aead

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := testKey()
	plaintext := []byte("the quick brown fox jumps over the lazy dog")

	envelope, err := Seal(key, nil, plaintext)
	require.NoError(t, err)
	require.Len(t, envelope, NonceSize+TagSize+len(plaintext))

	out, err := Open(key, nil, envelope)
	require.NoError(t, err)
	require.Equal(t, plaintext, out)
}

func TestSeal_NoncesAreFresh(t *testing.T) {
	key := testKey()
	a, err := Seal(key, nil, []byte("payload"))
	require.NoError(t, err)
	b, err := Seal(key, nil, []byte("payload"))
	require.NoError(t, err)

	require.NotEqual(t, a[:NonceSize], b[:NonceSize])
}

func TestOpen_TamperDetected(t *testing.T) {
	key := testKey()
	envelope, err := Seal(key, nil, bytes.Repeat([]byte{0xAB}, 128))
	require.NoError(t, err)

	tampered := append([]byte(nil), envelope...)
	tampered[len(tampered)-1] ^= 0x01 // flip a bit inside the ciphertext

	_, err = Open(key, nil, tampered)
	require.ErrorIs(t, err, ErrAuthFailed)
}

func TestOpen_WrongKeyLength(t *testing.T) {
	_, err := Open([]byte("too short"), nil, []byte("x"))
	require.ErrorIs(t, err, ErrKeyWrongLength)
}

func TestOpen_TruncatedEnvelope(t *testing.T) {
	_, err := Open(testKey(), nil, []byte{0x01, 0x02})
	require.ErrorIs(t, err, ErrEnvelopeTooShort)
}
