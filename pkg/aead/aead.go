package aead

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// KeySize is the required AEAD key length in bytes (256 bits).
	KeySize = chacha20poly1305.KeySize // 32

	// NonceSize is the per-encryption nonce length in bytes (96 bits).
	NonceSize = chacha20poly1305.NonceSize // 12

	// TagSize is the authentication tag length in bytes (128 bits).
	TagSize = chacha20poly1305.Overhead // 16
)

// Seal encrypts plaintext under key with a freshly generated random
// nonce and optional associated data, returning the wire envelope
// nonce‖tag‖ciphertext (spec.md §4.3/§6). Total envelope length is
// len(plaintext) + NonceSize + TagSize.
func Seal(key, associatedData, plaintext []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("aead: generating nonce: %w", err)
	}

	// chacha20poly1305.Seal appends the tag to the ciphertext, so the
	// wire layout nonce‖tag‖ciphertext requires moving the tag in front
	// of the ciphertext bytes after sealing.
	sealed := aead.Seal(nil, nonce, plaintext, associatedData)
	ciphertext, tag := sealed[:len(sealed)-TagSize], sealed[len(sealed)-TagSize:]

	envelope := make([]byte, 0, NonceSize+TagSize+len(ciphertext))
	envelope = append(envelope, nonce...)
	envelope = append(envelope, tag...)
	envelope = append(envelope, ciphertext...)
	return envelope, nil
}

// Open authenticates and decrypts an envelope produced by Seal. On any
// authentication failure it returns ErrAuthFailed and no plaintext —
// never a partial buffer.
func Open(key, associatedData, envelope []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	if len(envelope) < NonceSize+TagSize {
		return nil, ErrEnvelopeTooShort
	}

	nonce := envelope[:NonceSize]
	tag := envelope[NonceSize : NonceSize+TagSize]
	ciphertext := envelope[NonceSize+TagSize:]

	// Re-assemble into the ciphertext‖tag layout chacha20poly1305.Open
	// expects.
	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, associatedData)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrKeyWrongLength
	}
	return chacha20poly1305.New(key)
}
