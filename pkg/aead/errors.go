package aead

import "errors"

var (
	// ErrAuthFailed is returned when Open fails to authenticate an
	// envelope. Callers must treat this as a hard failure: no partial
	// plaintext is ever returned alongside this error.
	ErrAuthFailed = errors.New("authentication failed")

	ErrKeyWrongLength   = errors.New("key must be 32 bytes")
	ErrEnvelopeTooShort = errors.New("envelope shorter than nonce+tag")
)
