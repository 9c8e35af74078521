// Package aead implements the AEAD primitive spec.md §4.3 describes:
// 256-bit key, 96-bit nonce generated fresh per encryption, 128-bit tag,
// wrapped as nonce‖tag‖ciphertext. It wires golang.org/x/crypto's
// ChaCha20-Poly1305 implementation, which matches the spec's key/nonce/tag
// sizes exactly.
package aead
