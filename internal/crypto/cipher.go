package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

var (
	ErrIntegrity   = errors.New("envelope failed integrity check")
	ErrEmptySecret = errors.New("encryption secret must not be empty")
)

// codecInfo binds derived keys to this use so the same secret never yields
// the same key elsewhere.
const codecInfo = "drivenpass/field-encryption/v1"

// Codec encrypts single string fields with AES-256-GCM.
//
// An envelope is hex(nonce || ciphertext || tag). Each call to Encrypt draws
// a fresh nonce, so equal plaintexts produce different envelopes.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec derives the field key from secret with HKDF-SHA256.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(codecInfo)), key); err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}

	return &Codec{aead: aead}, nil
}

// Encrypt seals plaintext into a self-contained envelope.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(sealed), nil
}

// Decrypt opens an envelope produced by Encrypt. Any malformed or tampered
// envelope, or one sealed under a different key, fails with ErrIntegrity.
func (c *Codec) Decrypt(envelope string) (string, error) {
	raw, err := hex.DecodeString(envelope)
	if err != nil {
		return "", fmt.Errorf("%w: malformed envelope", ErrIntegrity)
	}
	// Encrypt emits lowercase hex only; any other spelling was altered.
	if hex.EncodeToString(raw) != envelope {
		return "", fmt.Errorf("%w: non-canonical envelope", ErrIntegrity)
	}

	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize+c.aead.Overhead() {
		return "", fmt.Errorf("%w: envelope too short", ErrIntegrity)
	}

	plaintext, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", ErrIntegrity
	}

	return string(plaintext), nil
}
