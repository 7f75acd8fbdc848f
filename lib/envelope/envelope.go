// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"errors"
	"fmt"
	"os"
)

// ErrCiphertextLength means the file is empty or not a whole number of
// AES blocks, so it was truncated or is not a save file.
var ErrCiphertextLength = errors.New("ciphertext length is not a positive multiple of 16")

// Decrypt opens a save file: AES-256-ECB decrypt, strip PKCS7 padding,
// inflate. The returned body is the plaintext document.
func Decrypt(ciphertext []byte, key Key) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrCiphertextLength, len(ciphertext))
	}
	padded, err := decryptECB(key, ciphertext)
	if err != nil {
		return nil, err
	}
	compressed, err := Unpad(padded)
	if err != nil {
		return nil, err
	}
	return Decompress(compressed)
}

// Encrypt seals body at the default compression level. It is the
// inverse of [Decrypt].
func Encrypt(body []byte, key Key) ([]byte, error) {
	return encrypt(body, key, DefaultCompression)
}

func encrypt(body []byte, key Key, level int) ([]byte, error) {
	compressed, err := Compress(body, level)
	if err != nil {
		return nil, err
	}
	return encryptECB(key, Pad(compressed))
}

// IsWrongKey reports whether err is the failure a wrong player
// identifier produces: the decrypted tail is not valid padding.
// A body that decrypts cleanly but does not inflate is a corrupt or
// foreign file, not a wrong key; see [IsCorrupt].
func IsWrongKey(err error) bool {
	return errors.Is(err, ErrBadPadding)
}

// IsCorrupt reports whether err means the file decrypted and unpadded
// under the given key but its body is not a zlib stream.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrDecompression)
}

// Envelope bundles a derived key with the options used when sealing.
// The zero value is not usable; create one with [New].
type Envelope struct {
	key   Key
	level int
}

// Option configures an [Envelope].
type Option func(*Envelope)

// WithCompressionLevel sets the zlib level used by Seal. Levels outside
// the zlib range make Seal fail.
func WithCompressionLevel(level int) Option {
	return func(e *Envelope) {
		e.level = level
	}
}

// New derives the key for playerID and returns an Envelope using it.
func New(playerID string, options ...Option) (*Envelope, error) {
	key, err := DeriveKey(playerID)
	if err != nil {
		return nil, err
	}
	envelope := &Envelope{key: key, level: DefaultCompression}
	for _, option := range options {
		option(envelope)
	}
	return envelope, nil
}

// Key returns the derived key.
func (e *Envelope) Key() Key {
	return e.key
}

// Open decrypts ciphertext to the plaintext body.
func (e *Envelope) Open(ciphertext []byte) ([]byte, error) {
	return Decrypt(ciphertext, e.key)
}

// Seal encrypts body to a save file.
func (e *Envelope) Seal(body []byte) ([]byte, error) {
	return encrypt(body, e.key, e.level)
}

// ReadFile reads and decrypts the save file at path.
func (e *Envelope) ReadFile(path string) ([]byte, error) {
	ciphertext, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	body, err := e.Open(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return body, nil
}

// WriteFile seals body and writes it to path. The file is written to a
// temporary sibling and renamed into place, so a failed write leaves
// the previous save intact.
func (e *Envelope) WriteFile(path string, body []byte) error {
	ciphertext, err := e.Seal(body)
	if err != nil {
		return fmt.Errorf("sealing %s: %w", path, err)
	}
	temporary := path + ".tmp"
	if err := os.WriteFile(temporary, ciphertext, 0o644); err != nil {
		return err
	}
	if err := os.Rename(temporary, path); err != nil {
		os.Remove(temporary)
		return err
	}
	return nil
}

// Open decrypts a save file with the key for playerID.
func Open(ciphertext []byte, playerID string) ([]byte, error) {
	key, err := DeriveKey(playerID)
	if err != nil {
		return nil, err
	}
	return Decrypt(ciphertext, key)
}

// Seal encrypts body with the key for playerID.
func Seal(body []byte, playerID string) ([]byte, error) {
	key, err := DeriveKey(playerID)
	if err != nil {
		return nil, err
	}
	return Encrypt(body, key)
}
