// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package fingerprint

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"slices"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 keyed digest.
type Digest [32]byte

// domainKey is a 32-byte key for BLAKE3 keyed hashing.
type domainKey [32]byte

// Domain keys. These are fixed constants: changing one changes every
// digest in that domain. The bytes are the ASCII domain name,
// zero-padded to 32 bytes.
var (
	payloadDomainKey = domainKey{
		'l', 'o', 'o', 't', 'f', 'o', 'r', 'g', 'e', '.', 's', 'e', 'r', 'i', 'a', 'l',
		'.', 'p', 'a', 'y', 'l', 'o', 'a', 'd', 0, 0, 0, 0, 0, 0, 0, 0,
	}

	bodyDomainKey = domainKey{
		'l', 'o', 'o', 't', 'f', 'o', 'r', 'g', 'e', '.', 's', 'a', 'v', 'e', '.', 'b',
		'o', 'd', 'y', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	inventoryDomainKey = domainKey{
		'l', 'o', 'o', 't', 'f', 'o', 'r', 'g', 'e', '.', 'i', 'n', 'v', 'e', 'n', 't',
		'o', 'r', 'y', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// Payload returns the digest of a mirrored serial payload.
func Payload(payload []byte) Digest {
	return keyedHash(payloadDomainKey, payload)
}

// Body returns the digest of a plaintext save body.
func Body(body []byte) Digest {
	return keyedHash(bodyDomainKey, body)
}

// Inventory combines item digests into one digest of the item set.
// Order does not matter: the digests are sorted before hashing, so
// moving an item between slots keeps the inventory digest. Duplicates
// count. An empty set has a fixed digest.
func Inventory(items []Digest) Digest {
	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b Digest) int {
		return bytes.Compare(a[:], b[:])
	})

	hasher, err := blake3.NewKeyed(inventoryDomainKey[:])
	if err != nil {
		panic("fingerprint: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	for _, item := range sorted {
		hasher.Write(item[:])
	}
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// String returns the hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the display form: "fp-" and the first 12 hex
// characters.
func (d Digest) Short() string {
	return "fp-" + hex.EncodeToString(d[:6])
}

// MarshalText implements encoding.TextMarshaler with the hex form.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Parse parses a 64-character hex digest.
func Parse(text string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return digest, fmt.Errorf("parsing fingerprint: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("fingerprint is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}

// keyedHash computes the BLAKE3 keyed hash of data. NewKeyed only
// fails for a key that is not 32 bytes, which domainKey rules out.
func keyedHash(key domainKey, data []byte) Digest {
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("fingerprint: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}
