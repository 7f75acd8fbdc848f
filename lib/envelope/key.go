// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPlayerID means the identifier has no digits or its digits
// do not fit in 64 bits.
var ErrInvalidPlayerID = errors.New("invalid player identifier")

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// Key is a derived AES-256 save key.
type Key [KeySize]byte

// BaseKey is the fixed key every save key is derived from.
var BaseKey = Key{
	0x35, 0xEC, 0x33, 0x77, 0xF3, 0x5D, 0xB0, 0xEA,
	0xBE, 0x6B, 0x83, 0x11, 0x54, 0x03, 0xEB, 0xFB,
	0x27, 0x25, 0x64, 0x2E, 0xD5, 0x49, 0x06, 0x29,
	0x05, 0x78, 0xBD, 0x60, 0xBA, 0x4A, 0xA7, 0x87,
}

// DeriveKey returns the save key for playerID. Only the ASCII digits
// of playerID are used, so a platform prefix or separators in a
// copied identifier do not matter. The digits are parsed as a
// uint64 whose little-endian bytes are XORed into bytes 0-7 of
// [BaseKey]; bytes 8-31 are unchanged.
func DeriveKey(playerID string) (Key, error) {
	var digits strings.Builder
	for _, char := range playerID {
		if char >= '0' && char <= '9' {
			digits.WriteRune(char)
		}
	}
	if digits.Len() == 0 {
		return Key{}, fmt.Errorf("%w: %q contains no digits", ErrInvalidPlayerID, playerID)
	}

	id, err := strconv.ParseUint(digits.String(), 10, 64)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %q does not fit in 64 bits", ErrInvalidPlayerID, playerID)
	}

	var idBytes [8]byte
	binary.LittleEndian.PutUint64(idBytes[:], id)

	key := BaseKey
	for index, value := range idBytes {
		key[index] ^= value
	}
	return key, nil
}

// String returns the key as lower-case hex.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}
