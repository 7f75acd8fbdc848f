// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrBadPadding means the decrypted data does not end in valid PKCS7
// padding. After decryption this is the usual sign of a wrong key.
var ErrBadPadding = errors.New("bad PKCS7 padding")

// Pad appends PKCS7 padding up to the next multiple of BlockSize.
// Input that is already aligned gains a full block of padding.
func Pad(data []byte) []byte {
	padding := BlockSize - len(data)%BlockSize
	padded := make([]byte, len(data), len(data)+padding)
	copy(padded, data)
	return append(padded, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

// Unpad validates and strips PKCS7 padding. The pad length must be in
// [1, BlockSize] and every pad byte must equal it. The returned slice
// aliases data.
func Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: length %d is not a positive multiple of %d", ErrBadPadding, len(data), BlockSize)
	}
	padding := int(data[len(data)-1])
	if padding < 1 || padding > BlockSize {
		return nil, fmt.Errorf("%w: pad length %d", ErrBadPadding, padding)
	}
	for _, value := range data[len(data)-padding:] {
		if int(value) != padding {
			return nil, fmt.Errorf("%w: pad byte %#02x in a %d-byte pad", ErrBadPadding, value, padding)
		}
	}
	return data[:len(data)-padding], nil
}
