// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"crypto/aes"
	"fmt"
)

// BlockSize is the AES block size, and the PKCS7 padding unit.
const BlockSize = aes.BlockSize

// encryptECB encrypts data block by block with no chaining. len(data)
// must be a multiple of BlockSize.
func encryptECB(key Key, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("creating AES cipher: %w", err)
	}
	output := make([]byte, len(data))
	for offset := 0; offset < len(data); offset += BlockSize {
		block.Encrypt(output[offset:offset+BlockSize], data[offset:offset+BlockSize])
	}
	return output, nil
}

// decryptECB is the inverse of encryptECB.
func decryptECB(key Key, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("creating AES cipher: %w", err)
	}
	output := make([]byte, len(data))
	for offset := 0; offset < len(data); offset += BlockSize {
		block.Decrypt(output[offset:offset+BlockSize], data[offset:offset+BlockSize])
	}
	return output, nil
}
