// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/lootforge/lootforge/lib/codec"
)

// Compression identifies how a results file is compressed. It is
// chosen from the file name suffix.
type Compression uint8

const (
	CompressionNone Compression = iota

	// CompressionZstd is zstd at the default level, for files ending
	// in ".zst".
	CompressionZstd

	// CompressionLZ4 is the LZ4 frame format, for files ending in
	// ".lz4".
	CompressionLZ4
)

// String returns the name of the compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// CompressionForPath returns the compression implied by the suffix of
// path.
func CompressionForPath(path string) Compression {
	switch filepath.Ext(path) {
	case ".zst":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// WriteResults writes results to w as a CBOR sequence.
func WriteResults(w io.Writer, results []Result) error {
	encoder := codec.NewEncoder(w)
	for index := range results {
		if err := encoder.Encode(&results[index]); err != nil {
			return fmt.Errorf("encoding result for line %d: %w", results[index].Line, err)
		}
	}
	return nil
}

// ReadResults reads a CBOR sequence written by WriteResults.
func ReadResults(r io.Reader) ([]Result, error) {
	return codec.ReadSequence[Result](r)
}

// WriteFile writes results to path, compressed according to
// [CompressionForPath].
func WriteFile(path string, results []Result) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	var compressor io.WriteCloser
	switch CompressionForPath(path) {
	case CompressionZstd:
		compressor, err = zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("creating zstd writer: %w", err)
		}
	case CompressionLZ4:
		compressor = lz4.NewWriter(file)
	default:
		return WriteResults(file, results)
	}

	if err := WriteResults(compressor, results); err != nil {
		compressor.Close()
		return err
	}
	return compressor.Close()
}

// ReadFile reads a results file written by WriteFile.
func ReadFile(path string) ([]Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var reader io.Reader = file
	switch CompressionForPath(path) {
	case CompressionZstd:
		decompressor, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader: %w", err)
		}
		defer decompressor.Close()
		reader = decompressor
	case CompressionLZ4:
		reader = lz4.NewReader(file)
	}

	results, err := ReadResults(reader)
	if err != nil {
		return results, fmt.Errorf("reading %s: %w", path, err)
	}
	return results, nil
}
