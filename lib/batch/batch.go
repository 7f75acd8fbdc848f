// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/lootforge/lootforge/lib/fingerprint"
	"github.com/lootforge/lootforge/lib/serial"
)

// Input is one serial to decode, with the line it came from for
// error reporting.
type Input struct {
	Line   int
	Serial string
}

// Result is the outcome of decoding one Input.
type Result struct {
	Line     int            `json:"line"`
	Serial   string         `json:"serial"`
	TypeChar string         `json:"type,omitempty"`
	Tokens   []serial.Token `json:"tokens,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`

	// Fingerprint is the payload digest; serials with equal
	// fingerprints decode to the same bits.
	Fingerprint fingerprint.Digest `json:"fingerprint"`

	// Error is the decode failure, empty on success.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the serial did not decode.
func (r Result) Failed() bool {
	return r.Error != ""
}

// ReadInputs reads one serial per line. Surrounding whitespace is
// trimmed; blank lines and lines starting with '#' are skipped.
func ReadInputs(r io.Reader) ([]Input, error) {
	var inputs []Input
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		inputs = append(inputs, Input{Line: line, Serial: text})
	}
	if err := scanner.Err(); err != nil {
		return inputs, fmt.Errorf("reading line %d: %w", line+1, err)
	}
	return inputs, nil
}

// Decode decodes every input using up to workers goroutines (the CPU
// count when workers < 1). Results are in input order.
//
// Cancelling ctx stops workers from taking new inputs; Decode then
// returns ctx.Err() and the results decoded so far, with the rest
// left as zero Results carrying only Line and Serial.
func Decode(ctx context.Context, inputs []Input, workers int) ([]Result, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(inputs))

	results := make([]Result, len(inputs))
	for index, input := range inputs {
		results[index] = Result{Line: input.Line, Serial: input.Serial}
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				index := int(next.Add(1) - 1)
				if index >= len(inputs) {
					return
				}
				decodeInto(&results[index])
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func decodeInto(result *Result) {
	decoded, err := serial.Decode(result.Serial)
	if err != nil {
		result.Error = err.Error()
		return
	}
	record := decoded.Record(result.Serial)
	result.TypeChar = record.TypeChar
	result.Tokens = record.Tokens
	result.Warnings = record.Warnings
	result.Fingerprint = fingerprint.Payload(decoded.Payload)
}

// Summary aggregates a batch.
type Summary struct {
	Total    int `json:"total"`
	Decoded  int `json:"decoded"`
	Failed   int `json:"failed"`
	Warnings int `json:"warnings"`

	// Duplicates counts results whose fingerprint matches an earlier
	// result's.
	Duplicates int `json:"duplicates"`

	// ByType counts decoded serials per type character.
	ByType map[string]int `json:"by_type,omitempty"`
}

// Summarize counts outcomes over results.
func Summarize(results []Result) Summary {
	summary := Summary{Total: len(results), ByType: make(map[string]int)}
	seen := make(map[fingerprint.Digest]bool)
	for _, result := range results {
		if result.Failed() {
			summary.Failed++
			continue
		}
		summary.Decoded++
		if len(result.Warnings) > 0 {
			summary.Warnings++
		}
		if seen[result.Fingerprint] {
			summary.Duplicates++
		}
		seen[result.Fingerprint] = true
		summary.ByType[result.TypeChar]++
	}
	return summary
}
