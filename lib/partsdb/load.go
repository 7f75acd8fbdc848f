// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package partsdb

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
)

// tsvHeaderPrefix marks a TSV table regardless of file extension.
const tsvHeaderPrefix = "category\t"

// Load reads a table from a JSON file, a TSV file or a directory of
// per-category TSV files.
func Load(path string) (*Database, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return LoadDir(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading parts database: %w", err)
	}
	if filepath.Ext(path) == ".tsv" || bytes.HasPrefix(data, []byte(tsvHeaderPrefix)) {
		parts, err := ParseTSV(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return New(parts, nil), nil
	}

	database, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return database, nil
}

// jsonDocument is the JSON table layout. Categories is optional and
// only supplies labels.
type jsonDocument struct {
	Parts      []Part `json:"parts"`
	Categories []struct {
		Prefix   string `json:"prefix"`
		Category uint64 `json:"category"`
	} `json:"categories,omitempty"`
}

// ParseJSON parses the JSON layout. Comments and trailing commas are
// accepted.
func ParseJSON(data []byte) (*Database, error) {
	var document jsonDocument
	if err := json.Unmarshal(jsonc.ToJSON(data), &document); err != nil {
		return nil, fmt.Errorf("parsing parts database: %w", err)
	}
	labels := make(map[uint64]string, len(document.Categories))
	for _, category := range document.Categories {
		labels[category.Category] = category.Prefix
	}
	return New(document.Parts, labels), nil
}

// ParseTSV parses the three-column layout. The first line is a header.
// Rows whose category is not a uint64 or whose index is not a uint16
// are skipped.
func ParseTSV(r io.Reader) ([]Part, error) {
	var parts []Part
	err := scanRows(r, 3, func(columns []string) {
		category, err := strconv.ParseUint(columns[0], 10, 64)
		if err != nil {
			return
		}
		index, err := strconv.ParseUint(columns[1], 10, 16)
		if err != nil {
			return
		}
		parts = append(parts, Part{Name: columns[2], Category: category, Index: uint16(index)})
	})
	return parts, err
}

// LoadDir reads every "*.tsv" file in dir whose name yields a category
// ID (see [ParseCategoryFileName]). Other files are ignored.
func LoadDir(dir string) (*Database, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading parts directory: %w", err)
	}

	var parts []Part
	labels := make(map[uint64]string)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".tsv" {
			continue
		}
		label, category, ok := ParseCategoryFileName(entry.Name())
		if !ok {
			continue
		}
		if label != "" {
			labels[category] = label
		}

		path := filepath.Join(dir, entry.Name())
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		err = scanRows(file, 2, func(columns []string) {
			index, err := strconv.ParseUint(columns[0], 10, 16)
			if err != nil {
				return
			}
			parts = append(parts, Part{Name: columns[1], Category: category, Index: uint16(index)})
		})
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return New(parts, labels), nil
}

// ParseCategoryFileName extracts the label and category ID from a
// per-category file name: "jakobs_pistol-3.tsv" is ("jakobs_pistol",
// 3) and "3.tsv" is ("", 3).
func ParseCategoryFileName(name string) (label string, category uint64, ok bool) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if position := strings.LastIndexByte(stem, '-'); position >= 0 {
		if id, err := strconv.ParseUint(stem[position+1:], 10, 64); err == nil {
			return stem[:position], id, true
		}
	}
	id, err := strconv.ParseUint(stem, 10, 64)
	if err != nil {
		return "", 0, false
	}
	return "", id, true
}

// scanRows calls row for every line after the header that has at least
// columns tab-separated fields. The last field keeps any further tabs.
func scanRows(r io.Reader, columns int, row func([]string)) error {
	scanner := bufio.NewScanner(r)
	header := true
	for scanner.Scan() {
		if header {
			header = false
			continue
		}
		fields := strings.SplitN(strings.TrimRight(scanner.Text(), "\r"), "\t", columns)
		if len(fields) < columns {
			continue
		}
		row(fields)
	}
	return scanner.Err()
}
