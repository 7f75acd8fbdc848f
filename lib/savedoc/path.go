// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package savedoc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPath means a path does not follow the dotted syntax.
var ErrInvalidPath = errors.New("invalid path")

// segment is one step of a path: a mapping key or a sequence index.
type segment struct {
	key     string
	index   int
	isIndex bool
}

func (s segment) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return s.key
}

// parsePath splits "a.b[2].c" into a, b, [2], c.
func parsePath(path string) ([]segment, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	var segments []segment
	for part := range strings.SplitSeq(path, ".") {
		key, rest, hasIndex := strings.Cut(part, "[")
		if key == "" && (!hasIndex || len(segments) == 0) {
			return nil, fmt.Errorf("%w: empty key in %q", ErrInvalidPath, path)
		}
		if key != "" {
			segments = append(segments, segment{key: key})
		}
		for hasIndex {
			var digits string
			var found bool
			digits, rest, found = strings.Cut(rest, "]")
			if !found {
				return nil, fmt.Errorf("%w: unclosed '[' in %q", ErrInvalidPath, path)
			}
			index, err := strconv.Atoi(digits)
			if err != nil || index < 0 {
				return nil, fmt.Errorf("%w: index %q in %q", ErrInvalidPath, digits, path)
			}
			segments = append(segments, segment{index: index, isIndex: true})
			if rest == "" {
				break
			}
			if !strings.HasPrefix(rest, "[") {
				return nil, fmt.Errorf("%w: unexpected %q after index in %q", ErrInvalidPath, rest, path)
			}
			rest = rest[1:]
		}
	}
	return segments, nil
}

// joinPath is the inverse of parsePath.
func joinPath(segments []segment) string {
	var builder strings.Builder
	for position, segment := range segments {
		if !segment.isIndex && position > 0 {
			builder.WriteByte('.')
		}
		builder.WriteString(segment.String())
	}
	return builder.String()
}
