// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"strconv"
	"strings"
)

// PartNamer resolves a part index to a display name. It returns false
// when the index is unknown, in which case the index is shown.
type PartNamer func(index uint16) (string, bool)

// Format renders tokens in the compact text form used by the CLI:
//
//	180928| 50| {0:1} 1660| | {8} {14} {252:97}|
//
// Separators print as "|" and soft separators as ","; both attach to
// the preceding token. Parts print as {index}, {index:value} or
// {index:[a b c]}. Strings are quoted. A nil namer prints indices.
func Format(tokens []Token, namer PartNamer) string {
	var builder strings.Builder
	for position, token := range tokens {
		attach := token.Kind == KindSeparator || token.Kind == KindSoftSeparator
		if position > 0 && !(attach && !isBoundary(tokens[position-1])) {
			builder.WriteByte(' ')
		}
		formatToken(&builder, token, namer)
	}
	return builder.String()
}

// String renders a single token in the form used by [Format].
func (t Token) String() string {
	var builder strings.Builder
	formatToken(&builder, t, nil)
	return builder.String()
}

func isBoundary(token Token) bool {
	return token.Kind == KindSeparator || token.Kind == KindSoftSeparator
}

func formatToken(builder *strings.Builder, token Token, namer PartNamer) {
	switch token.Kind {
	case KindSeparator:
		builder.WriteByte('|')
	case KindSoftSeparator:
		builder.WriteByte(',')
	case KindVarInt, KindVarBit:
		builder.WriteString(strconv.FormatUint(token.Value, 10))
	case KindPart:
		builder.WriteByte('{')
		builder.WriteString(partLabel(token.Index, namer))
		switch token.Part.Kind {
		case PartSingle:
			builder.WriteByte(':')
			builder.WriteString(strconv.FormatUint(uint64(token.Part.Single), 10))
		case PartList:
			builder.WriteString(":[")
			for position, value := range token.Part.List {
				if position > 0 {
					builder.WriteByte(' ')
				}
				builder.WriteString(strconv.FormatUint(uint64(value), 10))
			}
			builder.WriteByte(']')
		}
		builder.WriteByte('}')
	case KindString:
		builder.WriteString(strconv.Quote(string(token.Bytes)))
	default:
		builder.WriteString(token.Kind.String())
	}
}

func partLabel(index uint16, namer PartNamer) string {
	if namer != nil {
		if name, ok := namer(index); ok {
			return name
		}
	}
	return strconv.FormatUint(uint64(index), 10)
}
