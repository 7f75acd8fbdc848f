// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"bytes"
	"fmt"
	"slices"
)

// Kind discriminates the token variants. The set is closed: a new
// variant would be a change to the serial format itself.
type Kind uint8

const (
	KindSeparator Kind = iota + 1
	KindSoftSeparator
	KindVarInt
	KindVarBit
	KindPart
	KindString
)

var kindNames = map[Kind]string{
	KindSeparator:     "separator",
	KindSoftSeparator: "soft_separator",
	KindVarInt:        "varint",
	KindVarBit:        "varbit",
	KindPart:          "part",
	KindString:        "string",
}

// String returns the lower-case name used in JSON and CBOR output.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown token kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown token kind %q", text)
}

// PartKind discriminates the value attached to a Part token.
type PartKind uint8

const (
	// PartNone is a part reference with no value (subtype 10).
	PartNone PartKind = iota + 1
	// PartSingle carries one VarInt value (flag bit 1).
	PartSingle
	// PartList carries a list of VarInt values (subtype 01).
	PartList
)

var partKindNames = map[PartKind]string{
	PartNone:   "none",
	PartSingle: "single",
	PartList:   "list",
}

func (k PartKind) String() string {
	if name, ok := partKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("part_kind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k PartKind) MarshalText() ([]byte, error) {
	if _, ok := partKindNames[k]; !ok {
		return nil, fmt.Errorf("unknown part kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PartKind) UnmarshalText(text []byte) error {
	for kind, name := range partKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown part kind %q", text)
}

// PartValue is the payload of a Part token.
type PartValue struct {
	Kind PartKind
	// Single is set when Kind is PartSingle.
	Single uint16
	// List is set when Kind is PartList. It may be empty.
	List []uint16
}

// Token is one decoded unit of a serial bitstream. Kind selects which
// of the remaining fields are meaningful:
//
//	KindSeparator, KindSoftSeparator  no fields
//	KindVarInt                        Value (at most 0xFFFF)
//	KindVarBit                        Value, BitLength (0-31; Value fits in BitLength bits)
//	KindPart                          Index, Part
//	KindString                        Bytes (7-bit ASCII)
//
// Build tokens with the constructor functions below rather than by
// hand so the unused fields stay zero.
type Token struct {
	Kind      Kind
	Value     uint64
	BitLength uint8
	Index     uint16
	Part      PartValue
	Bytes     []byte
}

// Separator returns a Separator token.
func Separator() Token { return Token{Kind: KindSeparator} }

// SoftSeparator returns a SoftSeparator token.
func SoftSeparator() Token { return Token{Kind: KindSoftSeparator} }

// VarInt returns a VarInt token.
func VarInt(value uint16) Token { return Token{Kind: KindVarInt, Value: uint64(value)} }

// VarBit returns a VarBit token holding value in bitLength bits.
func VarBit(value uint64, bitLength uint8) Token {
	return Token{Kind: KindVarBit, Value: value, BitLength: bitLength}
}

// PartNoValue returns a Part token without a value.
func PartNoValue(index uint16) Token {
	return Token{Kind: KindPart, Index: index, Part: PartValue{Kind: PartNone}}
}

// PartWithValue returns a Part token with a single value.
func PartWithValue(index, value uint16) Token {
	return Token{Kind: KindPart, Index: index, Part: PartValue{Kind: PartSingle, Single: value}}
}

// PartWithList returns a Part token with a list of values.
func PartWithList(index uint16, values ...uint16) Token {
	return Token{Kind: KindPart, Index: index, Part: PartValue{Kind: PartList, List: values}}
}

// StringToken returns a String token for text. text should be 7-bit
// ASCII; [EncodeTokens] rejects anything else.
func StringToken(text string) Token { return Token{Kind: KindString, Bytes: []byte(text)} }

// IsSeparator reports whether t is a Separator.
func (t Token) IsSeparator() bool { return t.Kind == KindSeparator }

// Equal reports whether t and other are the same token. Nil and empty
// slices compare equal.
func (t Token) Equal(other Token) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindSeparator, KindSoftSeparator:
		return true
	case KindVarInt:
		return t.Value == other.Value
	case KindVarBit:
		return t.Value == other.Value && t.BitLength == other.BitLength
	case KindPart:
		if t.Index != other.Index || t.Part.Kind != other.Part.Kind {
			return false
		}
		switch t.Part.Kind {
		case PartSingle:
			return t.Part.Single == other.Part.Single
		case PartList:
			return slices.Equal(t.Part.List, other.Part.List)
		default:
			return true
		}
	case KindString:
		return bytes.Equal(t.Bytes, other.Bytes)
	default:
		return false
	}
}

// EqualTokens reports whether two token sequences are element-wise Equal.
func EqualTokens(a, b []Token) bool {
	return slices.EqualFunc(a, b, Token.Equal)
}
