// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"encoding/json"
	"fmt"

	"github.com/lootforge/lootforge/lib/codec"
)

// tokenRecord is the JSON and CBOR shape of a Token. Zero fields are
// omitted; a missing field decodes as zero, which is the value the
// omitted field had.
type tokenRecord struct {
	Kind   Kind     `json:"kind"`
	Value  uint64   `json:"value,omitempty"`
	Bits   uint8    `json:"bits,omitempty"`
	Index  uint16   `json:"index,omitempty"`
	Part   PartKind `json:"part,omitempty"`
	Values []uint16 `json:"values,omitempty"`
	Text   string   `json:"text,omitempty"`
}

func (t Token) record() tokenRecord {
	record := tokenRecord{Kind: t.Kind}
	switch t.Kind {
	case KindVarInt:
		record.Value = t.Value
	case KindVarBit:
		record.Value = t.Value
		record.Bits = t.BitLength
	case KindPart:
		record.Index = t.Index
		record.Part = t.Part.Kind
		switch t.Part.Kind {
		case PartSingle:
			record.Value = uint64(t.Part.Single)
		case PartList:
			record.Values = t.Part.List
		}
	case KindString:
		record.Text = string(t.Bytes)
	}
	return record
}

func (record tokenRecord) token() (Token, error) {
	switch record.Kind {
	case KindSeparator:
		return Separator(), nil
	case KindSoftSeparator:
		return SoftSeparator(), nil
	case KindVarInt:
		if record.Value > varIntMaxValue {
			return Token{}, fmt.Errorf("%w: varint %d exceeds %d", ErrInvalidToken, record.Value, varIntMaxValue)
		}
		return VarInt(uint16(record.Value)), nil
	case KindVarBit:
		return VarBit(record.Value, record.Bits), nil
	case KindPart:
		switch record.Part {
		case PartNone:
			return PartNoValue(record.Index), nil
		case PartSingle:
			if record.Value > varIntMaxValue {
				return Token{}, fmt.Errorf("%w: part value %d exceeds %d", ErrInvalidToken, record.Value, varIntMaxValue)
			}
			return PartWithValue(record.Index, uint16(record.Value)), nil
		case PartList:
			return PartWithList(record.Index, record.Values...), nil
		default:
			return Token{}, fmt.Errorf("%w: part %d has no part kind", ErrInvalidToken, record.Index)
		}
	case KindString:
		return StringToken(record.Text), nil
	default:
		return Token{}, fmt.Errorf("%w: missing token kind", ErrInvalidToken)
	}
}

// MarshalJSON implements json.Marshaler.
func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.record())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Token) UnmarshalJSON(data []byte) error {
	var record tokenRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}
	token, err := record.token()
	if err != nil {
		return err
	}
	*t = token
	return nil
}

// MarshalCBOR implements cbor.Marshaler with the same field names as
// the JSON form.
func (t Token) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(t.record())
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (t *Token) UnmarshalCBOR(data []byte) error {
	var record tokenRecord
	if err := codec.Unmarshal(data, &record); err != nil {
		return err
	}
	token, err := record.token()
	if err != nil {
		return err
	}
	*t = token
	return nil
}

// Record is the exported document form of a decoded serial, used for
// JSON and CBOR output and as the input of the encode command.
type Record struct {
	Serial   string   `json:"serial"`
	TypeChar string   `json:"type,omitempty"`
	Tokens   []Token  `json:"tokens"`
	Warnings []string `json:"warnings,omitempty"`
}

// Record returns the document form of s. text is the original serial
// string; pass "" to use the re-encoded form.
func (s *Serial) Record(text string) Record {
	if text == "" {
		text = s.String()
	}
	record := Record{Serial: text, Tokens: s.Tokens}
	if s.TypeChar != 0 {
		record.TypeChar = string(s.TypeChar)
	}
	for _, warning := range s.Warnings {
		record.Warnings = append(record.Warnings, warning.String())
	}
	return record
}
