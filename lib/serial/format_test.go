// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import "testing"

func TestFormat(t *testing.T) {
	names := map[uint16]string{8: "body_a", 252: "barrel_02"}
	namer := func(index uint16) (string, bool) {
		name, ok := names[index]
		return name, ok
	}

	tests := []struct {
		name   string
		tokens []Token
		namer  PartNamer
		want   string
	}{
		{"golden", goldenTokens, nil, "180928| 50| {0:1} 1660| | {8} {14} {252:97}|"},
		{"named parts", goldenTokens[8:], namer, "{body_a} {14} {barrel_02:97}|"},
		{"list and string", []Token{PartWithList(5, 1, 18), SoftSeparator(), StringToken("ok")}, nil, `{5:[1 18]}, "ok"`},
		{"leading separator", []Token{Separator(), VarInt(4)}, nil, "| 4"},
		{"empty", nil, nil, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Format(test.tokens, test.namer); got != test.want {
				t.Errorf("Format = %q, want %q", got, test.want)
			}
		})
	}
}
