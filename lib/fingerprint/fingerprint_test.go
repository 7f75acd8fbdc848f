// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package fingerprint

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDomainsAreDistinct(t *testing.T) {
	input := []byte("the same bytes in every domain")

	payload := Payload(input)
	body := Body(input)
	inventory := keyedHash(inventoryDomainKey, input)

	if payload == body || payload == inventory || body == inventory {
		t.Error("two domains produced the same digest for identical input")
	}
}

func TestDomainKeysArePadded(t *testing.T) {
	keys := map[string]domainKey{
		"lootforge.serial.payload": payloadDomainKey,
		"lootforge.save.body":      bodyDomainKey,
		"lootforge.inventory":      inventoryDomainKey,
	}
	for name, key := range keys {
		if got := strings.TrimRight(string(key[:]), "\x00"); got != name {
			t.Errorf("domain key reads %q, want %q", got, name)
		}
	}
}

func TestDeterministic(t *testing.T) {
	input := []byte{0x84, 0xa5, 0x86, 0x06}
	if Payload(input) != Payload(input) {
		t.Error("Payload is not deterministic")
	}
	if Payload(input) == Payload(input[:3]) {
		t.Error("Payload ignored a byte")
	}
}

func TestInventoryIgnoresOrder(t *testing.T) {
	a := Payload([]byte("a"))
	b := Payload([]byte("b"))
	c := Payload([]byte("c"))

	if Inventory([]Digest{a, b, c}) != Inventory([]Digest{c, a, b}) {
		t.Error("Inventory depends on item order")
	}
	if Inventory([]Digest{a, b}) == Inventory([]Digest{a, b, b}) {
		t.Error("Inventory ignored a duplicate item")
	}
	if Inventory(nil) != Inventory([]Digest{}) {
		t.Error("nil and empty inventories differ")
	}

	items := []Digest{c, a}
	Inventory(items)
	if items[0] != c {
		t.Error("Inventory reordered the caller's slice")
	}
}

func TestTextRoundTrip(t *testing.T) {
	digest := Body([]byte("state: {}"))

	data, err := json.Marshal(digest)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if string(data) != `"`+digest.String()+`"` {
		t.Errorf("JSON = %s, want the quoted hex form", data)
	}
	var decoded Digest
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if decoded != digest {
		t.Error("JSON round trip changed the digest")
	}

	if !strings.HasPrefix(digest.Short(), "fp-") || len(digest.Short()) != 15 {
		t.Errorf("Short() = %q", digest.Short())
	}
}

func TestParseRejects(t *testing.T) {
	for _, input := range []string{"", "zz", strings.Repeat("ab", 31)} {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) succeeded", input)
		}
	}
}
