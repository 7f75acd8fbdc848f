// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package savedoc

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const pathBackpack = "state.inventory.items.backpack"

// BackpackSlot returns the path of a backpack slot.
func BackpackSlot(slot int) string {
	return fmt.Sprintf(pathBackpackSlot, slot)
}

// NextBackpackSlot returns the slot number one past the highest
// occupied backpack slot, or 0 when the backpack is empty or missing.
// Gaps left by removed items are not reused.
func (d *Document) NextBackpackSlot() int {
	node, err := d.Node(pathBackpack)
	if err != nil || node.Kind != yaml.MappingNode {
		return 0
	}
	next := 0
	for position := 0; position+1 < len(node.Content); position += 2 {
		suffix, ok := strings.CutPrefix(node.Content[position].Value, "slot_")
		if !ok {
			continue
		}
		slot, err := strconv.Atoi(suffix)
		if err != nil || slot < 0 {
			continue
		}
		next = max(next, slot+1)
	}
	return next
}
