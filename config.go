// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mau

import (
	"sort"

	"github.com/platinasystems/mau/internal/m"
)

// TableConfig enables a logical table and its match engines.
type TableConfig struct {
	Enable bool
	// Ternary and Exact enable lookup in TCAM and exact match memory.
	Ternary bool
	Exact   bool
	// Exact match entries must carry the packet's version.
	VersionEnable bool
	// Exact match compares key nibble i iff bit i is set.
	NibbleMask uint32
}

func (e *TableConfig) MemBits() int { return 36 }
func (e *TableConfig) MemGetSet(b []uint32, isSet bool) {
	i := m.MemGetSet1(&e.Enable, b, 0, isSet)
	i = m.MemGetSet1(&e.Ternary, b, i, isSet)
	i = m.MemGetSet1(&e.Exact, b, i, isSet)
	i = m.MemGetSet1(&e.VersionEnable, b, i, isSet)
	m.MemGetSetUint32(&e.NibbleMask, b, i+31, i, isSet)
}

func (x *KeyXbar) MemBits() int { return 8 * KeyBytes }
func (x *KeyXbar) MemGetSet(b []uint32, isSet bool) {
	for i := range x {
		m.MemGetSetUint8((*uint8)(&x[i]), b, 8*i+7, 8*i, isSet)
	}
}

// Table is the per logical table configuration.
type Table struct {
	TableConfig
	KeyXbar   KeyXbar
	Ways      [NWays]ExactWay
	Gateway   Gateway
	Next      NextTableConfig
	NextXbar  NextXbar
	Immediate ImmediateXbar
}

// Tables with ternary lookup distribute addresses from the ternary half.
func (t *Table) half() Half {
	if t.Ternary {
		return HalfTernary
	}
	return HalfExact
}

// RuleSet holds a domain's address distribution rules.
type RuleSet [NLogicalTables][NHalves]AddressRule

// ConfigState is the register programmed configuration of one stage.
// Packet evaluation only reads it.
type ConfigState struct {
	Tables       [NLogicalTables]Table
	Tcam         [NTcamEntries]TernaryEntry
	Sram         []ExactMatchEntry
	HashSpecs    [NHashSlots]HashMatrixSpec
	Rules        [NDomains]RuleSet
	Instructions [NInstructions]Instruction

	// Valid TCAM entries of each table in priority order.
	tcamIndex [NLogicalTables][]uint16
	tcamDirty bool
}

// NewConfigState returns an all zero configuration.
func NewConfigState() *ConfigState {
	return &ConfigState{
		Sram: make([]ExactMatchEntry, NSramUnits*NSramWords),
	}
}

// Reindex rebuilds the TCAM priority index.  ApplyWrite does this itself;
// callers that modify Tcam directly must call Reindex before evaluation.
func (c *ConfigState) Reindex() {
	for t := range c.tcamIndex {
		c.tcamIndex[t] = c.tcamIndex[t][:0]
	}
	for i := range c.Tcam {
		e := &c.Tcam[i]
		if e.Valid {
			t := e.Table % NLogicalTables
			c.tcamIndex[t] = append(c.tcamIndex[t], uint16(i))
		}
	}
	// Stable: equal positions keep physical order so the lowest index wins.
	for t := range c.tcamIndex {
		x := c.tcamIndex[t]
		sort.SliceStable(x, func(a, b int) bool {
			return c.Tcam[x[a]].Position < c.Tcam[x[b]].Position
		})
	}
	c.tcamDirty = false
}
