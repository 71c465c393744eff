// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mau

import (
	"errors"
	"fmt"

	"github.com/platinasystems/mau/internal/m"
)

// Space is a register space of the configuration interface.
type Space uint8

const (
	SpaceTable Space = iota
	SpaceKeyXbar
	SpaceTcam
	SpaceExactWay
	SpaceSram
	SpaceHashXbar
	SpaceHashRow
	SpaceHashSeed
	SpaceHashParity
	SpaceGatewayXbar
	SpaceGatewayRow
	SpaceAddress
	SpaceNextTable
	SpaceNextXbar
	SpaceInstruction
	SpaceImmediate
	NSpaces
)

var spaceNames = [NSpaces]string{
	SpaceTable:       "table",
	SpaceKeyXbar:     "key-xbar",
	SpaceTcam:        "tcam",
	SpaceExactWay:    "exact-way",
	SpaceSram:        "sram",
	SpaceHashXbar:    "hash-xbar",
	SpaceHashRow:     "hash-row",
	SpaceHashSeed:    "hash-seed",
	SpaceHashParity:  "hash-parity",
	SpaceGatewayXbar: "gateway-xbar",
	SpaceGatewayRow:  "gateway-row",
	SpaceAddress:     "address",
	SpaceNextTable:   "next-table",
	SpaceNextXbar:    "next-xbar",
	SpaceInstruction: "instruction",
	SpaceImmediate:   "immediate",
}

func (s Space) String() string {
	if s < NSpaces {
		return spaceNames[s]
	}
	return fmt.Sprintf("space%d", uint8(s))
}

// SpaceByName returns the space with the given name.
func SpaceByName(name string) (Space, bool) {
	for i, s := range spaceNames {
		if s == name {
			return Space(i), true
		}
	}
	return NSpaces, false
}

// Location is a register address within a space.
type Location uint32

func TableLoc(table int) Location           { return Location(table) }
func TcamLoc(entry int) Location            { return Location(entry) }
func WayLoc(table, way int) Location        { return Location(table<<2 | way) }
func SramLoc(unit, word int) Location       { return Location(unit<<sramIndexBits | word) }
func HashLoc(slot int) Location             { return Location(slot) }
func HashRowLoc(slot, bit int) Location     { return Location(slot<<6 | bit) }
func ParityLoc(slot, group int) Location    { return Location(slot<<2 | group) }
func GatewayRowLoc(table, row int) Location { return Location(table<<2 | row) }
func InstructionLoc(index int) Location     { return Location(index) }
func ImmediateLoc(table, slot int) Location { return Location(table<<4 | slot) }
func AddressLoc(d Domain, table int, h Half) Location {
	return Location(int(d)<<5 | table<<1 | int(h))
}

var (
	// ErrRange: location outside of its space.
	ErrRange = errors.New("location out of range")
	// ErrLength: value shorter than the register.
	ErrLength = errors.New("value too short")
	// ErrWidth: hash matrix and hash input width disagree.
	ErrWidth = errors.New("width mismatch")
)

// ConfigError is a rejected configuration write.
type ConfigError struct {
	Space    Space
	Location Location
	// Logical table addressed by the location; -1 if none.
	Table int
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Table < 0 {
		return fmt.Sprintf("%v %#x: %v", e.Space, uint32(e.Location), e.Err)
	}
	return fmt.Sprintf("%v %#x table %d: %v", e.Space, uint32(e.Location),
		e.Table, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Write is one register write.
type Write struct {
	Space    Space
	Location Location
	Value    []uint32
}

// NewWrite encodes e as the value of a write.
func NewWrite(s Space, loc Location, e m.MemGetSetter) Write {
	return Write{Space: s, Location: loc, Value: m.Encode(e)}
}

func (w Write) String() string {
	return fmt.Sprintf("%v %#x %x", w.Space, uint32(w.Location), w.Value)
}

// entity returns the register addressed by s and loc and its table.
func (c *ConfigState) entity(s Space, loc Location) (e m.MemGetSetter, table int, err error) {
	x := int(loc)
	table = -1
	in := func(n int) bool { return x >= 0 && x < n }
	switch s {
	case SpaceTable, SpaceKeyXbar, SpaceGatewayXbar, SpaceNextTable, SpaceNextXbar:
		if !in(NLogicalTables) {
			break
		}
		table = x
		t := &c.Tables[x]
		switch s {
		case SpaceTable:
			e = &t.TableConfig
		case SpaceKeyXbar:
			e = &t.KeyXbar
		case SpaceGatewayXbar:
			e = &t.Gateway.Xbar
		case SpaceNextTable:
			e = &t.Next
		case SpaceNextXbar:
			e = &t.NextXbar
		}
	case SpaceTcam:
		if in(NTcamEntries) {
			e = &c.Tcam[x]
		}
	case SpaceExactWay:
		if in(NLogicalTables * NWays) {
			table = x >> 2
			e = &c.Tables[table].Ways[x&3]
		}
	case SpaceSram:
		if in(NSramUnits * NSramWords) {
			e = &c.Sram[x]
		}
	case SpaceHashXbar:
		if in(NHashSlots) {
			e = &c.HashSpecs[x].Xbar
		}
	case SpaceHashRow:
		if slot, bit := x>>6, x&63; in(NHashSlots<<6) && bit < HashBits {
			e = &c.HashSpecs[slot].Rows[bit]
		}
	case SpaceHashSeed:
		if in(NHashSlots) {
			e = &c.HashSpecs[x].HashSeed
		}
	case SpaceHashParity:
		if in(NHashSlots * NParityGroups) {
			e = &c.HashSpecs[x>>2].Parity[x&3]
		}
	case SpaceGatewayRow:
		if in(NLogicalTables * NGatewayRows) {
			table = x >> 2
			e = &c.Tables[table].Gateway.Rows[x&3]
		}
	case SpaceAddress:
		if in(int(NDomains) << 5) {
			table = x >> 1 & 0xf
			e = &c.Rules[x>>5][table][x&1]
		}
	case SpaceInstruction:
		if in(NInstructions) {
			e = &c.Instructions[x]
		}
	case SpaceImmediate:
		if slot := x & 0xf; in(NLogicalTables<<4) && slot < NImmediateSlots {
			table = x >> 4
			e = &c.Tables[table].Immediate[slot]
		}
	}
	if e == nil {
		err = ErrRange
	}
	return
}

// Hash coefficient rows may only use key bytes within the slot's input
// width.
func (c *ConfigState) checkWidth(w *Write) error {
	switch w.Space {
	case SpaceHashRow:
		var row Key
		row.MemGetSet(w.Value, false)
		if row.usedBytes() > int(c.HashSpecs[w.Location>>6].Xbar.Width) {
			return ErrWidth
		}
	case SpaceHashXbar:
		var x HashXbar
		x.MemGetSet(w.Value, false)
		if x.Width > KeyBytes {
			return ErrWidth
		}
		h := &c.HashSpecs[w.Location]
		for i := range h.Rows {
			if h.Rows[i].usedBytes() > int(x.Width) {
				return ErrWidth
			}
		}
	}
	return nil
}

// prepare validates w against the current configuration and returns
// functions that apply and revert it.
func (c *ConfigState) prepare(w *Write) (do, undo func(), err error) {
	e, table, err := c.entity(w.Space, w.Location)
	if err == nil && len(w.Value) < m.Words(e.MemBits()) {
		err = ErrLength
	}
	if err == nil {
		err = c.checkWidth(w)
	}
	if err != nil {
		err = &ConfigError{
			Space:    w.Space,
			Location: w.Location,
			Table:    table,
			Err:      err,
		}
		return
	}
	old := m.Encode(e)
	v := append([]uint32(nil), w.Value...)
	tcam := w.Space == SpaceTcam
	do = func() {
		if err := m.Decode(e, v); err == nil && tcam {
			c.tcamDirty = true
		}
	}
	undo = func() {
		m.Decode(e, old)
		if tcam {
			c.tcamDirty = true
		}
	}
	return
}

// ApplyWrite validates and applies one register write.
func (c *ConfigState) ApplyWrite(s Space, loc Location, v []uint32) error {
	return c.ApplyWrites(Write{Space: s, Location: loc, Value: v})
}

// ApplyWrites applies writes in order; if any is rejected none are applied.
func (c *ConfigState) ApplyWrites(writes ...Write) error {
	undos := make([]func(), 0, len(writes))
	for i := range writes {
		do, undo, err := c.prepare(&writes[i])
		if err != nil {
			for j := len(undos) - 1; j >= 0; j-- {
				undos[j]()
			}
			if c.tcamDirty {
				c.Reindex()
			}
			return err
		}
		do()
		undos = append(undos, undo)
	}
	if c.tcamDirty {
		c.Reindex()
	}
	return nil
}

// Read returns the encoded value of a register.
func (c *ConfigState) Read(s Space, loc Location) ([]uint32, error) {
	e, table, err := c.entity(s, loc)
	if err != nil {
		return nil, &ConfigError{
			Space:    s,
			Location: loc,
			Table:    table,
			Err:      err,
		}
	}
	return m.Encode(e), nil
}
