// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mau

import (
	"github.com/platinasystems/mau/internal/m"
)

// TernaryEntry is one TCAM word and its indirection data.
type TernaryEntry struct {
	Valid bool
	// Entry matches packets whose version agrees on VersionMask bits.
	Version     uint8
	VersionMask uint8
	// Logical table owning this entry.
	Table uint8
	// Lower position is higher priority.
	Position    uint16
	Value, Mask Key
	// Indirection word handed to address distribution on hit.
	Data uint64
}

func (e *TernaryEntry) MemBits() int { return 345 }

// Value and mask are stored in x/y form.
func (e *TernaryEntry) MemGetSet(b []uint32, isSet bool) {
	i := m.MemGetSet1(&e.Valid, b, 0, isSet)
	i = m.MemGetSetUint8(&e.Version, b, i+1, i, isSet)
	i = m.MemGetSetUint8(&e.VersionMask, b, i+1, i, isSet)
	i = m.MemGetSetUint8(&e.Table, b, i+3, i, isSet)
	i = m.MemGetSetUint16(&e.Position, b, i+15, i, isSet)
	var x, y Key
	if isSet {
		m.TcamEncodeBytes(e.Value[:], e.Mask[:], x[:], y[:], isSet)
	}
	i = m.MemGetSetBytes(x[:], b, i, isSet)
	i = m.MemGetSetBytes(y[:], b, i, isSet)
	if !isSet {
		m.TcamEncodeBytes(x[:], y[:], e.Value[:], e.Mask[:], isSet)
	}
	m.MemGetSetUint64(&e.Data, b, i+63, i, isSet)
}

func (e *TernaryEntry) matches(key *Key, version uint8) bool {
	return e.Valid &&
		(version^e.Version)&e.VersionMask&3 == 0 &&
		key.matches(&e.Value, &e.Mask)
}

// MatchResult is a lookup outcome.  On hit Address is the physical match
// address and Data the word feeding address distribution.
type MatchResult struct {
	Hit     bool
	Address uint32
	Data    uint64
	Table   int
}

// TcamMatch returns the highest priority entry of table matching key.
func (c *ConfigState) TcamMatch(table int, key *Key, version uint8) (r MatchResult) {
	r.Table = table
	if table < 0 || table >= NLogicalTables {
		return
	}
	for _, i := range c.tcamIndex[table] {
		e := &c.Tcam[i]
		if int(e.Table) == table && e.matches(key, version) {
			r.Hit = true
			r.Address = uint32(i)
			r.Data = e.Data
			return
		}
	}
	return
}
