// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mau

import (
	"github.com/platinasystems/mau/internal/m"
)

// ExactWay is one hash way of an exact match table.  The way's hash slot
// output selects a bank of 1<<BankBits units starting at UnitBase and a word
// within the bank's unit.
type ExactWay struct {
	Valid    bool
	HashSlot uint8
	// Hash output bit offsets of word index and bank select.
	IndexLo  uint8
	BankLo   uint8
	BankBits uint8
	UnitBase uint8
	// Entries of bank n carry VPN + n.
	VPN uint8
}

func (e *ExactWay) MemBits() int { return 29 }
func (e *ExactWay) MemGetSet(b []uint32, isSet bool) {
	i := m.MemGetSet1(&e.Valid, b, 0, isSet)
	i = m.MemGetSetUint8(&e.HashSlot, b, i+2, i, isSet)
	i = m.MemGetSetUint8(&e.IndexLo, b, i+5, i, isSet)
	i = m.MemGetSetUint8(&e.BankLo, b, i+5, i, isSet)
	i = m.MemGetSetUint8(&e.BankBits, b, i+1, i, isSet)
	i = m.MemGetSetUint8(&e.UnitBase, b, i+4, i, isSet)
	m.MemGetSetUint8(&e.VPN, b, i+5, i, isSet)
}

// Unit and word addressed by the given hash output.
func (e *ExactWay) locate(h uint64) (unit, word int, vpn uint8) {
	word = int(h>>e.IndexLo) & (NSramWords - 1)
	bank := int(h>>e.BankLo) & (1<<e.BankBits - 1)
	unit = (int(e.UnitBase) + bank) % NSramUnits
	vpn = (e.VPN + uint8(bank)) & 0x3f
	return
}

// ExactMatchEntry is one exact match memory word.
type ExactMatchEntry struct {
	Valid   bool
	Version uint8
	VPN     uint8
	Data    Key
	// Overhead bits handed to address distribution on hit.
	Overhead uint64
}

func (e *ExactMatchEntry) MemBits() int { return 201 }
func (e *ExactMatchEntry) MemGetSet(b []uint32, isSet bool) {
	i := m.MemGetSet1(&e.Valid, b, 0, isSet)
	i = m.MemGetSetUint8(&e.Version, b, i+1, i, isSet)
	i = m.MemGetSetUint8(&e.VPN, b, i+5, i, isSet)
	i = m.MemGetSetBytes(e.Data[:], b, i, isSet)
	m.MemGetSetUint64(&e.Overhead, b, i+63, i, isSet)
}

// Compare key and data on nibbles enabled by mask.
func nibbleEqual(a, b *Key, mask uint32) bool {
	for i := range a {
		x := a[i] ^ b[i]
		if mask&(1<<uint(2*i)) != 0 && x&0xf != 0 {
			return false
		}
		if mask&(1<<uint(2*i+1)) != 0 && x&0xf0 != 0 {
			return false
		}
	}
	return true
}

// ExactMatch looks key up in each valid way of table in way order and
// returns the first hit.
func (c *ConfigState) ExactMatch(table int, key *Key, hash *[NHashSlots]uint64, version uint8) (r MatchResult) {
	r.Table = table
	if table < 0 || table >= NLogicalTables {
		return
	}
	t := &c.Tables[table]
	for w := range t.Ways {
		way := &t.Ways[w]
		if !way.Valid {
			continue
		}
		unit, word, vpn := way.locate(hash[way.HashSlot%NHashSlots])
		a := unit*NSramWords + word
		e := &c.Sram[a]
		if !e.Valid || e.VPN != vpn {
			continue
		}
		if t.VersionEnable && e.Version != version {
			continue
		}
		if !nibbleEqual(&e.Data, key, t.NibbleMask) {
			continue
		}
		r.Hit = true
		r.Address = uint32(a)
		r.Data = e.Overhead
		return
	}
	return
}
