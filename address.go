// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mau

import (
	"github.com/platinasystems/mau/internal/m"
)

// AddressRule turns matched data into a domain address.
//
//	bits = data[Lo+Width-1:Lo]
//	addr = ((bits << Shift) & Mask | Default) & range
//
// With PerEntryEnable set, entries whose data bit Select is set use
// data[AltLo+AltWidth-1:AltLo] instead.  A miss yields Miss unchanged.
type AddressRule struct {
	Lo, Width      uint8
	Shift          uint8
	PerEntryEnable bool
	Select         uint8
	AltLo          uint8
	AltWidth       uint8
	Mask           uint32
	Default        uint32
	Miss           uint32
}

func (e *AddressRule) MemBits() int { return 132 }
func (e *AddressRule) MemGetSet(b []uint32, isSet bool) {
	i := m.MemGetSetUint8(&e.Lo, b, 5, 0, isSet)
	i = m.MemGetSetUint8(&e.Width, b, i+5, i, isSet)
	i = m.MemGetSetUint8(&e.Shift, b, i+4, i, isSet)
	i = m.MemGetSet1(&e.PerEntryEnable, b, i, isSet)
	i = m.MemGetSetUint8(&e.Select, b, i+5, i, isSet)
	i = m.MemGetSetUint8(&e.AltLo, b, i+5, i, isSet)
	i = m.MemGetSetUint8(&e.AltWidth, b, i+5, i, isSet)
	i = m.MemGetSetUint32(&e.Mask, b, i+31, i, isSet)
	i = m.MemGetSetUint32(&e.Default, b, i+31, i, isSet)
	m.MemGetSetUint32(&e.Miss, b, i+31, i, isSet)
}

func field(data uint64, lo, width uint8) uint64 {
	return (data >> lo) & (1<<width - 1)
}

// Resolve applies the rule for domain d.
func (e *AddressRule) Resolve(d Domain, r *MatchResult) uint32 {
	if !r.Hit {
		return e.Miss
	}
	lo, width := e.Lo, e.Width
	if e.PerEntryEnable && r.Data&(1<<e.Select) != 0 {
		lo, width = e.AltLo, e.AltWidth
	}
	a := field(r.Data, lo, width) << e.Shift
	a = a&uint64(e.Mask) | uint64(e.Default)
	return uint32(a) & d.RangeMask()
}

// ResolveAddress returns the domain address of a table's match result
// distributed through the given half.
func (c *ConfigState) ResolveAddress(d Domain, table int, h Half, r *MatchResult) uint32 {
	if d >= NDomains || table < 0 || table >= NLogicalTables || h >= NHalves {
		return 0
	}
	return c.Rules[d][table][h].Resolve(d, r)
}
