// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mau

import (
	"github.com/platinasystems/mau/internal/m"
)

// HashXbar selects the first Width key bytes of a hash slot's input.
type HashXbar struct {
	Width  uint8
	Select [KeyBytes]Selector
}

func (x *HashXbar) MemBits() int { return 5 + 8*KeyBytes }
func (x *HashXbar) MemGetSet(b []uint32, isSet bool) {
	i := m.MemGetSetUint8(&x.Width, b, 4, 0, isSet)
	for j := range x.Select {
		i = m.MemGetSetUint8((*uint8)(&x.Select[j]), b, i+7, i, isSet)
	}
}

func (x *HashXbar) key(hv *HeaderVector) (k Key) {
	for i := 0; i < int(x.Width) && i < KeyBytes; i++ {
		k[i] = hv.selected(x.Select[i])
	}
	return
}

// Key is also the layout of a hash coefficient row.
func (k *Key) MemBits() int { return 8 * KeyBytes }
func (k *Key) MemGetSet(b []uint32, isSet bool) {
	m.MemGetSetBytes(k[:], b, 0, isSet)
}

// HashSeed is xor'ed into the linear hash; Disable bits are forced to zero.
type HashSeed struct {
	Seed    uint64
	Disable uint64
}

func (e *HashSeed) MemBits() int { return 2 * HashBits }
func (e *HashSeed) MemGetSet(b []uint32, isSet bool) {
	i := m.MemGetSetUint64(&e.Seed, b, HashBits-1, 0, isSet)
	m.MemGetSetUint64(&e.Disable, b, i+HashBits-1, i, isSet)
}

// ParityGroup replaces output bit Dest with the parity of the Members bits.
type ParityGroup struct {
	Enable  bool
	Dest    uint8
	Members uint64
}

func (e *ParityGroup) MemBits() int { return 7 + HashBits }
func (e *ParityGroup) MemGetSet(b []uint32, isSet bool) {
	i := m.MemGetSet1(&e.Enable, b, 0, isSet)
	i = m.MemGetSetUint8(&e.Dest, b, i+5, i, isSet)
	m.MemGetSetUint64(&e.Members, b, i+HashBits-1, i, isSet)
}

// HashMatrixSpec programs one hash slot.  Row o holds the key bits xor'ed
// into output bit o.
type HashMatrixSpec struct {
	Xbar HashXbar
	Rows [HashBits]Key
	HashSeed
	Parity [NParityGroups]ParityGroup
}

// Hash returns the HashBits wide output of the given slot; slots out of
// range hash to zero.
func (c *ConfigState) Hash(hv *HeaderVector, slot int) uint64 {
	if slot < 0 || slot >= NHashSlots {
		return 0
	}
	h := &c.HashSpecs[slot]
	k := h.Xbar.key(hv)
	var out uint64
	for o := range h.Rows {
		out |= k.dotParity(&h.Rows[o]) << uint(o)
	}
	out ^= h.Seed
	out &^= h.Disable
	out &= hashMask
	for g := range h.Parity {
		p := &h.Parity[g]
		if !p.Enable || p.Dest >= HashBits {
			continue
		}
		d := uint(p.Dest)
		out = out&^(1<<d) | m.Parity(out&p.Members)<<d
	}
	return out
}

func (c *ConfigState) hashAll(hv *HeaderVector) (h [NHashSlots]uint64) {
	for i := range h {
		h[i] = c.Hash(hv, i)
	}
	return
}
