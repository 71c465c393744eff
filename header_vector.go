// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mau

import (
	"encoding/binary"
	"fmt"

	"github.com/platinasystems/mau/internal/m"
)

// HeaderVector is the parsed packet header presented to the stage.
type HeaderVector struct {
	Bytes [HeaderVectorBytes]uint8
	// 2 bit table version carried with the packet.
	Version uint8
}

// NewHeaderVector copies b into a header vector; missing bytes are zero and
// bytes past HeaderVectorBytes are dropped.
func NewHeaderVector(b []uint8, version uint8) *HeaderVector {
	hv := &HeaderVector{Version: version & 3}
	copy(hv.Bytes[:], b)
	return hv
}

// Read n big endian bytes at offset; bytes past the end read as zero.
func (hv *HeaderVector) get(offset, n int) (v uint32) {
	for i := 0; i < n; i++ {
		v <<= 8
		if o := offset + i; o < HeaderVectorBytes {
			v |= uint32(hv.Bytes[o])
		}
	}
	return
}

// Selector is one input crossbar byte: bit 7 valid, bits 0-6 header vector
// byte offset.
type Selector uint8

const selectorValid Selector = 1 << 7

// SelectByte returns a valid selector of the given header vector byte.
func SelectByte(offset int) Selector { return selectorValid | Selector(offset&0x7f) }

func (s Selector) Valid() bool { return s&selectorValid != 0 }
func (s Selector) Offset() int { return int(s &^ selectorValid) }

func (s Selector) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("hv[%d]", s.Offset())
}

func (hv *HeaderVector) selected(s Selector) uint8 {
	if !s.Valid() {
		return 0
	}
	return hv.Bytes[s.Offset()]
}

// Key is a 128 bit match key, byte 0 holding key bits 0-7.
type Key [KeyBytes]uint8

func (k *Key) halves() (lo, hi uint64) {
	return binary.LittleEndian.Uint64(k[:8]), binary.LittleEndian.Uint64(k[8:])
}

// Ternary compare: (k ^ v) & mask == 0.
func (k *Key) matches(v, mask *Key) bool {
	for i := range k {
		if (k[i]^v[i])&mask[i] != 0 {
			return false
		}
	}
	return true
}

// Parity of k & c.
func (k *Key) dotParity(c *Key) uint64 {
	klo, khi := k.halves()
	clo, chi := c.halves()
	return m.Parity(klo&clo ^ khi&chi)
}

// Number of leading key bytes needed to hold all set bits.
func (k *Key) usedBytes() int {
	for i := len(k) - 1; i >= 0; i-- {
		if k[i] != 0 {
			return i + 1
		}
	}
	return 0
}

func (k Key) String() string { return fmt.Sprintf("%x", k[:]) }

// KeyXbar selects the header vector bytes of a table's match key.
type KeyXbar [KeyBytes]Selector

func (x *KeyXbar) key(hv *HeaderVector) (k Key) {
	for i, s := range x {
		k[i] = hv.selected(s)
	}
	return
}
