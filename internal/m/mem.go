// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package m encodes and decodes MAU register fields packed into 32 bit
// register words.  Bit i of a register lives in word i/32, bit i%32.
package m

import (
	"fmt"
	"math/bits"
)

// MemGetSetter is implemented by every register entity; MemGetSet decodes
// from (isSet false) or encodes into (isSet true) the given words.
type MemGetSetter interface {
	MemBits() int
	MemGetSet(b []uint32, isSet bool)
}

// Words returns the number of 32 bit words needed to hold n bits.
func Words(nBits int) int { return (nBits + 31) / 32 }

// Encode returns the register words of the given entity.
func Encode(e MemGetSetter) []uint32 {
	b := make([]uint32, Words(e.MemBits()))
	e.MemGetSet(b, true)
	return b
}

// Decode fills the entity from the given words.
func Decode(e MemGetSetter, b []uint32) error {
	if need := Words(e.MemBits()); len(b) < need {
		return fmt.Errorf("%d words, need %d", len(b), need)
	}
	e.MemGetSet(b, false)
	return nil
}

func MemGet1(x []uint32, lo int) bool {
	l0, l1 := uint(lo/32), uint(lo%32)
	return x[l0]&(1<<l1) != 0
}

func MemSet1(x []uint32, lo int, v bool) {
	l0, l1 := uint(lo/32), uint(lo%32)
	m := uint32(1) << l1
	if v {
		x[l0] |= m
	} else {
		x[l0] &^= m
	}
}

func MemGetSet1(v *bool, x []uint32, lo int, isSet bool) int {
	if isSet {
		MemSet1(x, lo, *v)
	} else {
		*v = MemGet1(x, lo)
	}
	return lo + 1
}

// Get or Set bits lo <= i <= hi, so hi - lo + 1 bits total.
func MemGetSet(v *uint64, x []uint32, hi, lo int, isSet bool) int {
	nBits := 1 + uint(hi-lo)
	if nBits > 64 {
		panic(fmt.Errorf("more than 64 bits"))
	}
	nLeft := nBits
	r := uint64(0)
	if isSet {
		r = *v
	}
	nDone := uint(0)
	i := uint(lo)
	for nLeft > 0 {
		i0, i1 := i/32, i%32
		m := 32 - i1
		if m > nLeft {
			m = nLeft
		}
		mask := uint64(1)<<m - 1
		if isSet {
			x[i0] &^= uint32(mask << i1)
			x[i0] |= uint32(((r >> nDone) & mask) << i1)
		} else {
			r |= ((uint64(x[i0]) >> i1) & mask) << nDone
		}
		nDone += m
		nLeft -= m
		i += m
	}
	if !isSet {
		*v = r
	}
	return hi + 1
}

func MemGet(x []uint32, hi, lo int) (v uint64) { MemGetSet(&v, x, hi, lo, false); return }
func MemSet(x []uint32, hi, lo int, v uint64)  { MemGetSet(&v, x, hi, lo, true) }

func MemGetSetUint8(v *uint8, x []uint32, hi, lo int, isSet bool) int {
	w := uint64(*v)
	MemGetSet(&w, x, hi, lo, isSet)
	*v = uint8(w)
	return hi + 1
}

func MemGetSetUint16(v *uint16, x []uint32, hi, lo int, isSet bool) int {
	w := uint64(*v)
	MemGetSet(&w, x, hi, lo, isSet)
	*v = uint16(w)
	return hi + 1
}

func MemGetSetUint32(v *uint32, x []uint32, hi, lo int, isSet bool) int {
	w := uint64(*v)
	MemGetSet(&w, x, hi, lo, isSet)
	*v = uint32(w)
	return hi + 1
}

func MemGetSetUint64(v *uint64, x []uint32, hi, lo int, isSet bool) int {
	return MemGetSet(v, x, hi, lo, isSet)
}

// MemGetSetBytes moves len(v) bytes starting at bit lo, byte 0 lowest.
func MemGetSetBytes(v []uint8, x []uint32, lo int, isSet bool) int {
	for i := range v {
		lo = MemGetSetUint8(&v[i], x, lo+7, lo, isSet)
	}
	return lo
}

// Parity is the xor of all bits of x.
func Parity(x uint64) uint64 { return uint64(bits.OnesCount64(x) & 1) }

// TCAM x/y cell encoding: x = mask & key; y = mask &^ key
// x/y are the bits that are masked with value of 1/0 respectively.
// Decoding: key = x, mask = x | y
type TcamUint8 uint8

func (a TcamUint8) TcamEncode(b TcamUint8, isSet bool) (c, d TcamUint8) {
	if isSet {
		c, d = b&a, b&^a
	} else {
		c, d = a, a|b
	}
	return
}

// TcamEncodeBytes applies TcamEncode to each byte pair of key and mask.
func TcamEncodeBytes(key, mask, c, d []uint8, isSet bool) {
	for i := range key {
		q, r := TcamUint8(key[i]).TcamEncode(TcamUint8(mask[i]), isSet)
		c[i], d[i] = uint8(q), uint8(r)
	}
}
