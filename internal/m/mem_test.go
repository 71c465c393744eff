// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package m

import (
	"testing"
)

func TestMemGetSetStraddle(t *testing.T) {
	b := make([]uint32, 3)
	MemSet(b, 43, 28, 0xbeef)
	if got, want := b[0], uint32(0xf0000000); got != want {
		t.Errorf("word 0: got %#x want %#x", got, want)
	}
	if got, want := b[1], uint32(0x00000bee); got != want {
		t.Errorf("word 1: got %#x want %#x", got, want)
	}
	if got, want := MemGet(b, 43, 28), uint64(0xbeef); got != want {
		t.Errorf("get: got %#x want %#x", got, want)
	}
}

func TestMemSetClears(t *testing.T) {
	b := []uint32{0xffffffff}
	MemSet(b, 15, 8, 0x5a)
	if got, want := b[0], uint32(0xffff5aff); got != want {
		t.Errorf("got %#x want %#x", got, want)
	}
}

func TestMemGetSet64(t *testing.T) {
	b := make([]uint32, 4)
	v := uint64(0x0123456789abcdef)
	if got, want := MemGetSetUint64(&v, b, 100, 37, true), 101; got != want {
		t.Errorf("next bit: got %d want %d", got, want)
	}
	var w uint64
	MemGetSetUint64(&w, b, 100, 37, false)
	if w != v {
		t.Errorf("got %#x want %#x", w, v)
	}
}

func TestMemGetSet1(t *testing.T) {
	b := make([]uint32, 2)
	v := true
	MemGetSet1(&v, b, 33, true)
	if got, want := b[1], uint32(2); got != want {
		t.Errorf("got %#x want %#x", got, want)
	}
	v = false
	MemGetSet1(&v, b, 33, false)
	if !v {
		t.Error("bit 33 not read back")
	}
}

func TestMemGetSetBytes(t *testing.T) {
	b := make([]uint32, 2)
	in := []uint8{0xab, 0xcd, 0xef}
	if got, want := MemGetSetBytes(in, b, 4, true), 28; got != want {
		t.Errorf("next bit: got %d want %d", got, want)
	}
	if got, want := b[0], uint32(0x0efcdab0); got != want {
		t.Errorf("got %#x want %#x", got, want)
	}
	out := make([]uint8, 3)
	MemGetSetBytes(out, b, 4, false)
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("byte %d: got %#x want %#x", i, out[i], in[i])
		}
	}
}

func TestTcamEncode(t *testing.T) {
	for _, tc := range []struct {
		key, mask, x, y uint8
	}{
		{0xab, 0xff, 0xab, 0x54},
		{0xab, 0xf0, 0xa0, 0x50},
		{0xab, 0x00, 0x00, 0x00},
	} {
		x, y := TcamUint8(tc.key).TcamEncode(TcamUint8(tc.mask), true)
		if uint8(x) != tc.x || uint8(y) != tc.y {
			t.Errorf("encode %#x/%#x: got %#x/%#x want %#x/%#x",
				tc.key, tc.mask, x, y, tc.x, tc.y)
		}
		k, m := x.TcamEncode(y, false)
		if got, want := uint8(m), tc.mask; got != want {
			t.Errorf("decode mask: got %#x want %#x", got, want)
		}
		if got, want := uint8(k), tc.key&tc.mask; got != want {
			t.Errorf("decode key: got %#x want %#x", got, want)
		}
	}
}

func TestParity(t *testing.T) {
	if got, want := Parity(0x7), uint64(1); got != want {
		t.Errorf("got %d want %d", got, want)
	}
	if got, want := Parity(0x8000000000000001), uint64(0); got != want {
		t.Errorf("got %d want %d", got, want)
	}
}

type pair struct{ a, b uint16 }

func (p *pair) MemBits() int { return 48 }
func (p *pair) MemGetSet(b []uint32, isSet bool) {
	MemGetSetUint16(&p.a, b, 15, 0, isSet)
	MemGetSetUint16(&p.b, b, 47, 32, isSet)
}

func TestEncodeDecode(t *testing.T) {
	p := pair{0x1234, 0x5678}
	b := Encode(&p)
	if got, want := len(b), 2; got != want {
		t.Fatalf("words: got %d want %d", got, want)
	}
	var q pair
	if err := Decode(&q, b); err != nil {
		t.Fatal(err)
	}
	if q != p {
		t.Errorf("got %+v want %+v", q, p)
	}
	if err := Decode(&q, b[:1]); err == nil {
		t.Error("short decode accepted")
	}
}
