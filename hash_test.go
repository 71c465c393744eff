// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mau

import "testing"

func TestHashSeedOnly(t *testing.T) {
	c := NewConfigState()
	c.HashSpecs[0].Seed = 0x5
	c.HashSpecs[0].Xbar.Width = KeyBytes
	for i := range c.HashSpecs[0].Xbar.Select {
		c.HashSpecs[0].Xbar.Select[i] = SelectByte(i)
	}
	for _, b := range [][]uint8{
		nil,
		{0xff, 0xff, 0xff},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
	} {
		if got, want := c.Hash(NewHeaderVector(b, 0), 0), uint64(0x5); got != want {
			t.Errorf("hash %x: got %#x want %#x", b, got, want)
		}
	}
}

func TestHashLinear(t *testing.T) {
	c := NewConfigState()
	h := &c.HashSpecs[3]
	h.Xbar.Width = 2
	h.Xbar.Select[0] = SelectByte(10)
	h.Xbar.Select[1] = SelectByte(11)
	// Output bit o is key bit o xor key bit o+8.
	for o := 0; o < 8; o++ {
		h.Rows[o][0] = 1 << uint(o)
		h.Rows[o][1] = 1 << uint(o)
	}
	// Output bit 51 is the parity of the whole key.
	h.Rows[HashBits-1][0] = 0xff
	h.Rows[HashBits-1][1] = 0xff

	b := make([]uint8, 12)
	b[10], b[11] = 0x0f, 0x3c
	hv := NewHeaderVector(b, 0)
	if got, want := c.Hash(hv, 3), uint64(0x33); got != want {
		t.Errorf("linear: got %#x want %#x", got, want)
	}

	b[11] = 0x3d
	hv = NewHeaderVector(b, 0)
	if got, want := c.Hash(hv, 3), uint64(1)<<51|0x32; got != want {
		t.Errorf("parity row: got %#x want %#x", got, want)
	}

	h.Seed = 0xf00
	h.Disable = 1 << 51
	if got, want := c.Hash(hv, 3), uint64(0xf32); got != want {
		t.Errorf("seed and disable: got %#x want %#x", got, want)
	}

	if got := c.Hash(hv, NHashSlots); got != 0 {
		t.Errorf("slot out of range: got %#x want 0", got)
	}
}

func TestHashWidthLimitsInput(t *testing.T) {
	c := NewConfigState()
	h := &c.HashSpecs[1]
	h.Xbar.Select[0] = SelectByte(0)
	h.Rows[0][0] = 1
	hv := NewHeaderVector([]uint8{1}, 0)
	if got := c.Hash(hv, 1); got != 0 {
		t.Errorf("zero width: got %#x want 0", got)
	}
	h.Xbar.Width = 1
	if got := c.Hash(hv, 1); got != 1 {
		t.Errorf("width 1: got %#x want 1", got)
	}
}

func TestHashParityGroups(t *testing.T) {
	for _, x := range []struct {
		name   string
		seed   uint64
		groups []ParityGroup
		want   uint64
	}{
		{"even", 0x6, []ParityGroup{{Enable: true, Dest: 0, Members: 0x6}}, 0x6},
		{"odd", 0x6, []ParityGroup{{Enable: true, Dest: 0, Members: 0x2}}, 0x7},
		{"clears", 0x7, []ParityGroup{{Enable: true, Dest: 0, Members: 0x6}}, 0x6},
		{"disabled", 0x6, []ParityGroup{{Dest: 0, Members: 0x2}}, 0x6},
		{"dest out of range", 0x6, []ParityGroup{{Enable: true, Dest: 60, Members: 0x2}}, 0x6},
		// Later groups see earlier groups' output.
		{"chained", 0x2, []ParityGroup{
			{Enable: true, Dest: 0, Members: 0x2},
			{Enable: true, Dest: 51, Members: 0x1},
		}, 1<<51 | 0x3},
	} {
		c := NewConfigState()
		h := &c.HashSpecs[7]
		h.Seed = x.seed
		copy(h.Parity[:], x.groups)
		if got := c.Hash(NewHeaderVector(nil, 0), 7); got != x.want {
			t.Errorf("%s: got %#x want %#x", x.name, got, x.want)
		}
	}
}
