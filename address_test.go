// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mau

import "testing"

func TestAddressResolve(t *testing.T) {
	for _, x := range []struct {
		name string
		d    Domain
		rule AddressRule
		r    MatchResult
		want uint32
	}{
		{
			name: "shift",
			d:    DomainStats,
			rule: AddressRule{Width: 4, Shift: 4, Mask: 0x0f0},
			r:    MatchResult{Hit: true, Data: 0x3},
			want: 0x030,
		},
		{
			name: "miss",
			d:    DomainStats,
			rule: AddressRule{Width: 4, Shift: 4, Mask: 0x0f0, Miss: 0xffffffff},
			r:    MatchResult{Data: 0x3},
			want: 0xffffffff,
		},
		{
			name: "field",
			d:    DomainActionData,
			rule: AddressRule{Lo: 8, Width: 8, Mask: 0xffffffff},
			r:    MatchResult{Hit: true, Data: 0xa5c3},
			want: 0xa5,
		},
		{
			name: "default",
			d:    DomainMeter,
			rule: AddressRule{Lo: 0, Width: 4, Mask: 0xf, Default: 0x700},
			r:    MatchResult{Hit: true, Data: 0x12},
			want: 0x702,
		},
		{
			name: "range",
			d:    DomainInstruction,
			rule: AddressRule{Width: 16, Mask: 0xffff},
			r:    MatchResult{Hit: true, Data: 0x1ff},
			want: 0x7f,
		},
		{
			name: "per entry select",
			d:    DomainIdleTime,
			rule: AddressRule{
				Width:          4,
				Mask:           0xff,
				PerEntryEnable: true,
				Select:         63,
				AltLo:          4,
				AltWidth:       8,
			},
			r:    MatchResult{Hit: true, Data: 1<<63 | 0xabc},
			want: 0xab,
		},
		{
			name: "per entry clear",
			d:    DomainIdleTime,
			rule: AddressRule{
				Width:          4,
				Mask:           0xff,
				PerEntryEnable: true,
				Select:         63,
				AltLo:          4,
				AltWidth:       8,
			},
			r:    MatchResult{Hit: true, Data: 0xabc},
			want: 0xc,
		},
	} {
		if got := x.rule.Resolve(x.d, &x.r); got != x.want {
			t.Errorf("%s: got %#x want %#x", x.name, got, x.want)
		}
	}
}

func TestDomainRange(t *testing.T) {
	for d, want := range [NDomains]uint32{
		DomainInstruction: 0x7f,
		DomainActionData:  0x3fffff,
		DomainStats:       0x7ffff,
		DomainMeter:       0x7fffff,
		DomainIdleTime:    0x1fffff,
	} {
		if got := Domain(d).RangeMask(); got != want {
			t.Errorf("%v: got %#x want %#x", Domain(d), got, want)
		}
	}
}

func TestHeaderVectorGet(t *testing.T) {
	hv := NewHeaderVector([]uint8{0x12, 0x34, 0x56}, 7)
	if hv.Version != 3 {
		t.Errorf("version: got %d want 3", hv.Version)
	}
	if got, want := hv.get(0, 2), uint32(0x1234); got != want {
		t.Errorf("get: got %#x want %#x", got, want)
	}
	hv.Bytes[HeaderVectorBytes-1] = 0xaa
	if got, want := hv.get(HeaderVectorBytes-1, 4), uint32(0xaa000000); got != want {
		t.Errorf("get past end: got %#x want %#x", got, want)
	}
	if s := Selector(5); s.Valid() || hv.selected(s) != 0 {
		t.Errorf("invalid selector selected %#x", hv.selected(s))
	}
	if s := SelectByte(1); !s.Valid() || hv.selected(s) != 0x34 {
		t.Errorf("%v: got %#x want 0x34", s, hv.selected(s))
	}
}

func TestAddressShiftMaskProperty(t *testing.T) {
	for d := Domain(0); d < NDomains; d++ {
		for shift := uint8(0); shift < 32; shift += 3 {
			for _, mask := range []uint32{0xffffffff, 0xf0f0f0f0, 0x0000fff0, 0x3} {
				rule := AddressRule{Lo: 8, Width: 12, Shift: shift, Mask: mask}
				r := MatchResult{Hit: true, Data: 0xdeadbeef}
				bits := uint32(field(r.Data, 8, 12)) << shift
				got := rule.Resolve(d, &r)
				if want := bits & d.RangeMask() & mask; got&mask != want {
					t.Errorf("%v shift %d mask %#x: got %#x want %#x",
						d, shift, mask, got, want)
				}
			}
		}
	}
}
