// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mau

import (
	"fmt"
	"strings"

	"github.com/platinasystems/mau/internal/m"
)

// Instruction is one VLIW word of instruction memory.
type Instruction [NVliwSlots]uint32

func (x *Instruction) MemBits() int { return 32 * NVliwSlots }
func (x *Instruction) MemGetSet(b []uint32, isSet bool) {
	for i := range x {
		m.MemGetSetUint32(&x[i], b, 32*i+31, 32*i, isSet)
	}
}

func (x *Instruction) or(y *Instruction) {
	for i := range x {
		x[i] |= y[i]
	}
}

func (x Instruction) String() string {
	s := make([]string, len(x))
	for i, w := range x {
		s[i] = fmt.Sprintf("%08x", w)
	}
	return strings.Join(s, " ")
}

// ImmediateSource names the header vector byte an operand slot starts at.
type ImmediateSource struct {
	Valid  bool
	Offset uint8
}

func (e *ImmediateSource) MemBits() int { return 8 }
func (e *ImmediateSource) MemGetSet(b []uint32, isSet bool) {
	m.MemGetSet1(&e.Valid, b, 0, isSet)
	m.MemGetSetUint8(&e.Offset, b, 7, 1, isSet)
}

// ImmediateXbar slots 0-3 feed 8 bit operands, 4-7 16 bit operands and
// 8-11 32 bit operands.
type ImmediateXbar [NImmediateSlots]ImmediateSource

// OperandSet holds the immediate operands gathered for an instruction.
type OperandSet struct {
	B [NImmediate8]uint8
	H [NImmediate16]uint16
	W [NImmediate32]uint32
}

func (o OperandSet) String() string {
	s := make([]string, 0, NImmediateSlots)
	for _, v := range o.B {
		s = append(s, fmt.Sprintf("%02x", v))
	}
	for _, v := range o.H {
		s = append(s, fmt.Sprintf("%04x", v))
	}
	for _, v := range o.W {
		s = append(s, fmt.Sprintf("%08x", v))
	}
	return strings.Join(s, " ")
}

func (o *OperandSet) or(p *OperandSet) {
	for i := range o.B {
		o.B[i] |= p.B[i]
	}
	for i := range o.H {
		o.H[i] |= p.H[i]
	}
	for i := range o.W {
		o.W[i] |= p.W[i]
	}
}

// FetchInstruction reads instruction memory; the address wraps.
func (c *ConfigState) FetchInstruction(addr uint32) Instruction {
	return c.Instructions[addr%NInstructions]
}

// GatherImmediates assembles table's operands from the header vector.
// Unconfigured slots are zero.
func (c *ConfigState) GatherImmediates(table int, hv *HeaderVector) (o OperandSet) {
	if table < 0 || table >= NLogicalTables {
		return
	}
	x := &c.Tables[table].Immediate
	for i, s := range x {
		if !s.Valid {
			continue
		}
		off := int(s.Offset)
		switch {
		case i < NImmediate8:
			o.B[i] = uint8(hv.get(off, 1))
		case i < NImmediate8+NImmediate16:
			o.H[i-NImmediate8] = uint16(hv.get(off, 2))
		default:
			o.W[i-NImmediate8-NImmediate16] = hv.get(off, 4)
		}
	}
	return
}
