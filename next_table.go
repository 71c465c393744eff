// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mau

import (
	"fmt"

	"github.com/platinasystems/mau/internal/m"
)

// NextTableConfig maps a table's outcome to its local next table value.
// Hits use HitMap[data[Lo+Width-1:Lo]]; misses use Miss.
type NextTableConfig struct {
	Miss      uint8
	Lo, Width uint8
	HitMap    [NHitMap]uint8
}

func (e *NextTableConfig) MemBits() int { return 17 + 8*NHitMap }
func (e *NextTableConfig) MemGetSet(b []uint32, isSet bool) {
	i := m.MemGetSetUint8(&e.Miss, b, 7, 0, isSet)
	i = m.MemGetSetUint8(&e.Lo, b, i+5, i, isSet)
	i = m.MemGetSetUint8(&e.Width, b, i+2, i, isSet)
	for j := range e.HitMap {
		i = m.MemGetSetUint8(&e.HitMap[j], b, i+7, i, isSet)
	}
}

func (e *NextTableConfig) hit(data uint64) uint8 {
	return e.HitMap[field(data, e.Lo, e.Width)%NHitMap]
}

// NextXbar maps local next table values to physical ids when enabled;
// disabled crossbars pass local values through.
type NextXbar struct {
	Enable   bool
	Physical [NNextXbar]uint8
}

func (e *NextXbar) MemBits() int { return 1 + 8*NNextXbar }
func (e *NextXbar) MemGetSet(b []uint32, isSet bool) {
	i := m.MemGetSet1(&e.Enable, b, 0, isSet)
	for j := range e.Physical {
		i = m.MemGetSetUint8(&e.Physical[j], b, i+7, i, isSet)
	}
}

func (e *NextXbar) physical(local uint8) uint8 {
	if !e.Enable {
		return local
	}
	return e.Physical[local%NNextXbar]
}

// Source names what decided a table's outcome.
type Source uint8

const (
	SourceMiss Source = iota
	SourceTernary
	SourceExact
	// Gateway forced the next table.
	SourceGateway
	// Gateway inhibited the match results.
	SourceInhibit
)

var sourceNames = [...]string{
	SourceMiss:    "miss",
	SourceTernary: "ternary",
	SourceExact:   "exact",
	SourceGateway: "gateway",
	SourceInhibit: "inhibit",
}

func (s Source) String() string {
	if int(s) < len(sourceNames) {
		return sourceNames[s]
	}
	return fmt.Sprintf("source%d", uint8(s))
}

type resolveState uint8

const (
	tcamPending resolveState = 1 << iota
	exactPending
	gatewayPending
	resolved
)

// tableResolver merges one table's gateway, ternary and exact outcomes.
// All three start pending; a forcing gateway resolves immediately.
type tableResolver struct {
	state resolveState
	table int
	t     *Table
	gw    GatewayOutcome
	tcam  MatchResult
	exact MatchResult
}

func newTableResolver(c *ConfigState, table int) *tableResolver {
	return &tableResolver{
		state: tcamPending | exactPending | gatewayPending,
		table: table,
		t:     &c.Tables[table],
	}
}

func (r *tableResolver) pending(s resolveState) bool { return r.state&s != 0 }

func (r *tableResolver) gateway(o GatewayOutcome) {
	r.gw = o
	r.state &^= gatewayPending
	if o.Forced() {
		r.state = resolved
	}
}

func (r *tableResolver) ternary(x MatchResult) {
	if r.pending(tcamPending) {
		r.tcam = x
		r.state &^= tcamPending
	}
}

func (r *tableResolver) exactMatch(x MatchResult) {
	if r.pending(exactPending) {
		r.exact = x
		r.state &^= exactPending
	}
}

// resolve returns the deciding source, the effective match and the local
// next table value.  Pending lookups count as misses.
func (r *tableResolver) resolve() (s Source, x MatchResult, next uint8) {
	r.state = resolved
	x.Table = r.table
	switch {
	case r.gw.Forced():
		s, next = SourceGateway, r.gw.Next
		if r.gw.PayloadValid {
			x = r.gw.match(r.table)
		}
	case r.gw.Inhibited():
		s, next = SourceInhibit, r.t.Next.Miss
		if r.gw.PayloadValid {
			x = r.gw.match(r.table)
		}
	case r.tcam.Hit:
		s, x = SourceTernary, r.tcam
		next = r.t.Next.hit(x.Data)
	case r.exact.Hit:
		s, x = SourceExact, r.exact
		next = r.t.Next.hit(x.Data)
	default:
		s, next = SourceMiss, r.t.Next.Miss
	}
	return
}

// TableResult is one logical table's resolved outcome.
type TableResult struct {
	Enabled bool
	Source  Source
	Gateway GatewayOutcome
	// Effective match distributed to the address domains.
	Match    MatchResult
	Half     Half
	Next     uint8
	Physical uint8
	Addr     [NDomains]uint32

	Instruction Instruction
	Operands    OperandSet
}

func (r TableResult) Hit() bool { return r.Match.Hit }

func (r *TableResult) String() string {
	if !r.Enabled {
		return "disabled"
	}
	s := fmt.Sprintf("%v next %d physical %d", r.Source, r.Next, r.Physical)
	if r.Match.Hit {
		s += fmt.Sprintf(" address %#x data %#x", r.Match.Address, r.Match.Data)
	}
	for d := Domain(0); d < NDomains; d++ {
		s += fmt.Sprintf(" %v %#x", d, r.Addr[d])
	}
	return s
}

// ResolvedAddresses holds every table's outcome and the stage's next table.
type ResolvedAddresses struct {
	NextTable uint8
	Tables    [NLogicalTables]TableResult
}

// Result is the stage output for one header vector.
type Result struct {
	NextTable   uint8
	Addresses   ResolvedAddresses
	Instruction Instruction
	Operands    OperandSet
}

func (c *ConfigState) evaluateTable(table int, hv *HeaderVector, hash *[NHashSlots]uint64) (tr TableResult) {
	t := &c.Tables[table]
	r := newTableResolver(c, table)
	r.gateway(c.GatewayEvaluate(table, hv))
	if r.pending(tcamPending | exactPending) {
		k := t.KeyXbar.key(hv)
		if t.Ternary {
			r.ternary(c.TcamMatch(table, &k, hv.Version))
		}
		if t.Exact {
			r.exactMatch(c.ExactMatch(table, &k, hash, hv.Version))
		}
	}
	tr.Enabled = true
	tr.Gateway = r.gw
	tr.Source, tr.Match, tr.Next = r.resolve()
	switch tr.Source {
	case SourceTernary:
		tr.Half = HalfTernary
	case SourceExact:
		tr.Half = HalfExact
	default:
		tr.Half = t.half()
	}
	tr.Physical = t.NextXbar.physical(tr.Next)
	for d := Domain(0); d < NDomains; d++ {
		tr.Addr[d] = c.ResolveAddress(d, table, tr.Half, &tr.Match)
	}
	tr.Instruction = c.FetchInstruction(tr.Addr[DomainInstruction])
	tr.Operands = c.GatherImmediates(table, hv)
	return
}

// Evaluate runs one header vector through the stage configuration.  It
// neither modifies c nor depends on anything but c and hv.
func (c *ConfigState) Evaluate(hv *HeaderVector) (res Result) {
	hash := c.hashAll(hv)
	ra := &res.Addresses
	for table := range c.Tables {
		if !c.Tables[table].Enable {
			continue
		}
		tr := &ra.Tables[table]
		*tr = c.evaluateTable(table, hv, &hash)
		ra.NextTable |= tr.Physical
		res.Instruction.or(&tr.Instruction)
		res.Operands.or(&tr.Operands)
	}
	res.NextTable = ra.NextTable
	return
}
