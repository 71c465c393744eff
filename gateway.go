// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mau

import (
	"fmt"

	"github.com/platinasystems/mau/internal/m"
)

type GatewayAction uint8

const (
	// Row hit leaves match results alone.
	GatewayNone GatewayAction = iota
	// Row hit resolves the table to the row's next table.
	GatewayForce
	// Row hit discards the table's match results.
	GatewayInhibit
)

func (a GatewayAction) String() string {
	switch a {
	case GatewayNone:
		return "none"
	case GatewayForce:
		return "force"
	case GatewayInhibit:
		return "inhibit"
	}
	return fmt.Sprintf("action%d", uint8(a))
}

// GatewayRow hits when (key ^ Pattern) & Enable == 0.
type GatewayRow struct {
	Valid         bool
	Action        GatewayAction
	Next          uint8
	PayloadEnable bool
	Pattern       uint64
	Enable        uint64
	Payload       uint64
}

func (e *GatewayRow) MemBits() int { return 204 }
func (e *GatewayRow) MemGetSet(b []uint32, isSet bool) {
	i := m.MemGetSet1(&e.Valid, b, 0, isSet)
	i = m.MemGetSetUint8((*uint8)(&e.Action), b, i+1, i, isSet)
	i = m.MemGetSetUint8(&e.Next, b, i+7, i, isSet)
	i = m.MemGetSet1(&e.PayloadEnable, b, i, isSet)
	i = m.MemGetSetUint64(&e.Pattern, b, i+63, i, isSet)
	i = m.MemGetSetUint64(&e.Enable, b, i+63, i, isSet)
	m.MemGetSetUint64(&e.Payload, b, i+63, i, isSet)
}

// GatewayXbar selects the gateway key bytes, byte 0 lowest.
type GatewayXbar [GatewayKeyBytes]Selector

func (x *GatewayXbar) MemBits() int { return 8 * GatewayKeyBytes }
func (x *GatewayXbar) MemGetSet(b []uint32, isSet bool) {
	for i := range x {
		m.MemGetSetUint8((*uint8)(&x[i]), b, 8*i+7, 8*i, isSet)
	}
}

func (x *GatewayXbar) key(hv *HeaderVector) (k uint64) {
	for i, s := range x {
		k |= uint64(hv.selected(s)) << uint(8*i)
	}
	return
}

type Gateway struct {
	Xbar GatewayXbar
	Rows [NGatewayRows]GatewayRow
}

// GatewayOutcome is pass through unless Hit.
type GatewayOutcome struct {
	Hit    bool
	Row    int
	Action GatewayAction
	Next   uint8
	// Payload is valid on force or inhibit rows with payload enabled.
	PayloadValid bool
	Payload      uint64
}

// Forced reports whether the outcome overrides the table's next table.
func (o *GatewayOutcome) Forced() bool { return o.Hit && o.Action == GatewayForce }

// Inhibited reports whether the outcome discards the table's match results.
func (o *GatewayOutcome) Inhibited() bool { return o.Hit && o.Action == GatewayInhibit }

// Payload as a hit for address distribution.
func (o *GatewayOutcome) match(table int) MatchResult {
	return MatchResult{
		Hit:     true,
		Address: uint32(o.Row),
		Data:    o.Payload,
		Table:   table,
	}
}

// GatewayEvaluate scans table's valid gateway rows in row order; the lowest
// hitting row wins.
func (c *ConfigState) GatewayEvaluate(table int, hv *HeaderVector) (o GatewayOutcome) {
	if table < 0 || table >= NLogicalTables {
		return
	}
	g := &c.Tables[table].Gateway
	k := g.Xbar.key(hv)
	for i := range g.Rows {
		r := &g.Rows[i]
		if !r.Valid || (k^r.Pattern)&r.Enable != 0 {
			continue
		}
		o.Hit = true
		o.Row = i
		o.Action = r.Action
		o.Next = r.Next
		// Payload only rides on force or inhibit; none rows pass through.
		if r.PayloadEnable && r.Action != GatewayNone {
			o.PayloadValid = true
			o.Payload = r.Payload
		}
		return
	}
	return
}
