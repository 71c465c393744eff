// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mau

import "fmt"

// Domain is one of the memories addressed by a matched entry.
type Domain uint8

const (
	DomainInstruction Domain = iota
	DomainActionData
	DomainStats
	DomainMeter
	DomainIdleTime
	NDomains
)

// Address width in bits of each domain's physical memory.
var domainBits = [NDomains]uint{
	DomainInstruction: 7,
	DomainActionData:  22,
	DomainStats:       19,
	DomainMeter:       23,
	DomainIdleTime:    21,
}

var domainNames = [NDomains]string{
	DomainInstruction: "instruction",
	DomainActionData:  "action-data",
	DomainStats:       "stats",
	DomainMeter:       "meter",
	DomainIdleTime:    "idletime",
}

// RangeMask covers the addressable range of the domain.
func (d Domain) RangeMask() uint32 { return uint32(1)<<domainBits[d] - 1 }

func (d Domain) String() string {
	if d < NDomains {
		return domainNames[d]
	}
	return fmt.Sprintf("domain%d", uint8(d))
}

// Half selects which match bus feeds address distribution: exact match
// overhead or ternary indirection data.
type Half uint8

const (
	HalfExact Half = iota
	HalfTernary
	NHalves
)

func (h Half) String() string {
	switch h {
	case HalfExact:
		return "exact"
	case HalfTernary:
		return "ternary"
	}
	return fmt.Sprintf("half%d", uint8(h))
}
