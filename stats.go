// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mau

import (
	"fmt"
	"sync/atomic"
)

type Counter uint8

const (
	Lookups Counter = iota
	TernaryHits
	ExactHits
	GatewayForced
	GatewayInhibited
	Misses
	NCounters
)

var counterNames = [NCounters]string{
	Lookups:          "lookups",
	TernaryHits:      "ternary-hits",
	ExactHits:        "exact-hits",
	GatewayForced:    "gateway-forced",
	GatewayInhibited: "gateway-inhibited",
	Misses:           "misses",
}

func (c Counter) String() string {
	if c < NCounters {
		return counterNames[c]
	}
	return fmt.Sprintf("counter%d", uint8(c))
}

var counterBySource = [...]Counter{
	SourceMiss:    Misses,
	SourceTernary: TernaryHits,
	SourceExact:   ExactHits,
	SourceGateway: GatewayForced,
	SourceInhibit: GatewayInhibited,
}

// Stats counts table outcomes of a stage.
type Stats struct {
	counts [NLogicalTables][NCounters]uint64
}

type StatsSnapshot [NLogicalTables][NCounters]uint64

func (s *Stats) add(ra *ResolvedAddresses) {
	for t := range ra.Tables {
		tr := &ra.Tables[t]
		if !tr.Enabled {
			continue
		}
		atomic.AddUint64(&s.counts[t][Lookups], 1)
		atomic.AddUint64(&s.counts[t][counterBySource[tr.Source]], 1)
	}
}

func (s *Stats) Get(table int, c Counter) uint64 {
	return atomic.LoadUint64(&s.counts[table][c])
}

func (s *Stats) Snapshot() (ss StatsSnapshot) {
	for t := range s.counts {
		for c := range s.counts[t] {
			ss[t][c] = atomic.LoadUint64(&s.counts[t][c])
		}
	}
	return
}

func (s *Stats) Clear() {
	for t := range s.counts {
		for c := range s.counts[t] {
			atomic.StoreUint64(&s.counts[t][c], 0)
		}
	}
}

// Foreach calls fn with every counter of tables that had lookups.
func (ss *StatsSnapshot) Foreach(fn func(table int, c Counter, v uint64)) {
	for t := range ss {
		if ss[t][Lookups] == 0 {
			continue
		}
		for c := Counter(0); c < NCounters; c++ {
			fn(t, c, ss[t][c])
		}
	}
}
