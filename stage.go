// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package mau models the match action unit of a programmable switch pipeline
// stage: ternary and exact match, hash generation, gateways, address
// distribution, action fetch and next table resolution.
//
// A Stage owns its ConfigState.  Register writes and packet evaluation are
// serialized so every evaluation observes one complete configuration.
package mau

import (
	"sync"

	"github.com/platinasystems/log"
)

// Rejected writes logged per stage before going quiet.
const maxRejectLog = 64

type Stage struct {
	Id int

	mu       sync.RWMutex
	c        *ConfigState
	stats    Stats
	rejected *log.Limited
}

func NewStage(id int) *Stage {
	return &Stage{
		Id:       id,
		c:        NewConfigState(),
		rejected: log.NewLimited(maxRejectLog),
	}
}

func (s *Stage) reject(err error) error {
	if err != nil {
		s.rejected.Print("warn", "mau stage ", s.Id, ": ", err)
	}
	return err
}

// ApplyWrite validates and applies one register write.
func (s *Stage) ApplyWrite(sp Space, loc Location, v []uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reject(s.c.ApplyWrite(sp, loc, v))
}

// ApplyWrites applies all writes between two evaluations or none of them.
func (s *Stage) ApplyWrites(writes ...Write) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reject(s.c.ApplyWrites(writes...))
}

func (s *Stage) Read(sp Space, loc Location) ([]uint32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.c.Read(sp, loc)
}

// Reset returns the stage to all zero configuration and clears statistics.
func (s *Stage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c = NewConfigState()
	s.stats.Clear()
}

// Evaluate runs one header vector through the stage.
func (s *Stage) Evaluate(hv *HeaderVector) Result {
	s.mu.RLock()
	res := s.c.Evaluate(hv)
	s.mu.RUnlock()
	s.stats.add(&res.Addresses)
	return res
}

func (s *Stage) Stats() *Stats { return &s.stats }
