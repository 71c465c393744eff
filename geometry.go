// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mau

// Stage geometry.
const (
	NLogicalTables = 16

	HeaderVectorBytes = 128
	// Match keys are built from header vector bytes by each table's input crossbar.
	KeyBytes = 16

	NTcamEntries = 1024

	// Exact match memory: units of words; a word holds one entry.
	NSramUnits    = 32
	NSramWords    = 1024
	sramIndexBits = 10
	NWays         = 4

	NHashSlots    = 8
	HashBits      = 52
	hashMask      = 1<<HashBits - 1
	NParityGroups = 4

	NGatewayRows    = 4
	GatewayKeyBytes = 8

	NInstructions = 128
	NVliwSlots    = 8

	NImmediate8     = 4
	NImmediate16    = 4
	NImmediate32    = 4
	NImmediateSlots = NImmediate8 + NImmediate16 + NImmediate32

	// Each table maps a hit to one of NHitMap local next table values and
	// local values to physical ids through a NNextXbar entry crossbar.
	NHitMap   = 8
	NNextXbar = 16
)
