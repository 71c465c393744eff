// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"
	"github.com/platinasystems/mau"
	"github.com/platinasystems/mau/internal/liner"
	"github.com/platinasystems/mau/publish"
	"github.com/platinasystems/parms"
)

const (
	Name    = "mau"
	Apropos = "match action stage model"
	Usage   = "mau [-v] [-x] [-redis ADDR] [-hash NAME] [-prefix NAME] [FILE]"
	Man     = `NAME
	mau - match action stage model

SYNOPSIS
	` + Usage + `

DESCRIPTION
	Run stage commands from FILE, or from the terminal if none.

	write SPACE LOCATION WORD...
		register write; WORD 0 holds bits 0-31
	read SPACE LOCATION
		print a register
	eval [-version N] HEX...
		evaluate a header vector and print the next table
	stats
		print table counters
	publish
		set the counters in the redis hash
	reset
		clear configuration and counters

	SPACE is one of: ` + spaces + `

	Hash tag prefaced comments are ignored.

OPTIONS
	-v	print table results of eval
	-x	trace each line executed
	-redis ADDR
		publish to this redis server
	-hash NAME
		redis hash, default "` + publish.DefaultHash + `"
	-prefix NAME
		hash field prefix, default "` + publish.DefaultPrefix + `"`
)

const spaces = "table, key-xbar, tcam, exact-way, sram, hash-xbar, " +
	"hash-row, hash-seed, hash-parity, gateway-xbar, gateway-row, " +
	"address, next-table, next-xbar, instruction, immediate"

type Command struct{}

func (Command) String() string { return Name }
func (Command) Usage() string  { return Usage }

func (Command) Apropos() map[string]string {
	return map[string]string{
		"en_US.UTF-8": Apropos,
	}
}

func (Command) Man() map[string]string {
	return map[string]string{
		"en_US.UTF-8": Man,
	}
}

func (Command) Main(args ...string) error {
	flag, args := flags.New(args, "-v", "-x", "-h", "-help")
	parm, args := parms.New(args, "-redis", "-hash", "-prefix")
	if flag.ByName["-h"] || flag.ByName["-help"] {
		fmt.Println(Man)
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%v: unexpected", args[1:])
	}

	s := newSession(mau.NewStage(0), os.Stdout)
	s.verbose = flag.ByName["-v"]
	s.trace = flag.ByName["-x"]
	if addr := parm.ByName["-redis"]; len(addr) > 0 {
		s.pub = publish.New(addr)
		if hash := parm.ByName["-hash"]; len(hash) > 0 {
			s.pub.Hash = hash
		}
		if prefix := parm.ByName["-prefix"]; len(prefix) > 0 {
			s.pub.Prefix = prefix
		}
		defer s.pub.Close()
	}

	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		return s.run(liner.NewScanner(f, nil))
	}
	p := liner.New(commands...)
	defer p.Close()
	s.interactive = true
	err := s.run(p)
	log.Print("info", Name, " exit: ", err)
	return err
}
