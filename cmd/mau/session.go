// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/platinasystems/mau"
	"github.com/platinasystems/mau/internal/fields"
	"github.com/platinasystems/mau/internal/liner"
	"github.com/platinasystems/mau/publish"
	"github.com/platinasystems/parms"
)

const prompt = Name + "> "

var commands = []string{"write", "read", "eval", "stats", "publish",
	"reset", "help"}

var errNoRedis = errors.New("publish: no -redis server")

type session struct {
	stage       *mau.Stage
	pub         *publish.Publisher
	w           io.Writer
	verbose     bool
	trace       bool
	interactive bool
}

func newSession(stage *mau.Stage, w io.Writer) *session {
	return &session{stage: stage, w: w}
}

// run executes lines until EOF.  Scripts stop at the first failing line;
// interactive sessions report it and continue.
func (s *session) run(p liner.Prompter) error {
	for n := 1; ; n++ {
		line, err := p.Prompt(prompt)
		if err == io.EOF {
			if s.interactive {
				fmt.Fprintln(s.w)
			}
			return nil
		}
		if err != nil {
			return err
		}
		args := fields.New(line)
		if len(args) == 0 {
			continue
		}
		if s.trace {
			fmt.Fprintln(s.w, "+", strings.Join(args, " "))
		}
		if err = s.exec(args); err == nil {
			continue
		}
		if !s.interactive {
			return fmt.Errorf("line %d: %w", n, err)
		}
		fmt.Fprintln(os.Stderr, err)
	}
}

func (s *session) exec(args []string) error {
	cmd, args := args[0], args[1:]
	switch cmd {
	case "write":
		return s.write(args)
	case "read":
		return s.read(args)
	case "eval":
		return s.eval(args)
	case "stats":
		return s.stats(args)
	case "publish":
		if s.pub == nil {
			return errNoRedis
		}
		ss := s.stage.Stats().Snapshot()
		return s.pub.Publish(&ss)
	case "reset":
		s.stage.Reset()
		return nil
	case "help":
		fmt.Fprintln(s.w, Man)
		return nil
	}
	return fmt.Errorf("%s: command not found", cmd)
}

func parseUint32(s string) (uint32, error) {
	u, err := strconv.ParseUint(s, 0, 32)
	return uint32(u), err
}

func (s *session) location(args []string) (sp mau.Space, loc mau.Location, err error) {
	if len(args) < 2 {
		err = fmt.Errorf("SPACE LOCATION: missing")
		return
	}
	sp, found := mau.SpaceByName(args[0])
	if !found {
		err = fmt.Errorf("%s: unknown space", args[0])
		return
	}
	u, err := parseUint32(args[1])
	loc = mau.Location(u)
	return
}

func (s *session) write(args []string) error {
	sp, loc, err := s.location(args)
	if err != nil {
		return err
	}
	v := make([]uint32, len(args)-2)
	for i, arg := range args[2:] {
		if v[i], err = parseUint32(arg); err != nil {
			return err
		}
	}
	return s.stage.ApplyWrite(sp, loc, v)
}

func (s *session) read(args []string) error {
	sp, loc, err := s.location(args)
	if err != nil {
		return err
	}
	if len(args) > 2 {
		return fmt.Errorf("%v: unexpected", args[2:])
	}
	v, err := s.stage.Read(sp, loc)
	if err != nil {
		return err
	}
	words := make([]string, len(v))
	for i, x := range v {
		words[i] = fmt.Sprintf("%#x", x)
	}
	fmt.Fprintln(s.w, strings.Join(words, " "))
	return nil
}

func (s *session) eval(args []string) error {
	parm, args := parms.New(args, "-version")
	var version uint64
	if arg := parm.ByName["-version"]; len(arg) > 0 {
		var err error
		if version, err = strconv.ParseUint(arg, 0, 2); err != nil {
			return err
		}
	}
	digits := strings.Fields(strings.Join(args, " "))
	b, err := hex.DecodeString(strings.Join(digits, ""))
	if err != nil {
		return err
	}
	if len(b) > mau.HeaderVectorBytes {
		return fmt.Errorf("header vector: %d bytes exceed %d", len(b),
			mau.HeaderVectorBytes)
	}
	r := s.stage.Evaluate(mau.NewHeaderVector(b, uint8(version)))
	fmt.Fprintf(s.w, "next %d\n", r.NextTable)
	if !s.verbose {
		return nil
	}
	for t := range r.Addresses.Tables {
		if tr := &r.Addresses.Tables[t]; tr.Enabled {
			fmt.Fprintf(s.w, "table %d: %v\n", t, tr)
		}
	}
	fmt.Fprintln(s.w, "instruction", r.Instruction)
	fmt.Fprintln(s.w, "operands", r.Operands)
	return nil
}

func (s *session) stats(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
	}
	ss := s.stage.Stats().Snapshot()
	ss.Foreach(func(table int, c mau.Counter, v uint64) {
		if v != 0 {
			fmt.Fprintf(s.w, "table %d %v %d\n", table, c, v)
		}
	})
	return nil
}
