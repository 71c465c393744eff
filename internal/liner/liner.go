// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package liner prompts for script lines with line editing and history on a
// terminal and with a plain scanner otherwise.
package liner

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/platinasystems/liner"
)

type Prompter interface {
	Prompt(prompt string) (string, error)
	Close()
}

// New returns an editing Prompter if both stdin and stdout are terminals;
// otherwise a Scanner of stdin.  Editing completes the given words.
func New(words ...string) Prompter {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return NewScanner(os.Stdin, nil)
	}
	l := &Liner{s: liner.NewLiner()}
	l.s.SetCompleter(func(line string) (lines []string) {
		for _, w := range words {
			if strings.HasPrefix(w, line) {
				lines = append(lines, w+" ")
			}
		}
		return
	})
	return l
}

type Liner struct {
	s        *liner.State
	fallback *Scanner
}

func (l *Liner) Close() { l.s.Close() }

func (l *Liner) Prompt(prompt string) (string, error) {
	if l.fallback != nil {
		return l.fallback.Prompt(prompt)
	}
	line, err := l.s.Prompt(prompt)
	if err == nil {
		if len(strings.TrimSpace(line)) > 0 {
			l.s.AppendHistory(line)
		}
	} else if err == liner.ErrNotTerminalOutput {
		l.fallback = NewScanner(os.Stdin, os.Stdout)
		line, err = l.fallback.Prompt(prompt)
	}
	return line, err
}

// Scanner is a Prompter for scripts and unsupported terminals.
type Scanner struct {
	scanner *bufio.Scanner
	w       io.Writer
}

// NewScanner reads lines from r and writes prompts to w unless nil.
func NewScanner(r io.Reader, w io.Writer) *Scanner {
	return &Scanner{bufio.NewScanner(r), w}
}

func (p *Scanner) Close() {}

func (p *Scanner) Prompt(prompt string) (string, error) {
	if p.w != nil {
		fmt.Fprint(p.w, prompt)
	}
	if p.scanner.Scan() {
		return p.scanner.Text(), nil
	}
	err := p.scanner.Err()
	if err == nil {
		err = io.EOF
	}
	return "", err
}
