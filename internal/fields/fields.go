// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package fields slices a script line into args after dropping a trailing
// '#' comment.  Single or double quoted and backslash escaped spaces stay
// within one arg, e.g.:
//
//	write tcam 0x10 1 2 3      # entry 16
//	eval "00 11 22"
//	eval 00\ 11\ 22
package fields

import (
	"regexp"
	"strings"
)

var re = regexp.MustCompile("'[^']*'|\"[^\"]*\"|\\S+")

// New returns the args of line s.
func New(s string) []string {
	args := re.FindAllString(Uncomment(s), -1)
	for i, arg := range args {
		if len(arg) > 1 && (arg[0] == '"' || arg[0] == '\'') {
			args[i] = arg[1 : len(arg)-1]
		}
	}
	for i := 0; i < len(args); {
		if !strings.HasSuffix(args[i], "\\") {
			i++
			continue
		}
		args[i] = args[i][:len(args[i])-1] + " "
		if i < len(args)-1 {
			args[i] += args[i+1]
			args = append(args[:i+1], args[i+2:]...)
		} else {
			i++
		}
	}
	return args
}

// Uncomment strips leading space and a '#' comment that either starts s or
// follows a space or tab.
func Uncomment(s string) string {
	t := strings.TrimLeft(s, " \t")
	if strings.HasPrefix(t, "#") {
		return ""
	}
	for i := 1; i < len(t); i++ {
		if t[i] == '#' && (t[i-1] == ' ' || t[i-1] == '\t') {
			return strings.TrimRight(t[:i], " \t")
		}
	}
	return t
}
