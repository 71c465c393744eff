// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Mau runs register write and packet evaluation scripts through a match
// action stage model.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := (Command{}).Main(os.Args[1:]...); err != nil {
		fmt.Fprintln(os.Stderr, Name+":", err)
		os.Exit(1)
	}
}
