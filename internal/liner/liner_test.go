// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package liner

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestScanner(t *testing.T) {
	var out bytes.Buffer
	p := NewScanner(strings.NewReader("stats\nreset\n"), &out)
	for _, want := range []string{"stats", "reset"} {
		got, err := p.Prompt("mau> ")
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("got %q want %q", got, want)
		}
	}
	if _, err := p.Prompt("mau> "); err != io.EOF {
		t.Errorf("got %v want EOF", err)
	}
	if got, want := out.String(), "mau> mau> mau> "; got != want {
		t.Errorf("prompts: got %q want %q", got, want)
	}
}
