// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package fields

import (
	"reflect"
	"testing"
)

func Test(t *testing.T) {
	for _, x := range []struct {
		line string
		want []string
	}{
		{`eval 00\ 11\ 22`, []string{"eval", "00 11 22"}},
		{`eval "00 'a b'"`, []string{"eval", "00 'a b'"}},
		{`eval '00 \"a b\"'`, []string{"eval", `00 \"a b\"`}},
		{`write tcam 0x10 1 2   # entry 16`, []string{"write", "tcam", "0x10", "1", "2"}},
		{`  # all comment`, nil},
		{`read hash#1 0`, []string{"read", "hash#1", "0"}},
		{`a "b" 'c'`, []string{"a", "b", "c"}},
		{``, nil},
	} {
		if got := New(x.line); !reflect.DeepEqual(got, x.want) {
			t.Errorf("%q: got %q want %q", x.line, got, x.want)
		}
	}
}
