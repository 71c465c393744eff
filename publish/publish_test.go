// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package publish

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/garyburd/redigo/redis"
	"github.com/platinasystems/mau"
)

type fakeConn struct {
	cmds   []string
	args   [][]interface{}
	err    error
	closed bool
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func (c *fakeConn) Err() error   { return c.err }
func (c *fakeConn) Flush() error { return c.err }

func (c *fakeConn) Send(cmd string, args ...interface{}) error { return c.err }
func (c *fakeConn) Receive() (interface{}, error)              { return nil, c.err }

func (c *fakeConn) Do(cmd string, args ...interface{}) (interface{}, error) {
	c.cmds = append(c.cmds, cmd)
	c.args = append(c.args, args)
	return "OK", c.err
}

func snapshot(t *testing.T) mau.StatsSnapshot {
	s := mau.NewStage(0)
	err := s.ApplyWrites(mau.NewWrite(mau.SpaceTable, mau.TableLoc(2),
		&mau.TableConfig{Enable: true}))
	if err != nil {
		t.Fatal(err)
	}
	s.Evaluate(mau.NewHeaderVector(nil, 0))
	return s.Stats().Snapshot()
}

func TestPublish(t *testing.T) {
	var (
		conns  []*fakeConn
		dials  int
		sleeps []time.Duration
	)
	p := New("")
	p.Prefix = "s0"
	p.Backoff.Jitter = false
	p.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	p.Dial = func(network, address string) (redis.Conn, error) {
		dials++
		if dials == 1 {
			return nil, errors.New("refused")
		}
		c := &fakeConn{}
		conns = append(conns, c)
		return c, nil
	}

	ss := snapshot(t)
	if err := p.Publish(&ss); err != nil {
		t.Fatal(err)
	}
	if got, want := len(sleeps), 1; got != want {
		t.Fatalf("sleeps: got %d want %d", got, want)
	}
	if got, want := sleeps[0], 100*time.Millisecond; got != want {
		t.Errorf("backoff: got %v want %v", got, want)
	}
	want := []interface{}{
		DefaultHash, "s0.run", p.Id.String(),
		"s0.table.2.lookups", uint64(1),
		"s0.table.2.ternary-hits", uint64(0),
		"s0.table.2.exact-hits", uint64(0),
		"s0.table.2.gateway-forced", uint64(0),
		"s0.table.2.gateway-inhibited", uint64(0),
		"s0.table.2.misses", uint64(1),
	}
	c := conns[0]
	if len(c.cmds) != 1 || c.cmds[0] != "HMSET" {
		t.Fatalf("commands: %v", c.cmds)
	}
	if !reflect.DeepEqual(c.args[0], want) {
		t.Errorf("args: got %v want %v", c.args[0], want)
	}

	// The connection is kept between publications.
	if err := p.Publish(&ss); err != nil {
		t.Fatal(err)
	}
	if dials != 2 || len(c.cmds) != 2 {
		t.Errorf("reconnected: dials %d commands %d", dials, len(c.cmds))
	}
	p.Close()
	if !c.closed {
		t.Error("connection not closed")
	}
}

func TestPublishGivesUp(t *testing.T) {
	conn := &fakeConn{err: errors.New("broken")}
	dials := 0
	p := New("")
	p.Retries = 2
	p.sleep = func(time.Duration) {}
	p.Dial = func(string, string) (redis.Conn, error) {
		dials++
		return conn, nil
	}
	var ss mau.StatsSnapshot
	if err := p.Publish(&ss); err == nil {
		t.Fatal("expected error")
	}
	if got, want := dials, 3; got != want {
		t.Errorf("dials: got %d want %d", got, want)
	}
	if !conn.closed {
		t.Error("failed connection not closed")
	}
}
