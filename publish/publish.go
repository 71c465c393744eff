// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package publish writes stage statistics to a redis hash as
//
//	<prefix>.run                      publisher id
//	<prefix>.table.<N>.<counter>      count
//
// for each table with lookups.
package publish

import (
	"fmt"
	"time"

	"github.com/garyburd/redigo/redis"
	"github.com/jpillora/backoff"
	"github.com/platinasystems/log"
	"github.com/platinasystems/mau"
	"github.com/satori/go.uuid"
)

const (
	DefaultAddr    = "localhost:6379"
	DefaultHash    = "mau"
	DefaultPrefix  = "mau"
	DefaultRetries = 3
)

type Dialer func(network, address string) (redis.Conn, error)

func dial(network, address string) (redis.Conn, error) {
	return redis.Dial(network, address)
}

type Publisher struct {
	Addr   string
	Hash   string
	Prefix string
	// Failed publications are retried this many times.
	Retries int
	Dial    Dialer
	Backoff backoff.Backoff
	// Id distinguishes runs publishing to the same hash.
	Id uuid.UUID

	conn  redis.Conn
	sleep func(time.Duration)
}

func New(addr string) *Publisher {
	if len(addr) == 0 {
		addr = DefaultAddr
	}
	return &Publisher{
		Addr:    addr,
		Hash:    DefaultHash,
		Prefix:  DefaultPrefix,
		Retries: DefaultRetries,
		Dial:    dial,
		Backoff: backoff.Backoff{
			Min:    100 * time.Millisecond,
			Max:    5 * time.Second,
			Factor: 2,
			Jitter: true,
		},
		Id:    uuid.NewV4(),
		sleep: time.Sleep,
	}
}

// Fields returns the HMSET arguments of ss.
func (p *Publisher) Fields(ss *mau.StatsSnapshot) []interface{} {
	args := []interface{}{p.Hash, p.Prefix + ".run", p.Id.String()}
	ss.Foreach(func(table int, c mau.Counter, v uint64) {
		args = append(args,
			fmt.Sprintf("%s.table.%d.%v", p.Prefix, table, c), v)
	})
	return args
}

// Publish sets the hash fields of ss, reconnecting with backoff on
// failure.
func (p *Publisher) Publish(ss *mau.StatsSnapshot) (err error) {
	args := p.Fields(ss)
	for try := 0; ; try++ {
		if err = p.hmset(args); err == nil {
			p.Backoff.Reset()
			return
		}
		p.Close()
		if try >= p.Retries {
			log.Print("err", "publish ", p.Addr, ": ", err)
			return
		}
		d := p.Backoff.Duration()
		log.Print("warn", "publish ", p.Addr, ": ", err, "; retry in ", d)
		p.sleep(d)
	}
}

func (p *Publisher) hmset(args []interface{}) error {
	if p.conn == nil {
		conn, err := p.Dial("tcp", p.Addr)
		if err != nil {
			return err
		}
		p.conn = conn
	}
	_, err := p.conn.Do("HMSET", args...)
	return err
}

func (p *Publisher) Close() (err error) {
	if p.conn != nil {
		err = p.conn.Close()
		p.conn = nil
	}
	return
}
