/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package timesync

import (
	"context"
	"sync"

	"github.com/nalix-io/nalix-core/clock"
	"github.com/nalix-io/nalix-core/conn"
	"github.com/nalix-io/nalix-core/ident"
	"github.com/nalix-io/nalix-core/packet"
	"github.com/nalix-io/nalix-core/pool"
	"github.com/nalix-io/nalix-core/wire"
)

// Result is one completed exchange's offset and round-trip delay, both in
// milliseconds.
type Result struct {
	OffsetMilliseconds    int64
	RoundTripMilliseconds int64
}

// Client tracks outstanding time-sync sequences for one connection. Only
// one outstanding sequence is required for correctness, but the
// pending map supports more without extra cost.
type Client struct {
	gen *ident.Generator

	mu      sync.Mutex
	pending map[uint32]chan *packet.TimeSyncPacket
}

// NewClient builds a Client with its own sequence id generator.
func NewClient() *Client {
	return &Client{
		gen:     ident.NewGenerator(ident.KindTimeSync),
		pending: make(map[uint32]chan *packet.TimeSyncPacket),
	}
}

// HandleResponse delivers an inbound TimeSync response to its matching
// Request call, if still outstanding. It is the hook a connection's
// OnReceive wiring calls once it recognizes packet.MagicTimeSync with
// Stage == TimeSyncResponse. Returns false if the sequence id is unknown
// (already delivered, or not ours), in which case the caller should
// otherwise ignore the packet.
func (c *Client) HandleResponse(p *packet.TimeSyncPacket) bool {
	c.mu.Lock()
	ch, ok := c.pending[p.SequenceId]
	if ok {
		delete(c.pending, p.SequenceId)
	}
	c.mu.Unlock()

	if !ok {
		return false
	}
	ch <- p
	return true
}

// Request sends a TimeSync request over conn and blocks until the matching
// response arrives or ctx is done. T3ClientRecv is stamped the instant the
// response is handed back here, the closest this call gets to the socket
// read completing.
func (c *Client) Request(ctx context.Context, connection *conn.Connection, bp *pool.BufferPool) (Result, error) {
	seq := c.gen.Next().Uint32()
	t0 := clock.UnixMillisecondsNow()
	mono := clock.MonoTicksNow()

	req := packet.NewTimeSyncRequest(packet.OpCodeTimeSync, seq, t0, mono)

	ch := make(chan *packet.TimeSyncPacket, 1)
	c.mu.Lock()
	c.pending[seq] = ch
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, seq)
		c.mu.Unlock()
	}()

	buf, err := encode(bp, req)
	if err != nil {
		return Result{}, err
	}
	if _, err := connection.Send(buf); err != nil {
		return Result{}, err
	}

	select {
	case resp := <-ch:
		t3 := clock.UnixMillisecondsNow()
		return Result{
			OffsetMilliseconds:    resp.OffsetMilliseconds(t3),
			RoundTripMilliseconds: resp.RoundTripMilliseconds(t3),
		}, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func encode(bp *pool.BufferPool, p *packet.TimeSyncPacket) ([]byte, error) {
	n := int(p.Header().Length)

	buf := bp.Get()
	if cap(buf) < n {
		buf = make([]byte, n)
	} else {
		buf = buf[:n]
	}

	w := wire.NewWriter(buf)
	if err := p.Encode(w); err != nil {
		return nil, ErrorEncodeFailed.Error(err)
	}
	return w.Bytes(), nil
}
