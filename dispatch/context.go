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

// Package dispatch is the opcode-indexed handler registry: precompiled
// invokers, declarative PacketMetadata (the capability-composition
// replacement for attribute reflection), return-value adapters and the
// per-request PacketContext middleware operates over.
package dispatch

import (
	"context"
	"sync/atomic"

	libctx "github.com/nalix-io/nalix-core/context"
	"github.com/nalix-io/nalix-core/conn"
	"github.com/nalix-io/nalix-core/packet"
)

// PacketContext carries the current packet, the owning connection, the
// resolved handler metadata and a key/value scratch map for
// inter-middleware signaling. It lives for the duration of one inbound
// request: constructed when the opcode is resolved, and
// cancelled once the pipeline (including any outbound write) completes.
type PacketContext struct {
	Packet packet.Packet
	Conn   *conn.Connection
	Meta   PacketMetadata

	ctx    context.Context
	cancel context.CancelFunc

	scratch libctx.Config[string]

	unsupported atomic.Bool
}

// NewPacketContext builds a PacketContext derived from parent, cancelled
// either by the caller (via Cancel) or automatically once Meta.Timeout
// elapses — whichever comes first. A zero Timeout never cancels on its own.
func NewPacketContext(parent context.Context, p packet.Packet, c *conn.Connection, meta PacketMetadata) *PacketContext {
	var (
		cctx   context.Context
		cancel context.CancelFunc
	)
	if d := meta.Timeout.Time(); d > 0 {
		cctx, cancel = context.WithTimeout(parent, d)
	} else {
		cctx, cancel = context.WithCancel(parent)
	}

	return &PacketContext{
		Packet:  p,
		Conn:    c,
		Meta:    meta,
		ctx:     cctx,
		cancel:  cancel,
		scratch: libctx.New[string](cctx),
	}
}

// Context returns the per-request context, observed by handlers that take
// one as a parameter and by the dispatcher's timeout race.
func (c *PacketContext) Context() context.Context {
	return c.ctx
}

// Cancel releases the context's resources. Idempotent; called once the
// pipeline finishes with this request, successfully or not.
func (c *PacketContext) Cancel() {
	c.cancel()
}

// Get reads a scratch value a previous middleware stored under key.
func (c *PacketContext) Get(key string) (any, bool) {
	return c.scratch.Load(key)
}

// Set records a scratch value for later middleware stages or the handler.
func (c *PacketContext) Set(key string, value any) {
	c.scratch.Store(key, value)
}

// MarkUnsupportedReturnType records that the handler's return value did
// not match any adapter in the return-value dispatch table; no response
// is sent for such a handler.
func (c *PacketContext) MarkUnsupportedReturnType() {
	c.unsupported.Store(true)
}

// UnsupportedReturnType reports whether MarkUnsupportedReturnType was
// called for this request.
func (c *PacketContext) UnsupportedReturnType() bool {
	return c.unsupported.Load()
}
