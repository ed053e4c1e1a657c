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

// Package timesync implements the two-stage NTP-style clock exchange:
// a Responder controller answering requests on the server side, and a
// Client tracking outstanding sequences and computing offset
// and round-trip delay on the client side.
package timesync

import (
	"github.com/nalix-io/nalix-core/clock"
	"github.com/nalix-io/nalix-core/dispatch"
	"github.com/nalix-io/nalix-core/packet"
)

// Responder answers TimeSync requests, stamping T1 as close as possible to
// the read and T2 as close as possible to the write. It is
// exempt from the request rate limiter (time sync is plumbing, not
// application traffic) and carries no permission requirement.
type Responder struct{}

// NewResponder builds a Responder ready to register with a dispatch.Registry.
func NewResponder() *Responder {
	return &Responder{}
}

// Routes satisfies dispatch.Controller, registering the single handler on
// packet.OpCodeTimeSync.
func (r *Responder) Routes() []dispatch.Route {
	return []dispatch.Route{
		{
			Meta: dispatch.PacketMetadata{
				OpCode:    packet.OpCodeTimeSync,
				RateLimit: false,
			},
			Handler: r.handle,
		},
	}
}

// handle stamps T1 immediately on entry — the closest this pipeline gets
// to the socket read, since decompress/decrypt/authorize already ran — and
// T2 immediately before returning, since the result flows straight into
// the outbound encode-and-send with no further handler work in between.
func (r *Responder) handle(ctx *dispatch.PacketContext) (any, error) {
	req, ok := ctx.Packet.(*packet.TimeSyncPacket)
	if !ok {
		return nil, ErrorUnexpectedPacket.Error()
	}

	t1 := clock.UnixMillisecondsNow()
	monoRecv := clock.MonoTicksNow()

	t2 := clock.UnixMillisecondsNow()
	monoSend := clock.MonoTicksNow()

	return packet.NewTimeSyncResponse(packet.OpCodeTimeSync, req, t1, t2, monoRecv, monoSend), nil
}
