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

package dispatch

import "github.com/nalix-io/nalix-core/duration"

// ConcurrencyPolicy decides whether a handler at its ConcurrencyLimit
// rejects or queues an incoming request. Made explicit per handler
// rather than left implicit.
type ConcurrencyPolicy uint8

const (
	// ConcurrencyReject is the default: a request arriving once the
	// handler's concurrency slots are full is short-circuited with
	// ReasonRateLimited rather than waiting.
	ConcurrencyReject ConcurrencyPolicy = iota
	// ConcurrencyQueue blocks the calling worker until a slot frees up
	// (bounded by the request's own context/timeout).
	ConcurrencyQueue
)

// String renders the ConcurrencyPolicy name.
func (p ConcurrencyPolicy) String() string {
	if p == ConcurrencyQueue {
		return "queue"
	}
	return "reject"
}

// PacketMetadata is the declarative table materialized once per handler at
// registry build time — Go's capability-composition stand-in for the
// PacketOpcode/Timeout/Permission/Encryption/RateLimit/ConcurrencyLimit
// attributes a controller class would carry.
type PacketMetadata struct {
	// OpCode selects which inbound packets route to this handler.
	OpCode uint16

	// Timeout bounds the invoker call; zero means no timeout.
	Timeout duration.Duration

	// Permission is the minimum conn.Connection.PermissionLevel required
	// to invoke this handler.
	Permission uint8

	// RequireEncryption, if set, makes the decrypt middleware stage a
	// hard requirement: an unencrypted inbound packet is rejected rather
	// than passed through.
	RequireEncryption bool

	// RateLimit opts this handler into the firewall's sliding-window
	// request limiter. Handlers that skip it (time sync, handshake) are
	// exempt from the per-IP request budget.
	RateLimit bool

	// ConcurrencyLimit bounds how many invocations of this handler may be
	// in flight at once; zero means unbounded.
	ConcurrencyLimit int

	// ConcurrencyPolicy governs what happens when ConcurrencyLimit is
	// reached. Ignored when ConcurrencyLimit is zero.
	ConcurrencyPolicy ConcurrencyPolicy
}

// HandlerFunc is the precompiled invoker shape every registered handler
// reduces to: bind its own parameters from ctx (packet, connection,
// context, or a decoded sub-type) and return either a result value or an
// error. The result is adapted to a wire response by ReturnHandler.
//
// Supported result types: nil (void), packet.Packet, []byte, string.
// Any other concrete type marks PacketContext.UnsupportedReturnType and
// sends nothing.
type HandlerFunc func(ctx *PacketContext) (any, error)

// Route pairs one handler with its metadata, the unit a Controller
// contributes to a Registry.
type Route struct {
	Meta    PacketMetadata
	Handler HandlerFunc
}

// Controller groups related routes the way a "controller class" would,
// without runtime attribute reflection: Routes returns the
// declarative table RegisterController feeds into a Registry.
type Controller interface {
	Routes() []Route
}
