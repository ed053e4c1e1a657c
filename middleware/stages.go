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

package middleware

import (
	"github.com/nalix-io/nalix-core/dispatch"
	"github.com/nalix-io/nalix-core/firewall"
	"github.com/nalix-io/nalix-core/packet"
	"github.com/nalix-io/nalix-core/packet/catalog"
	"github.com/nalix-io/nalix-core/pool"
)

// Decompress builds the inbound decompress stage: if the packet's
// FlagCompressed bit is set, run the catalog-bound transformer's
// Decompress; on any failure, short-circuit with a control packet and stop
// the chain.
func Decompress(cat *catalog.Catalog, bp *pool.BufferPool) Middleware {
	return func(ctx *dispatch.PacketContext, next Next) error {
		h := ctx.Packet.Header()
		if !h.Flags.IsCompressed() {
			return next(ctx)
		}

		t, ok := cat.TryGetTransformer(ctx.Packet)
		if !ok {
			return writeControl(ctx, bp, packet.ReasonInternalError, "Packet decompress failed!")
		}
		if err := t.Decompress(ctx.Packet); err != nil {
			return writeControl(ctx, bp, packet.ReasonInternalError, "Packet decompress failed!")
		}

		h = ctx.Packet.Header()
		h.Flags = h.Flags.Clear(packet.FlagCompressed)
		ctx.Packet.SetHeader(h)

		return next(ctx)
	}
}

// Decrypt builds the inbound decrypt stage: if the packet's FlagEncrypted
// bit is set, run Decrypt using the connection's negotiated key and
// algorithm; a handler declaring RequireEncryption rejects an unencrypted
// packet outright.
func Decrypt(cat *catalog.Catalog, bp *pool.BufferPool) Middleware {
	return func(ctx *dispatch.PacketContext, next Next) error {
		h := ctx.Packet.Header()

		if !h.Flags.IsEncrypted() {
			if ctx.Meta.RequireEncryption {
				return writeControl(ctx, bp, packet.ReasonUnauthorized, "Packet decoding failed!")
			}
			return next(ctx)
		}

		key, ok := ctx.Conn.EncryptionKey()
		if !ok {
			return writeControl(ctx, bp, packet.ReasonUnauthorized, "Packet decoding failed!")
		}

		t, ok := cat.TryGetTransformer(ctx.Packet)
		if !ok {
			return writeControl(ctx, bp, packet.ReasonInternalError, "Packet decoding failed!")
		}
		if err := t.Decrypt(ctx.Packet, key[:], ctx.Conn.Encryption().String()); err != nil {
			return writeControl(ctx, bp, packet.ReasonUnauthorized, "Packet decoding failed!")
		}

		h = ctx.Packet.Header()
		h.Flags = h.Flags.Clear(packet.FlagEncrypted)
		ctx.Packet.SetHeader(h)

		return next(ctx)
	}
}

// Authorize compares the connection's current permission level against the
// handler's declared Meta.Permission, short-circuiting with
// ReasonPermissionDenied if insufficient.
func Authorize(bp *pool.BufferPool) Middleware {
	return func(ctx *dispatch.PacketContext, next Next) error {
		if ctx.Conn.PermissionLevel() < ctx.Meta.Permission {
			return writeControl(ctx, bp, packet.ReasonPermissionDenied, "Permission denied")
		}
		return next(ctx)
	}
}

// RateLimit consults limiter for handlers that opted into it via
// Meta.RateLimit, short-circuiting with ReasonRateLimited on rejection.
func RateLimit(limiter *firewall.RequestLimiter, bp *pool.BufferPool) Middleware {
	return func(ctx *dispatch.PacketContext, next Next) error {
		if !ctx.Meta.RateLimit {
			return next(ctx)
		}
		if !limiter.IsAllowed(ctx.Conn.Endpoint()) {
			return writeControl(ctx, bp, packet.ReasonRateLimited, "Too many requests")
		}
		return next(ctx)
	}
}
