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
	liberr "github.com/nalix-io/nalix-core/errors"
	"github.com/nalix-io/nalix-core/packet"
	"github.com/nalix-io/nalix-core/packet/catalog"
	"github.com/nalix-io/nalix-core/pool"
)

// Dispatch is the terminal stage: it calls the registry and, on success,
// runs the PostDispatch half of the pipeline over the result: adapt,
// compress-if-over-threshold, encrypt-if-required, write. It never calls
// next; it is always the last Middleware in a Pipeline.
func Dispatch(reg *dispatch.Registry, cat *catalog.Catalog, bp *pool.BufferPool) Middleware {
	return func(ctx *dispatch.PacketContext, _ Next) error {
		result, err := reg.Invoke(ctx)
		if err != nil {
			return writeControl(ctx, bp, reasonFor(err), "Dispatch failed")
		}

		resp := adaptResult(ctx, result)
		if resp == nil {
			return nil
		}

		if err := finishOutbound(ctx, cat, resp); err != nil {
			return writeControl(ctx, bp, packet.ReasonInternalError, "Internal error")
		}

		buf, err := encodeFrame(bp, resp)
		if err != nil {
			return writeControl(ctx, bp, packet.ReasonInternalError, "Internal error")
		}

		_, err = ctx.Conn.Send(buf)
		return err
	}
}

// finishOutbound applies compression (if the encoded payload would exceed
// the transport's threshold) and encryption (if the handler requires it)
// to resp before it is framed and sent.
func finishOutbound(ctx *dispatch.PacketContext, cat *catalog.Catalog, resp packet.Packet) error {
	h := resp.Header()

	if bp, ok := resp.(packet.BytesPayload); ok && len(bp.PayloadBytes()) > compressionThreshold(ctx.Conn.Transport()) {
		t, ok := cat.TryGetTransformer(resp)
		if ok {
			if err := t.Compress(resp); err != nil {
				return err
			}
			h = resp.Header()
			h.Flags = h.Flags.Set(packet.FlagCompressed)
			resp.SetHeader(h)
		}
	}

	if ctx.Meta.RequireEncryption {
		key, ok := ctx.Conn.EncryptionKey()
		if !ok {
			return ErrorDecryptFailed.Error()
		}
		t, ok := cat.TryGetTransformer(resp)
		if !ok {
			return ErrorNoTransformer.Error()
		}
		if err := t.Encrypt(resp, key[:], ctx.Conn.Encryption().String()); err != nil {
			return err
		}
		h = resp.Header()
		h.Flags = h.Flags.Set(packet.FlagEncrypted)
		resp.SetHeader(h)
	}

	return nil
}

// reasonFor maps a dispatch-layer error to the ProtocolReason its control
// response should carry. Timeouts get their own reason; anything else
// (unknown opcode, panic, concurrency rejection) is reported generically.
func reasonFor(err error) packet.ProtocolReason {
	if e, ok := err.(liberr.Error); ok {
		switch {
		case e.IsCode(dispatch.ErrorHandlerTimeout):
			return packet.ReasonTimeout
		case e.IsCode(dispatch.ErrorConcurrencyLimitExceeded):
			return packet.ReasonRateLimited
		}
	}
	return packet.ReasonInternalError
}
