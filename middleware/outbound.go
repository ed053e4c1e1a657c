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
	"github.com/nalix-io/nalix-core/packet"
	"github.com/nalix-io/nalix-core/pool"
	"github.com/nalix-io/nalix-core/transport"
	"github.com/nalix-io/nalix-core/wire"
)

// tcpCompressionThreshold and udpCompressionThreshold drive the outbound
// rule: compress when the encoded frame exceeds
// CompressionThreshold bytes for TCP, or falls in the 600-1200 byte range
// for UDP. 600 is used as UDP's threshold so both transports share one
// comparison; a listener wanting the top of that range can still run its
// own PostDispatch stage ahead of compressPacket.
const (
	tcpCompressionThreshold = 512
	udpCompressionThreshold = 600
)

func compressionThreshold(tr transport.Transport) int {
	if tr == transport.UDP {
		return udpCompressionThreshold
	}
	return tcpCompressionThreshold
}

// encodeFrame serializes p into an exactly-sized buffer drawn from bp, the
// on-wire form the connection's Send writes verbatim.
func encodeFrame(bp *pool.BufferPool, p packet.Packet) ([]byte, error) {
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

// writeControl builds and sends a single control packet short-circuit
// response — the "must send exactly one response packet" obligation every
// short-circuiting stage in this package discharges through this helper.
func writeControl(ctx *dispatch.PacketContext, bp *pool.BufferPool, reason packet.ProtocolReason, message string) error {
	p := packet.NewControl(ctx.Meta.OpCode, reason, packet.ControlNone, message)

	buf, err := encodeFrame(bp, p)
	if err != nil {
		return err
	}

	_, err = ctx.Conn.Send(buf)
	return err
}

// adaptResult turns a handler's return value into a response Packet per
// the return-adapter table: nil means no response,
// packet.Packet passes through, []byte and string are wrapped in the
// matching built-in packet type. Anything else marks
// UnsupportedReturnType and produces no response.
func adaptResult(ctx *dispatch.PacketContext, value any) packet.Packet {
	switch v := value.(type) {
	case nil:
		return nil
	case packet.Packet:
		return v
	case []byte:
		return packet.NewBinary256(ctx.Meta.OpCode, v)
	case string:
		return packet.NewText256(ctx.Meta.OpCode, v)
	default:
		ctx.MarkUnsupportedReturnType()
		return nil
	}
}
