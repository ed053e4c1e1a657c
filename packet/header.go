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

// Package packet defines the 12-byte header layout, the flags/priority/
// transport fields that ride in it, and the Packet capability interfaces
// (Deserializable, Transformable, Poolable) that every concrete packet type
// implements. Concrete types and the magic-number registry live in the
// catalog subpackage.
package packet

import (
	"github.com/nalix-io/nalix-core/transport"
	"github.com/nalix-io/nalix-core/wire"
)

// HeaderSize is the fixed on-wire size of Header, in bytes.
const HeaderSize = 12

// MaxPacketSize is the largest Length a Header may declare; Length is a
// 16-bit field so no packet can ever exceed it.
const MaxPacketSize = 65535

// Header is the fixed 12-byte prefix of every packet on the wire.
type Header struct {
	Length       uint16
	MagicNumber  uint32
	OpCode       uint16
	Flags        Flags
	Priority     Priority
	Transport    transport.Transport
	reservedByte uint8
}

// PayloadLength returns the number of payload bytes implied by Length.
func (h Header) PayloadLength() int {
	if int(h.Length) < HeaderSize {
		return 0
	}
	return int(h.Length) - HeaderSize
}

// Encode writes the 12-byte header to w in field order (offsets 0-11).
func (h Header) Encode(w *wire.Writer) {
	w.PutUint16(h.Length)
	w.PutUint32(h.MagicNumber)
	w.PutUint16(h.OpCode)
	w.PutUint8(uint8(h.Flags))
	w.PutUint8(uint8(h.Priority))
	w.PutUint8(h.Transport.Byte())
	w.PutUint8(0) // reserved, must be zero
}

// DecodeHeader reads the 12-byte header from r.
func DecodeHeader(r *wire.Reader) Header {
	var h Header
	h.Length = r.Uint16()
	h.MagicNumber = r.Uint32()
	h.OpCode = r.Uint16()
	h.Flags = Flags(r.Uint8())
	h.Priority = Priority(r.Uint8())
	h.Transport = transport.FromByte(r.Uint8())
	r.Uint8() // reserved, ignored
	return h
}

// Valid reports whether the header satisfies the framing invariant
// `Length >= 12`; the stricter `Length == 12 + |payload|` check is made by
// the caller once the payload length is known.
func (h Header) Valid() bool {
	return h.Length >= HeaderSize
}
