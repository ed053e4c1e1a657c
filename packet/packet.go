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

package packet

import "github.com/nalix-io/nalix-core/wire"

// Packet is the capability set every concrete packet type implements.
// Capabilities are resolved by the catalog's magic/type tables, not by a
// class hierarchy: a type is Deserializable, Transformable and Poolable
// independently of the others.
type Packet interface {
	// Header returns the packet's header fields. Implementations keep the
	// header in sync with their payload's encoded size before Encode runs.
	Header() Header

	// SetHeader overwrites the packet's header fields (used by middleware
	// that flips Flags after compression/encryption).
	SetHeader(Header)

	// Encode serializes the full packet (header + payload) into w.
	Encode(w *wire.Writer) error

	// Decode populates the packet's payload from r; the header has already
	// been read by the caller (catalog.TryDeserialize) and is passed via
	// SetHeader before Decode runs.
	Decode(r *wire.Reader) error

	// ResetForPool restores default field values so the instance can be
	// recycled by the pool package without releasing memory.
	ResetForPool()
}

// Deserializer constructs a zero-value Packet for a given magic number. The
// catalog calls it once per TryDeserialize miss in its pool, then calls
// Decode on the result.
type Deserializer func() Packet

// Transformer is the compress/decompress/encrypt/decrypt capability set
// associated with a concrete packet type by the catalog.
type Transformer interface {
	Compress(p Packet) error
	Decompress(p Packet) error
	Encrypt(p Packet, key []byte, alg string) error
	Decrypt(p Packet, key []byte, alg string) error
}

// BytesPayload is implemented by concrete packet types whose payload is a
// flat byte run a Transformer can compress/encrypt in place (TextPacket,
// BinaryPacket). Structured types (HandshakePacket, DirectivePacket,
// TimeSyncPacket) do not implement it and are never compressed/encrypted
// by the generic Transformer.
type BytesPayload interface {
	PayloadBytes() []byte
	SetPayloadBytes([]byte)
}

// BaseHeader is embedded by concrete packet types to carry the common
// Header field and satisfy the Header/SetHeader half of the Packet
// interface without repeating boilerplate per type.
type BaseHeader struct {
	H Header
}

// Header returns the embedded header.
func (b *BaseHeader) Header() Header {
	return b.H
}

// SetHeader overwrites the embedded header.
func (b *BaseHeader) SetHeader(h Header) {
	b.H = h
}
