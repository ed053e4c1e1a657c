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

package wire

import "encoding/binary"

// Reader deserializes fields in declared order from a caller-provided byte
// span. The first error encountered is sticky: subsequent Get* calls return
// zero values without panicking, so a packet's Decode method can read every
// field unconditionally and check Err once at the end.
type Reader struct {
	src []byte
	off int
	err error
}

// NewReader wraps src for sequential little-endian reads.
func NewReader(src []byte) *Reader {
	return &Reader{src: src}
}

// Err returns the first underrun error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.src) - r.off
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.off+n > len(r.src) {
		r.err = ErrorBufferTooSmall.Error()
		return nil
	}
	b := r.src[r.off : r.off+n]
	r.off += n
	return b
}

// Uint8 reads a single byte.
func (r *Reader) Uint8() uint8 {
	if b := r.take(1); b != nil {
		return b[0]
	}
	return 0
}

// Bool reads a single byte as a boolean.
func (r *Reader) Bool() bool {
	return r.Uint8() != 0
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() uint16 {
	if b := r.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() uint32 {
	if b := r.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() uint64 {
	if b := r.take(8); b != nil {
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

// Int64 reads a little-endian int64.
func (r *Reader) Int64() int64 {
	return int64(r.Uint64())
}

// Fixed reads exactly n raw bytes with no length prefix. The returned slice
// aliases src; callers that retain it past the read loop's buffer lifetime
// must copy it first.
func (r *Reader) Fixed(n int) []byte {
	return r.take(n)
}

// Bytes reads a 2-byte length prefix followed by that many bytes.
func (r *Reader) Bytes() []byte {
	n := int(r.Uint16())
	if r.err != nil {
		return nil
	}
	return r.take(n)
}

// String reads a 2-byte length prefix followed by that many UTF-8 bytes.
func (r *Reader) String() string {
	return string(r.Bytes())
}
