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

// Package wire is the little-endian binary serialization core shared by
// every packet type in the packet package: a Writer/Reader pair driven by
// the field order each packet's Encode/Decode method declares, with zero
// hidden allocations beyond the caller-provided destination span.
package wire

import "encoding/binary"

// Writer serializes fields in declared order into a caller-provided byte
// span. It never grows dst; Put* calls past the end set an overflow error
// observed via Err/Offset.
type Writer struct {
	dst []byte
	off int
	err error
}

// NewWriter wraps dst for sequential little-endian writes.
func NewWriter(dst []byte) *Writer {
	return &Writer{dst: dst}
}

// Err returns the first overflow error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int {
	return w.off
}

// Bytes returns the portion of dst written so far.
func (w *Writer) Bytes() []byte {
	return w.dst[:w.off]
}

func (w *Writer) reserve(n int) []byte {
	if w.err != nil {
		return nil
	}
	if w.off+n > len(w.dst) {
		w.err = ErrorBufferTooSmall.Error()
		return nil
	}
	b := w.dst[w.off : w.off+n]
	w.off += n
	return b
}

// PutUint8 writes a single byte.
func (w *Writer) PutUint8(v uint8) {
	if b := w.reserve(1); b != nil {
		b[0] = v
	}
}

// PutBool writes a boolean as a single byte, 0 or 1.
func (w *Writer) PutBool(v bool) {
	if v {
		w.PutUint8(1)
	} else {
		w.PutUint8(0)
	}
}

// PutUint16 writes a little-endian uint16.
func (w *Writer) PutUint16(v uint16) {
	if b := w.reserve(2); b != nil {
		binary.LittleEndian.PutUint16(b, v)
	}
}

// PutUint32 writes a little-endian uint32.
func (w *Writer) PutUint32(v uint32) {
	if b := w.reserve(4); b != nil {
		binary.LittleEndian.PutUint32(b, v)
	}
}

// PutUint64 writes a little-endian uint64.
func (w *Writer) PutUint64(v uint64) {
	if b := w.reserve(8); b != nil {
		binary.LittleEndian.PutUint64(b, v)
	}
}

// PutInt64 writes a little-endian int64.
func (w *Writer) PutInt64(v int64) {
	w.PutUint64(uint64(v))
}

// PutFixed writes exactly len(v) raw bytes with no length prefix, for
// fixed-size fields (header bytes, the handshake's 32-byte public key).
func (w *Writer) PutFixed(v []byte) {
	if b := w.reserve(len(v)); b != nil {
		copy(b, v)
	}
}

// PutBytes writes a 2-byte length prefix followed by v, the dynamic-size
// byte-array encoding from spec's field-order contract.
func (w *Writer) PutBytes(v []byte) {
	w.PutUint16(uint16(len(v)))
	w.PutFixed(v)
}

// PutString writes a 2-byte length prefix followed by the UTF-8 bytes of v.
func (w *Writer) PutString(v string) {
	w.PutBytes([]byte(v))
}
