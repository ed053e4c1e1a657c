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

// Package transport carries the one-byte Transport field of the packet
// header (offset 10): the wire-visible hint for which socket kind produced
// or should carry a given packet.
package transport

import "strconv"

// Transport is the on-wire transport byte. Values follow the protocol's own
// numbering (not a generic net.Dial network-string enum): TCP is 6, UDP is
// 17, matching IANA protocol numbers rather than an internal ordinal.
type Transport uint8

const (
	None Transport = 0
	TCP  Transport = 6
	UDP  Transport = 17
)

// String renders the Transport name, falling back to its numeric value for
// an unrecognized byte (forward-compatible with future transports).
func (t Transport) String() string {
	switch t {
	case None:
		return "none"
	case TCP:
		return "tcp"
	case UDP:
		return "udp"
	default:
		return strconv.Itoa(int(t))
	}
}

// Byte returns the on-wire encoding of t.
func (t Transport) Byte() byte {
	return byte(t)
}

// Valid reports whether t is one of the recognized transports.
func (t Transport) Valid() bool {
	switch t {
	case None, TCP, UDP:
		return true
	default:
		return false
	}
}

// FromByte decodes a wire byte into a Transport, without validating it is
// one of the known constants; callers that need strict validation should
// call Valid on the result.
func FromByte(b byte) Transport {
	return Transport(b)
}
