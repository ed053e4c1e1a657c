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

// Package ident mints the 32-bit identifiers used to tag connections,
// packets and time-sync sequences: an 8-bit kind tag plus a 24-bit counter
// seeded from a per-process machine id, rendered in base36 or hex.
package ident

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Kind tags the domain an Id was minted for.
type Kind uint8

const (
	KindConnection Kind = iota + 1
	KindPacket
	KindSession
	KindTimeSync
)

// String renders the Kind name, falling back to its numeric value.
func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindPacket:
		return "packet"
	case KindSession:
		return "session"
	case KindTimeSync:
		return "timesync"
	default:
		return strconv.Itoa(int(k))
	}
}

// Id is a 32-bit identifier: the high byte carries the Kind, the low 24 bits
// a monotonically increasing, per-Kind sequence number seeded by machineSeed.
type Id uint32

// Kind extracts the Kind tag from the high byte of the identifier.
func (i Id) Kind() Kind {
	return Kind(i >> 24)
}

// Sequence extracts the low 24-bit sequence component.
func (i Id) Sequence() uint32 {
	return uint32(i) & 0x00FFFFFF
}

// Uint32 returns the raw identifier value.
func (i Id) Uint32() uint32 {
	return uint32(i)
}

// Bytes renders the identifier as 4 big-endian bytes, the canonical form fed
// to Base36/Hex.
func (i Id) Bytes() [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(i))
	return b
}

// Base36 renders the identifier in base36, the compact form used in log
// lines and client-visible identifiers.
func (i Id) Base36() string {
	return strconv.FormatUint(uint64(i), 36)
}

// Hex renders the identifier as 8 lowercase hex characters.
func (i Id) Hex() string {
	b := i.Bytes()
	return hex.EncodeToString(b[:])
}

// String implements fmt.Stringer as Base36, the default rendering.
func (i Id) String() string {
	return i.Base36()
}

// ParseBase36 parses a base36-rendered identifier back into an Id.
func ParseBase36(s string) (Id, error) {
	v, err := strconv.ParseUint(s, 36, 32)
	if err != nil {
		return 0, ErrorMalformedId.Error(err)
	}
	return Id(v), nil
}

// machineSeed is derived once per process from a random UUID, folded into
// every minted sequence so identifiers minted by different processes rarely
// collide even when their counters happen to align.
var machineSeed = newMachineSeed()

func newMachineSeed() uint32 {
	u := uuid.New()
	var s uint32
	for idx, b := range u {
		s ^= uint32(b) << uint((idx%4)*8)
	}
	if s&0x00FFFFFF == 0 {
		s |= 1
	}
	return s & 0x00FFFFFF
}

// Generator mints Id values of a fixed Kind from an atomic counter folded
// with the process machine seed.
type Generator struct {
	kind    Kind
	counter uint32
}

// NewGenerator returns a Generator that mints Id values tagged with kind.
func NewGenerator(kind Kind) *Generator {
	return &Generator{kind: kind, counter: machineSeed}
}

// Next mints the next Id for this Generator's Kind.
func (g *Generator) Next() Id {
	seq := atomic.AddUint32(&g.counter, 1) & 0x00FFFFFF
	return Id(uint32(g.kind)<<24 | seq)
}
