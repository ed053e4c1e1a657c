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

// Reserved magic-number range for framework-internal packets (handshake,
// control, text/binary variants, directive, time-sync). Application packet
// types must register outside this range.
const (
	ReservedMagicLow  uint32 = 0x0000A000
	ReservedMagicHigh uint32 = 0x0000AFFF
)

// Framework-internal magic numbers, one per control packet type.
const (
	MagicHandshake uint32 = ReservedMagicLow + iota
	MagicControl
	MagicText256
	MagicText512
	MagicText1024
	MagicBinary128
	MagicBinary256
	MagicBinary512
	MagicBinary1024
	MagicDirective
	MagicTimeSync
)

// InReservedRange reports whether a magic number falls in the
// framework-internal range and so must not be used by application packets.
func InReservedRange(magic uint32) bool {
	return magic >= ReservedMagicLow && magic <= ReservedMagicHigh
}

// Opcode for the handshake's initiating packet (spec's StartHandshake).
const OpCodeStartHandshake uint16 = 0xFFFE

// OpCodeTimeSync is the opcode both stages of the time-sync exchange route
// through; request and response are told apart by TimeSyncStage,
// not by opcode.
const OpCodeTimeSync uint16 = 0xFFFD

// OpCodeError is the opcode carried by pipeline-originated error control
// packets (decompress/decrypt/permission/rate-limit/internal failures).
const OpCodeError uint16 = 0
