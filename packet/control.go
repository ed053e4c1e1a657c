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

// HandshakePacket carries a 32-byte X25519 public key, in either direction
// of the key exchange.
type HandshakePacket struct {
	BaseHeader
	PublicKey [32]byte
}

// NewHandshake builds a HandshakePacket ready for Encode.
func NewHandshake(opCode uint16, pub [32]byte) *HandshakePacket {
	p := &HandshakePacket{PublicKey: pub}
	p.H = Header{MagicNumber: MagicHandshake, OpCode: opCode, Priority: PriorityUrgent}
	p.H.Length = HeaderSize + 32
	return p
}

func (p *HandshakePacket) Encode(w *wire.Writer) error {
	p.H.Encode(w)
	w.PutFixed(p.PublicKey[:])
	return w.Err()
}

func (p *HandshakePacket) Decode(r *wire.Reader) error {
	copy(p.PublicKey[:], r.Fixed(32))
	return r.Err()
}

func (p *HandshakePacket) ResetForPool() {
	p.H = Header{}
	p.PublicKey = [32]byte{}
}

// ControlPacket is the generic reason+text envelope used for every
// pipeline-originated short-circuit response (decompress/decrypt failures,
// permission denial, rate limiting, internal errors, timeouts).
type ControlPacket struct {
	BaseHeader
	Reason  ProtocolReason
	CFlags  ControlFlags
	Message string
}

// NewControl builds a ControlPacket. Length is computed from Message once
// encoded; callers should not rely on Header().Length before calling Encode.
func NewControl(opCode uint16, reason ProtocolReason, cflags ControlFlags, message string) *ControlPacket {
	p := &ControlPacket{Reason: reason, CFlags: cflags, Message: message}
	p.H = Header{MagicNumber: MagicControl, OpCode: opCode, Priority: PriorityHigh}
	p.H.Length = uint16(HeaderSize + 2 + 1 + 2 + len(message))
	return p
}

func (p *ControlPacket) Encode(w *wire.Writer) error {
	p.H.Encode(w)
	w.PutUint16(uint16(p.Reason))
	w.PutUint8(uint8(p.CFlags))
	w.PutString(p.Message)
	return w.Err()
}

func (p *ControlPacket) Decode(r *wire.Reader) error {
	p.Reason = ProtocolReason(r.Uint16())
	p.CFlags = ControlFlags(r.Uint8())
	p.Message = r.String()
	return r.Err()
}

func (p *ControlPacket) ResetForPool() {
	p.H = Header{}
	p.Reason = ReasonNone
	p.CFlags = ControlNone
	p.Message = ""
}

// TextPacket is a UTF-8 text packet; the 256/512/1024 magic numbers only
// hint at the expected average payload size used for pool-buffer sizing —
// the on-wire encoding is always a 2-byte length prefix, so any length up
// to MaxPacketSize is accepted regardless of which magic was used to send it.
type TextPacket struct {
	BaseHeader
	Content string
}

// NewText256/512/1024 build a TextPacket tagged with the given size-class
// magic number and opcode.
func NewText256(opCode uint16, content string) *TextPacket  { return newText(MagicText256, opCode, content) }
func NewText512(opCode uint16, content string) *TextPacket  { return newText(MagicText512, opCode, content) }
func NewText1024(opCode uint16, content string) *TextPacket { return newText(MagicText1024, opCode, content) }

func newText(magic uint32, opCode uint16, content string) *TextPacket {
	p := &TextPacket{Content: content}
	p.H = Header{MagicNumber: magic, OpCode: opCode, Priority: PriorityNormal}
	p.H.Length = uint16(HeaderSize + 2 + len(content))
	return p
}

func (p *TextPacket) Encode(w *wire.Writer) error {
	p.H.Encode(w)
	w.PutString(p.Content)
	return w.Err()
}

func (p *TextPacket) Decode(r *wire.Reader) error {
	p.Content = r.String()
	return r.Err()
}

func (p *TextPacket) ResetForPool() {
	p.H = Header{}
	p.Content = ""
}

// PayloadBytes returns Content as bytes, satisfying BytesPayload.
func (p *TextPacket) PayloadBytes() []byte {
	return []byte(p.Content)
}

// SetPayloadBytes overwrites Content and the header Length implied by b,
// satisfying BytesPayload.
func (p *TextPacket) SetPayloadBytes(b []byte) {
	p.Content = string(b)
	p.H.Length = uint16(HeaderSize + 2 + len(b))
}

// BinaryPacket is a raw-byte packet; like TextPacket, the size-class magic
// number is only a pool-sizing hint.
type BinaryPacket struct {
	BaseHeader
	Payload []byte
}

func NewBinary128(opCode uint16, payload []byte) *BinaryPacket {
	return newBinary(MagicBinary128, opCode, payload)
}
func NewBinary256(opCode uint16, payload []byte) *BinaryPacket {
	return newBinary(MagicBinary256, opCode, payload)
}
func NewBinary512(opCode uint16, payload []byte) *BinaryPacket {
	return newBinary(MagicBinary512, opCode, payload)
}
func NewBinary1024(opCode uint16, payload []byte) *BinaryPacket {
	return newBinary(MagicBinary1024, opCode, payload)
}

func newBinary(magic uint32, opCode uint16, payload []byte) *BinaryPacket {
	p := &BinaryPacket{Payload: payload}
	p.H = Header{MagicNumber: magic, OpCode: opCode, Priority: PriorityNormal}
	p.H.Length = uint16(HeaderSize + 2 + len(payload))
	return p
}

func (p *BinaryPacket) Encode(w *wire.Writer) error {
	p.H.Encode(w)
	w.PutBytes(p.Payload)
	return w.Err()
}

func (p *BinaryPacket) Decode(r *wire.Reader) error {
	p.Payload = r.Bytes()
	return r.Err()
}

func (p *BinaryPacket) ResetForPool() {
	p.H = Header{}
	p.Payload = nil
}

// PayloadBytes returns Payload, satisfying BytesPayload.
func (p *BinaryPacket) PayloadBytes() []byte {
	return p.Payload
}

// SetPayloadBytes overwrites Payload and the header Length implied by b,
// satisfying BytesPayload.
func (p *BinaryPacket) SetPayloadBytes(b []byte) {
	p.Payload = b
	p.H.Length = uint16(HeaderSize + 2 + len(b))
}

// DirectivePacket carries a named command invocation with a raw argument
// blob, interpreted by the receiving side's own directive table.
type DirectivePacket struct {
	BaseHeader
	Command string
	Args    []byte
}

func NewDirective(opCode uint16, command string, args []byte) *DirectivePacket {
	p := &DirectivePacket{Command: command, Args: args}
	p.H = Header{MagicNumber: MagicDirective, OpCode: opCode, Priority: PriorityNormal}
	p.H.Length = uint16(HeaderSize + 2 + len(command) + 2 + len(args))
	return p
}

func (p *DirectivePacket) Encode(w *wire.Writer) error {
	p.H.Encode(w)
	w.PutString(p.Command)
	w.PutBytes(p.Args)
	return w.Err()
}

func (p *DirectivePacket) Decode(r *wire.Reader) error {
	p.Command = r.String()
	p.Args = r.Bytes()
	return r.Err()
}

func (p *DirectivePacket) ResetForPool() {
	p.H = Header{}
	p.Command = ""
	p.Args = nil
}
