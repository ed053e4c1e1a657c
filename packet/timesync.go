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

// TimeSyncStage distinguishes the two packets of the exchange.
type TimeSyncStage uint8

const (
	TimeSyncRequest TimeSyncStage = iota
	TimeSyncResponse
)

// TimeSyncPacket is the two-packet NTP-style exchange. A REQUEST populates
// SequenceId/T0ClientSend/MonoClientSend only; a RESPONSE echoes those three
// and adds the four server-side timestamps. The client stamps T3ClientRecv
// itself on local arrival — it is not part of the wire format.
type TimeSyncPacket struct {
	BaseHeader
	Stage TimeSyncStage

	SequenceId     uint32
	T0ClientSend   int64
	MonoClientSend int64

	T1ServerRecv   int64
	T2ServerSend   int64
	MonoServerRecv int64
	MonoServerSend int64
}

// NewTimeSyncRequest builds the client-initiated REQUEST packet.
func NewTimeSyncRequest(opCode uint16, sequenceId uint32, t0, monoClient int64) *TimeSyncPacket {
	p := &TimeSyncPacket{
		Stage:          TimeSyncRequest,
		SequenceId:     sequenceId,
		T0ClientSend:   t0,
		MonoClientSend: monoClient,
	}
	p.H = Header{MagicNumber: MagicTimeSync, OpCode: opCode, Priority: PriorityHigh}
	p.H.Length = HeaderSize + timeSyncWireSize
	return p
}

// NewTimeSyncResponse builds the server's RESPONSE packet, echoing the
// client's sequence/T0/mono fields and adding the four server timestamps.
func NewTimeSyncResponse(opCode uint16, req *TimeSyncPacket, t1, t2, monoRecv, monoSend int64) *TimeSyncPacket {
	p := &TimeSyncPacket{
		Stage:          TimeSyncResponse,
		SequenceId:     req.SequenceId,
		T0ClientSend:   req.T0ClientSend,
		MonoClientSend: req.MonoClientSend,
		T1ServerRecv:   t1,
		T2ServerSend:   t2,
		MonoServerRecv: monoRecv,
		MonoServerSend: monoSend,
	}
	p.H = Header{MagicNumber: MagicTimeSync, OpCode: opCode, Priority: PriorityHigh}
	p.H.Length = HeaderSize + timeSyncWireSize
	return p
}

// timeSyncWireSize is the fixed payload size: 1 stage byte + 4-byte
// sequence + 6 int64 timestamp fields.
const timeSyncWireSize = 1 + 4 + 6*8

func (p *TimeSyncPacket) Encode(w *wire.Writer) error {
	p.H.Encode(w)
	w.PutUint8(uint8(p.Stage))
	w.PutUint32(p.SequenceId)
	w.PutInt64(p.T0ClientSend)
	w.PutInt64(p.MonoClientSend)
	w.PutInt64(p.T1ServerRecv)
	w.PutInt64(p.T2ServerSend)
	w.PutInt64(p.MonoServerRecv)
	w.PutInt64(p.MonoServerSend)
	return w.Err()
}

func (p *TimeSyncPacket) Decode(r *wire.Reader) error {
	p.Stage = TimeSyncStage(r.Uint8())
	p.SequenceId = r.Uint32()
	p.T0ClientSend = r.Int64()
	p.MonoClientSend = r.Int64()
	p.T1ServerRecv = r.Int64()
	p.T2ServerSend = r.Int64()
	p.MonoServerRecv = r.Int64()
	p.MonoServerSend = r.Int64()
	return r.Err()
}

func (p *TimeSyncPacket) ResetForPool() {
	*p = TimeSyncPacket{}
}

// OffsetMilliseconds computes ((T1-T0)+(T2-T3))/2, the clock offset formula
// given the client's locally observed T3ClientRecv.
func (p *TimeSyncPacket) OffsetMilliseconds(t3ClientRecv int64) int64 {
	return ((p.T1ServerRecv - p.T0ClientSend) + (p.T2ServerSend - t3ClientRecv)) / 2
}

// RoundTripMilliseconds computes (T3-T0)-(T2-T1), the round-trip delay
// formula (T3-T0)-(T2-T1).
func (p *TimeSyncPacket) RoundTripMilliseconds(t3ClientRecv int64) int64 {
	return (t3ClientRecv - p.T0ClientSend) - (p.T2ServerSend - p.T1ServerRecv)
}
