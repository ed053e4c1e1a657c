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

package handshake

import "github.com/nalix-io/nalix-core/packet"

// Initiator drives one side of the two-message exchange described in
// it owns the ephemeral keypair generated at the start of the
// handshake and the single transition from "sent my public key" to
// "derived the shared key" once the peer answers.
type Initiator struct {
	pair *EphemeralKeyPair
}

// NewInitiator generates a fresh ephemeral keypair for a new handshake
// attempt.
func NewInitiator() (*Initiator, error) {
	pair, err := GenerateEphemeralKeyPair()
	if err != nil {
		return nil, err
	}
	return &Initiator{pair: pair}, nil
}

// StartPacket builds the opcode-StartHandshake control packet carrying the
// initiator's ephemeral public key.
func (i *Initiator) StartPacket() *packet.HandshakePacket {
	return packet.NewHandshake(packet.OpCodeStartHandshake, i.pair.PublicKey())
}

// Complete consumes the responder's reply packet and derives the shared
// symmetric key. The reply's payload must be exactly KeySize bytes, per
// a short or all-zero key fails with ErrorInvalidPeerPublicKey.
func (i *Initiator) Complete(reply *packet.HandshakePacket) ([KeySize]byte, error) {
	var key [KeySize]byte
	if reply == nil {
		return key, ErrorInvalidPeerPublicKey.Error()
	}
	return i.pair.DeriveSharedKey(reply.PublicKey)
}

// Respond implements the responder side of the exchange in one call: given
// the initiator's public key, it generates its own ephemeral keypair,
// derives the shared key, and returns both the derived key and the reply
// packet to send back.
func Respond(initiatorPublic [KeySize]byte) (key [KeySize]byte, reply *packet.HandshakePacket, err error) {
	pair, err := GenerateEphemeralKeyPair()
	if err != nil {
		return key, nil, err
	}

	key, err = pair.DeriveSharedKey(initiatorPublic)
	if err != nil {
		return key, nil, err
	}

	reply = packet.NewHandshake(packet.OpCodeStartHandshake, pair.PublicKey())
	return key, reply, nil
}
