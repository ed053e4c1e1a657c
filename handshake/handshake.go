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

// Package handshake derives the 32-byte per-connection symmetric key from
// an X25519 ephemeral exchange followed by a SHA-256 key-derivation step.
// The protocol is two messages: the initiator sends its ephemeral public
// key, the responder computes the shared secret and answers with its own
// ephemeral public key, and the initiator completes the same computation
// locally. Neither side ever transmits the derived key.
package handshake

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/curve25519"
)

// KeySize is the length, in bytes, of both the X25519 public keys
// exchanged on the wire and the derived symmetric key.
const KeySize = 32

// EphemeralKeyPair is a single-use X25519 keypair generated for one
// handshake attempt and discarded afterward.
type EphemeralKeyPair struct {
	private [KeySize]byte
	public  [KeySize]byte
}

// GenerateEphemeralKeyPair draws a fresh X25519 keypair from crypto/rand.
func GenerateEphemeralKeyPair() (*EphemeralKeyPair, error) {
	var priv [KeySize]byte
	if _, err := rand.Read(priv[:]); err != nil {
		return nil, err
	}

	pub, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return nil, ErrorKeyDerivationFailed.Error()
	}

	pair := &EphemeralKeyPair{private: priv}
	copy(pair.public[:], pub)
	return pair, nil
}

// PublicKey returns the 32-byte public key to place on the wire in a
// HandshakePacket payload.
func (p *EphemeralKeyPair) PublicKey() [KeySize]byte { return p.public }

// DeriveSharedKey computes SHA-256(X25519(private, peerPublic)), the
// symmetric key both endpoints converge on once they each hold the
// other's ephemeral public key.
func (p *EphemeralKeyPair) DeriveSharedKey(peerPublic [KeySize]byte) ([KeySize]byte, error) {
	var derived [KeySize]byte

	if isZero(peerPublic) {
		return derived, ErrorInvalidPeerPublicKey.Error()
	}

	shared, err := curve25519.X25519(p.private[:], peerPublic[:])
	if err != nil {
		return derived, ErrorKeyDerivationFailed.Error()
	}

	derived = sha256.Sum256(shared)
	return derived, nil
}

// isZero reports whether key is the all-zero array curve25519 rejects as a
// low-order/degenerate point.
func isZero(key [KeySize]byte) bool {
	var zero [KeySize]byte
	return subtle.ConstantTimeCompare(key[:], zero[:]) == 1
}
