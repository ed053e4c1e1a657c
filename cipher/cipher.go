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

// Package cipher is the pluggable per-connection symmetric cipher suite:
// the handshake negotiates an Algorithm, the connection stores the
// resulting 32-byte key, and the middleware pipeline calls Encrypt/Decrypt
// on whichever packet.Transformer the catalog has bound to a given packet
// type. The pipeline only depends on the Suite interface below — concrete
// algorithms are external collaborators, mostly golang.org/x/crypto.
package cipher

import "strconv"

// Algorithm names the symmetric cipher a connection negotiated at
// handshake completion.
type Algorithm uint8

const (
	// AlgorithmXTEA is the default algorithm before a handshake negotiates
	// a different one.
	AlgorithmXTEA Algorithm = iota
	AlgorithmChaCha20Poly1305
	AlgorithmSalsa20
	AlgorithmTwofishCBC
	AlgorithmBlowfish
	AlgorithmSpeck
)

// String renders the Algorithm name.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmXTEA:
		return "xtea"
	case AlgorithmChaCha20Poly1305:
		return "chacha20-poly1305"
	case AlgorithmSalsa20:
		return "salsa20"
	case AlgorithmTwofishCBC:
		return "twofish-cbc"
	case AlgorithmBlowfish:
		return "blowfish"
	case AlgorithmSpeck:
		return "speck"
	default:
		return strconv.Itoa(int(a))
	}
}

// Suite encrypts and decrypts opaque payloads under a 32-byte key. It is
// the sole contract the middleware pipeline and packet.Transformer
// implementations depend on.
type Suite interface {
	Algorithm() Algorithm
	Encrypt(key [32]byte, plaintext []byte) (ciphertext []byte, err error)
	Decrypt(key [32]byte, ciphertext []byte) (plaintext []byte, err error)
}

// ParseAlgorithm resolves the String() form of an Algorithm back to its
// value, the bridge packet.Transformer implementations use since
// Transformer.Encrypt/Decrypt carry the algorithm as a string rather than
// importing this package's enum.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case AlgorithmXTEA.String():
		return AlgorithmXTEA, nil
	case AlgorithmChaCha20Poly1305.String():
		return AlgorithmChaCha20Poly1305, nil
	case AlgorithmSalsa20.String():
		return AlgorithmSalsa20, nil
	case AlgorithmTwofishCBC.String():
		return AlgorithmTwofishCBC, nil
	case AlgorithmBlowfish.String():
		return AlgorithmBlowfish, nil
	case AlgorithmSpeck.String():
		return AlgorithmSpeck, nil
	default:
		return 0, ErrorUnsupportedAlgorithm.Error()
	}
}

// New returns the Suite implementation for alg.
func New(alg Algorithm) (Suite, error) {
	switch alg {
	case AlgorithmXTEA:
		return xteaSuite{}, nil
	case AlgorithmChaCha20Poly1305:
		return chacha20poly1305Suite{}, nil
	case AlgorithmSalsa20:
		return salsa20Suite{}, nil
	case AlgorithmTwofishCBC:
		return twofishCBCSuite{}, nil
	case AlgorithmBlowfish:
		return blowfishSuite{}, nil
	case AlgorithmSpeck:
		return speckSuite{}, nil
	default:
		return nil, ErrorUnsupportedAlgorithm.Error()
	}
}
