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

package cipher

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/salsa20"
)

// salsa20Suite is a stream cipher, not an AEAD: it carries no integrity tag,
// so the middleware pipeline only selects it behind a transport that already
// provides framing integrity; this is the fast, no-tag option.
type salsa20Suite struct{}

func (salsa20Suite) Algorithm() Algorithm { return AlgorithmSalsa20 }

const salsa20NonceSize = 24

func (salsa20Suite) Encrypt(key [32]byte, plaintext []byte) ([]byte, error) {
	nonce := make([]byte, salsa20NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	out := make([]byte, salsa20NonceSize+len(plaintext))
	copy(out, nonce)
	salsa20.XORKeyStream(out[salsa20NonceSize:], plaintext, nonce, &key)
	return out, nil
}

func (salsa20Suite) Decrypt(key [32]byte, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < salsa20NonceSize {
		return nil, ErrorCiphertextTooShort.Error()
	}

	nonce, sealed := ciphertext[:salsa20NonceSize], ciphertext[salsa20NonceSize:]
	out := make([]byte, len(sealed))
	salsa20.XORKeyStream(out, sealed, nonce, &key)
	return out, nil
}
