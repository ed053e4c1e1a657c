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
	"crypto/cipher"
	"crypto/rand"
	"io"

	"golang.org/x/crypto/blowfish"
)

// blowfishSuite wraps golang.org/x/crypto/blowfish's 8-byte-block cipher in
// CBC mode, kept for interoperability with legacy peers that still
// negotiate it; new deployments should prefer chacha20-poly1305.
type blowfishSuite struct{}

func (blowfishSuite) Algorithm() Algorithm { return AlgorithmBlowfish }

func (blowfishSuite) Encrypt(key [32]byte, plaintext []byte) ([]byte, error) {
	block, err := blowfish.NewCipher(key[:])
	if err != nil {
		return nil, ErrorInvalidKeySize.Error()
	}

	padded := pkcs7Pad(plaintext, block.BlockSize())

	iv := make([]byte, block.BlockSize())
	if _, err = io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}

	out := make([]byte, len(iv)+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[len(iv):], padded)
	return out, nil
}

func (blowfishSuite) Decrypt(key [32]byte, ciphertext []byte) ([]byte, error) {
	block, err := blowfish.NewCipher(key[:])
	if err != nil {
		return nil, ErrorInvalidKeySize.Error()
	}

	blockSize := block.BlockSize()
	if len(ciphertext) < blockSize || (len(ciphertext)-blockSize)%blockSize != 0 {
		return nil, ErrorCiphertextTooShort.Error()
	}

	iv, sealed := ciphertext[:blockSize], ciphertext[blockSize:]
	out := make([]byte, len(sealed))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, sealed)

	return pkcs7Unpad(out, blockSize)
}
