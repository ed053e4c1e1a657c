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

	"golang.org/x/crypto/twofish"
)

// twofishCBCSuite wraps golang.org/x/crypto/twofish's 16-byte-block cipher
// in CBC mode, since the x/crypto package only implements the block cipher
// itself and expects a caller to supply the mode, the same pairing
// crypto/cipher documents for every third-party cipher.Block.
type twofishCBCSuite struct{}

func (twofishCBCSuite) Algorithm() Algorithm { return AlgorithmTwofishCBC }

func (twofishCBCSuite) Encrypt(key [32]byte, plaintext []byte) ([]byte, error) {
	block, err := twofish.NewCipher(key[:])
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

func (twofishCBCSuite) Decrypt(key [32]byte, ciphertext []byte) ([]byte, error) {
	block, err := twofish.NewCipher(key[:])
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

// pkcs7Pad pads data to a multiple of blockSize per RFC 5652.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

// pkcs7Unpad strips and validates PKCS#7 padding.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrorCiphertextTooShort.Error()
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, ErrorAuthenticationFailed.Error()
	}

	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, ErrorAuthenticationFailed.Error()
		}
	}

	return data[:len(data)-padLen], nil
}
