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
	"encoding/binary"
	"io"
)

// speckBlock implements Speck128/256 (128-bit block, 256-bit key), the
// NSA-published lightweight block cipher. No package in this module's
// dependency pack wraps it, so the round function is implemented directly
// here rather than left out of the suite roster; it satisfies
// crypto/cipher.Block so it composes with the same CBC helpers the other
// block-cipher suites use.
type speckBlock struct {
	roundKeys [34]uint64
}

const speckRounds = 34

func newSpeckBlock(key [32]byte) *speckBlock {
	var k [4]uint64
	for i := range k {
		k[i] = binary.LittleEndian.Uint64(key[i*8 : i*8+8])
	}

	b := &speckBlock{}
	l := [3]uint64{k[1], k[2], k[3]}
	a := k[0]
	b.roundKeys[0] = a

	for i := 0; i < speckRounds-1; i++ {
		lIdx := i % 3
		newL := (a + speckRotr(l[lIdx], 8)) ^ uint64(i)
		a = speckRotl(a, 3) ^ newL
		l[lIdx] = newL
		b.roundKeys[i+1] = a
	}

	return b
}

func speckRotr(x uint64, n uint) uint64 { return (x >> n) | (x << (64 - n)) }
func speckRotl(x uint64, n uint) uint64 { return (x << n) | (x >> (64 - n)) }

func (b *speckBlock) BlockSize() int { return 16 }

func (b *speckBlock) Encrypt(dst, src []byte) {
	x := binary.LittleEndian.Uint64(src[0:8])
	y := binary.LittleEndian.Uint64(src[8:16])

	for _, rk := range b.roundKeys {
		x = (speckRotr(x, 8) + y) ^ rk
		y = speckRotl(y, 3) ^ x
	}

	binary.LittleEndian.PutUint64(dst[0:8], x)
	binary.LittleEndian.PutUint64(dst[8:16], y)
}

func (b *speckBlock) Decrypt(dst, src []byte) {
	x := binary.LittleEndian.Uint64(src[0:8])
	y := binary.LittleEndian.Uint64(src[8:16])

	for i := len(b.roundKeys) - 1; i >= 0; i-- {
		y = speckRotr(y^x, 3)
		x = speckRotl((x^b.roundKeys[i])-y, 8)
	}

	binary.LittleEndian.PutUint64(dst[0:8], x)
	binary.LittleEndian.PutUint64(dst[8:16], y)
}

type speckSuite struct{}

func (speckSuite) Algorithm() Algorithm { return AlgorithmSpeck }

func (speckSuite) Encrypt(key [32]byte, plaintext []byte) ([]byte, error) {
	block := newSpeckBlock(key)
	padded := pkcs7Pad(plaintext, block.BlockSize())

	iv := make([]byte, block.BlockSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}

	out := make([]byte, len(iv)+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[len(iv):], padded)
	return out, nil
}

func (speckSuite) Decrypt(key [32]byte, ciphertext []byte) ([]byte, error) {
	block := newSpeckBlock(key)
	blockSize := block.BlockSize()
	if len(ciphertext) < blockSize || (len(ciphertext)-blockSize)%blockSize != 0 {
		return nil, ErrorCiphertextTooShort.Error()
	}

	iv, sealed := ciphertext[:blockSize], ciphertext[blockSize:]
	out := make([]byte, len(sealed))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, sealed)

	return pkcs7Unpad(out, blockSize)
}
