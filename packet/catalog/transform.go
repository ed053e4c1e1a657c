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

package catalog

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/nalix-io/nalix-core/cipher"
	"github.com/nalix-io/nalix-core/packet"
)

// BytesTransformer is the packet.Transformer bound to every concrete type
// that implements packet.BytesPayload (TextPacket, BinaryPacket):
// compression rides on LZ4 (the same library the retrieval corpus's
// archive/compress package wraps for its Gzip/LZ4/Bzip2/XZ engine),
// encryption on whichever cipher.Suite the connection negotiated.
type BytesTransformer struct{}

// bytesPayloadOf type-asserts p to packet.BytesPayload, the only packets
// this transformer is ever registered against in RegisterBuiltinTransformers.
func bytesPayloadOf(p packet.Packet) (packet.BytesPayload, error) {
	bp, ok := p.(packet.BytesPayload)
	if !ok {
		return nil, ErrorUnsupportedPayload.Error()
	}
	return bp, nil
}

// Compress replaces p's payload with its LZ4-compressed form.
func (BytesTransformer) Compress(p packet.Packet) error {
	bp, err := bytesPayloadOf(p)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err = w.Write(bp.PayloadBytes()); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}

	bp.SetPayloadBytes(buf.Bytes())
	return nil
}

// Decompress replaces p's LZ4-compressed payload with its plaintext form.
func (BytesTransformer) Decompress(p packet.Packet) error {
	bp, err := bytesPayloadOf(p)
	if err != nil {
		return err
	}

	r := lz4.NewReader(bytes.NewReader(bp.PayloadBytes()))
	plain, err := io.ReadAll(r)
	if err != nil {
		return ErrorCompressionFailed.Error()
	}

	bp.SetPayloadBytes(plain)
	return nil
}

// Encrypt replaces p's payload with its ciphertext under key and alg (the
// cipher.Algorithm.String() form, resolved back via cipher.ParseAlgorithm).
func (BytesTransformer) Encrypt(p packet.Packet, key []byte, alg string) error {
	bp, err := bytesPayloadOf(p)
	if err != nil {
		return err
	}

	a, err := cipher.ParseAlgorithm(alg)
	if err != nil {
		return err
	}
	suite, err := cipher.New(a)
	if err != nil {
		return err
	}

	var k [32]byte
	copy(k[:], key)

	ciphertext, err := suite.Encrypt(k, bp.PayloadBytes())
	if err != nil {
		return err
	}

	bp.SetPayloadBytes(ciphertext)
	return nil
}

// Decrypt replaces p's ciphertext payload with its plaintext under key and
// alg.
func (BytesTransformer) Decrypt(p packet.Packet, key []byte, alg string) error {
	bp, err := bytesPayloadOf(p)
	if err != nil {
		return err
	}

	a, err := cipher.ParseAlgorithm(alg)
	if err != nil {
		return err
	}
	suite, err := cipher.New(a)
	if err != nil {
		return err
	}

	var k [32]byte
	copy(k[:], key)

	plaintext, err := suite.Decrypt(k, bp.PayloadBytes())
	if err != nil {
		return err
	}

	bp.SetPayloadBytes(plaintext)
	return nil
}

// RegisterBuiltinTransformers binds BytesTransformer to every built-in
// packet type that implements packet.BytesPayload. Application code calls
// this alongside RegisterBuiltins during startup, before Freeze.
func RegisterBuiltinTransformers(c *Catalog) {
	t := BytesTransformer{}
	c.RegisterTransformer(&packet.TextPacket{}, t)
	c.RegisterTransformer(&packet.BinaryPacket{}, t)
}
