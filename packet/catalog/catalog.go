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

// Package catalog resolves magic numbers to packet deserializers and
// concrete packet types to their compress/decompress/encrypt/decrypt
// transformer, built once at startup by explicit Register calls and frozen
// before the listener starts accepting connections.
package catalog

import (
	"reflect"
	"sync"

	"github.com/nalix-io/nalix-core/packet"
	"github.com/nalix-io/nalix-core/wire"
)

// Catalog is a frozen-after-build magic->deserializer and type->transformer
// registry. The zero value is not usable; construct with New.
type Catalog struct {
	mu     sync.RWMutex
	frozen bool

	deserializers map[uint32]packet.Deserializer
	transformers  map[reflect.Type]packet.Transformer
}

// New returns an empty, unfrozen Catalog.
func New() *Catalog {
	return &Catalog{
		deserializers: make(map[uint32]packet.Deserializer),
		transformers:  make(map[reflect.Type]packet.Transformer),
	}
}

// Register associates a magic number with a Deserializer. It panics if
// called after Freeze, or if magic is already registered — registration is
// a startup-time, fail-fast operation (spec's "reject duplicates").
func (c *Catalog) Register(magic uint32, d packet.Deserializer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frozen {
		panic("catalog: Register called after Freeze")
	}
	if _, exists := c.deserializers[magic]; exists {
		panic("catalog: duplicate magic number registration")
	}
	c.deserializers[magic] = d
}

// RegisterTransformer associates a concrete packet type (via a zero-value
// sample) with its Transformer.
func (c *Catalog) RegisterTransformer(sample packet.Packet, t packet.Transformer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frozen {
		panic("catalog: RegisterTransformer called after Freeze")
	}
	c.transformers[reflect.TypeOf(sample)] = t
}

// Freeze stops further registration. After Freeze, TryDeserialize and
// TryGetTransformer are lock-free reads of an immutable map.
func (c *Catalog) Freeze() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frozen = true
}

// TryDeserialize reads the 4-byte magic at header offset 2 from raw,
// invokes the registered deserializer on the full buffer, and returns the
// decoded packet. It returns (nil, false) without allocation on a magic
// miss or any framing error, without allocating.
func (c *Catalog) TryDeserialize(raw []byte) (packet.Packet, bool) {
	if len(raw) < packet.HeaderSize {
		return nil, false
	}

	r := wire.NewReader(raw)
	h := packet.DecodeHeader(r)
	if !h.Valid() || int(h.Length) > len(raw) {
		return nil, false
	}

	c.mu.RLock()
	d, ok := c.deserializers[h.MagicNumber]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	p := d()
	p.SetHeader(h)

	body := wire.NewReader(raw[packet.HeaderSize:int(h.Length)])
	if err := p.Decode(body); err != nil {
		return nil, false
	}

	return p, true
}

// TryGetTransformer returns the Transformer registered for p's concrete
// type, or (nil, false) if none was registered.
func (c *Catalog) TryGetTransformer(p packet.Packet) (packet.Transformer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.transformers[reflect.TypeOf(p)]
	return t, ok
}
