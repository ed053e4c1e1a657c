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

// Package pool amortizes per-packet and per-buffer allocations on the
// receive/dispatch/send paths. Get returns a recycled or freshly constructed
// instance; Return calls ResetForPool (or truncates a buffer to zero length)
// before making the instance available again. Callers must not retain a
// reference after Return — pool semantics assume single ownership, matching
// the packet ownership invariant: a packet belongs to exactly one of the
// pool, the receive decoder, the dispatch pipeline, or the send path.
package pool

import "sync"

// Poolable is any type whose zero-allocation reuse is driven by
// ResetForPool — packet.Packet satisfies this today.
type Poolable interface {
	ResetForPool()
}

// Pool is a typed Get/Return pool backed by sync.Pool. Return is optional:
// a caller that never calls it simply loses the reuse opportunity, it does
// not leak (sync.Pool entries are collectable).
type Pool[T Poolable] struct {
	p sync.Pool
}

// New returns a Pool whose Get falls back to newFn when empty.
func New[T Poolable](newFn func() T) *Pool[T] {
	return &Pool[T]{
		p: sync.Pool{New: func() any { return newFn() }},
	}
}

// Get returns a recycled or freshly constructed instance.
func (p *Pool[T]) Get() T {
	return p.p.Get().(T)
}

// Return resets x and makes it available for a future Get.
func (p *Pool[T]) Return(x T) {
	x.ResetForPool()
	p.p.Put(x)
}

// BufferPool recycles scratch []byte buffers used for the receive-loop's
// accumulation buffer and outbound compress/encrypt scratch space.
type BufferPool struct {
	size int
	p    sync.Pool
}

// NewBufferPool returns a BufferPool whose Get produces buffers of at
// least size bytes (len 0, capacity size).
func NewBufferPool(size int) *BufferPool {
	bp := &BufferPool{size: size}
	bp.p.New = func() any {
		b := make([]byte, 0, size)
		return &b
	}
	return bp
}

// Get returns a zero-length buffer with at least the pool's configured
// capacity.
func (bp *BufferPool) Get() []byte {
	b := bp.p.Get().(*[]byte)
	return (*b)[:0]
}

// Return truncates buf to zero length and returns it to the pool. Buffers
// that grew far beyond the pool's nominal size are dropped rather than
// retained, so one oversized packet cannot pin a large buffer forever.
func (bp *BufferPool) Return(buf []byte) {
	if cap(buf) > bp.size*4 {
		return
	}
	buf = buf[:0]
	bp.p.Put(&buf)
}
