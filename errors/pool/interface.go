/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
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
 */

// Package pool collects errors across goroutines: each added error gets
// a monotonically increasing index, and the whole collection folds into
// one combined Error on demand. Indices are never reused, so an error
// observed once stays addressable even as others come and go.
package pool

import (
	"sync/atomic"

	libatm "github.com/nalix-io/nalix-core/atomic"
)

// Pool is a concurrency-safe, indexed error collection.
type Pool interface {
	// Add appends each non-nil error under the next index.
	Add(e ...error)

	// Get returns the error stored under index i, nil when absent.
	Get(i uint64) error

	// Set stores a non-nil error under an explicit index, replacing any
	// previous occupant. A nil error is ignored; use Del to remove.
	Set(i uint64, e error)

	// Del removes index i; removing an absent index is a no-op.
	Del(i uint64)

	// Error folds every collected error into one combined Error
	// (unwrappable for errors.Is/As), nil when the pool is empty.
	Error() error

	// Slice returns the collected errors in no particular order.
	Slice() []error

	// Len returns the number of collected errors.
	Len() uint64

	// MaxId returns the highest occupied index, 0 when empty.
	MaxId() uint64

	// Last returns the error under the highest occupied index.
	Last() error

	// Clear drops every collected error. The index sequence keeps
	// counting, so indices stay unique across the pool's lifetime.
	Clear()
}

// New returns an empty Pool.
func New() Pool {
	return &mod{
		s: new(atomic.Uint64),
		l: libatm.NewMapTyped[uint64, error](),
	}
}
