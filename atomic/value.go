/*
 * MIT License
 *
 * Copyright (c) 2023 Nicolas JUHEL
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

// Package atomic provides the two typed lock-free primitives the rest of
// this module shares state through: a generic single value (connection
// permission levels, firewall activity stamps, the write aggregator's
// context and runner handles) and a generic map (the log sinks' shared
// file and syslog aggregators keyed by path or endpoint).
package atomic

import "sync/atomic"

// Value holds one value of type T, readable and writable without locks.
// A Value must be obtained from NewValue; its zero use is a nil pointer.
// Load before the first Store returns T's zero value.
type Value[T any] interface {
	// Load returns the stored value, or T's zero value before the first
	// Store.
	Load() T

	// Store replaces the stored value.
	Store(val T)

	// Swap replaces the stored value and returns the previous one (T's
	// zero value before the first Store).
	Swap(val T) T
}

// NewValue returns an empty Value[T].
func NewValue[T any]() Value[T] {
	return &value[T]{}
}

// value implements Value on an atomic pointer: every Store publishes a
// fresh allocation, so readers never observe a torn T.
type value[T any] struct {
	p atomic.Pointer[T]
}

func (v *value[T]) Load() T {
	if p := v.p.Load(); p != nil {
		return *p
	}

	var zero T
	return zero
}

func (v *value[T]) Store(val T) {
	v.p.Store(&val)
}

func (v *value[T]) Swap(val T) T {
	if p := v.p.Swap(&val); p != nil {
		return *p
	}

	var zero T
	return zero
}
