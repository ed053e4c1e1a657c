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

package atomic

import "sync"

// MapTyped is a concurrency-safe map with typed keys and values. Unlike
// sync.Map it never hands interface{} back to the caller, and Range
// iterates over a snapshot, so callbacks may freely Store or Delete on
// the same map without deadlocking.
type MapTyped[K comparable, V any] interface {
	// Load returns the value stored under key, and whether one was
	// present.
	Load(key K) (V, bool)

	// Store records val under key, replacing any previous value.
	Store(key K, val V)

	// Delete removes key. Removing an absent key is a no-op.
	Delete(key K)

	// LoadAndDelete removes key and returns the value it held, if any.
	LoadAndDelete(key K) (V, bool)

	// Range calls fct for every entry of a point-in-time snapshot,
	// stopping early when fct returns false.
	Range(fct func(key K, val V) bool)

	// Len returns the number of entries currently stored.
	Len() int
}

// NewMapTyped returns an empty MapTyped.
func NewMapTyped[K comparable, V any]() MapTyped[K, V] {
	return &mapTyped[K, V]{
		m: make(map[K]V),
	}
}

type mapTyped[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

func (o *mapTyped[K, V]) Load(key K) (V, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	v, ok := o.m[key]
	return v, ok
}

func (o *mapTyped[K, V]) Store(key K, val V) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.m[key] = val
}

func (o *mapTyped[K, V]) Delete(key K) {
	o.mu.Lock()
	defer o.mu.Unlock()

	delete(o.m, key)
}

func (o *mapTyped[K, V]) LoadAndDelete(key K) (V, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	v, ok := o.m[key]
	if ok {
		delete(o.m, key)
	}
	return v, ok
}

func (o *mapTyped[K, V]) Range(fct func(key K, val V) bool) {
	o.mu.RLock()
	type pair struct {
		k K
		v V
	}
	snap := make([]pair, 0, len(o.m))
	for k, v := range o.m {
		snap = append(snap, pair{k: k, v: v})
	}
	o.mu.RUnlock()

	for _, p := range snap {
		if !fct(p.k, p.v) {
			return
		}
	}
}

func (o *mapTyped[K, V]) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return len(o.m)
}
