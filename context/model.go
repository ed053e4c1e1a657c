/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package context

import (
	"context"
	"slices"
	"sync"
	"time"
)

// ccx is the Config implementation: a plain map under a read/write mutex
// plus the wrapped context. Walks iterate a snapshot taken under the read
// lock, so callbacks may mutate the store they are walking.
type ccx[T comparable] struct {
	x context.Context

	mu sync.RWMutex
	m  map[T]any
}

// gone reports whether the wrapped context is cancelled; if so the store
// is cleared, since nothing bound to a dead context should keep state
// alive.
func (c *ccx[T]) gone() bool {
	if c.x.Err() == nil {
		return false
	}

	c.Clean()
	return true
}

func (c *ccx[T]) Clean() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.m = make(map[T]any)
}

func (c *ccx[T]) Load(key T) (val interface{}, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	val, ok = c.m[key]
	return val, ok
}

func (c *ccx[T]) Store(key T, cfg interface{}) {
	if c.gone() || cfg == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.m[key] = cfg
}

func (c *ccx[T]) Delete(key T) {
	if c.gone() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.m, key)
}

func (c *ccx[T]) LoadOrStore(key T, cfg interface{}) (val interface{}, loaded bool) {
	if c.gone() {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if val, loaded = c.m[key]; loaded {
		return val, true
	}

	c.m[key] = cfg
	return cfg, false
}

func (c *ccx[T]) LoadAndDelete(key T) (val interface{}, loaded bool) {
	if c.gone() {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if val, loaded = c.m[key]; loaded {
		delete(c.m, key)
	}
	return val, loaded
}

func (c *ccx[T]) Walk(fct FuncWalk[T]) {
	c.WalkLimit(fct)
}

func (c *ccx[T]) WalkLimit(fct FuncWalk[T], validKeys ...T) {
	type pair struct {
		k T
		v any
	}

	c.mu.RLock()
	snap := make([]pair, 0, len(c.m))
	for k, v := range c.m {
		snap = append(snap, pair{k: k, v: v})
	}
	c.mu.RUnlock()

	for _, p := range snap {
		if len(validKeys) > 0 && !slices.Contains(validKeys, p.k) {
			continue
		}
		if !fct(p.k, p.v) {
			return
		}
	}
}

func (c *ccx[T]) Clone(ctx context.Context) Config[T] {
	if c.gone() {
		return nil
	}

	if ctx == nil {
		ctx = c.GetContext()
	}

	n := &ccx[T]{
		x: ctx,
		m: make(map[T]any),
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for k, v := range c.m {
		n.m[k] = v
	}

	return n
}

func (c *ccx[T]) Merge(cfg Config[T]) bool {
	if c.gone() || cfg == nil {
		return false
	}

	cfg.Walk(func(k T, v interface{}) bool {
		c.Store(k, v)
		return true
	})

	return true
}

// GetContext returns the wrapped context.
func (c *ccx[T]) GetContext() context.Context {
	if c.x != nil {
		return c.x
	}
	return context.Background()
}

// Deadline implements context.Context.
func (c *ccx[T]) Deadline() (deadline time.Time, ok bool) {
	return c.x.Deadline()
}

// Done implements context.Context.
func (c *ccx[T]) Done() <-chan struct{} {
	return c.x.Done()
}

// Err implements context.Context.
func (c *ccx[T]) Err() error {
	return c.x.Err()
}

// Value implements context.Context: keys of the store's own type resolve
// against the store first, everything else (and store misses) falls back
// to the wrapped context.
func (c *ccx[T]) Value(key any) any {
	if i, k := key.(T); k {
		if v, ok := c.Load(i); ok {
			return v
		}
	}

	return c.x.Value(key)
}
