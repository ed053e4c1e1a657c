/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

package cache

import (
	"context"
	"fmt"
	"hash/maphash"
	"sync"
	"time"
)

// shardCount spreads keys over independent locks. A power of two keeps
// the index computation a mask.
const shardCount = 16

// entry is one stored value and the moment it was stored; freshness is
// judged against the cache TTL at read time, so storing never arms a
// timer.
type entry[V any] struct {
	val V
	at  time.Time
}

type shard[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]entry[V]
}

// cc is the Cache implementation: a fixed shard array addressed by key
// hash, the cache-wide TTL, and the lifecycle context.
type cc[K comparable, V any] struct {
	x context.Context
	n context.CancelFunc

	seed maphash.Seed
	ttl  time.Duration
	s    [shardCount]*shard[K, V]
}

func (c *cc[K, V]) shardOf(key K) *shard[K, V] {
	return c.s[maphash.Comparable(c.seed, key)&(shardCount-1)]
}

// remain returns the entry's remaining lifetime and whether it is still
// live. A TTL-less cache reports every entry live with zero remaining.
func (c *cc[K, V]) remain(e entry[V]) (time.Duration, bool) {
	if c.ttl <= 0 {
		return 0, true
	}

	r := c.ttl - time.Since(e.at)
	return r, r > 0
}

func (c *cc[K, V]) Load(key K) (V, time.Duration, bool) {
	var zero V

	if c.x.Err() != nil {
		return zero, 0, false
	}

	s := c.shardOf(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.m[key]
	if !ok {
		return zero, 0, false
	}

	r, live := c.remain(e)
	if !live {
		delete(s.m, key)
		return zero, 0, false
	}

	return e.val, r, true
}

func (c *cc[K, V]) Store(key K, val V) {
	if c.x.Err() != nil {
		return
	}

	s := c.shardOf(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[key] = entry[V]{val: val, at: time.Now()}
}

func (c *cc[K, V]) Delete(key K) {
	s := c.shardOf(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, key)
}

func (c *cc[K, V]) LoadOrStore(key K, val V) (V, time.Duration, bool) {
	var zero V

	if c.x.Err() != nil {
		return zero, 0, false
	}

	s := c.shardOf(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.m[key]; ok {
		if r, live := c.remain(e); live {
			return e.val, r, true
		}
	}

	s.m[key] = entry[V]{val: val, at: time.Now()}
	return zero, 0, false
}

func (c *cc[K, V]) LoadAndDelete(key K) (V, bool) {
	var zero V

	if c.x.Err() != nil {
		return zero, false
	}

	s := c.shardOf(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.m[key]
	if !ok {
		return zero, false
	}

	delete(s.m, key)

	if _, live := c.remain(e); !live {
		return zero, false
	}
	return e.val, true
}

func (c *cc[K, V]) Swap(key K, val V) (V, time.Duration, bool) {
	var zero V

	if c.x.Err() != nil {
		return zero, 0, false
	}

	s := c.shardOf(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.m[key]
	s.m[key] = entry[V]{val: val, at: time.Now()}

	if !ok {
		return zero, 0, false
	}
	if r, live := c.remain(old); live {
		return old.val, r, true
	}
	return zero, 0, false
}

func (c *cc[K, V]) Walk(fct func(K, V, time.Duration) bool) {
	type pair struct {
		k K
		v V
		r time.Duration
	}

	for _, s := range c.s {
		if c.x.Err() != nil {
			return
		}

		s.mu.Lock()
		snap := make([]pair, 0, len(s.m))
		for k, e := range s.m {
			if r, live := c.remain(e); live {
				snap = append(snap, pair{k: k, v: e.val, r: r})
			} else {
				delete(s.m, k)
			}
		}
		s.mu.Unlock()

		for _, p := range snap {
			if !fct(p.k, p.v, p.r) {
				return
			}
		}
	}
}

func (c *cc[K, V]) Merge(src Cache[K, V]) {
	if src == nil || c.x.Err() != nil {
		return
	}

	src.Walk(func(k K, v V, _ time.Duration) bool {
		c.Store(k, v)
		return true
	})
}

func (c *cc[K, V]) Clone(ctx context.Context) (Cache[K, V], error) {
	if c.x.Err() != nil {
		return nil, fmt.Errorf("cache: cloning a closed cache")
	}

	if ctx == nil {
		ctx = c.x
	}

	n := New[K, V](ctx, c.ttl)
	c.Walk(func(k K, v V, _ time.Duration) bool {
		n.Store(k, v)
		return true
	})

	return n, nil
}

func (c *cc[K, V]) Clean() {
	for _, s := range c.s {
		s.mu.Lock()
		s.m = make(map[K]entry[V])
		s.mu.Unlock()
	}
}

func (c *cc[K, V]) Expire() {
	for _, s := range c.s {
		s.mu.Lock()
		for k, e := range s.m {
			if _, live := c.remain(e); !live {
				delete(s.m, k)
			}
		}
		s.mu.Unlock()
	}
}

// Close cancels the cache context (stopping the sweep goroutine) and
// drops every entry.
func (c *cc[K, V]) Close() error {
	c.n()
	c.Clean()
	return nil
}

// sweep runs Expire on the TTL cadence until the context dies.
func (c *cc[K, V]) sweep(exp time.Duration) {
	tick := time.NewTicker(exp)
	defer tick.Stop()

	for {
		select {
		case <-c.x.Done():
			return
		case <-tick.C:
			c.Expire()
		}
	}
}

// Deadline implements context.Context.
func (c *cc[K, V]) Deadline() (deadline time.Time, ok bool) {
	return c.x.Deadline()
}

// Done implements context.Context.
func (c *cc[K, V]) Done() <-chan struct{} {
	return c.x.Done()
}

// Err implements context.Context.
func (c *cc[K, V]) Err() error {
	return c.x.Err()
}

// Value implements context.Context: keys of the cache's own key type
// resolve against live entries first, everything else falls back to the
// wrapped context.
func (c *cc[K, V]) Value(key any) any {
	if k, ok := key.(K); ok {
		if v, _, live := c.Load(k); live {
			return v
		}
	}

	return c.x.Value(key)
}
