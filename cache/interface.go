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

// Package cache is the sharded expiring table behind the firewall's
// per-endpoint state: keys hash across a fixed set of shards so the
// accept path and the request path never serialize on one lock, entries
// age out after the configured TTL, and a background sweep reclaims what
// the hot path no longer touches. A zero TTL keeps entries until they
// are deleted explicitly.
package cache

import (
	"context"
	"hash/maphash"
	"io"
	"time"
)

// FuncCache lazily produces a Cache, for consumers that want to defer
// construction until first use.
type FuncCache[K comparable, V any] func() Cache[K, V]

// Generic is the type-independent slice of a Cache: its lifecycle as a
// context plus the two reclamation verbs.
type Generic interface {
	context.Context
	io.Closer

	// Clean removes every entry, expired or not.
	Clean()

	// Expire removes only the entries whose TTL has elapsed. The
	// background sweep calls it on the TTL cadence; callers may force a
	// pass at any time.
	Expire()
}

// Cache is a concurrency-safe key/value table whose entries expire a
// fixed TTL after they were last stored. Every lookup reports the
// remaining lifetime alongside the value (zero for a TTL-less cache).
// Once the cache's context is cancelled, lookups and stores degrade to
// misses.
type Cache[K comparable, V any] interface {
	Generic

	// Load returns the live value under key, its remaining lifetime, and
	// whether one was found. An entry found expired is removed on the
	// spot and reported as a miss.
	Load(K) (V, time.Duration, bool)

	// Store records val under key with a fresh TTL.
	Store(K, V)

	// Delete removes key.
	Delete(K)

	// LoadOrStore returns the live value under key (loaded=true) or, on
	// a miss or an expired entry, stores val and reports loaded=false
	// with V's zero value.
	LoadOrStore(K, V) (V, time.Duration, bool)

	// LoadAndDelete removes key and returns the live value it held, if
	// any. An expired entry is removed but reported as a miss.
	LoadAndDelete(K) (V, bool)

	// Swap stores val under key and returns the live value it replaced,
	// if any.
	Swap(key K, val V) (V, time.Duration, bool)

	// Walk calls fct with every live entry and its remaining lifetime
	// until fct returns false. Expired entries are skipped.
	Walk(func(K, V, time.Duration) bool)

	// Merge copies every live entry of the given cache into this one,
	// replacing duplicates.
	Merge(Cache[K, V])

	// Clone returns an independent copy of the live entries, bound to
	// ctx (this cache's context when nil). Cloning a cancelled cache
	// fails.
	Clone(context.Context) (Cache[K, V], error)
}

// New returns an empty Cache whose entries live for exp after each
// Store; exp == 0 disables expiry. The cache owns a background sweep
// goroutine (only when exp > 0) and a derived context; Close cancels
// both.
func New[K comparable, V any](ctx context.Context, exp time.Duration) Cache[K, V] {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cnl := context.WithCancel(ctx)

	c := &cc[K, V]{
		x:    ctx,
		n:    cnl,
		seed: maphash.MakeSeed(),
		ttl:  exp,
	}

	for i := range c.s {
		c.s[i] = &shard[K, V]{m: make(map[K]entry[V])}
	}

	if exp > 0 {
		go c.sweep(exp)
	}

	return c
}
