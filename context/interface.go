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

// Package context couples a key/value store with a context.Context: the
// store answers Value lookups for keys of its own type before falling
// back to the wrapped context, and every mutating operation shuts the
// store down once the context is cancelled. The logger keeps its options
// in one, the dispatcher its per-request scratch values, and the log
// sinks their shared closers.
package context

import "context"

// FuncContextConfig lazily produces a Config, for consumers that want to
// defer construction until first use.
type FuncContextConfig[T comparable] func() Config[T]

// FuncWalk receives one stored key/value pair; returning false stops the
// walk.
type FuncWalk[T comparable] func(key T, val interface{}) bool

// MapManage is the mutation surface of a Config's store.
type MapManage[T comparable] interface {
	// Clean removes every stored pair.
	Clean()

	// Load returns the value stored under key, and whether one was
	// present.
	Load(key T) (val interface{}, ok bool)

	// Store records cfg under key, replacing any previous value. A nil
	// cfg is ignored.
	Store(key T, cfg interface{})

	// Delete removes key from the store.
	Delete(key T)
}

// Context exposes the wrapped context.Context of a Config.
type Context interface {
	// GetContext returns the wrapped context, context.Background() if
	// none was supplied.
	GetContext() context.Context
}

// Config is a typed key/value store bound to a context. It satisfies
// context.Context itself: Value first consults the store for keys of
// type T, then the wrapped context. Once the wrapped context is
// cancelled, mutating operations clear the store and become no-ops.
type Config[T comparable] interface {
	context.Context
	MapManage[T]
	Context

	// Clone returns an independent copy of the store bound to ctx (the
	// current context when ctx is nil). It returns nil when the current
	// context is already cancelled.
	Clone(ctx context.Context) Config[T]

	// Merge copies every pair of cfg into this store, replacing
	// duplicates. It reports whether anything could be merged (false for
	// a nil cfg or a cancelled context).
	Merge(cfg Config[T]) bool

	// Walk calls fct for every stored pair until fct returns false.
	Walk(fct FuncWalk[T])

	// WalkLimit is Walk restricted to the given keys; with no keys it
	// behaves like Walk.
	WalkLimit(fct FuncWalk[T], validKeys ...T)

	// LoadOrStore returns the value stored under key if present
	// (loaded=true); otherwise it stores cfg and returns it
	// (loaded=false).
	LoadOrStore(key T, cfg interface{}) (val interface{}, loaded bool)

	// LoadAndDelete removes key and returns the value it held, if any.
	LoadAndDelete(key T) (val interface{}, loaded bool)
}

// New returns an empty Config bound to ctx (context.Background() when
// nil).
func New[T comparable](ctx context.Context) Config[T] {
	if ctx == nil {
		ctx = context.Background()
	}

	return &ccx[T]{
		x: ctx,
		m: make(map[T]any),
	}
}

// NewConfig returns an empty Config bound to ctx.
//
// Deprecated: use New.
func NewConfig[T comparable](ctx context.Context) Config[T] {
	return New[T](ctx)
}

// IsolateParent derives a context that keeps parent's values but none of
// its cancellation or deadline: work started under the isolated context
// outlives the request or connection that spawned it.
func IsolateParent(parent context.Context) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	return context.WithoutCancel(parent)
}
