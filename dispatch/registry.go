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

package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/nalix-io/nalix-core/concurrency"
)

// HandlerDescriptor is the immutable-after-build record the registry
// serves on every dispatch lookup: metadata, the precompiled invoker, and
// (if ConcurrencyLimit > 0) the admission-control Sem middleware's
// concurrency stage gates entry through.
type HandlerDescriptor struct {
	Meta   PacketMetadata
	Invoke HandlerFunc

	sem concurrency.Sem
}

// Sem returns the descriptor's concurrency gate, or nil if the handler
// declared no ConcurrencyLimit.
func (d *HandlerDescriptor) Sem() concurrency.Sem {
	return d.sem
}

// Registry is the opcode -> HandlerDescriptor lookup table: built once
// by Register/RegisterController calls, frozen by Freeze, then served
// lock-free on the dispatch hot path.
type Registry struct {
	mu       sync.RWMutex
	frozen   bool
	handlers map[uint16]*HandlerDescriptor

	// frozenHandlers backs Lookup after Freeze, read without a lock.
	frozenHandlers map[uint16]*HandlerDescriptor
}

// New returns an empty, unfrozen Registry.
func New() *Registry {
	return &Registry{handlers: make(map[uint16]*HandlerDescriptor)}
}

// Register compiles one handler's metadata and invoker into the registry.
// It fails if called after Freeze or if OpCode is already registered —
// both are startup-time, fail-fast errors rather than runtime ones.
func (r *Registry) Register(meta PacketMetadata, fn HandlerFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return ErrorRegistryFrozen.Error()
	}
	if _, exists := r.handlers[meta.OpCode]; exists {
		return ErrorDuplicateOpCode.Error()
	}

	d := &HandlerDescriptor{Meta: meta, Invoke: fn}
	if meta.ConcurrencyLimit > 0 {
		d.sem = concurrency.New(context.Background(), int64(meta.ConcurrencyLimit))
	}

	r.handlers[meta.OpCode] = d
	return nil
}

// RegisterController registers every Route a Controller contributes —
// the declarative-table stand-in for scanning attribute-carrying
// controller methods.
func (r *Registry) RegisterController(c Controller) error {
	for _, route := range c.Routes() {
		if err := r.Register(route.Meta, route.Handler); err != nil {
			return err
		}
	}
	return nil
}

// Freeze stops further registration. After Freeze, Lookup is a lock-free
// map read.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frozen = true
	frozen := make(map[uint16]*HandlerDescriptor, len(r.handlers))
	for k, v := range r.handlers {
		frozen[k] = v
	}
	r.frozenHandlers = frozen
}

// Lookup resolves opcode to its HandlerDescriptor. Before Freeze it takes
// a read lock (registration may still be racing in tests); after Freeze
// it reads the immutable snapshot lock-free.
func (r *Registry) Lookup(opcode uint16) (*HandlerDescriptor, bool) {
	if r.frozenHandlers != nil {
		d, ok := r.frozenHandlers[opcode]
		return d, ok
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.handlers[opcode]
	return d, ok
}

// invokeResult carries a HandlerFunc's outcome across the timeout-race
// goroutine boundary in Invoke.
type invokeResult struct {
	value any
	err   error
}

// runInvoke calls the descriptor's HandlerFunc, recovering a panicking
// handler into ErrorHandlerPanicked rather than bringing down the
// dispatch worker. It performs no I/O: turning the result into a wire
// response is the middleware package's outbound stage.
func (d *HandlerDescriptor) runInvoke(ctx *PacketContext) (value any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = ErrorHandlerPanicked.Error()
		}
	}()
	return d.Invoke(ctx)
}

// Run is the handler execution path: call the handler,
// enforcing ctx.Meta.Timeout if one is configured, and recovering a panic
// into ErrorHandlerPanicked.
func (d *HandlerDescriptor) Run(ctx *PacketContext) (any, error) {
	timeout := ctx.Meta.Timeout.Time()
	if timeout <= 0 {
		return d.runInvoke(ctx)
	}

	resCh := make(chan invokeResult, 1)
	go func() {
		v, e := d.runInvoke(ctx)
		resCh <- invokeResult{value: v, err: e}
	}()

	select {
	case r := <-resCh:
		return r.value, r.err
	case <-time.After(timeout):
		ctx.Cancel()
		return nil, ErrorHandlerTimeout.Error()
	}
}

// Invoke resolves ctx.Meta.OpCode against the registry and runs its
// handler, gating entry through the handler's concurrency Sem when one is
// configured. It performs no socket I/O: the result is handed back to the
// caller (the middleware package's outbound stage) to adapt and write.
func (r *Registry) Invoke(ctx *PacketContext) (any, error) {
	d, ok := r.Lookup(ctx.Meta.OpCode)
	if !ok {
		return nil, ErrorUnknownOpCode.Error()
	}

	if d.sem == nil {
		return d.Run(ctx)
	}

	switch d.Meta.ConcurrencyPolicy {
	case ConcurrencyQueue:
		if err := d.sem.NewWorker(); err != nil {
			return nil, err
		}
	default:
		if !d.sem.NewWorkerTry() {
			return nil, ErrorConcurrencyLimitExceeded.Error()
		}
	}
	defer d.sem.DeferWorker()

	return d.Run(ctx)
}
