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

// Package concurrency bounds how many packets the dispatch registry may
// hand to handlers at once. A Sem is a context.Context that also gates
// worker admission: NewWorker blocks until a slot is free (or the context
// is cancelled), DeferWorker releases it, and DeferMain tears the whole
// semaphore down. Passing a non-positive limit to New falls back to
// runtime.GOMAXPROCS(0); passing a negative limit removes the cap entirely
// and the Sem degrades to a plain sync.WaitGroup.
package concurrency

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Sem is the admission-control handle the middleware pipeline's
// concurrency stage acquires a worker slot from.
type Sem interface {
	context.Context

	// New returns an independent Sem with the same weight, derived from
	// this Sem's context.
	New() Sem

	// NewWorker blocks until a slot is available or the context is done.
	NewWorker() error
	// NewWorkerTry acquires a slot without blocking, reporting whether it
	// succeeded.
	NewWorkerTry() bool
	// DeferWorker releases one previously acquired slot.
	DeferWorker()
	// DeferMain cancels the Sem's context, releasing anyone blocked in
	// NewWorker.
	DeferMain()
	// WaitAll blocks until every outstanding worker has called
	// DeferWorker.
	WaitAll() error
	// Weighted returns the configured limit (-1 for unlimited).
	Weighted() int64
}

// MaxSimultaneous returns runtime.GOMAXPROCS(0), the default weight used
// when New is called with a non-positive limit.
func MaxSimultaneous() int {
	return runtime.GOMAXPROCS(0)
}

// SetSimultaneous clamps n into [1, MaxSimultaneous()], returning
// MaxSimultaneous() itself when n is out of range.
func SetSimultaneous(n int64) int64 {
	max := int64(MaxSimultaneous())
	if n < 1 || n > max {
		return max
	}
	return n
}

// New returns a Sem bounding concurrent workers to n. n == 0 uses
// MaxSimultaneous(); n < 0 removes the bound (WaitGroup-backed).
func New(ctx context.Context, n int64) Sem {
	if n < 0 {
		return newUnlimited(ctx)
	}
	if n == 0 {
		n = int64(MaxSimultaneous())
	}
	return newWeighted(ctx, n)
}

type weightedSem struct {
	context.Context
	cancel context.CancelFunc
	weight int64
	sem    *semaphore.Weighted
}

func newWeighted(parent context.Context, n int64) *weightedSem {
	ctx, cancel := context.WithCancel(parent)
	return &weightedSem{
		Context: ctx,
		cancel:  cancel,
		weight:  n,
		sem:     semaphore.NewWeighted(n),
	}
}

func (s *weightedSem) New() Sem { return newWeighted(s.Context, s.weight) }

func (s *weightedSem) NewWorker() error {
	return s.sem.Acquire(s.Context, 1)
}

func (s *weightedSem) NewWorkerTry() bool {
	return s.sem.TryAcquire(1)
}

func (s *weightedSem) DeferWorker() {
	s.sem.Release(1)
}

func (s *weightedSem) DeferMain() {
	s.cancel()
}

func (s *weightedSem) WaitAll() error {
	if err := s.sem.Acquire(context.Background(), s.weight); err != nil {
		return err
	}
	s.sem.Release(s.weight)
	return nil
}

func (s *weightedSem) Weighted() int64 { return s.weight }

// unlimitedSem is a sync.WaitGroup wearing the Sem interface: every
// NewWorker call succeeds immediately, and WaitAll blocks on the group.
type unlimitedSem struct {
	context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newUnlimited(parent context.Context) *unlimitedSem {
	ctx, cancel := context.WithCancel(parent)
	return &unlimitedSem{Context: ctx, cancel: cancel}
}

func (s *unlimitedSem) New() Sem { return newUnlimited(s.Context) }

func (s *unlimitedSem) NewWorker() error {
	s.wg.Add(1)
	return nil
}

func (s *unlimitedSem) NewWorkerTry() bool {
	s.wg.Add(1)
	return true
}

func (s *unlimitedSem) DeferWorker() { s.wg.Done() }
func (s *unlimitedSem) DeferMain()   { s.cancel() }

func (s *unlimitedSem) WaitAll() error {
	s.wg.Wait()
	return nil
}

func (s *unlimitedSem) Weighted() int64 { return -1 }
