/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

package startStop

import (
	"context"
	"sync"
	"time"

	librun "github.com/nalix-io/nalix-core/runner"
)

// run is the StartStop implementation: one goroutine at most, tracked by
// its cancel function and done channel.
type run struct {
	m sync.Mutex

	fs FuncStartStop // start function
	fp FuncStartStop // stop function

	cnl context.CancelFunc // cancels the running start function
	dne chan struct{}      // closed when the start goroutine exits
	run bool               // true between goroutine launch and exit
	snc time.Time          // time of last Start

	err []error
}

func (o *run) collect(e error) {
	if e == nil {
		return
	}

	o.m.Lock()
	defer o.m.Unlock()
	o.err = append(o.err, e)
}

func (o *run) Start(ctx context.Context) error {
	defer librun.RecoveryCaller("nalix/runner/startStop/start", recover())

	if o.IsRunning() {
		if e := o.Stop(ctx); e != nil {
			return e
		}
	}

	if ctx == nil {
		ctx = context.Background()
	}

	o.m.Lock()

	// a new lifecycle starts with a clean error list
	o.err = nil

	if o.fs == nil {
		o.err = append(o.err, ErrInvalidStart)
		o.m.Unlock()
		return nil
	}

	x, n := context.WithCancel(ctx)
	d := make(chan struct{})

	o.cnl = n
	o.dne = d
	o.run = true
	o.snc = time.Now()

	fs := o.fs
	o.m.Unlock()

	go func() {
		defer func() {
			librun.RecoveryCaller("nalix/runner/startStop/run", recover())

			o.m.Lock()
			// only the current lifecycle owns the running flag
			if o.dne == d {
				o.run = false
			}
			o.m.Unlock()

			close(d)
		}()

		o.collect(fs(x))
	}()

	return nil
}

func (o *run) Stop(ctx context.Context) error {
	defer librun.RecoveryCaller("nalix/runner/startStop/stop", recover())

	if ctx == nil {
		ctx = context.Background()
	}

	o.m.Lock()

	if o.cnl != nil {
		o.cnl()
		o.cnl = nil
	}

	d := o.dne
	fp := o.fp
	o.dne = nil
	o.run = false
	o.snc = time.Time{}

	o.m.Unlock()

	if d != nil {
		select {
		case <-d:
		case <-ctx.Done():
		}

		if fp == nil {
			o.collect(ErrInvalidStop)
		} else {
			o.collect(fp(ctx))
		}
	}

	return nil
}

func (o *run) Restart(ctx context.Context) error {
	if e := o.Stop(ctx); e != nil {
		return e
	}
	return o.Start(ctx)
}

func (o *run) IsRunning() bool {
	o.m.Lock()
	defer o.m.Unlock()
	return o.run
}

func (o *run) Uptime() time.Duration {
	o.m.Lock()
	defer o.m.Unlock()

	if !o.run || o.snc.IsZero() {
		return 0
	}
	return time.Since(o.snc)
}

func (o *run) ErrorsLast() error {
	o.m.Lock()
	defer o.m.Unlock()

	if len(o.err) == 0 {
		return nil
	}
	return o.err[len(o.err)-1]
}

func (o *run) ErrorsList() []error {
	o.m.Lock()
	defer o.m.Unlock()

	r := make([]error, len(o.err))
	copy(r, o.err)
	return r
}
