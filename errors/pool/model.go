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

package pool

import (
	"sync/atomic"

	libatm "github.com/nalix-io/nalix-core/atomic"
	liberr "github.com/nalix-io/nalix-core/errors"
)

// mod implements Pool: an atomic sequence for index assignment and a
// typed concurrent map for the entries.
type mod struct {
	s *atomic.Uint64
	l libatm.MapTyped[uint64, error]
}

func (o *mod) Add(e ...error) {
	for _, err := range e {
		if err != nil {
			o.l.Store(o.s.Add(1), err)
		}
	}
}

func (o *mod) Get(i uint64) error {
	e, _ := o.l.Load(i)
	return e
}

func (o *mod) Set(i uint64, e error) {
	if e != nil {
		o.l.Store(i, e)
	}
}

func (o *mod) Del(i uint64) {
	o.l.Delete(i)
}

func (o *mod) Error() error {
	return liberr.UnknownError.IfError(o.Slice()...)
}

func (o *mod) Slice() []error {
	res := make([]error, 0, o.l.Len())
	o.l.Range(func(_ uint64, err error) bool {
		res = append(res, err)
		return true
	})
	return res
}

func (o *mod) Len() uint64 {
	var n uint64
	o.l.Range(func(_ uint64, err error) bool {
		if err != nil {
			n++
		}
		return true
	})
	return n
}

func (o *mod) MaxId() uint64 {
	var max uint64
	o.l.Range(func(k uint64, err error) bool {
		if err != nil && k > max {
			max = k
		}
		return true
	})
	return max
}

func (o *mod) Last() error {
	return o.Get(o.MaxId())
}

func (o *mod) Clear() {
	o.l.Range(func(k uint64, _ error) bool {
		o.l.Delete(k)
		return true
	})
}
