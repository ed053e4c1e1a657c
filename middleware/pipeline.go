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

// Package middleware composes the fixed, ordered chain of transformations
// wrapped around every handler call: decompress, decrypt,
// authorize, rate-limit, dispatch on the way in; result-adapt, compress,
// encrypt, write on the way out. dispatch.Registry.Invoke performs no
// socket I/O itself, so the terminal stage built in dispatch.go owns
// both halves of that boundary.
package middleware

import "github.com/nalix-io/nalix-core/dispatch"

// Next invokes the remainder of the pipeline. The terminal Next (built in
// to an empty Pipeline, or appended past the last registered stage) is a
// no-op returning nil.
type Next func(ctx *dispatch.PacketContext) error

// Middleware is the "call next or short-circuit" contract every stage
// satisfies: a stage that short-circuits must itself send exactly one
// response packet, typically via writeControl.
type Middleware func(ctx *dispatch.PacketContext, next Next) error

// Pipeline is an ordered, immutable chain of Middleware built once at
// startup and invoked once per inbound packet.
type Pipeline struct {
	stages []Middleware
}

// New builds a Pipeline from stages, applied in the given order.
func New(stages ...Middleware) *Pipeline {
	cp := make([]Middleware, len(stages))
	copy(cp, stages)
	return &Pipeline{stages: cp}
}

// Handle runs ctx through every stage in order.
func (p *Pipeline) Handle(ctx *dispatch.PacketContext) error {
	return p.chain(0)(ctx)
}

func (p *Pipeline) chain(i int) Next {
	if i >= len(p.stages) {
		return func(*dispatch.PacketContext) error { return nil }
	}
	return func(ctx *dispatch.PacketContext) error {
		return p.stages[i](ctx, p.chain(i+1))
	}
}
