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

// Package pidcontroller implements a proportional-integral-derivative
// step generator: given a start and a target value, it produces the
// intermediate values a PID loop would traverse to reach the target. The
// duration package uses it to generate progressively-spaced retry and
// backoff schedules.
package pidcontroller

import (
	"context"
	"math"
)

// maxSteps bounds a single range generation so degenerate rate tuples
// cannot loop unbounded.
const maxSteps = 10000

// PIDController generates value ranges using PID stepping.
type PIDController interface {
	// RangeCtx returns the increasing values visited while stepping from
	// `from` toward `to`, starting at `from`. Generation stops early when
	// ctx is cancelled; a cancelled context yields a nil slice.
	RangeCtx(ctx context.Context, from, to float64) []float64
}

// New builds a PIDController from the three gain rates (proportional,
// integral, derivative). Non-positive gain tuples yield a controller
// that only emits the range bounds.
func New(rateP, rateI, rateD float64) PIDController {
	return &pid{
		p: rateP,
		i: rateI,
		d: rateD,
	}
}

type pid struct {
	p float64
	i float64
	d float64
}

func (o *pid) RangeCtx(ctx context.Context, from, to float64) []float64 {
	if ctx == nil {
		ctx = context.Background()
	}

	if ctx.Err() != nil {
		return nil
	}

	if to <= from {
		return []float64{from, to}
	}

	var (
		res      = make([]float64, 0)
		integral float64
		prevErr  = to - from
		current  = from
	)

	res = append(res, from)

	for n := 0; n < maxSteps; n++ {
		if ctx.Err() != nil {
			return res
		}

		err := to - current
		if err <= 0 {
			break
		}

		integral += err
		step := o.p*err + o.i*integral + o.d*(err-prevErr)
		prevErr = err

		if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
			break
		}

		current += step
		if current >= to {
			break
		}

		res = append(res, current)
	}

	res = append(res, to)
	return res
}
