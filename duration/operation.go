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
 */

package duration

import (
	"context"
	"time"

	libpid "github.com/nalix-io/nalix-core/pidcontroller"
)

// Default PID gains for the RangeDef* helpers, tuned for retry/backoff
// schedules of a handful of steps.
var (
	DefaultRateProportional float64 = 0.1
	DefaultRateIntegral     float64 = 0.01
	DefaultRateDerivative   float64 = 0.05
)

// rangeBetween runs one PID range generation between lo and hi and
// post-processes the result so the returned schedule always starts at
// the smaller bound and ends at the larger one, truncated to whole
// seconds, even when the generation was cut short by ctx.
func rangeBetween(ctx context.Context, lo, hi Duration, rateP, rateI, rateD float64) []Duration {
	var r []Duration

	for _, v := range libpid.New(rateP, rateI, rateD).RangeCtx(ctx, lo.Float64(), hi.Float64()) {
		r = append(r, ParseFloat64(v).TruncateSeconds())
	}

	if len(r) < 3 {
		r = []Duration{lo, hi}
	}
	if r[0] > lo {
		r = append([]Duration{lo}, r...)
	}
	if r[len(r)-1] < hi {
		r = append(r, hi)
	}

	return r
}

// RangeCtxTo generates a PID-spaced schedule of durations climbing from
// d to dur. The first element is d and the last is dur; intermediate
// spacing follows the given PID gains. Generation stops early when ctx
// is cancelled, falling back to the two bounds.
func (d Duration) RangeCtxTo(ctx context.Context, dur Duration, rateP, rateI, rateD float64) []Duration {
	return rangeBetween(ctx, d, dur, rateP, rateI, rateD)
}

// RangeTo is RangeCtxTo bounded by a 5-second generation budget.
func (d Duration) RangeTo(dur Duration, rateP, rateI, rateD float64) []Duration {
	ctx, cnl := context.WithTimeout(context.Background(), 5*time.Second)
	defer cnl()

	return d.RangeCtxTo(ctx, dur, rateP, rateI, rateD)
}

// RangeDefTo is RangeTo with the package's default gains.
func (d Duration) RangeDefTo(dur Duration) []Duration {
	return d.RangeTo(dur, DefaultRateProportional, DefaultRateIntegral, DefaultRateDerivative)
}

// RangeCtxFrom generates the descending counterpart: a schedule between
// dur and d, with dur as the smaller bound.
func (d Duration) RangeCtxFrom(ctx context.Context, dur Duration, rateP, rateI, rateD float64) []Duration {
	return rangeBetween(ctx, dur, d, rateP, rateI, rateD)
}

// RangeFrom is RangeCtxFrom bounded by a 5-second generation budget.
func (d Duration) RangeFrom(dur Duration, rateP, rateI, rateD float64) []Duration {
	ctx, cnl := context.WithTimeout(context.Background(), 5*time.Second)
	defer cnl()

	return d.RangeCtxFrom(ctx, dur, rateP, rateI, rateD)
}

// RangeDefFrom is RangeFrom with the package's default gains.
func (d Duration) RangeDefFrom(dur Duration) []Duration {
	return d.RangeFrom(dur, DefaultRateProportional, DefaultRateIntegral, DefaultRateDerivative)
}
