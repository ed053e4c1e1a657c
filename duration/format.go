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
	"math"
	"strconv"
	"time"
)

// Time returns the duration as a stdlib time.Duration.
func (d Duration) Time() time.Duration {
	return time.Duration(d)
}

// Days returns the number of whole days in the duration, floored (so
// -36h reports -2 days, the day it falls within).
func (d Duration) Days() int64 {
	t := math.Floor(d.Time().Hours() / 24)

	if t > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(t)
}

// Float64 returns the duration's nanosecond count as a float64.
func (d Duration) Float64() float64 {
	return float64(d)
}

// String renders the duration with a whole-day prefix when one fits
// ("5d23h15m13s", bare "2d" for exact days); durations under a day and
// negative durations use the stdlib rendering.
func (d Duration) String() string {
	n := d.Days()
	if n <= 0 {
		return d.Time().String()
	}

	s := strconv.FormatInt(n, 10) + "d"
	if rest := d.Time() - time.Duration(n)*24*time.Hour; rest > 0 {
		s += rest.String()
	}

	return s
}
