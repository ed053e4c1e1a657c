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
	"time"
)

// floorTo snaps the duration down to a whole multiple of unit: fractions
// round toward negative infinity, so -5.5 minutes becomes -6 minutes
// (the minute the instant falls within), not -5.
func (d Duration) floorTo(unit time.Duration) Duration {
	n := math.Floor(float64(d) / float64(unit))
	return Duration(time.Duration(n) * unit)
}

// TruncateMicroseconds drops any sub-microsecond remainder, toward zero.
func (d Duration) TruncateMicroseconds() Duration {
	return Duration(d.Time().Truncate(time.Microsecond))
}

// TruncateMilliseconds drops any sub-millisecond remainder, toward zero.
func (d Duration) TruncateMilliseconds() Duration {
	return Duration(d.Time().Truncate(time.Millisecond))
}

// TruncateSeconds snaps down to a whole second.
func (d Duration) TruncateSeconds() Duration {
	return d.floorTo(time.Second)
}

// TruncateMinutes snaps down to a whole minute.
func (d Duration) TruncateMinutes() Duration {
	return d.floorTo(time.Minute)
}

// TruncateHours snaps down to a whole hour.
func (d Duration) TruncateHours() Duration {
	return d.floorTo(time.Hour)
}

// TruncateDays snaps down to a whole day.
func (d Duration) TruncateDays() Duration {
	return d.floorTo(24 * time.Hour)
}
