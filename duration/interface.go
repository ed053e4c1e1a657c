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

// Package duration is the timeout/window type used across this module's
// configuration (idle thresholds, rate-limit windows, lockouts, handler
// timeouts): a time.Duration that additionally understands a days unit
// ("5d23h15m13s"), carries JSON/YAML/TOML/CBOR/text encodings and a
// Viper decode hook, and offers truncation helpers plus PID-spaced range
// generation for backoff schedules. The zero value means "disabled"
// wherever a knob is optional.
package duration

import (
	"math"
	"time"
)

// Duration is a time.Duration with a days-aware string form.
type Duration time.Duration

// Parse parses a duration string. On top of the stdlib units it accepts
// a leading whole-day component ("2d12h"), surrounding quotes, and
// interior whitespace. An empty or unit-less string is an error.
func Parse(s string) (Duration, error) {
	return parseString(s)
}

// ParseByte parses a duration byte slice, as Parse does for strings.
func ParseByte(p []byte) (Duration, error) {
	return parseString(string(p))
}

// ParseDuration converts a stdlib time.Duration.
func ParseDuration(d time.Duration) Duration {
	return Duration(d)
}

// ParseFloat64 converts a float nanosecond count, rounding to the
// nearest integer and saturating at the int64 range.
func ParseFloat64(f float64) Duration {
	const mx float64 = math.MaxInt64

	switch {
	case f > mx:
		return Duration(math.MaxInt64)
	case f < -mx:
		return Duration(-math.MaxInt64)
	default:
		return Duration(math.Round(f))
	}
}

// Seconds returns i seconds as a Duration.
func Seconds(i int64) Duration {
	return Duration(time.Duration(i) * time.Second)
}

// Minutes returns i minutes as a Duration.
func Minutes(i int64) Duration {
	return Duration(time.Duration(i) * time.Minute)
}

// Hours returns i hours as a Duration.
func Hours(i int64) Duration {
	return Duration(time.Duration(i) * time.Hour)
}

// Days returns i whole days (24h each) as a Duration.
func Days(i int64) Duration {
	return Duration(time.Duration(i) * 24 * time.Hour)
}
