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

package size

import (
	"fmt"
	"math"
	"sync/atomic"
)

const (
	// FormatRound0 formats the scaled value without decimals.
	FormatRound0 = "%.0f"
	// FormatRound1 formats the scaled value with 1 decimal.
	FormatRound1 = "%.1f"
	// FormatRound2 formats the scaled value with 2 decimals.
	FormatRound2 = "%.2f"
	// FormatRound3 formats the scaled value with 3 decimals.
	FormatRound3 = "%.3f"
)

// defaultUnit is the rune appended to the magnitude letter when Unit/Code
// receive a zero rune ('B' unless SetDefaultUnit changed it).
var defaultUnit atomic.Int32

func init() {
	defaultUnit.Store('B')
}

// SetDefaultUnit changes the unit rune used by Unit and Code when called
// with a zero rune. The initial default is 'B'.
func SetDefaultUnit(r rune) {
	if r == 0 {
		r = 'B'
	}
	defaultUnit.Store(int32(r))
}

// magnitude returns the binary power the size naturally formats in and
// its letter ("" for plain bytes).
func (s Size) magnitude() (Size, string) {
	switch {
	case s >= SizeExa:
		return SizeExa, "E"
	case s >= SizePeta:
		return SizePeta, "P"
	case s >= SizeTera:
		return SizeTera, "T"
	case s >= SizeGiga:
		return SizeGiga, "G"
	case s >= SizeMega:
		return SizeMega, "M"
	case s >= SizeKilo:
		return SizeKilo, "K"
	default:
		return SizeUnit, ""
	}
}

// Unit returns the unit suffix of the size's natural magnitude: the
// magnitude letter followed by unit (or the configured default when unit
// is zero), e.g. "KB", "Ki", or plain "B" for byte-range sizes.
func (s Size) Unit(unit rune) string {
	if unit == 0 {
		unit = rune(defaultUnit.Load())
	}

	_, l := s.magnitude()
	return l + string(unit)
}

// Code returns the unit suffix for the size's magnitude, as Unit does.
func (s Size) Code(unit rune) string {
	return s.Unit(unit)
}

// Format renders the size scaled to its natural magnitude using the given
// fmt verb (typically one of the FormatRound constants), without a unit
// suffix.
func (s Size) Format(format string) string {
	m, _ := s.magnitude()
	return fmt.Sprintf(format, float64(s)/float64(m))
}

// String renders the size as "<value> <unit>" with two decimals, e.g.
// "5.00 MB".
func (s Size) String() string {
	return s.Format(FormatRound2) + " " + s.Unit(0)
}

// KiloBytes returns the size in whole binary kilobytes, floored.
func (s Size) KiloBytes() uint64 {
	return uint64(s / SizeKilo)
}

// MegaBytes returns the size in whole binary megabytes, floored.
func (s Size) MegaBytes() uint64 {
	return uint64(s / SizeMega)
}

// GigaBytes returns the size in whole binary gigabytes, floored.
func (s Size) GigaBytes() uint64 {
	return uint64(s / SizeGiga)
}

// TeraBytes returns the size in whole binary terabytes, floored.
func (s Size) TeraBytes() uint64 {
	return uint64(s / SizeTera)
}

// PetaBytes returns the size in whole binary petabytes, floored.
func (s Size) PetaBytes() uint64 {
	return uint64(s / SizePeta)
}

// ExaBytes returns the size in whole binary exabytes, floored.
func (s Size) ExaBytes() uint64 {
	return uint64(s / SizeExa)
}

// Uint64 returns the size as a byte count.
func (s Size) Uint64() uint64 {
	return uint64(s)
}

// Uint returns the size as a uint byte count.
func (s Size) Uint() uint {
	if uint64(s) > uint64(math.MaxUint) {
		return uint(math.MaxUint)
	}
	return uint(s)
}

// Uint32 returns the size as a uint32 byte count, saturating at the
// maximum.
func (s Size) Uint32() uint32 {
	if uint64(s) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(s)
}

// Int64 returns the size as an int64 byte count, saturating at the
// maximum.
func (s Size) Int64() int64 {
	if uint64(s) > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(s)
}

// Int32 returns the size as an int32 byte count, saturating at the
// maximum.
func (s Size) Int32() int32 {
	if uint64(s) > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(s)
}

// Int returns the size as an int byte count, saturating at the maximum.
func (s Size) Int() int {
	if uint64(s) > uint64(math.MaxInt) {
		return math.MaxInt
	}
	return int(s)
}

// Float64 returns the size as a float64 byte count.
func (s Size) Float64() float64 {
	return float64(s)
}

// Float32 returns the size as a float32 byte count, saturating at the
// maximum.
func (s Size) Float32() float32 {
	f := float64(s)
	if f > math.MaxFloat32 {
		return math.MaxFloat32
	}
	return float32(f)
}
