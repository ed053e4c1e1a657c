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
)

// Mul multiplies the size by m in place. Fractional results round up,
// negative multipliers clamp to zero, and overflow saturates at the
// maximum size.
func (s *Size) Mul(m float64) {
	_ = s.MulErr(m)
}

// MulErr multiplies the size by m in place, reporting overflow as an
// error (the size itself saturates at the maximum).
func (s *Size) MulErr(m float64) error {
	if m <= 0 {
		*s = SizeNul
		return nil
	}

	r := float64(*s) * m
	if r >= math.MaxUint64 {
		*s = Size(math.MaxUint64)
		return fmt.Errorf("size overflow")
	}

	*s = Size(roundFloat(r))
	return nil
}

// Div divides the size by d in place. Fractional results round up;
// invalid divisors (zero or negative) leave the size unchanged.
func (s *Size) Div(d float64) {
	_ = s.DivErr(d)
}

// DivErr divides the size by d in place, failing on a zero or negative
// divisor.
func (s *Size) DivErr(d float64) error {
	if d <= 0 {
		return fmt.Errorf("invalid diviser '%f'", d)
	}

	r := float64(*s) / d
	if r >= math.MaxUint64 {
		*s = Size(math.MaxUint64)
		return fmt.Errorf("size overflow")
	}

	*s = Size(roundFloat(r))
	return nil
}

// Add adds u bytes in place, saturating at the maximum size on overflow.
func (s *Size) Add(u uint64) {
	_ = s.AddErr(u)
}

// AddErr adds u bytes in place, reporting overflow as an error (the size
// itself saturates at the maximum).
func (s *Size) AddErr(u uint64) error {
	r := uint64(*s) + u
	if r < uint64(*s) {
		*s = Size(math.MaxUint64)
		return fmt.Errorf("size overflow")
	}

	*s = Size(r)
	return nil
}

// Sub subtracts u bytes in place, clamping at zero on underflow.
func (s *Size) Sub(u uint64) {
	_ = s.SubErr(u)
}

// SubErr subtracts u bytes in place, failing on underflow (the size
// itself clamps at zero).
func (s *Size) SubErr(u uint64) error {
	if u > uint64(*s) {
		*s = SizeNul
		return fmt.Errorf("invalid substractor '%d'", u)
	}

	*s = Size(uint64(*s) - u)
	return nil
}
