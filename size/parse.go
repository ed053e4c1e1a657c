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
	"strconv"
	"strings"
)

// parseString is the single parsing entry point behind Parse/ParseByte
// and every unmarshaller: trim whitespace and quotes, split the numeric
// run from the unit run, scale by the unit's binary power.
func parseString(s string) (Size, error) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	s = strings.TrimSpace(s)

	if len(s) == 0 {
		return SizeNul, fmt.Errorf("invalid size '%s'", s)
	}

	if strings.HasPrefix(s, "-") {
		return SizeNul, fmt.Errorf("invalid size '%s': negative value", s)
	}

	s = strings.TrimPrefix(s, "+")

	// split the leading numeric run from the trailing unit run
	i := 0
	for i < len(s) && (s[i] == '.' || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}

	num := s[:i]
	unit := strings.TrimSpace(s[i:])

	if len(num) == 0 {
		return SizeNul, fmt.Errorf("invalid size '%s': missing number", s)
	}

	if len(unit) == 0 {
		return SizeNul, fmt.Errorf("invalid size '%s': missing unit", s)
	}

	val, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return SizeNul, fmt.Errorf("invalid size '%s': %w", s, err)
	}

	var mul Size
	switch strings.ToUpper(unit) {
	case "B", "O":
		mul = SizeUnit
	case "K", "KB", "KO":
		mul = SizeKilo
	case "M", "MB", "MO":
		mul = SizeMega
	case "G", "GB", "GO":
		mul = SizeGiga
	case "T", "TB", "TO":
		mul = SizeTera
	case "P", "PB", "PO":
		mul = SizePeta
	case "E", "EB", "EO":
		mul = SizeExa
	default:
		return SizeNul, fmt.Errorf("invalid size '%s': unknown unit '%s'", s, unit)
	}

	res := val * float64(mul)
	if res >= math.MaxUint64 {
		return SizeNul, fmt.Errorf("invalid size '%s': overflow", s)
	}

	return Size(roundFloat(res)), nil
}

// roundFloat converts a non-negative float byte count to uint64, snapping
// to the nearest integer when the float noise is negligible and rounding
// up otherwise, so "1.5KB" lands exactly on 1536.
func roundFloat(v float64) uint64 {
	r := math.Round(v)
	if math.Abs(v-r) <= 1e-9*math.Max(1, math.Abs(v)) {
		return uint64(r)
	}
	return uint64(math.Ceil(v))
}
