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

// Package size provides a byte-count type with human-readable parsing and
// formatting (binary powers: 1KB = 1024B), saturating arithmetic, and
// encoding support for JSON, YAML, TOML, CBOR, text and Viper
// configuration decoding.
//
// Example usage:
//
//	s, err := size.Parse("1.5GB")
//	if err != nil {
//	    panic(err)
//	}
//	fmt.Println(s.String())    // "1.50 GB"
//	fmt.Println(s.MegaBytes()) // 1536
package size

import (
	"math"
)

// Size is a number of bytes.
type Size uint64

const (
	// SizeNul is an empty size.
	SizeNul Size = 0
	// SizeUnit is one byte.
	SizeUnit Size = 1
	// SizeKilo is one binary kilobyte (1024 bytes).
	SizeKilo = SizeUnit << 10
	// SizeMega is one binary megabyte.
	SizeMega = SizeKilo << 10
	// SizeGiga is one binary gigabyte.
	SizeGiga = SizeMega << 10
	// SizeTera is one binary terabyte.
	SizeTera = SizeGiga << 10
	// SizePeta is one binary petabyte.
	SizePeta = SizeTera << 10
	// SizeExa is one binary exabyte.
	SizeExa = SizePeta << 10
)

// ParseInt64 converts an int64 byte count into a Size, taking the
// absolute value of negative inputs.
func ParseInt64(i int64) Size {
	if i < 0 {
		i = -i
	}
	return Size(uint64(i))
}

// SizeFromInt64 is an alias of ParseInt64.
func SizeFromInt64(i int64) Size {
	return ParseInt64(i)
}

// ParseUint64 converts a uint64 byte count into a Size.
func ParseUint64(u uint64) Size {
	return Size(u)
}

// ParseFloat64 converts a float64 byte count into a Size: the value is
// floored, negative inputs become their absolute value, and values beyond
// the uint64 range saturate at the maximum.
func ParseFloat64(f float64) Size {
	f = math.Floor(f)
	if f < 0 {
		f = -f
	}
	if f >= math.MaxUint64 {
		return Size(math.MaxUint64)
	}
	return Size(uint64(f))
}

// SizeFromFloat64 is an alias of ParseFloat64.
func SizeFromFloat64(f float64) Size {
	return ParseFloat64(f)
}

// Parse parses a human-readable size string ("5MB", "1.5GB", "512K") into
// a Size. Whitespace and surrounding quotes are tolerated, units are
// case-insensitive, and a unit letter is required.
func Parse(s string) (Size, error) {
	return parseString(s)
}

// ParseByte parses a byte-slice representation of a size, as Parse does
// for strings.
func ParseByte(p []byte) (Size, error) {
	return parseString(string(p))
}

// ParseSize parses a size string.
//
// Deprecated: use Parse instead.
func ParseSize(s string) (Size, error) {
	return Parse(s)
}

// ParseByteAsSize parses a size byte slice.
//
// Deprecated: use ParseByte instead.
func ParseByteAsSize(p []byte) (Size, error) {
	return ParseByte(p)
}

// GetSize parses a size string, reporting success with a bool instead of
// an error.
//
// Deprecated: use Parse instead.
func GetSize(s string) (Size, bool) {
	v, e := Parse(s)
	if e != nil {
		return SizeNul, false
	}
	return v, true
}
