/*
 * MIT License
 *
 * Copyright (c) 2023 Nicolas JUHEL
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

// Package perm is the file-permission type used in configuration files:
// an os.FileMode that parses from octal strings ("0644") or symbolic
// notation ("rwxr-xr-x", with an optional type letter), renders back as
// octal, and carries the usual encodings plus a Viper decode hook so a
// log sink's fileMode/pathMode knobs deserialize from any config format.
package perm

import (
	"os"
	"strconv"
)

// Perm is a file permission, stored as the raw os.FileMode bits.
type Perm os.FileMode

// Parse parses an octal ("0644") or symbolic ("rw-r--r--") permission
// string; surrounding quotes and whitespace are tolerated.
func Parse(s string) (Perm, error) {
	return parseString(s)
}

// ParseByte parses a permission byte slice, as Parse does for strings.
func ParseByte(p []byte) (Perm, error) {
	return parseString(string(p))
}

// ParseFileMode converts an os.FileMode.
func ParseFileMode(p os.FileMode) Perm {
	return Perm(p)
}

// ParseInt converts a decimal permission value, so ParseInt(420) is
// 0644.
func ParseInt(i int) (Perm, error) {
	return parseString(strconv.FormatInt(int64(i), 8))
}

// ParseInt64 converts a decimal permission value the way ParseInt does.
func ParseInt64(i int64) (Perm, error) {
	return parseString(strconv.FormatInt(i, 8))
}
