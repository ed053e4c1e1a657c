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

package perm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// parseString is the single parsing entry point: octal first, symbolic
// notation as the fallback.
func parseString(s string) (Perm, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, `'`, "")

	v, e := strconv.ParseUint(s, 8, 32)
	if e != nil {
		return parseSymbolic(s)
	}

	return Perm(v), nil
}

// typeBits maps the leading type letter of a 10-character symbolic
// string ("drwxr-xr-x") onto its os.FileMode type bit.
func typeBits(c byte) (os.FileMode, error) {
	switch c {
	case '-':
		return 0, nil
	case 'd':
		return os.ModeDir, nil
	case 'l':
		return os.ModeSymlink, nil
	case 'c':
		return os.ModeDevice | os.ModeCharDevice, nil
	case 'b':
		return os.ModeDevice, nil
	case 'p':
		return os.ModeNamedPipe, nil
	case 's':
		return os.ModeSocket, nil
	case 'D':
		return os.ModeIrregular, nil
	default:
		return 0, fmt.Errorf("invalid file type character: %c", c)
	}
}

// triadBits converts one "rwx" triad into its three permission bits.
func triadBits(chars string) (os.FileMode, error) {
	var v os.FileMode

	switch {
	case chars[0] == 'r':
		v |= 4
	case chars[0] != '-':
		return 0, fmt.Errorf("invalid read permission character: %c", chars[0])
	}

	switch {
	case chars[1] == 'w':
		v |= 2
	case chars[1] != '-':
		return 0, fmt.Errorf("invalid write permission character: %c", chars[1])
	}

	switch {
	case chars[2] == 'x':
		v |= 1
	case chars[2] != '-':
		return 0, fmt.Errorf("invalid execute permission character: %c", chars[2])
	}

	return v, nil
}

// parseSymbolic parses "rwxr-xr-x" notation, with an optional leading
// type letter ("drwxr-xr-x").
func parseSymbolic(s string) (Perm, error) {
	if len(s) != 9 && len(s) != 10 {
		return 0, fmt.Errorf("invalid permission")
	}

	var perm os.FileMode

	if len(s) == 10 {
		t, err := typeBits(s[0])
		if err != nil {
			return 0, err
		}
		perm |= t
		s = s[1:]
	}

	for i := 0; i < 3; i++ {
		v, err := triadBits(s[i*3 : i*3+3])
		if err != nil {
			return 0, err
		}
		perm |= v << uint(6-i*3)
	}

	return Perm(perm), nil
}

func (p *Perm) parseString(s string) error {
	v, e := parseString(s)
	if e != nil {
		return e
	}

	*p = v
	return nil
}

func (p *Perm) unmarshall(val []byte) error {
	return p.parseString(string(val))
}
