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
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseString is the single parsing entry point behind Parse/ParseByte
// and every unmarshaller. Quotes and all whitespace are stripped, then
// an optional sign and whole-day prefix are peeled off before the rest
// goes through the stdlib parser.
func parseString(s string) (Duration, error) {
	s = strings.Trim(strings.TrimSpace(s), `"'`)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\t", "")

	if len(s) == 0 {
		return 0, fmt.Errorf("duration: empty value")
	}

	neg := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	if len(body) == 0 {
		return 0, fmt.Errorf("duration: invalid value '%s'", s)
	}

	var total time.Duration

	if i := strings.IndexByte(body, 'd'); i > 0 && allDigits(body[:i]) {
		days, err := strconv.ParseInt(body[:i], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("duration: invalid days in '%s': %w", s, err)
		}
		total = time.Duration(days) * 24 * time.Hour
		body = body[i+1:]
	}

	if len(body) > 0 {
		rest, err := time.ParseDuration(body)
		if err != nil {
			return 0, err
		}
		total += rest
	}

	if neg {
		total = -total
	}

	return Duration(total), nil
}

// allDigits reports whether s is a non-empty run of ASCII digits, the
// shape a whole-day prefix must have.
func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func (d *Duration) parseString(s string) error {
	v, e := parseString(s)
	if e != nil {
		return e
	}

	*d = v
	return nil
}

func (d *Duration) unmarshall(val []byte) error {
	return d.parseString(string(val))
}
