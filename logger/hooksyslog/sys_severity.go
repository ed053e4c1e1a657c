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
 *
 */

package hooksyslog

import "strings"

// Severity is an RFC 5424 syslog severity; lower values are more severe.
type Severity uint8

const (
	SeverityEmerg Severity = iota
	SeverityAlert
	SeverityCrit
	SeverityErr
	SeverityWarning
	SeverityNotice
	SeverityInfo
	SeverityDebug
)

// severityNames carries the RFC 5424 rendering of each severity.
var severityNames = map[Severity]string{
	SeverityEmerg:   "EMERG",
	SeverityAlert:   "ALERT",
	SeverityCrit:    "CRIT",
	SeverityErr:     "ERR",
	SeverityWarning: "WARNING",
	SeverityNotice:  "NOTICE",
	SeverityInfo:    "INFO",
	SeverityDebug:   "DEBUG",
}

// String renders the RFC 5424 severity name, empty for undefined values.
func (s Severity) String() string {
	return severityNames[s]
}

// Uint8 returns the severity's numeric value.
func (s Severity) Uint8() uint8 {
	return uint8(s)
}

// MakeSeverity resolves a severity name case-insensitively, 0 for an
// unknown name.
func MakeSeverity(severity string) Severity {
	want := strings.ToUpper(severity)
	for s, name := range severityNames {
		if name == want {
			return s
		}
	}
	return 0
}

// ListSeverity returns every severity from Emergency down to Debug.
func ListSeverity() []Severity {
	return []Severity{
		SeverityEmerg,
		SeverityAlert,
		SeverityCrit,
		SeverityErr,
		SeverityWarning,
		SeverityNotice,
		SeverityInfo,
		SeverityDebug,
	}
}
