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

// Facility is an RFC 5424 syslog facility, identifying the component a
// message originates from.
type Facility uint8

const (
	FacilityKern Facility = iota
	FacilityUser
	FacilityMail
	FacilityDaemon
	FacilityAuth
	FacilitySyslog
	FacilityLpr
	FacilityNews
	FacilityUucp
	FacilityCron
	FacilityAuthPriv
	FacilityFTP
	_
	_
	_
	_
	FacilityLocal0
	FacilityLocal1
	FacilityLocal2
	FacilityLocal3
	FacilityLocal4
	FacilityLocal5
	FacilityLocal6
	FacilityLocal7
)

// facilityNames carries the RFC 5424 rendering of each facility.
var facilityNames = map[Facility]string{
	FacilityKern:     "KERN",
	FacilityUser:     "USER",
	FacilityMail:     "MAIL",
	FacilityDaemon:   "DAEMON",
	FacilityAuth:     "AUTH",
	FacilitySyslog:   "SYSLOG",
	FacilityLpr:      "LPR",
	FacilityNews:     "NEWS",
	FacilityUucp:     "UUCP",
	FacilityCron:     "CRON",
	FacilityAuthPriv: "AUTHPRIV",
	FacilityFTP:      "FTP",
	FacilityLocal0:   "LOCAL0",
	FacilityLocal1:   "LOCAL1",
	FacilityLocal2:   "LOCAL2",
	FacilityLocal3:   "LOCAL3",
	FacilityLocal4:   "LOCAL4",
	FacilityLocal5:   "LOCAL5",
	FacilityLocal6:   "LOCAL6",
	FacilityLocal7:   "LOCAL7",
}

// String renders the RFC 5424 facility name, empty for undefined values.
func (f Facility) String() string {
	return facilityNames[f]
}

// Uint8 returns the facility's numeric value.
func (f Facility) Uint8() uint8 {
	return uint8(f)
}

// MakeFacility resolves a facility name case-insensitively, 0 for an
// unknown name.
func MakeFacility(facility string) Facility {
	want := strings.ToUpper(facility)
	for f, name := range facilityNames {
		if name == want {
			return f
		}
	}
	return 0
}
