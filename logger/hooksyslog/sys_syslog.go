//go:build linux || darwin

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

import (
	"fmt"
	"log/syslog"
	"os"

	libptc "github.com/nalix-io/nalix-core/network/protocol"
)

var (
	// severityPriority and facilityPriority map the package's RFC 5424
	// enums onto the stdlib syslog priority bits.
	severityPriority = map[Severity]syslog.Priority{
		SeverityEmerg:   syslog.LOG_EMERG,
		SeverityAlert:   syslog.LOG_ALERT,
		SeverityCrit:    syslog.LOG_CRIT,
		SeverityErr:     syslog.LOG_ERR,
		SeverityWarning: syslog.LOG_WARNING,
		SeverityNotice:  syslog.LOG_NOTICE,
		SeverityInfo:    syslog.LOG_INFO,
		SeverityDebug:   syslog.LOG_DEBUG,
	}
	facilityPriority = map[Facility]syslog.Priority{
		FacilityKern:     syslog.LOG_KERN,
		FacilityUser:     syslog.LOG_USER,
		FacilityMail:     syslog.LOG_MAIL,
		FacilityDaemon:   syslog.LOG_DAEMON,
		FacilityAuth:     syslog.LOG_AUTH,
		FacilitySyslog:   syslog.LOG_SYSLOG,
		FacilityLpr:      syslog.LOG_LPR,
		FacilityNews:     syslog.LOG_NEWS,
		FacilityUucp:     syslog.LOG_UUCP,
		FacilityCron:     syslog.LOG_CRON,
		FacilityAuthPriv: syslog.LOG_AUTHPRIV,
		FacilityFTP:      syslog.LOG_FTP,
		FacilityLocal0:   syslog.LOG_LOCAL0,
		FacilityLocal1:   syslog.LOG_LOCAL1,
		FacilityLocal2:   syslog.LOG_LOCAL2,
		FacilityLocal3:   syslog.LOG_LOCAL3,
		FacilityLocal4:   syslog.LOG_LOCAL4,
		FacilityLocal5:   syslog.LOG_LOCAL5,
		FacilityLocal6:   syslog.LOG_LOCAL6,
		FacilityLocal7:   syslog.LOG_LOCAL7,
	}
)

// makePriority combines a severity and facility into one stdlib syslog
// priority.
func makePriority(severity Severity, facility Facility) syslog.Priority {
	return severityPriority[severity] | facilityPriority[facility]
}

type _Syslog struct {
	w *syslog.Writer
}

func newSyslog(net libptc.NetworkProtocol, host, tag string, fac Facility) (Wrapper, error) {
	var (
		err error
	)

	var obj = &_Syslog{
		w: nil,
	}

	if obj.w, err = obj.openSyslogSev(net, host, tag, makePriority(SeverityInfo, fac)); err != nil {
		_ = obj.Close()
		return nil, err
	}

	return obj, nil
}

func (o *_Syslog) openSyslogSev(net libptc.NetworkProtocol, host, tag string, prio syslog.Priority) (*syslog.Writer, error) {
	return syslog.Dial(net.String(), host, prio, tag)
}

func (o *_Syslog) Write(p []byte) (n int, err error) {
	return o.WriteSev(SeverityInfo, p)
}

// WriteSev writes p at the given severity, falling back to a plain
// write for undefined severities.
func (o *_Syslog) WriteSev(sev Severity, p []byte) (n int, err error) {
	if o.w == nil {
		return 0, fmt.Errorf("hooksyslog: connection not setup")
	}

	write := map[Severity]func(string) error{
		SeverityEmerg:   o.w.Emerg,
		SeverityAlert:   o.w.Alert,
		SeverityCrit:    o.w.Crit,
		SeverityErr:     o.w.Err,
		SeverityWarning: o.w.Warning,
		SeverityNotice:  o.w.Notice,
		SeverityInfo:    o.w.Info,
		SeverityDebug:   o.w.Debug,
	}

	if f, ok := write[sev]; ok {
		return len(p), f(string(p))
	}

	return o.w.Write(p)
}

func (o *_Syslog) Close() error {
	if o.w == nil {
		return nil
	}

	return o.w.Close()
}

func (o *_Syslog) Panic(p []byte) (n int, err error) {
	return o.WriteSev(SeverityAlert, p)
}

func (o *_Syslog) Fatal(p []byte) (n int, err error) {
	return o.WriteSev(SeverityCrit, p)
}

func (o *_Syslog) Error(p []byte) (n int, err error) {
	return o.WriteSev(SeverityErr, p)
}

func (o *_Syslog) Warning(p []byte) (n int, err error) {
	return o.WriteSev(SeverityWarning, p)
}

func (o *_Syslog) Info(p []byte) (n int, err error) {
	return o.WriteSev(SeverityInfo, p)
}

func (o *_Syslog) Debug(p []byte) (n int, err error) {
	return o.WriteSev(SeverityDebug, p)
}

// systemSyslog locates the local syslog daemon's datagram socket, tried
// in the same order the stdlib syslog dialer uses.
func systemSyslog() (libptc.NetworkProtocol, string, error) {
	for _, p := range []string{"/dev/log", "/var/run/syslog", "/var/run/log"} {
		if _, err := os.Stat(p); err == nil {
			return libptc.NetworkUnixGram, p, nil
		}
	}

	return libptc.NetworkEmpty, "", fmt.Errorf("hooksyslog: no local syslog socket found")
}
