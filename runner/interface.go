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

// Package runner provides the shared panic-recovery helper used by every
// long-lived background goroutine in this module (log sinks, write
// aggregators, lifecycle runners).
package runner

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
)

// Runner is the minimal lifecycle surface shared by the runner
// subpackages: something that can be started with a context and asked
// whether it is still running.
type Runner interface {
	IsRunning() bool
}

// RecoveryCaller reports a recovered panic to stderr with the caller's
// name, any extra context lines, and the goroutine stack. It is a no-op
// when rec is nil, so callers can use it directly in a deferred recover:
//
//	defer runner.RecoveryCaller("nalix/ioutils/aggregator/run", recover())
//
// The process is never re-panicked: a background goroutine's panic must
// not take the process down.
func RecoveryCaller(caller string, rec any, extra ...string) {
	if rec == nil {
		return
	}

	msg := fmt.Sprintf("recovering panic in %s: %v", caller, rec)
	if len(extra) > 0 {
		msg += " (" + strings.Join(extra, "; ") + ")"
	}

	_, _ = fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, debug.Stack())
}
