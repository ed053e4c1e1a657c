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

// Package logger is the module's structured logging front: a Logger
// interface over a logrus core, configured declaratively (logger/config),
// levelled (logger/level), field-carrying (logger/fields, logger/entry)
// and fanned out to sinks through logrus hooks (hookstdout, hookstderr,
// hookfile, hooksyslog, hookwriter). Bridges exist for consumers already
// speaking hashicorp/go-hclog (logger/hashicorp) or spf13's
// jwalterweatherman (spf13.go), and an io.WriteCloser adapter feeds
// stdlib log.Logger users.
//
// One Logger is built per process (or cloned per subsystem), carries its
// options in a context-bound store, and may be reconfigured at runtime:
// SetOptions rebuilds the hook set atomically while writers keep logging.
package logger
