/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

// package errors assigns each package of this module a disjoint range of
// CodeError values, so a package can register its own error codes with
// RegisterIdFctMessage without colliding with another package's range.
package errors

const (
	MinPkgClock       = 100
	MinPkgIdent       = 200
	MinPkgWire        = 300
	MinPkgPacket      = 400
	MinPkgPool        = 500
	MinPkgTransport   = 600
	MinPkgFirewall    = 700
	MinPkgCipher      = 800
	MinPkgHandshake   = 900
	MinPkgQueue       = 1000
	MinPkgConcurrency = 1100
	MinPkgMiddleware  = 1200
	MinPkgDispatch    = 1300
	MinPkgConn        = 1400
	MinPkgListener    = 1500
	MinPkgTimesync    = 1600
	MinPkgConfig      = 1700
	MinPkgMetrics     = 1800
	MinPkgLogger      = 2000
	MinPkgCatalog     = 2100
	MinPkgServer      = 2200
	MinPkgExamples    = 2300

	MinAvailable = 2500
)
