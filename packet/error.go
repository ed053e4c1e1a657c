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

package packet

import "github.com/nalix-io/nalix-core/errors"

// FramingError codes: the header parses as structurally invalid (short
// buffer, oversized length, unknown magic, truncated payload).
const (
	ErrorMalformedPacket errors.CodeError = iota + errors.MinPkgPacket
	ErrorDataTooLarge
	ErrorDataMismatch
	ErrorUnknownMagic
	ErrorReservedMagicCollision
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorMalformedPacket)
	errors.RegisterIdFctMessage(ErrorMalformedPacket, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UnknownError:
		return ""
	case ErrorMalformedPacket:
		return "packet: malformed packet"
	case ErrorDataTooLarge:
		return "packet: declared length exceeds MaxPacketSize"
	case ErrorDataMismatch:
		return "packet: declared length mismatches buffer size"
	case ErrorUnknownMagic:
		return "packet: no deserializer registered for magic number"
	case ErrorReservedMagicCollision:
		return "packet: application magic number falls in the reserved framework range"
	}

	return ""
}
