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

package middleware

import "github.com/nalix-io/nalix-core/errors"

const (
	ErrorDecompressFailed errors.CodeError = iota + errors.MinPkgMiddleware
	ErrorDecryptFailed
	ErrorPermissionDenied
	ErrorRateLimited
	ErrorNoTransformer
	ErrorEncodeFailed
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorDecompressFailed)
	errors.RegisterIdFctMessage(ErrorDecompressFailed, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UnknownError:
		return ""
	case ErrorDecompressFailed:
		return "middleware: packet decompress failed"
	case ErrorDecryptFailed:
		return "middleware: packet decoding failed"
	case ErrorPermissionDenied:
		return "middleware: insufficient permission level"
	case ErrorRateLimited:
		return "middleware: request rate limit exceeded"
	case ErrorNoTransformer:
		return "middleware: no transformer registered for packet type"
	case ErrorEncodeFailed:
		return "middleware: response packet failed to encode"
	}

	return ""
}
