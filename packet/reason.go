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

// ProtocolReason accompanies Control packets: a compact numeric reason code
// carried alongside the free-text message, so callers can branch on it
// without string matching.
type ProtocolReason uint16

const (
	ReasonNone ProtocolReason = iota
	ReasonSuccess
	ReasonBadRequest
	ReasonUnauthorized
	ReasonForbidden
	ReasonNotFound
	ReasonRateLimited
	ReasonPermissionDenied
	ReasonInternalError
	ReasonTimeout
	ReasonAuthenticationError
)

// String renders the reason name.
func (r ProtocolReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonSuccess:
		return "success"
	case ReasonBadRequest:
		return "bad_request"
	case ReasonUnauthorized:
		return "unauthorized"
	case ReasonForbidden:
		return "forbidden"
	case ReasonNotFound:
		return "not_found"
	case ReasonRateLimited:
		return "rate_limited"
	case ReasonPermissionDenied:
		return "permission_denied"
	case ReasonInternalError:
		return "internal_error"
	case ReasonTimeout:
		return "timeout"
	case ReasonAuthenticationError:
		return "authentication_error"
	default:
		return "unknown"
	}
}

// ControlFlags is a bitmask that may accompany a Control packet's reason.
type ControlFlags uint8

const (
	ControlNone ControlFlags = 0
	ControlIsTransient ControlFlags = 1 << iota
	ControlIsAuthRelated
	ControlHasRedirect
	ControlSlowDown
)

// Has reports whether all bits of f2 are set in f.
func (f ControlFlags) Has(f2 ControlFlags) bool {
	return f&f2 == f2
}
