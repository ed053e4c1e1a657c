/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
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

package errors

import (
	"math"
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

// CodeError is a numeric error class. Each package registers a message
// function for its code range (modules.go assigns the ranges), and a
// code resolves its message through the registration whose range floor
// is the greatest one not above it.
type CodeError uint16

const (
	// UnknownError is the zero code, used when no classification exists.
	UnknownError CodeError = 0

	// UnknownMessage is the message rendered for unclassified codes.
	UnknownMessage = "unknown error"

	// NullMessage is an empty message.
	NullMessage = ""
)

// Message produces the message for one code of a registered range.
type Message func(code CodeError) (message string)

// idMsgFct maps each registered range floor to its message function.
var idMsgFct = make(map[CodeError]Message)

// ParseCodeError converts an int64 into a CodeError, clamping negatives
// to UnknownError and overflows to the maximum code.
func ParseCodeError(i int64) CodeError {
	switch {
	case i < 0:
		return UnknownError
	case i >= int64(math.MaxUint16):
		return math.MaxUint16
	default:
		return CodeError(i)
	}
}

// NewCodeError converts a raw uint16 into a CodeError.
func NewCodeError(code uint16) CodeError {
	return CodeError(code)
}

// Uint16 returns the code's raw value.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

// Int returns the code as an int.
func (c CodeError) Int() int {
	return int(c)
}

// String renders the code's decimal form.
func (c CodeError) String() string {
	return strconv.Itoa(c.Int())
}

// GetMessage renders the code's decimal form.
//
// Deprecated: use Message.
func (c CodeError) GetMessage() string {
	return c.String()
}

// Message resolves the code's registered message, UnknownMessage when no
// range covers it or the range's function has nothing to say.
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}

	if f, ok := idMsgFct[rangeFloor(c)]; ok {
		if m := f(c); m != "" {
			return m
		}
	}

	return UnknownMessage
}

// Error builds an Error carrying this code and its registered message,
// with the given parents attached.
func (c CodeError) Error(p ...error) Error {
	return New(c.Uint16(), c.Message(), p...)
}

// Errorf builds an Error whose registered message is a fmt pattern,
// filled with args (surplus arguments beyond the pattern's verbs are
// dropped).
func (c CodeError) Errorf(args ...interface{}) Error {
	m := c.Message()

	if !strings.Contains(m, "%") {
		return New(c.Uint16(), m)
	}

	if n := strings.Count(m, "%"); n < len(args) {
		return Newf(c.Uint16(), m, args[:n]...)
	}
	return Newf(c.Uint16(), m, args...)
}

// IfError builds an Error with this code only when at least one of the
// given errors is non-nil.
func (c CodeError) IfError(e ...error) Error {
	return IfError(c.Uint16(), c.Message(), e...)
}

// RegisterIdFctMessage records fct as the message source for the code
// range starting at minCode. Each package calls it once from init.
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	if idMsgFct == nil {
		idMsgFct = make(map[CodeError]Message)
	}

	idMsgFct[minCode] = fct
}

// ExistInMapMessage reports whether some registered range covers code
// with a non-empty message.
func ExistInMapMessage(code CodeError) bool {
	if f, ok := idMsgFct[rangeFloor(code)]; ok {
		return f(code) != NullMessage
	}

	return false
}

// GetCodePackages maps every registered range floor to the source file
// of its message function, trimmed to a path relative to rootPackage.
func GetCodePackages(rootPackage string) map[CodeError]string {
	res := make(map[CodeError]string)

	for i, f := range idMsgFct {
		p := reflect.ValueOf(f).Pointer()
		n, _ := runtime.FuncForPC(p).FileLine(p)

		if strings.Contains(n, "/vendor/") {
			n = strings.SplitN(n, "/vendor/", 2)[1]
		}
		if strings.Contains(n, rootPackage) {
			n = strings.SplitN(n, rootPackage, 2)[1]
		}
		if !strings.HasPrefix(n, "/") {
			n = "/" + n
		}

		res[i] = n
	}

	return res
}

// rangeFloor returns the greatest registered range floor not above code,
// UnknownError when code sits below every registration.
func rangeFloor(code CodeError) CodeError {
	var res CodeError

	for k := range idMsgFct {
		if k <= code && k > res {
			res = k
		}
	}

	return res
}

// unicCodeSlice deduplicates a code list, preserving first-seen order.
func unicCodeSlice(slice []CodeError) []CodeError {
	seen := make(map[CodeError]struct{}, len(slice))
	res := make([]CodeError, 0, len(slice))

	for _, c := range slice {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		res = append(res, c)
	}

	return res
}
