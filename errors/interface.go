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

// Package errors is this module's error taxonomy: every error carries a
// numeric code (each package owns a disjoint code range, see modules.go),
// the frame it was created at, and an optional chain of parent errors.
// It stays compatible with stdlib errors.Is/errors.As through Unwrap.
package errors

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"
)

// FuncMap visits one error of a chain; returning false stops the walk.
type FuncMap func(e error) bool

// ReturnError receives one error's flattened fields (code, message, and
// the capture site).
type ReturnError func(code int, msg string, file string, line int)

// Error is the extended error surface: code classification, parent
// chain, capture-site trace, and the rendering helpers built on them.
// Mutation (Add, SetParent) is not concurrency-safe; use the pool
// subpackage to collect errors across goroutines.
type Error interface {
	error

	// IsCode reports whether this error's own code equals code (parents
	// are not consulted).
	IsCode(code CodeError) bool
	// HasCode reports whether this error or any parent carries code.
	HasCode(code CodeError) bool
	// GetCode returns this error's own code.
	GetCode() CodeError
	// GetParentCode returns the deduplicated codes of this error and
	// every parent.
	GetParentCode() []CodeError

	// Is implements the match used by stdlib errors.Is.
	Is(e error) bool

	// IsError reports whether e carries the same message as this error.
	IsError(e error) bool
	// HasError reports whether err matches this error's parents,
	// recursively.
	HasError(err error) bool
	// HasParent reports whether any parent is attached.
	HasParent() bool
	// GetParent flattens the parent chain, prepending this error itself
	// when withMainError is set.
	GetParent(withMainError bool) []error
	// Map walks this error then every parent until fct returns false,
	// reporting whether the walk ran to completion.
	Map(fct FuncMap) bool
	// ContainsString reports whether this error's or any parent's message
	// contains s.
	ContainsString(s string) bool

	// Add appends the given non-nil errors to the parent chain.
	Add(parent ...error)
	// SetParent replaces the parent chain with the given errors.
	SetParent(parent ...error)

	// Code returns this error's own code as a raw uint16.
	Code() uint16
	// CodeSlice returns the non-zero codes of this error and its parents.
	CodeSlice() []uint16

	// CodeError renders "code: message" through pattern (the default
	// pattern when empty), for this error alone.
	CodeError(pattern string) string
	// CodeErrorSlice renders CodeError for this error and every parent.
	CodeErrorSlice(pattern string) []string

	// CodeErrorTrace renders "code: message (trace)" through pattern (the
	// default trace pattern when empty), for this error alone.
	CodeErrorTrace(pattern string) string
	// CodeErrorTraceSlice renders CodeErrorTrace for this error and every
	// parent.
	CodeErrorTraceSlice(pattern string) []string

	// Error implements the stdlib error interface; the rendering is
	// selected process-wide by SetModeReturnError.
	Error() string

	// StringError returns this error's bare message.
	StringError() string
	// StringErrorSlice returns the messages of this error and every
	// parent.
	StringErrorSlice() []string

	// GetError returns a fresh stdlib error carrying this error's
	// message.
	GetError() error
	// GetErrorSlice returns fresh stdlib errors for this error and every
	// parent, recursively.
	GetErrorSlice() []error
	// Unwrap exposes the parent chain to stdlib errors.Is/errors.As.
	Unwrap() []error

	// GetTrace renders this error's capture site as "file#line".
	GetTrace() string
	// GetTraceSlice renders the capture sites of this error and every
	// parent that has one.
	GetTraceSlice() []string

	// Return flattens this error into r: the main error through SetError,
	// each parent through AddParent.
	Return(r Return)
	// ReturnError sends this error's own fields to f.
	ReturnError(f ReturnError)
	// ReturnParent sends every parent's fields to f, recursively.
	ReturnParent(f ReturnError)
}

// Errors is the read surface of an error collector.
type Errors interface {
	// ErrorsLast returns the most recently registered error.
	ErrorsLast() error

	// ErrorsList returns every registered error.
	ErrorsList() []error
}

// Return receives a flattened Error: the main error once, parents one by
// one.
type Return interface {
	SetError(code int, msg string, file string, line int)
	AddParent(code int, msg string, file string, line int)
}

// Is reports whether e is (or wraps) this package's Error.
func Is(e error) bool {
	var err Error
	return errors.As(e, &err)
}

// Get returns e as an Error, nil when it neither is nor wraps one.
func Get(e error) Error {
	var err Error
	if errors.As(e, &err) {
		return err
	}

	return nil
}

// Has reports whether e carries code, on itself or any parent.
func Has(e error, code CodeError) bool {
	if err := Get(e); err != nil {
		return err.HasCode(code)
	}
	return false
}

// ContainsString reports whether e's message chain contains s.
func ContainsString(e error, s string) bool {
	if e == nil {
		return false
	}
	if err := Get(e); err != nil {
		return err.ContainsString(s)
	}
	return strings.Contains(e.Error(), s)
}

// IsCode reports whether e's own code equals code.
func IsCode(e error, code CodeError) bool {
	if err := Get(e); err != nil {
		return err.IsCode(code)
	}
	return false
}

// Make returns e as an Error, wrapping a foreign error under code 0.
// A nil e stays nil.
func Make(e error) Error {
	if e == nil {
		return nil
	}

	if err := Get(e); err != nil {
		return err
	}

	return &ers{
		e: e.Error(),
		t: getNilFrame(),
	}
}

// MakeIfError folds any non-nil errors of the list into one Error (the
// first becomes the main error, the rest parents), nil when every entry
// is nil.
func MakeIfError(err ...error) Error {
	var e Error

	for _, p := range err {
		switch {
		case p == nil:
		case e == nil:
			e = Make(p)
		default:
			e.Add(p)
		}
	}

	return e
}

// AddOrNew grows errMain with errSub and the given parents, promoting
// errMain to an Error first when needed. With a nil errMain, errSub
// becomes the main error; with both nil, nil is returned.
func AddOrNew(errMain, errSub error, parent ...error) Error {
	if errMain != nil {
		e := Get(errMain)
		if e == nil {
			e = New(0, errMain.Error())
		}
		e.Add(errSub)
		e.Add(parent...)
		return e
	}

	if errSub != nil {
		return New(0, errSub.Error(), parent...)
	}

	return nil
}

// New builds an Error with the given code and message, capturing the
// caller's frame; non-nil parents are attached to the chain.
func New(code uint16, message string, parent ...error) Error {
	return &ers{
		c: code,
		e: message,
		p: makeParents(parent),
		t: getFrame(),
	}
}

// Newf is New with a fmt.Sprintf message.
func Newf(code uint16, pattern string, args ...any) Error {
	return &ers{
		c: code,
		e: fmt.Sprintf(pattern, args...),
		t: getFrame(),
	}
}

// NewErrorTrace builds an Error with an explicit capture site instead of
// the caller's frame; code saturates into the uint16 range.
func NewErrorTrace(code int, msg string, file string, line int, parent ...error) Error {
	var c uint16
	switch {
	case code < 0:
		c = 0
	case code > math.MaxUint16:
		c = math.MaxUint16
	default:
		c = uint16(code)
	}

	return &ers{
		c: c,
		e: msg,
		p: makeParents(parent),
		t: runtime.Frame{File: file, Line: line},
	}
}

// NewErrorRecovered builds a code-0 Error out of a recovered panic: the
// recovered value becomes the first parent, and the non-vendor frames
// leading to the recovery are appended to the message.
func NewErrorRecovered(msg string, recovered string, parent ...error) Error {
	var p []Error

	if recovered != "" {
		p = append(p, &ers{e: recovered})
	}
	p = append(p, makeParents(parent)...)

	for _, t := range getFrameVendor() {
		if t == getNilFrame() {
			continue
		}
		msg += "\n " + fmt.Sprintf("Fct: %s - File: %s - Line: %d", t.Function, t.File, t.Line)
	}

	return &ers{
		e: msg,
		p: p,
		t: getFrame(),
	}
}

// IfError builds an Error only when at least one parent is non-nil, so a
// clean run stays a nil error.
func IfError(code uint16, message string, parent ...error) Error {
	p := makeParents(parent)
	if len(p) < 1 {
		return nil
	}

	return &ers{
		c: code,
		e: message,
		p: p,
		t: getFrame(),
	}
}

// makeParents converts a caller-supplied error list into the parent
// chain, dropping nils.
func makeParents(parent []error) []Error {
	var p []Error

	for _, e := range parent {
		if er := Make(e); er != nil {
			p = append(p, er)
		}
	}

	return p
}

// DefaultReturn is the plain Return implementation: the main error's
// fields plus a flattened parent list, JSON-renderable for transports
// that ship errors as documents.
type DefaultReturn struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Parents []string `json:"parents,omitempty"`
}

// NewDefaultReturn returns an empty DefaultReturn.
func NewDefaultReturn() *DefaultReturn {
	return &DefaultReturn{}
}

// SetError records the main error's fields.
func (r *DefaultReturn) SetError(code int, msg string, file string, line int) {
	r.Code = fmt.Sprintf("%d", code)
	r.Message = msg
}

// AddParent appends one parent error's rendered fields.
func (r *DefaultReturn) AddParent(code int, msg string, file string, line int) {
	r.Parents = append(r.Parents, fmt.Sprintf(defaultPattern, code, msg))
}

// JSON renders the collected fields as a JSON document.
func (r *DefaultReturn) JSON() []byte {
	return r.marshal()
}
