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
	"path"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
)

// PathSeparator is the canonical separator traces render with, whatever
// the local filesystem uses.
const PathSeparator = "/"

const (
	pathVendor = "vendor"
	pathMod    = "mod"
	pathPkg    = "pkg"
	pkgRuntime = "runtime"
)

// filterPkg is the path prefix stripped from trace file names, derived
// from this package's import path so traces stay repo-relative; currPkgs
// is its base, used to skip this package's own frames during capture.
var (
	filterPkg = path.Clean(ConvPathFromLocal(reflect.TypeOf(UnknownError).PkgPath()))
	currPkgs  = path.Base(ConvPathFromLocal(filterPkg))
)

func init() {
	if i := strings.LastIndex(filterPkg, PathSeparator+pathVendor+PathSeparator); i != -1 {
		filterPkg = filterPkg[:i+1]
	}
}

// ConvPathFromLocal rewrites a local filesystem path onto the canonical
// separator.
func ConvPathFromLocal(str string) string {
	return strings.ReplaceAll(str, string(filepath.Separator), PathSeparator)
}

// SetTracePathFilter customizes the prefix stripped from trace file
// paths.
func SetTracePathFilter(path string) {
	filterPkg = path
}

// getFrame returns the first caller frame outside this package, the site
// an Error reports as its origin.
func getFrame() runtime.Frame {
	pcs := make([]uintptr, 20, 255)
	n := runtime.Callers(2, pcs)
	if n < 1 {
		return getNilFrame()
	}

	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()

		if !strings.Contains(frame.Function, currPkgs) {
			return runtime.Frame{
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			}
		}

		if !more {
			return getNilFrame()
		}
	}
}

// getFrameVendor collects up to five distinct caller frames outside this
// package, the vendor tree and the runtime — the short stack a recovered
// panic is annotated with.
func getFrameVendor() []runtime.Frame {
	pcs := make([]uintptr, 20, 255)
	n := runtime.Callers(2, pcs)

	res := make([]runtime.Frame, 0)
	if n < 1 {
		return res
	}

	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()

		item := runtime.Frame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		}

		switch {
		case strings.Contains(item.Function, currPkgs):
		case strings.Contains(ConvPathFromLocal(frame.File), PathSeparator+pathVendor+PathSeparator):
		case strings.HasPrefix(frame.Function, pkgRuntime):
		case frameInSlice(res, item):
		default:
			res = append(res, item)
			if len(res) > 4 {
				return res
			}
		}

		if !more {
			return res
		}
	}
}

func frameInSlice(s []runtime.Frame, f runtime.Frame) bool {
	for _, i := range s {
		if i.Function == f.Function && i.File == f.File && i.Line == f.Line {
			return true
		}
	}
	return false
}

func getNilFrame() runtime.Frame {
	return runtime.Frame{}
}

// filterPath trims a trace file path down past the module-cache, package
// and vendor prefixes, leaving a stable repo-relative path.
func filterPath(pathname string) string {
	var (
		filterMod    = PathSeparator + pathPkg + PathSeparator + pathMod + PathSeparator
		filterVendor = PathSeparator + pathVendor + PathSeparator
	)

	pathname = ConvPathFromLocal(pathname)

	if i := strings.LastIndex(pathname, filterMod); i != -1 {
		pathname = pathname[i+len(filterMod):]
	}
	if i := strings.LastIndex(pathname, filterPkg); i != -1 {
		pathname = pathname[i+len(filterPkg):]
	}
	if i := strings.LastIndex(pathname, filterVendor); i != -1 {
		pathname = pathname[i+len(filterVendor):]
	}

	return strings.Trim(path.Clean(pathname), PathSeparator)
}
