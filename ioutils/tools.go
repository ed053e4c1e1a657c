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

// Package ioutils carries the filesystem helpers shared by the log sinks:
// ensuring a sink's file or directory exists before the first write.
package ioutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// PathCheckCreate ensures a file or directory exists at path with the
// given permissions, creating missing parent directories with permDir.
//
// An existing path of the wrong kind (a directory where a file is wanted,
// or the reverse) is an error; an existing path of the right kind has its
// permissions aligned and is otherwise left untouched.
//
// Concurrent calls for the same path race; callers needing that must
// synchronize externally.
func PathCheckCreate(isFile bool, path string, permFile os.FileMode, permDir os.FileMode) error {
	inf, err := os.Stat(path)

	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err == nil {
		if inf.IsDir() {
			if isFile {
				return fmt.Errorf("path '%s' already exists but is a directory", path)
			}
			if inf.Mode() != permDir {
				_ = os.Chmod(path, permDir)
			}
			return nil
		}

		if !isFile {
			return fmt.Errorf("path '%s' already exists but is not a directory", path)
		}
		if inf.Mode() != permFile {
			_ = os.Chmod(path, permFile)
		}
		return nil
	}

	if !isFile {
		return os.MkdirAll(path, permDir)
	}

	if err = PathCheckCreate(false, filepath.Dir(path), permFile, permDir); err != nil {
		return err
	}

	hf, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, permFile)
	if err != nil {
		return err
	}

	if err = hf.Close(); err != nil {
		return err
	}

	return os.Chmod(path, permFile)
}
