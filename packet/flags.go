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

// Flags is the one-byte bitset at header offset 8.
type Flags uint8

const (
	FlagNone       Flags = 0
	FlagCompressed Flags = 1 << iota // iota starts at 1 here: FlagNone already consumed 0
	FlagEncrypted
)

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// Set returns f with f2's bits set.
func (f Flags) Set(f2 Flags) Flags {
	return f | f2
}

// Clear returns f with f2's bits cleared.
func (f Flags) Clear(f2 Flags) Flags {
	return f &^ f2
}

// IsCompressed reports whether FlagCompressed is set.
func (f Flags) IsCompressed() bool {
	return f.Has(FlagCompressed)
}

// IsEncrypted reports whether FlagEncrypted is set.
func (f Flags) IsEncrypted() bool {
	return f.Has(FlagEncrypted)
}

// Priority is the one-byte scheduling hint at header offset 9, consumed by
// the priority dispatch queue.
type Priority uint8

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityUrgent
)

// String renders the Priority name.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityUrgent:
		return "urgent"
	default:
		return "unknown"
	}
}

// Valid reports whether p is one of the four recognized levels.
func (p Priority) Valid() bool {
	return p <= PriorityUrgent
}
