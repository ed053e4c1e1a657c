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

// Package conn owns the per-connection state machine: a socket, a
// serialized send path, a framed receive loop, and the four lifecycle
// events (OnReceive, OnState, OnError, OnClose) the listener and
// middleware pipeline hang off of.
package conn

// State is one stage of a Connection's one-way lifecycle: Connecting
// never follows Connected, Connected never follows Authenticated, and
// nothing ever follows Disconnected.
type State uint8

const (
	StateConnecting State = iota
	StateConnected
	StateAuthenticated
	StateDisconnected
)

// String renders a human-readable state name.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "Connecting"
	case StateConnected:
		return "Connected"
	case StateAuthenticated:
		return "Authenticated"
	case StateDisconnected:
		return "Disconnected"
	default:
		return "Unknown"
	}
}

// canTransition reports whether moving from s to next respects the
// one-way lifecycle ordering.
func (s State) canTransition(next State) bool {
	return next > s
}
