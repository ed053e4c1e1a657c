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
 */

// Package protocol enumerates the network strings accepted by net.Dial
// and net.Listen ("tcp", "udp", "unix", ...), as a small typed enum with
// case-insensitive parsing and the usual encoding hooks. The log sinks
// use it to carry a remote syslog endpoint's network in configuration.
package protocol

import "strings"

// NetworkProtocol identifies one net.Dial network string.
type NetworkProtocol uint8

const (
	// NetworkEmpty is the zero value: no network selected.
	NetworkEmpty NetworkProtocol = iota
	// NetworkUnix is a stream-oriented unix domain socket.
	NetworkUnix
	// NetworkTCP is tcp over IPv4 or IPv6.
	NetworkTCP
	// NetworkTCP4 is tcp over IPv4 only.
	NetworkTCP4
	// NetworkTCP6 is tcp over IPv6 only.
	NetworkTCP6
	// NetworkUDP is udp over IPv4 or IPv6.
	NetworkUDP
	// NetworkUDP4 is udp over IPv4 only.
	NetworkUDP4
	// NetworkUDP6 is udp over IPv6 only.
	NetworkUDP6
	// NetworkIP is a raw IP socket over IPv4 or IPv6.
	NetworkIP
	// NetworkIP4 is a raw IP socket over IPv4 only.
	NetworkIP4
	// NetworkIP6 is a raw IP socket over IPv6 only.
	NetworkIP6
	// NetworkUnixGram is a datagram-oriented unix domain socket.
	NetworkUnixGram

	maxProtocol
)

// Parse resolves a network string to its NetworkProtocol,
// case-insensitively and ignoring surrounding whitespace. Unknown strings
// resolve to NetworkEmpty.
func Parse(s string) NetworkProtocol {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unix":
		return NetworkUnix
	case "tcp":
		return NetworkTCP
	case "tcp4":
		return NetworkTCP4
	case "tcp6":
		return NetworkTCP6
	case "udp":
		return NetworkUDP
	case "udp4":
		return NetworkUDP4
	case "udp6":
		return NetworkUDP6
	case "ip":
		return NetworkIP
	case "ip4":
		return NetworkIP4
	case "ip6":
		return NetworkIP6
	case "unixgram":
		return NetworkUnixGram
	default:
		return NetworkEmpty
	}
}

// ParseBytes resolves a network byte slice, as Parse does for strings.
func ParseBytes(p []byte) NetworkProtocol {
	return Parse(string(p))
}

// ParseInt64 resolves a numeric protocol value back to its
// NetworkProtocol. Out-of-range values resolve to NetworkEmpty.
func ParseInt64(i int64) NetworkProtocol {
	if i <= 0 || i >= int64(maxProtocol) {
		return NetworkEmpty
	}
	return NetworkProtocol(i)
}
