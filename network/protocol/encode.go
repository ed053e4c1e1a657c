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

package protocol

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// unquote strips one surrounding level of double or single quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}

func (p *NetworkProtocol) unmarshall(s string) error {
	*p = Parse(unquote(strings.TrimSpace(s)))
	return nil
}

// MarshalJSON encodes the protocol as its quoted network string.
func (p NetworkProtocol) MarshalJSON() ([]byte, error) {
	s := p.String()
	b := make([]byte, 0, len(s)+2)
	b = append(b, '"')
	b = append(b, []byte(s)...)
	b = append(b, '"')
	return b, nil
}

// UnmarshalJSON parses a quoted network string; unknown values resolve to
// NetworkEmpty without error.
func (p *NetworkProtocol) UnmarshalJSON(bytes []byte) error {
	return p.unmarshall(string(bytes))
}

// MarshalYAML encodes the protocol as its network string.
func (p NetworkProtocol) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// UnmarshalYAML parses a network string node.
func (p *NetworkProtocol) UnmarshalYAML(value *yaml.Node) error {
	return p.unmarshall(value.Value)
}

// MarshalTOML encodes the protocol as its network string bytes.
func (p NetworkProtocol) MarshalTOML() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalTOML parses a network string or byte slice value.
func (p *NetworkProtocol) UnmarshalTOML(i interface{}) error {
	if b, k := i.([]byte); k {
		return p.unmarshall(string(b))
	}
	if s, k := i.(string); k {
		return p.unmarshall(s)
	}
	return fmt.Errorf("protocol value is not in valid format")
}

// MarshalText encodes the protocol as its network string bytes.
func (p NetworkProtocol) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a network string.
func (p *NetworkProtocol) UnmarshalText(bytes []byte) error {
	return p.unmarshall(string(bytes))
}

// MarshalCBOR encodes the protocol as its network string bytes.
func (p NetworkProtocol) MarshalCBOR() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalCBOR parses a network string from its encoded bytes.
func (p *NetworkProtocol) UnmarshalCBOR(bytes []byte) error {
	return p.unmarshall(string(bytes))
}
