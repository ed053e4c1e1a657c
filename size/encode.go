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

package size

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

func (s *Size) unmarshall(val []byte) error {
	if v, e := parseString(string(val)); e != nil {
		return e
	} else {
		*s = v
		return nil
	}
}

// MarshalJSON encodes the size as its quoted human-readable string.
func (s Size) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses a quoted human-readable size string.
func (s *Size) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	return s.unmarshall([]byte(str))
}

// MarshalYAML encodes the size as its human-readable string.
func (s Size) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML parses a human-readable size string.
func (s *Size) UnmarshalYAML(value *yaml.Node) error {
	return s.unmarshall([]byte(value.Value))
}

// MarshalTOML encodes the size as its quoted human-readable string.
func (s Size) MarshalTOML() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalTOML parses a human-readable size from a TOML string or byte
// slice value.
func (s *Size) UnmarshalTOML(i interface{}) error {
	if b, k := i.([]byte); k {
		return s.unmarshall(b)
	}
	if str, k := i.(string); k {
		return s.unmarshall([]byte(str))
	}
	return fmt.Errorf("size value is not in valid format")
}

// MarshalText encodes the size as its human-readable string.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a human-readable size string.
func (s *Size) UnmarshalText(bytes []byte) error {
	return s.unmarshall(bytes)
}

// MarshalCBOR encodes the size as its human-readable string.
func (s Size) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(s.String())
}

// UnmarshalCBOR parses a human-readable size string from CBOR.
func (s *Size) UnmarshalCBOR(bytes []byte) error {
	var str string
	if err := cbor.Unmarshal(bytes, &str); err != nil {
		return err
	}
	return s.unmarshall([]byte(str))
}

// MarshalBinary encodes the size as its human-readable string bytes.
func (s Size) MarshalBinary() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalBinary parses a human-readable size string from its binary
// form.
func (s *Size) UnmarshalBinary(bytes []byte) error {
	return s.unmarshall(bytes)
}
