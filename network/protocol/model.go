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
	"reflect"

	libmap "github.com/go-viper/mapstructure/v2"
)

// ViperDecoderHook returns a DecodeHookFuncType for Viper configuration
// decoding: strings parse case-insensitively (unknown strings decode to
// NetworkEmpty without error), numeric values map through ParseInt64 and
// fail on out-of-range input. Values whose target is not NetworkProtocol
// pass through untouched.
func ViperDecoderHook() libmap.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		// Check if the target type matches the expected one
		if to != reflect.TypeOf(NetworkProtocol(0)) {
			return data, nil
		}

		switch from.Kind() {
		case reflect.String:
			if s, k := data.(string); k {
				return Parse(s), nil
			}

		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if v := reflect.ValueOf(data); v.CanInt() {
				if r := ParseInt64(v.Int()); r != NetworkEmpty {
					return r, nil
				}
				return nil, fmt.Errorf("invalid value '%v' for network protocol", data)
			}

		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if v := reflect.ValueOf(data); v.CanUint() {
				if r := ParseInt64(int64(v.Uint())); r != NetworkEmpty {
					return r, nil
				}
				return nil, fmt.Errorf("invalid value '%v' for network protocol", data)
			}
		}

		// Pass through anything else unchanged
		return data, nil
	}
}
