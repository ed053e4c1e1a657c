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

// Package config collects the listener, firewall and logging knobs into
// one structure, loadable from any spf13/viper source and
// validated with go-playground/validator tags before anything is built
// from it.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	liberr "github.com/nalix-io/nalix-core/errors"
	"github.com/nalix-io/nalix-core/listener"
	"github.com/nalix-io/nalix-core/logger/level"
)

// Config is the top-level, file-loadable configuration for one nalixd-style
// process: the socket/firewall knobs of listener.Config plus the ambient
// logging level.
type Config struct {
	Listener listener.Config `mapstructure:"listener" yaml:"listener"`
	LogLevel level.Level     `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns a Config seeded with listener.DefaultConfig and an info
// log level.
func Default() Config {
	return Config{
		Listener: listener.DefaultConfig(),
		LogLevel: level.InfoLevel,
	}
}

// Validate runs struct-tag validation over Config, aggregating every
// failing field into one returned error rather than stopping at the
// first.
func (c Config) Validate() liberr.Error {
	val := validator.New()
	err := val.Struct(c)
	if err == nil {
		return nil
	}

	if _, ok := err.(*validator.InvalidValidationError); ok {
		return ErrorValidateConfig.Error(err)
	}

	var combined error
	for _, fe := range err.(validator.ValidationErrors) {
		fieldErr := fmt.Errorf("config field '%s' failed constraint '%s'", fe.Namespace(), fe.ActualTag())
		if combined == nil {
			combined = fieldErr
		} else {
			combined = fmt.Errorf("%w; %w", combined, fieldErr)
		}
	}

	return ErrorValidateConfig.Error(combined)
}

// Load unmarshals v into a new Config and validates the result, the same
// two-step shape every config section here follows: Unmarshal first,
// Validate second, never trusting a loaded config unvalidated.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ErrorLoadConfig.Error(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
