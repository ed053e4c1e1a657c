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

package listener

import "github.com/nalix-io/nalix-core/duration"

// Config holds everything BeginListening needs to open a socket, gate
// accepted peers through the firewall, and tune the kernel-level knobs a
// high-connection-count server cares about.
type Config struct {
	Address string `mapstructure:"address" yaml:"address"`
	Port    int    `mapstructure:"port" yaml:"port" validate:"gte=0,lte=65535"`
	Backlog int    `mapstructure:"backlog" yaml:"backlog" validate:"gte=0"`

	NoDelay      bool `mapstructure:"no_delay" yaml:"no_delay"`
	KeepAlive    bool `mapstructure:"keep_alive" yaml:"keep_alive"`
	ReuseAddress bool `mapstructure:"reuse_address" yaml:"reuse_address"`

	// EnableUDP additionally binds a UDP socket on the same address and
	// port, serving one full packet per datagram.
	EnableUDP bool `mapstructure:"enable_udp" yaml:"enable_udp"`

	ReceiveBufferSize int `mapstructure:"receive_buffer_size" yaml:"receive_buffer_size" validate:"gte=0"`
	SendBufferSize    int `mapstructure:"send_buffer_size" yaml:"send_buffer_size" validate:"gte=0"`

	MaxConnectionsPerIp int               `mapstructure:"max_connections_per_ip" yaml:"max_connections_per_ip" validate:"gte=0"`
	MaxAllowedRequests  int               `mapstructure:"max_allowed_requests" yaml:"max_allowed_requests" validate:"gte=0"`
	TimeWindow          duration.Duration `mapstructure:"time_window" yaml:"time_window"`
	LockoutDuration      duration.Duration `mapstructure:"lockout_duration" yaml:"lockout_duration"`
	InactivityThreshold  duration.Duration `mapstructure:"inactivity_threshold" yaml:"inactivity_threshold"`

	CompressionThresholdBytes int `mapstructure:"compression_threshold_bytes" yaml:"compression_threshold_bytes" validate:"gte=0"`

	EnableMetrics bool `mapstructure:"enable_metrics" yaml:"enable_metrics"`
	EnableLogging bool `mapstructure:"enable_logging" yaml:"enable_logging"`
}

// DefaultConfig returns the conservative defaults a standalone listener
// falls back to when Config's zero value would otherwise disable every
// firewall and socket tuning knob.
func DefaultConfig() Config {
	return Config{
		Address:              "0.0.0.0",
		Port:                 7878,
		Backlog:              1024,
		NoDelay:              true,
		KeepAlive:            true,
		ReuseAddress:         true,
		ReceiveBufferSize:    256 * 1024,
		SendBufferSize:       256 * 1024,
		MaxConnectionsPerIp:  100,
		MaxAllowedRequests:   1000,
		TimeWindow:           duration.Minutes(1),
		LockoutDuration:      duration.Minutes(5),
		InactivityThreshold:  duration.Minutes(10),
		CompressionThresholdBytes: 512,
		EnableMetrics:        false,
		EnableLogging:        true,
	}
}
