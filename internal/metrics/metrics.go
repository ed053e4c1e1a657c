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

// Package metrics wires the connection, firewall and dispatch counters
// behind the EnableMetrics knob into a dedicated prometheus.Registry,
// isolated from the global default registry: one named, labelled
// collector per concern, registered once and exposed over HTTP via
// promhttp.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultDurationBuckets is the default five-bucket shape used for
// latency histograms.
var DefaultDurationBuckets = []float64{0.1, 0.3, 1.2, 5, 10}

// Collector holds every counter, gauge and histogram this framework
// publishes, all registered against one private registry so a process can
// run more than one Collector (for tests, or multiple listeners) without
// global-registry collisions.
type Collector struct {
	Registry *prometheus.Registry

	connectionsOpened prometheus.Counter
	connectionsClosed prometheus.Counter
	connectionsActive prometheus.Gauge

	firewallRejections *prometheus.CounterVec

	dispatchLatency *prometheus.HistogramVec
	dispatchErrors  *prometheus.CounterVec

	bytesSent     prometheus.Counter
	bytesReceived prometheus.Counter
}

// New builds a Collector with every metric registered under namespace, and
// returns the registration error from the first collector that failed to
// register rather than panicking, so callers can decide whether a
// collision is fatal.
func New(namespace string) (*Collector, error) {
	c := &Collector{
		Registry: prometheus.NewRegistry(),

		connectionsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_opened_total",
			Help:      "Total number of accepted connections.",
		}),
		connectionsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_closed_total",
			Help:      "Total number of connections that have been disconnected.",
		}),
		connectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Number of connections currently open.",
		}),
		firewallRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "firewall_rejections_total",
			Help:      "Total number of connections or requests rejected by the firewall.",
		}, []string{"reason"}),
		dispatchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent inside a registered handler, by opcode.",
			Buckets:   DefaultDurationBuckets,
		}, []string{"opcode"}),
		dispatchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_errors_total",
			Help:      "Total number of handler invocations that returned an error, by opcode.",
		}, []string{"opcode"}),
		bytesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_sent_total",
			Help:      "Total number of payload bytes written to connections.",
		}),
		bytesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_received_total",
			Help:      "Total number of payload bytes read from connections.",
		}),
	}

	collectors := []prometheus.Collector{
		c.connectionsOpened,
		c.connectionsClosed,
		c.connectionsActive,
		c.firewallRejections,
		c.dispatchLatency,
		c.dispatchErrors,
		c.bytesSent,
		c.bytesReceived,
	}

	for _, col := range collectors {
		if err := c.Registry.Register(col); err != nil {
			return nil, ErrorRegisterCollector.Error(err)
		}
	}

	return c, nil
}

// Handler returns the HTTP handler serving this Collector's registry in the
// Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})
}

// ConnectionOpened records one accepted connection.
func (c *Collector) ConnectionOpened() {
	c.connectionsOpened.Inc()
	c.connectionsActive.Inc()
}

// ConnectionClosed records one connection leaving the Connected state.
func (c *Collector) ConnectionClosed() {
	c.connectionsClosed.Inc()
	c.connectionsActive.Dec()
}

// FirewallRejection records one rejection, labelled by the reason the
// firewall gave (e.g. "per_ip_limit", "rate_limit").
func (c *Collector) FirewallRejection(reason string) {
	c.firewallRejections.WithLabelValues(reason).Inc()
}

// ObserveDispatch records one handler invocation's duration and, if err is
// non-nil, counts it against dispatchErrors as well.
func (c *Collector) ObserveDispatch(opcode string, seconds float64, err error) {
	c.dispatchLatency.WithLabelValues(opcode).Observe(seconds)
	if err != nil {
		c.dispatchErrors.WithLabelValues(opcode).Inc()
	}
}

// AddBytesSent accrues n bytes to the outbound counter.
func (c *Collector) AddBytesSent(n int) {
	if n > 0 {
		c.bytesSent.Add(float64(n))
	}
}

// AddBytesReceived accrues n bytes to the inbound counter.
func (c *Collector) AddBytesReceived(n int) {
	if n > 0 {
		c.bytesReceived.Add(float64(n))
	}
}
