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

// Package server is the composition root every nalixd-style binary wires
// its registered controllers into: it owns the catalog, the firewall
// limiters, the middleware pipeline and the listener, and turns one
// accepted net.Conn into a fully supervised connection.
package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"

	"github.com/nalix-io/nalix-core/config"
	"github.com/nalix-io/nalix-core/conn"
	"github.com/nalix-io/nalix-core/dispatch"
	"github.com/nalix-io/nalix-core/firewall"
	"github.com/nalix-io/nalix-core/internal/metrics"
	"github.com/nalix-io/nalix-core/listener"
	"github.com/nalix-io/nalix-core/logger"
	"github.com/nalix-io/nalix-core/middleware"
	"github.com/nalix-io/nalix-core/packet/catalog"
	"github.com/nalix-io/nalix-core/pool"
	"github.com/nalix-io/nalix-core/timesync"
)

// Server wires one listener.Listener to one dispatch.Registry through the
// fixed middleware pipeline, plus the firewall limiters and (optionally)
// the Prometheus collector behind the EnableMetrics knob.
type Server struct {
	cfg config.Config
	log logger.Logger

	catalog  *catalog.Catalog
	registry *dispatch.Registry
	pipeline *middleware.Pipeline

	connLimiter *firewall.ConnectionLimiter
	reqLimiter  *firewall.RequestLimiter

	bufPool  *pool.BufferPool
	metrics  *metrics.Collector
	timeSync *timesync.Responder

	ln    *listener.Listener
	lnUDP *listener.UDPListener
}

// New builds a Server around reg: the caller registers its own controllers
// on reg before calling New, which adds the built-in time-sync responder,
// freezes the registry, and assembles the catalog, limiters and pipeline.
// tlsConf may be nil for a plaintext listener.
func New(cfg config.Config, reg *dispatch.Registry, log logger.Logger, tlsConf *tls.Config) (*Server, error) {
	s := &Server{cfg: cfg, log: log, registry: reg}

	s.timeSync = timesync.NewResponder()
	if err := reg.RegisterController(s.timeSync); err != nil {
		return nil, ErrorRegistryFreeze.Error(err)
	}
	reg.Freeze()

	s.catalog = catalog.New()
	catalog.RegisterBuiltins(s.catalog)
	catalog.RegisterBuiltinTransformers(s.catalog)
	s.catalog.Freeze()

	s.bufPool = pool.NewBufferPool(cfg.Listener.SendBufferSize)

	if cfg.Listener.EnableMetrics {
		mc, err := metrics.New("nalix")
		if err != nil {
			return nil, ErrorCollectorInit.Error(err)
		}
		s.metrics = mc
	}

	s.connLimiter = firewall.NewConnectionLimiter(
		context.Background(),
		cfg.Listener.MaxConnectionsPerIp,
		cfg.Listener.InactivityThreshold.Time(),
	)
	s.reqLimiter = firewall.NewRequestLimiter(
		context.Background(),
		cfg.Listener.TimeWindow.Time(),
		cfg.Listener.MaxAllowedRequests,
		cfg.Listener.LockoutDuration.Time(),
	)

	s.pipeline = middleware.New(
		middleware.Decompress(s.catalog, s.bufPool),
		middleware.Decrypt(s.catalog, s.bufPool),
		middleware.Authorize(s.bufPool),
		middleware.RateLimit(s.reqLimiter, s.bufPool),
		middleware.Dispatch(reg, s.catalog, s.bufPool),
	)

	s.ln = listener.New(cfg.Listener, s.connLimiter, tlsConf, s.onAccept)
	if cfg.Listener.EnableUDP {
		s.lnUDP = listener.NewUDP(cfg.Listener, s.connLimiter, s.onDatagram)
	}

	return s, nil
}

// ListenAndServe opens the listener (and the UDP socket when EnableUDP is
// set) and blocks until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.ln.BeginListening(ctx); err != nil {
		return err
	}
	if s.lnUDP != nil {
		if err := s.lnUDP.BeginListening(ctx); err != nil {
			_ = s.ln.EndListening()
			return err
		}
	}
	if s.log != nil {
		s.log.Info(fmt.Sprintf("listening on %s", s.ln.Addr()), nil)
	}

	<-ctx.Done()

	err := s.ln.EndListening()
	if s.lnUDP != nil {
		if e := s.lnUDP.EndListening(); err == nil {
			err = e
		}
	}
	return err
}

// Metrics returns the Prometheus collector this server publishes to, or
// nil when cfg.Listener.EnableMetrics is false.
func (s *Server) Metrics() *metrics.Collector {
	return s.metrics
}

// Addr returns the listener's bound address, or nil before ListenAndServe
// has opened the socket.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

func (s *Server) onAccept(ctx context.Context, c *conn.Connection) {
	if s.metrics != nil {
		s.metrics.ConnectionOpened()
		// RegisterOnState, not RegisterOnClose: the listener already owns
		// the close hook to release this connection's firewall slot, and
		// a second RegisterOnClose call would silently replace it.
		c.RegisterOnState(func(_ *conn.Connection, _, to conn.State) {
			if to == conn.StateDisconnected {
				s.metrics.ConnectionClosed()
			}
		})
	}

	c.RegisterOnReceive(s.handleFrame)
	c.BeginReceive(ctx)
}

// onDatagram feeds one validated UDP frame into the same pipeline TCP
// frames flow through; the connection is the UDP listener's per-peer
// reply path.
func (s *Server) onDatagram(_ context.Context, c *conn.Connection, frame []byte) {
	s.handleFrame(c, frame)
}

func (s *Server) handleFrame(c *conn.Connection, raw []byte) {
	if s.metrics != nil {
		s.metrics.AddBytesReceived(len(raw))
	}

	p, ok := s.catalog.TryDeserialize(raw)
	if !ok {
		return
	}

	opcode := p.Header().OpCode
	meta := dispatch.PacketMetadata{OpCode: opcode}
	if d, found := s.registry.Lookup(opcode); found {
		meta = d.Meta
	}

	pctx := dispatch.NewPacketContext(context.Background(), p, c, meta)
	defer pctx.Cancel()

	err := s.pipeline.Handle(pctx)
	if s.metrics != nil {
		s.metrics.ObserveDispatch(fmt.Sprintf("%d", opcode), 0, err)
	}
	if err != nil && s.log != nil {
		s.log.Error("pipeline handling failed", err)
	}
}
