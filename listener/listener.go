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

// Package listener accepts TCP sockets, gates each peer through the
// firewall's connection limiter, and hands accepted connections to the
// rest of the pipeline.
package listener

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sync"

	"github.com/nalix-io/nalix-core/conn"
	"github.com/nalix-io/nalix-core/firewall"
	"github.com/nalix-io/nalix-core/transport"
)

// AcceptHandler is invoked once per accepted connection, after the
// firewall has admitted it. It is responsible for wiring whatever
// OnReceive/OnState/OnError/OnClose hooks the rest of the pipeline needs
// and for calling c.BeginReceive to start its receive loop; the listener
// itself does none of that so it stays ignorant of dispatch/middleware.
type AcceptHandler func(ctx context.Context, c *conn.Connection)

// Listener owns one TCP listen socket and the accept loop gating new
// connections through a ConnectionLimiter.
type Listener struct {
	cfg     Config
	tlsConf *tls.Config
	limiter *firewall.ConnectionLimiter
	onAccept AcceptHandler

	mu       sync.Mutex
	listener net.Listener
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// New builds a Listener. tlsConf may be nil for a plaintext listener; pass
// the result of a TLSConfig's TLS method to enable TLS.
func New(cfg Config, limiter *firewall.ConnectionLimiter, tlsConf *tls.Config, onAccept AcceptHandler) *Listener {
	return &Listener{
		cfg:      cfg,
		tlsConf:  tlsConf,
		limiter:  limiter,
		onAccept: onAccept,
	}
}

// NewFromTLSConfig is a convenience constructor deriving the *tls.Config
// from this package's declarative TLSConfig, the way server setup is
// expected to configure TLS from a loaded configuration file.
func NewFromTLSConfig(cfg Config, limiter *firewall.ConnectionLimiter, tc *TLSConfig, serverName string, onAccept AcceptHandler) (*Listener, error) {
	var conf *tls.Config
	if tc != nil {
		var err error
		if conf, err = tc.TLS(serverName); err != nil {
			return nil, err
		}
	}
	return New(cfg, limiter, conf, onAccept), nil
}

// BeginListening opens the listen socket and runs the accept loop in a
// background goroutine until ctx is cancelled or EndListening is called.
// It returns once the socket is open and accepting, not once the loop
// exits.
func (l *Listener) BeginListening(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.listener != nil {
		return ErrorAlreadyListening.Error()
	}
	if l.cfg.Port < 0 || l.cfg.Port > 65535 {
		return ErrorInvalidPort.Error()
	}

	var lc net.ListenConfig
	if l.cfg.ReuseAddress {
		lc.Control = reuseAddrControl
	}

	addr := fmt.Sprintf("%s:%d", l.cfg.Address, l.cfg.Port)
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return ErrorListenFailed.Error(err)
	}
	if l.tlsConf != nil {
		ln = tls.NewListener(ln, l.tlsConf)
	}

	lctx, cancel := context.WithCancel(ctx)
	l.listener = ln
	l.cancel = cancel

	l.wg.Add(1)
	go l.acceptLoop(lctx, ln)

	return nil
}

// EndListening stops the accept loop and closes the listen socket.
// Connections already handed to onAccept are left running.
func (l *Listener) EndListening() error {
	l.mu.Lock()
	ln := l.listener
	cancel := l.cancel
	l.listener = nil
	l.cancel = nil
	l.mu.Unlock()

	if ln == nil {
		return ErrorNotListening.Error()
	}

	if cancel != nil {
		cancel()
	}
	err := ln.Close()
	l.wg.Wait()
	return err
}

// Addr returns the bound listen address, or nil if not currently
// listening.
func (l *Listener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.listener == nil {
		return nil
	}
	return l.listener.Addr()
}

func (l *Listener) acceptLoop(ctx context.Context, ln net.Listener) {
	defer l.wg.Done()

	for {
		socket, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				continue
			}
		}

		peer := socket.RemoteAddr().String()
		if l.limiter != nil && !l.limiter.IsConnectionAllowed(peer) {
			_ = socket.Close()
			continue
		}

		applySocketOptions(socket, l.cfg)

		c := conn.New(socket, transport.TCP)
		if l.limiter != nil {
			c.RegisterOnClose(func(_ *conn.Connection, _ string) {
				l.limiter.ConnectionClosed(peer)
			})
		}

		if l.onAccept != nil {
			l.onAccept(ctx, c)
		}
	}
}

// applySocketOptions sets the per-connection knobs that net.Conn exposes
// directly; SO_REUSEADDR (listen-socket scoped, platform-specific) is
// applied earlier via reuseAddrControlFor.
func applySocketOptions(socket net.Conn, cfg Config) {
	raw := socket
	if tlsConn, ok := socket.(*tls.Conn); ok {
		raw = tlsConn.NetConn()
	}

	tc, ok := raw.(*net.TCPConn)
	if !ok {
		return
	}
	_ = tc.SetNoDelay(cfg.NoDelay)
	_ = tc.SetKeepAlive(cfg.KeepAlive)
	if cfg.ReceiveBufferSize > 0 {
		_ = tc.SetReadBuffer(cfg.ReceiveBufferSize)
	}
	if cfg.SendBufferSize > 0 {
		_ = tc.SetWriteBuffer(cfg.SendBufferSize)
	}
}
