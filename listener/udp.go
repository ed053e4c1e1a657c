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

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/nalix-io/nalix-core/conn"
	"github.com/nalix-io/nalix-core/firewall"
	"github.com/nalix-io/nalix-core/packet"
	"github.com/nalix-io/nalix-core/transport"
)

// FrameHandler receives one validated datagram frame. The slice is only
// valid for the duration of the call; the connection is the per-peer reply
// path (its Send writes a datagram back to the peer).
type FrameHandler func(ctx context.Context, c *conn.Connection, frame []byte)

// udpConn adapts one peer of a shared net.PacketConn to the net.Conn
// surface conn.Connection expects: writes become datagrams addressed to
// the peer, reads are never used (the UDPListener owns the socket's read
// side).
type udpConn struct {
	pc   net.PacketConn
	peer net.Addr
}

func (u *udpConn) Read(p []byte) (int, error)         { return 0, io.EOF }
func (u *udpConn) Write(p []byte) (int, error)        { return u.pc.WriteTo(p, u.peer) }
func (u *udpConn) Close() error                       { return nil }
func (u *udpConn) LocalAddr() net.Addr                { return u.pc.LocalAddr() }
func (u *udpConn) RemoteAddr() net.Addr               { return u.peer }
func (u *udpConn) SetDeadline(t time.Time) error      { return nil }
func (u *udpConn) SetReadDeadline(t time.Time) error  { return nil }
func (u *udpConn) SetWriteDeadline(t time.Time) error { return nil }

// udpPeer tracks one remote endpoint's reply connection and last activity,
// so idle peers can be swept on the firewall's cleanup cadence.
type udpPeer struct {
	c        *conn.Connection
	lastSeen time.Time
}

// UDPListener reads length-prefixed packets one-per-datagram from a UDP
// socket. A datagram whose declared Length does not match its size is
// dropped without a response. Peers are gated through the same
// ConnectionLimiter as TCP connections and tracked until idle for
// InactivityThreshold.
type UDPListener struct {
	cfg     Config
	limiter *firewall.ConnectionLimiter
	onFrame FrameHandler

	mu     sync.Mutex
	pc     net.PacketConn
	cancel context.CancelFunc
	wg     sync.WaitGroup
	peers  map[string]*udpPeer
}

// NewUDP builds a UDPListener delivering validated frames to onFrame.
func NewUDP(cfg Config, limiter *firewall.ConnectionLimiter, onFrame FrameHandler) *UDPListener {
	return &UDPListener{
		cfg:     cfg,
		limiter: limiter,
		onFrame: onFrame,
		peers:   make(map[string]*udpPeer),
	}
}

// BeginListening opens the UDP socket and starts the read loop. It returns
// once the socket is open, not once the loop exits.
func (l *UDPListener) BeginListening(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pc != nil {
		return ErrorAlreadyListening.Error()
	}
	if l.cfg.Port < 0 || l.cfg.Port > 65535 {
		return ErrorInvalidPort.Error()
	}

	var lc net.ListenConfig
	if l.cfg.ReuseAddress {
		lc.Control = reuseAddrControl
	}

	pc, err := lc.ListenPacket(ctx, "udp", fmt.Sprintf("%s:%d", l.cfg.Address, l.cfg.Port))
	if err != nil {
		return ErrorListenFailed.Error(err)
	}

	if uc, ok := pc.(*net.UDPConn); ok {
		if l.cfg.ReceiveBufferSize > 0 {
			_ = uc.SetReadBuffer(l.cfg.ReceiveBufferSize)
		}
		if l.cfg.SendBufferSize > 0 {
			_ = uc.SetWriteBuffer(l.cfg.SendBufferSize)
		}
	}

	lctx, cancel := context.WithCancel(ctx)
	l.pc = pc
	l.cancel = cancel

	l.wg.Add(2)
	go l.readLoop(lctx, pc)
	go l.sweepLoop(lctx)

	return nil
}

// EndListening stops the read loop and closes the socket.
func (l *UDPListener) EndListening() error {
	l.mu.Lock()
	pc := l.pc
	cancel := l.cancel
	l.pc = nil
	l.cancel = nil
	l.mu.Unlock()

	if pc == nil {
		return ErrorNotListening.Error()
	}

	if cancel != nil {
		cancel()
	}
	err := pc.Close()
	l.wg.Wait()

	l.mu.Lock()
	for peer, p := range l.peers {
		_ = p.c.Disconnect("listener stopped")
		delete(l.peers, peer)
	}
	l.mu.Unlock()

	return err
}

// Addr returns the bound socket address, or nil if not currently
// listening.
func (l *UDPListener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pc == nil {
		return nil
	}
	return l.pc.LocalAddr()
}

func (l *UDPListener) readLoop(ctx context.Context, pc net.PacketConn) {
	defer l.wg.Done()

	buf := make([]byte, packet.MaxPacketSize)

	for {
		n, peer, err := pc.ReadFrom(buf)
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				if conn.ErrorFilter(err) == nil {
					return
				}
				continue
			}
		}

		if n < packet.HeaderSize {
			continue
		}
		// one full packet per datagram: the declared Length must equal the
		// datagram size exactly
		length := int(buf[0]) | int(buf[1])<<8
		if length != n {
			continue
		}

		c, admitted := l.peerConn(pc, peer)
		if !admitted {
			continue
		}

		if l.onFrame != nil {
			l.onFrame(ctx, c, buf[:n])
		}
	}
}

// peerConn returns the cached reply connection for peer, creating and
// firewall-gating it on first contact.
func (l *UDPListener) peerConn(pc net.PacketConn, peer net.Addr) (*conn.Connection, bool) {
	key := peer.String()

	l.mu.Lock()
	defer l.mu.Unlock()

	if p, ok := l.peers[key]; ok {
		p.lastSeen = time.Now()
		return p.c, true
	}

	if l.limiter != nil && !l.limiter.IsConnectionAllowed(key) {
		return nil, false
	}

	c := conn.New(&udpConn{pc: pc, peer: peer}, transport.UDP)
	if l.limiter != nil {
		c.RegisterOnClose(func(_ *conn.Connection, _ string) {
			l.limiter.ConnectionClosed(key)
		})
	}

	l.peers[key] = &udpPeer{c: c, lastSeen: time.Now()}
	return c, true
}

// sweepLoop drops peers idle for longer than InactivityThreshold, on the
// same minute cadence the firewall uses for its own cleanup.
func (l *UDPListener) sweepLoop(ctx context.Context) {
	defer l.wg.Done()

	idle := l.cfg.InactivityThreshold.Time()
	if idle <= 0 {
		idle = 10 * time.Minute
	}

	tick := time.NewTicker(time.Minute)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			cutoff := time.Now().Add(-idle)

			l.mu.Lock()
			for key, p := range l.peers {
				if p.lastSeen.Before(cutoff) {
					_ = p.c.Disconnect("idle")
					delete(l.peers, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
