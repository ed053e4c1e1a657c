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

package conn

import (
	"bufio"
	"context"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/nalix-io/nalix-core/atomic"
	"github.com/nalix-io/nalix-core/cipher"
	"github.com/nalix-io/nalix-core/packet"
	"github.com/nalix-io/nalix-core/transport"
)

// OnReceiveFunc handles one inbound frame's raw bytes (header included).
// The slice is only valid for the duration of the call.
type OnReceiveFunc func(c *Connection, raw []byte)

// OnStateFunc observes every state transition.
type OnStateFunc func(c *Connection, from, to State)

// OnErrorFunc observes receive/send errors that do not by themselves end
// the connection (ErrorFilter already dropped expected shutdown noise).
type OnErrorFunc func(c *Connection, err error)

// OnCloseFunc fires exactly once, after Disconnect has closed the socket.
type OnCloseFunc func(c *Connection, reason string)

// Connection owns one accepted or dialed socket and the framed
// receive/send paths over it.
type Connection struct {
	socket    net.Conn
	reader    *bufio.Reader
	transport transport.Transport

	sendMu sync.Mutex

	stateMu sync.RWMutex
	state   State

	keyMu       sync.RWMutex
	key         [32]byte
	hasKey      bool
	algorithm   cipher.Algorithm

	endpoint    string
	connectedAt time.Time

	permission atomic.Value[uint8]

	receiveOnce sync.Once
	cancel      context.CancelFunc

	onReceive OnReceiveFunc
	onState   OnStateFunc
	onError   OnErrorFunc
	onClose   OnCloseFunc
}

// New wraps an accepted or dialed socket. The connection starts in
// StateConnecting; BeginReceive moves it to StateConnected.
func New(socket net.Conn, tr transport.Transport) *Connection {
	return &Connection{
		socket:      socket,
		reader:      bufio.NewReaderSize(socket, packet.MaxPacketSize),
		transport:   tr,
		state:       StateConnecting,
		algorithm:   cipher.AlgorithmXTEA,
		endpoint:    socket.RemoteAddr().String(),
		connectedAt: time.Now().UTC(),
		permission:  atomic.NewValue[uint8](),
	}
}

// PermissionLevel returns the connection's current permission level,
// compared by the middleware pipeline's authorize stage against a
// handler's declared requirement. Zero until raised by application code
// (typically after an application-level authentication exchange riding
// over a Directive or application packet, owned by a layer above this
// one).
func (c *Connection) PermissionLevel() uint8 {
	return c.permission.Load()
}

// SetPermissionLevel raises or lowers the connection's permission level.
func (c *Connection) SetPermissionLevel(level uint8) {
	c.permission.Store(level)
}

// RegisterOnReceive sets the inbound frame handler.
func (c *Connection) RegisterOnReceive(f OnReceiveFunc) { c.onReceive = f }

// RegisterOnState sets the state-transition observer.
func (c *Connection) RegisterOnState(f OnStateFunc) { c.onState = f }

// RegisterOnError sets the non-fatal error observer.
func (c *Connection) RegisterOnError(f OnErrorFunc) { c.onError = f }

// RegisterOnClose sets the close observer.
func (c *Connection) RegisterOnClose(f OnCloseFunc) { c.onClose = f }

// Endpoint returns the remote peer's address string.
func (c *Connection) Endpoint() string { return c.endpoint }

// ConnectedAt returns the UTC timestamp the connection was created.
func (c *Connection) ConnectedAt() time.Time { return c.connectedAt }

// Transport reports whether this connection runs over TCP or UDP.
func (c *Connection) Transport() transport.Transport { return c.transport }

// State returns the current lifecycle state.
func (c *Connection) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

// setState performs a one-way transition and notifies OnState. It is a
// no-op (returns false) if next does not follow the current state.
func (c *Connection) setState(next State) bool {
	c.stateMu.Lock()
	cur := c.state
	if !cur.canTransition(next) {
		c.stateMu.Unlock()
		return false
	}
	c.state = next
	c.stateMu.Unlock()

	if c.onState != nil {
		c.onState(c, cur, next)
	}
	return true
}

// EncryptionKey returns the 32-byte per-connection symmetric key set by
// the handshake middleware, and whether a handshake has completed.
func (c *Connection) EncryptionKey() (key [32]byte, ok bool) {
	c.keyMu.RLock()
	defer c.keyMu.RUnlock()
	return c.key, c.hasKey
}

// SetEncryptionKey records the key and algorithm negotiated by the
// handshake, and moves the connection to StateAuthenticated.
func (c *Connection) SetEncryptionKey(key [32]byte, alg cipher.Algorithm) {
	c.keyMu.Lock()
	c.key = key
	c.hasKey = true
	c.algorithm = alg
	c.keyMu.Unlock()

	c.setState(StateAuthenticated)
}

// Encryption returns the symmetric algorithm currently in use (XTEA
// before a handshake completes).
func (c *Connection) Encryption() cipher.Algorithm {
	c.keyMu.RLock()
	defer c.keyMu.RUnlock()
	return c.algorithm
}

// BeginReceive starts the asynchronous receive loop. Safe to call at most
// once; later calls are no-ops.
func (c *Connection) BeginReceive(ctx context.Context) {
	c.receiveOnce.Do(func() {
		rctx, cancel := context.WithCancel(ctx)
		c.cancel = cancel
		c.setState(StateConnected)
		go c.receiveLoop(rctx)
	})
}

// Send writes the full buffer atomically under the send mutex. It never
// splits the write; on error the connection is left to the caller to
// disconnect.
func (c *Connection) Send(data []byte) (int, error) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	return c.socket.Write(data)
}

// Disconnect transitions to StateDisconnected, stops the receive loop,
// closes the socket and fires OnClose. Idempotent.
func (c *Connection) Disconnect(reason string) error {
	if !c.setState(StateDisconnected) {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	err := c.socket.Close()

	if c.onClose != nil {
		c.onClose(c, reason)
	}

	return ErrorFilter(err)
}

// receiveLoop implements the framed read loop: parse the 2-byte length
// prefix, read the remaining Length-2 bytes, hand the full frame to
// OnReceive, repeat until the context is cancelled or the socket errors.
func (c *Connection) receiveLoop(ctx context.Context) {
	defer func() { _ = c.Disconnect("receive loop ended") }()

	header := make([]byte, 2)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if _, err := readFull(c.reader, header[:2]); err != nil {
			c.reportError(err)
			return
		}

		length := int(header[0]) | int(header[1])<<8
		if length < packet.HeaderSize {
			c.reportError(packet.ErrorDataMismatch.Error())
			return
		}
		if length > packet.MaxPacketSize {
			c.reportError(packet.ErrorDataTooLarge.Error())
			return
		}

		frame := make([]byte, length)
		frame[0], frame[1] = header[0], header[1]

		if _, err := readFull(c.reader, frame[2:]); err != nil {
			c.reportError(err)
			return
		}

		if c.onReceive != nil {
			c.onReceive(c, frame)
		}
	}
}

func (c *Connection) reportError(err error) {
	if filtered := ErrorFilter(err); filtered != nil && c.onError != nil {
		c.onError(c, filtered)
	}
}

// readFull fills buf completely or returns the first read error,
// mirroring io.ReadFull without importing it twice across this file.
func readFull(r *bufio.Reader, buf []byte) (int, error) {
	read := 0
	for read < len(buf) {
		n, err := r.Read(buf[read:])
		read += n
		if err != nil {
			return read, err
		}
	}
	return read, nil
}

// ErrorFilter drops the expected "use of closed network connection" noise
// a Disconnect-triggered Close produces on a concurrently blocked Read,
// the same filtering the socket package applies at its own read/write
// boundary.
func ErrorFilter(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "use of closed network connection") {
		return nil
	}
	return err
}
