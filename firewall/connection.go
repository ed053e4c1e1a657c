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

// Package firewall implements the per-IP connection limiter and the
// sliding-window request limiter with lockout. Both keep their
// per-endpoint entries in the sharded cache table; the connection
// limiter's counters are lock-free atomics so the accept path never
// blocks behind another address.
package firewall

import (
	"context"
	"sync/atomic"
	"time"

	libatm "github.com/nalix-io/nalix-core/atomic"
	libcache "github.com/nalix-io/nalix-core/cache"
)

// ConnectionInfo tracks the connection-limiter state for one client
// address: the live connection count, the daily total with its rollover
// day, and the last-activity stamp the sweep ages entries out by. All
// fields are atomics; admission is a compare-and-swap loop on current, so
// concurrent accepts for one address never serialize.
type ConnectionInfo struct {
	current    atomic.Int64
	totalToday atomic.Int64
	dayOfYear  atomic.Int64

	lastConnectAt libatm.Value[time.Time]
}

func newConnectionInfo() *ConnectionInfo {
	return &ConnectionInfo{
		lastConnectAt: libatm.NewValue[time.Time](),
	}
}

// Current returns the live connection count.
func (i *ConnectionInfo) Current() int {
	return int(i.current.Load())
}

// TotalToday returns the number of connections admitted since the last
// UTC date rollover.
func (i *ConnectionInfo) TotalToday() int {
	return int(i.totalToday.Load())
}

// admit increments current if it is still below max, reporting whether
// the slot was taken.
func (i *ConnectionInfo) admit(max int64) bool {
	for {
		cur := i.current.Load()
		if cur >= max {
			return false
		}
		if i.current.CompareAndSwap(cur, cur+1) {
			return true
		}
	}
}

// release decrements current, clamping at zero.
func (i *ConnectionInfo) release() {
	for {
		cur := i.current.Load()
		if cur <= 0 {
			return
		}
		if i.current.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}

// rollover resets the daily total when the UTC day advanced, then counts
// one admission.
func (i *ConnectionInfo) rollover(now time.Time) {
	day := int64(now.YearDay())
	if i.dayOfYear.Swap(day) != day {
		i.totalToday.Store(0)
	}
	i.totalToday.Add(1)
}

// ConnectionLimiter bounds the number of concurrent connections per
// client address and tracks a resettable daily total.
type ConnectionLimiter struct {
	maxPerIP            int64
	inactivityThreshold time.Duration

	table libcache.Cache[string, *ConnectionInfo]

	stopCleanup context.CancelFunc
}

// NewConnectionLimiter returns a ConnectionLimiter bounding each address
// to maxPerIP concurrent connections, sweeping idle zero-count entries
// after inactivityThreshold. The returned limiter owns a background
// cleanup goroutine; call Close to stop it.
func NewConnectionLimiter(ctx context.Context, maxPerIP int, inactivityThreshold time.Duration) *ConnectionLimiter {
	cctx, cancel := context.WithCancel(ctx)
	l := &ConnectionLimiter{
		maxPerIP:            int64(maxPerIP),
		inactivityThreshold: inactivityThreshold,
		table:               libcache.New[string, *ConnectionInfo](cctx, 0),
		stopCleanup:         cancel,
	}
	go l.cleanupLoop(cctx)
	return l
}

// Close stops the background cleanup goroutine.
func (l *ConnectionLimiter) Close() {
	l.stopCleanup()
}

// info returns the tracked entry for endpoint, inserting a fresh one on
// first contact.
func (l *ConnectionLimiter) info(endpoint string) *ConnectionInfo {
	seed := newConnectionInfo()
	if got, _, loaded := l.table.LoadOrStore(endpoint, seed); loaded {
		return got
	}
	// a miss means our seed is the entry the table kept
	return seed
}

// IsConnectionAllowed atomically takes a connection slot for endpoint if
// one is free below maxPerIP, stamping the activity time and rolling the
// daily total over at the UTC date boundary. It returns false without
// counting when the endpoint is already at the limit.
func (l *ConnectionLimiter) IsConnectionAllowed(endpoint string) bool {
	info := l.info(endpoint)

	if !info.admit(l.maxPerIP) {
		return false
	}

	now := time.Now().UTC()
	info.rollover(now)
	info.lastConnectAt.Store(now)
	return true
}

// ConnectionClosed releases endpoint's connection slot, clamped at 0.
func (l *ConnectionLimiter) ConnectionClosed(endpoint string) {
	if info, _, ok := l.table.Load(endpoint); ok {
		info.release()
	}
}

// Current returns the recorded concurrent-connection count for endpoint.
func (l *ConnectionLimiter) Current(endpoint string) int {
	info, _, ok := l.table.Load(endpoint)
	if !ok {
		return 0
	}
	return info.Current()
}

func (l *ConnectionLimiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

// sweep drops entries with no live connection that have been idle for at
// least the inactivity threshold.
func (l *ConnectionLimiter) sweep() {
	now := time.Now().UTC()
	var stale []string

	l.table.Walk(func(key string, info *ConnectionInfo, _ time.Duration) bool {
		last := info.lastConnectAt.Load()
		if info.current.Load() == 0 && !last.IsZero() && now.Sub(last) >= l.inactivityThreshold {
			stale = append(stale, key)
		}
		return true
	})

	for _, key := range stale {
		l.table.Delete(key)
	}
}
