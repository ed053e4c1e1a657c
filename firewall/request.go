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

package firewall

import (
	"context"
	"sync"
	"time"

	libatm "github.com/nalix-io/nalix-core/atomic"
	libcache "github.com/nalix-io/nalix-core/cache"
)

// RequestInfo tracks the sliding-window request-limiter state for one
// client address. The window itself is a timestamp slice under a
// per-entry mutex (eviction and the capacity decision have to be one
// unit); the lockout deadline and last-seen stamp are atomics so the
// common "still locked out" rejection never takes the lock.
type RequestInfo struct {
	mu         sync.Mutex
	timestamps []time.Time

	blockedUntil libatm.Value[time.Time]
	lastSeen     libatm.Value[time.Time]
}

func newRequestInfo() *RequestInfo {
	return &RequestInfo{
		blockedUntil: libatm.NewValue[time.Time](),
		lastSeen:     libatm.NewValue[time.Time](),
	}
}

// RequestLimiter enforces a sliding window of timeWindow capped at
// maxAllowed requests, locking out an address for lockoutDuration on
// overflow.
type RequestLimiter struct {
	timeWindow      time.Duration
	maxAllowed      int
	lockoutDuration time.Duration

	table libcache.Cache[string, *RequestInfo]

	stopCleanup context.CancelFunc
}

// NewRequestLimiter returns a RequestLimiter with the given window,
// capacity and lockout duration.
func NewRequestLimiter(ctx context.Context, timeWindow time.Duration, maxAllowed int, lockoutDuration time.Duration) *RequestLimiter {
	cctx, cancel := context.WithCancel(ctx)
	l := &RequestLimiter{
		timeWindow:      timeWindow,
		maxAllowed:      maxAllowed,
		lockoutDuration: lockoutDuration,
		table:           libcache.New[string, *RequestInfo](cctx, 0),
		stopCleanup:     cancel,
	}
	go l.cleanupLoop(cctx)
	return l
}

// Close stops the background cleanup goroutine.
func (l *RequestLimiter) Close() {
	l.stopCleanup()
}

// info returns the tracked entry for endpoint, inserting a fresh one on
// first contact.
func (l *RequestLimiter) info(endpoint string) *RequestInfo {
	seed := newRequestInfo()
	if got, _, loaded := l.table.LoadOrStore(endpoint, seed); loaded {
		return got
	}
	// a miss means our seed is the entry the table kept
	return seed
}

// IsAllowed implements the sliding-window admission algorithm: a request
// already under lockout is rejected without touching the window;
// otherwise timestamps older than now-timeWindow are evicted, and the
// request is admitted only if the window still has room. An overflowing
// request arms the lockout and is NOT counted toward the next window.
func (l *RequestLimiter) IsAllowed(endpoint string) bool {
	info := l.info(endpoint)

	now := time.Now()
	info.lastSeen.Store(now)

	if now.Before(info.blockedUntil.Load()) {
		return false
	}

	info.mu.Lock()
	defer info.mu.Unlock()

	cutoff := now.Add(-l.timeWindow)
	kept := info.timestamps[:0]
	for _, ts := range info.timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	info.timestamps = kept

	if len(info.timestamps) >= l.maxAllowed {
		info.blockedUntil.Store(now.Add(l.lockoutDuration))
		return false
	}

	info.timestamps = append(info.timestamps, now)
	return true
}

func (l *RequestLimiter) cleanupLoop(ctx context.Context) {
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

// sweep drops entries whose window is empty, whose lockout has elapsed,
// and that have been quiet for at least one full window.
func (l *RequestLimiter) sweep() {
	now := time.Now()
	var stale []string

	l.table.Walk(func(key string, info *RequestInfo, _ time.Duration) bool {
		info.mu.Lock()
		empty := len(info.timestamps) == 0
		info.mu.Unlock()

		idle := empty &&
			now.After(info.blockedUntil.Load()) &&
			now.Sub(info.lastSeen.Load()) >= l.timeWindow

		if idle {
			stale = append(stale, key)
		}
		return true
	})

	for _, key := range stale {
		l.table.Delete(key)
	}
}
