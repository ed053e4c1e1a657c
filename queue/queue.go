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

// Package queue implements the multi-level priority FIFO that sits between
// the receive loop and the worker pool: one ring per packet.Priority level,
// drained highest level first, with an optional aging policy to bound
// starvation of lower levels under sustained high-priority load.
package queue

import (
	"container/list"
	"sync"
	"time"

	"github.com/nalix-io/nalix-core/atomic"
	"github.com/nalix-io/nalix-core/duration"
	"github.com/nalix-io/nalix-core/packet"
)

// Item pairs a packet with the context it was received under and the time
// it was enqueued, so TryDequeue can both return it and decide whether it
// has aged past AgeBoostThreshold.
type Item struct {
	Packet    packet.Packet
	Context   interface{}
	enqueued  time.Time
	priority  packet.Priority
}

// levelCount is the number of distinct packet.Priority levels.
const levelCount = 4

func levelIndex(p packet.Priority) int {
	switch p {
	case packet.PriorityUrgent:
		return 0
	case packet.PriorityHigh:
		return 1
	case packet.PriorityNormal:
		return 2
	default:
		return 3
	}
}

func levelPriority(idx int) packet.Priority {
	switch idx {
	case 0:
		return packet.PriorityUrgent
	case 1:
		return packet.PriorityHigh
	case 2:
		return packet.PriorityNormal
	default:
		return packet.PriorityLow
	}
}

// LevelStats are the sliding counters tracked per priority level:
// enqueued, dequeued, expired (timed out while queued) and rejected
// (enqueued against a full level).
type LevelStats struct {
	Enqueued atomic.Value[uint64]
	Dequeued atomic.Value[uint64]
	Expired  atomic.Value[uint64]
	Rejected atomic.Value[uint64]
}

func newLevelStats() LevelStats {
	return LevelStats{
		Enqueued: atomic.NewValue[uint64](),
		Dequeued: atomic.NewValue[uint64](),
		Expired:  atomic.NewValue[uint64](),
		Rejected: atomic.NewValue[uint64](),
	}
}

// Config configures a Queue. Capacity of 0 means a level never rejects on
// size. AgeBoostThreshold of 0 (duration.Duration's zero value) disables
// aging entirely — the Open Question this module records as "disabled by
// default" (promotion is opt-in, not automatic).
type Config struct {
	Capacity          int
	AgeBoostThreshold duration.Duration
	HandlerTimeout    duration.Duration
}

// Queue is the multi-level priority FIFO scheduling inbound packets for
// dispatch.
type Queue struct {
	cfg Config

	mu     sync.Mutex
	levels [levelCount]*list.List

	stats [levelCount]LevelStats
}

// New returns an empty Queue configured per cfg.
func New(cfg Config) *Queue {
	q := &Queue{cfg: cfg}
	for i := range q.levels {
		q.levels[i] = list.New()
		q.stats[i] = newLevelStats()
	}
	return q
}

// Enqueue appends p to the FIFO for p.Header().Priority, rejecting it if
// that level is at Capacity (when Capacity > 0).
func (q *Queue) Enqueue(p packet.Packet, ctx interface{}) bool {
	idx := levelIndex(p.Header().Priority)

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.cfg.Capacity > 0 && q.levels[idx].Len() >= q.cfg.Capacity {
		q.stats[idx].Rejected.Store(q.stats[idx].Rejected.Load() + 1)
		return false
	}

	q.levels[idx].PushBack(&Item{
		Packet:   p,
		Context:  ctx,
		enqueued: time.Now(),
		priority: p.Header().Priority,
	})
	q.stats[idx].Enqueued.Store(q.stats[idx].Enqueued.Load() + 1)
	return true
}

// TryDequeue returns the oldest item from the highest non-empty priority
// level, promoting items that have aged past AgeBoostThreshold by one
// level first. It returns ok=false when every level is empty.
func (q *Queue) TryDequeue() (item *Item, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.promoteAgedLocked()

	for idx := 0; idx < levelCount; idx++ {
		front := q.levels[idx].Front()
		if front == nil {
			continue
		}
		q.levels[idx].Remove(front)
		it := front.Value.(*Item)
		q.stats[idx].Dequeued.Store(q.stats[idx].Dequeued.Load() + 1)
		return it, true
	}

	return nil, false
}

// promoteAgedLocked moves items that have waited longer than
// AgeBoostThreshold up one priority level (toward index 0 / Urgent). Aging
// is disabled when AgeBoostThreshold is the zero duration.
func (q *Queue) promoteAgedLocked() {
	if q.cfg.AgeBoostThreshold.Time() <= 0 {
		return
	}

	now := time.Now()
	for idx := levelCount - 1; idx > 0; idx-- {
		lvl := q.levels[idx]
		var next *list.Element
		for e := lvl.Front(); e != nil; e = next {
			next = e.Next()
			it := e.Value.(*Item)
			if now.Sub(it.enqueued) < q.cfg.AgeBoostThreshold.Time() {
				break
			}
			lvl.Remove(e)
			it.priority = levelPriority(idx - 1)
			q.levels[idx-1].PushBack(it)
		}
	}
}

// ExpireOlderThan walks every level and removes items whose enqueue time
// is older than deadline, counting them as Expired. Intended to be called
// by a worker that enforces HandlerTimeout while a packet still sits
// queued (it never exceeded the timeout while being handled — it never
// got a handler).
func (q *Queue) ExpireOlderThan(deadline time.Time) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	expired := 0
	for idx := range q.levels {
		lvl := q.levels[idx]
		var next *list.Element
		for e := lvl.Front(); e != nil; e = next {
			next = e.Next()
			it := e.Value.(*Item)
			if it.enqueued.Before(deadline) {
				lvl.Remove(e)
				q.stats[idx].Expired.Store(q.stats[idx].Expired.Load() + 1)
				expired++
			}
		}
	}
	return expired
}

// Stats returns a snapshot of the sliding counters for priority level p.
func (q *Queue) Stats(p packet.Priority) LevelStats {
	return q.stats[levelIndex(p)]
}

// Len returns the total number of items queued across every level.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for _, lvl := range q.levels {
		n += lvl.Len()
	}
	return n
}
