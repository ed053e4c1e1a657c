/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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
 */

package aggregator

import (
	"context"
	"time"
)

// Config defines the configuration for creating a new Aggregator.
type Config struct {
	// AsyncTimer specifies the interval for calling AsyncFct.
	// If zero or negative, async callbacks are disabled.
	// Must be > 0 and AsyncFct must be non-nil to enable async callbacks.
	AsyncTimer time.Duration

	// AsyncMax limits the maximum number of concurrent async function
	// calls. If negative, async functions run without a bound.
	AsyncMax int

	// AsyncFct is the function called periodically at AsyncTimer
	// intervals, asynchronously (non-blocking). Useful for periodic
	// maintenance, heartbeats, or buffer flushes. May be nil.
	AsyncFct func(ctx context.Context)

	// SyncTimer specifies the interval for calling SyncFct.
	// If zero or negative, sync callbacks are disabled.
	// Must be > 0 and SyncFct must be non-nil to enable sync callbacks.
	SyncTimer time.Duration

	// SyncFct is the function called periodically at SyncTimer intervals,
	// synchronously on the processing loop — it delays subsequent writes,
	// so it should complete quickly. Useful for file rotation or resource
	// cleanup. May be nil.
	SyncFct func(ctx context.Context)

	// BufWriter specifies the size of the internal write buffer (channel
	// capacity). A larger buffer reduces producer stalls but uses more
	// memory. If zero, defaults to 1.
	BufWriter int

	// FctWriter is the function that receives each write. It is called
	// sequentially, never concurrently. This field is required.
	FctWriter func(p []byte) (n int, err error)
}
