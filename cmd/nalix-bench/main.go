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

// Command nalix-bench drives the echo scenario against a running nalixd:
// concurrency connections each firing requests sequentially, round-trip
// latency tracked per request and reported as min/avg/p99/max once every
// connection finishes its share of the total request count.
package main

import (
	"fmt"
	"net"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/nalix-io/nalix-core/examples/echo"
	"github.com/nalix-io/nalix-core/packet"
	"github.com/nalix-io/nalix-core/packet/catalog"
	"github.com/nalix-io/nalix-core/wire"
)

func main() {
	var (
		addr        string
		concurrency int
		requests    int
	)

	cmd := &cobra.Command{
		Use:   "nalix-bench",
		Short: "Load-generate the echo scenario against a nalixd server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(addr, concurrency, requests)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:7878", "server address")
	cmd.Flags().IntVar(&concurrency, "concurrency", 10, "number of concurrent connections")
	cmd.Flags().IntVar(&requests, "requests", 1000, "total number of requests across all connections")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBench(addr string, concurrency, total int) error {
	if concurrency <= 0 || total <= 0 {
		return fmt.Errorf("concurrency and requests must both be positive")
	}

	cat := catalog.New()
	catalog.RegisterBuiltins(cat)
	catalog.RegisterBuiltinTransformers(cat)
	cat.Freeze()

	p := mpb.New(mpb.WithWidth(64))
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(decor.Name("echo")),
		mpb.AppendDecorators(decor.Percentage()),
	)

	perWorker := total / concurrency
	remainder := total % concurrency

	var (
		mu    sync.Mutex
		lats  []time.Duration
		fails int64
	)

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < concurrency; i++ {
		n := perWorker
		if i < remainder {
			n++
		}
		if n == 0 {
			continue
		}

		wg.Add(1)
		go func(count int) {
			defer wg.Done()

			conn, err := net.Dial("tcp", addr)
			if err != nil {
				atomic.AddInt64(&fails, int64(count))
				bar.IncrBy(count)
				return
			}
			defer conn.Close()

			for j := 0; j < count; j++ {
				d, err := roundTrip(conn, cat)
				bar.Increment()
				if err != nil {
					atomic.AddInt64(&fails, 1)
					continue
				}
				mu.Lock()
				lats = append(lats, d)
				mu.Unlock()
			}
		}(n)
	}

	wg.Wait()
	p.Wait()

	elapsed := time.Since(start)
	report(total, int(fails), elapsed, lats)
	return nil
}

func roundTrip(conn net.Conn, cat *catalog.Catalog) (time.Duration, error) {
	req := packet.NewText256(echo.OpCode, "ping")
	buf := make([]byte, req.Header().Length)
	w := wire.NewWriter(buf)
	if err := req.Encode(w); err != nil {
		return 0, err
	}

	start := time.Now()
	if _, err := conn.Write(w.Bytes()); err != nil {
		return 0, err
	}

	header := make([]byte, 2)
	if _, err := readFull(conn, header); err != nil {
		return 0, err
	}
	length := int(header[0]) | int(header[1])<<8
	frame := make([]byte, length)
	frame[0], frame[1] = header[0], header[1]
	if _, err := readFull(conn, frame[2:]); err != nil {
		return 0, err
	}

	if _, ok := cat.TryDeserialize(frame); !ok {
		return 0, fmt.Errorf("could not deserialize response")
	}
	return time.Since(start), nil
}

func readFull(conn net.Conn, buf []byte) (int, error) {
	read := 0
	for read < len(buf) {
		n, err := conn.Read(buf[read:])
		read += n
		if err != nil {
			return read, err
		}
	}
	return read, nil
}

func report(total, fails int, elapsed time.Duration, lats []time.Duration) {
	fmt.Printf("\nrequests: %d, failures: %d, elapsed: %s\n", total, fails, elapsed)
	if len(lats) == 0 {
		return
	}

	sort.Slice(lats, func(i, j int) bool { return lats[i] < lats[j] })
	sum := time.Duration(0)
	for _, d := range lats {
		sum += d
	}

	p99 := lats[(len(lats)*99)/100]
	fmt.Printf("latency: min=%s avg=%s p99=%s max=%s\n",
		lats[0], sum/time.Duration(len(lats)), p99, lats[len(lats)-1])
	fmt.Printf("throughput: %.1f req/s\n", float64(len(lats))/elapsed.Seconds())
}
