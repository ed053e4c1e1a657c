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

// Command nalixd is the reference packet-pipeline server: it loads a
// config.Config from a file and environment via spf13/viper, builds an
// internal/server.Server around the echo sample controller, and serves
// until SIGINT/SIGTERM.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	libconfig "github.com/nalix-io/nalix-core/config"
	"github.com/nalix-io/nalix-core/dispatch"
	echocontroller "github.com/nalix-io/nalix-core/examples/echo"
	"github.com/nalix-io/nalix-core/internal/server"
	"github.com/nalix-io/nalix-core/logger"
)

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:   "nalixd",
		Short: "nalixd runs the packet-pipeline server",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML/JSON/TOML config file")

	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	var (
		addr string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start accepting connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			v.SetEnvPrefix("NALIXD")
			v.AutomaticEnv()

			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("reading config file %s: %w", cfgFile, err)
				}
			}
			if cmd.Flags().Changed("address") {
				v.Set("listener.address", addr)
			}
			if cmd.Flags().Changed("port") {
				v.Set("listener.port", port)
			}

			cfg, err := libconfig.Load(v)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			return run(*cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "address", "", "override listener.address")
	cmd.Flags().IntVar(&port, "port", 0, "override listener.port")

	return cmd
}

func run(cfg libconfig.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New(ctx)
	log.SetLevel(cfg.LogLevel)
	log.Info("starting nalixd", nil)

	reg := dispatch.New()
	if err := reg.RegisterController(echocontroller.New()); err != nil {
		return fmt.Errorf("registering echo controller: %w", err)
	}

	srv, err := server.New(cfg, reg, log, nil)
	if err != nil {
		return fmt.Errorf("building server: %w", err)
	}

	if mc := srv.Metrics(); mc != nil {
		go serveMetrics(ctx, log, mc.Handler())
	}

	return srv.ListenAndServe(ctx)
}

func serveMetrics(ctx context.Context, log logger.Logger, handler http.Handler) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	srv := &http.Server{Addr: ":9090", Handler: mux}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("metrics server failed", err)
	}
}
