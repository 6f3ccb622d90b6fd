// Command groundrelay runs the bidirectional ground-station relay: it
// accepts a spacecraft TM downlink and a MOC RAF consumer on one pair of
// sockets, and a MOC FSP command source and a spacecraft TC uplink on the
// other, forwarding frames between them through two bounded queues.
//
// Structured after str2str.go's command-line stream server: flag-based
// options, SIGINT/SIGTERM-driven shutdown, and an optional Prometheus
// /metrics listener while running.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"groundrelay/internal/config"
	"groundrelay/internal/relay"
)

func main() {
	os.Exit(run())
}

func run() int {
	opt, err := config.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		return 2
	}

	log := newLogger(opt.LogLevel, opt.LogJSON)
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())

	if opt.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: opt.MetricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Warn("metrics server stopped", "err", err)
			}
		}()
		defer srv.Close()
		log.Info("metrics listening", "addr", opt.MetricsAddr)
	}

	eng := relay.New(opt.Relay, log, reg)
	if err := eng.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "groundrelay: %v\n", err)
		return 1
	}
	log.Info("groundrelay started")

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	log.Info("shutting down")
	eng.Stop()
	return 0
}

func newLogger(level string, asJSON bool) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if asJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
