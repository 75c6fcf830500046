package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mirkobrombin/go-evict/v1/cache"
	"github.com/mirkobrombin/go-evict/v1/metrics"
	"github.com/mirkobrombin/go-evict/v1/replay"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Trace {
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint(), stdouttrace.WithWriter(os.Stderr))
		if err != nil {
			log.Fatal(err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
		defer func() { _ = tp.Shutdown(context.Background()) }()
		otel.SetTracerProvider(tp)
	}

	reg := metrics.NewRegistry()
	metrics.RegisterReplayMetrics(reg)

	var logger *slog.Logger
	if cfg.Verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	if err := run(ctx, cfg, reg, logger, os.Stdout); err != nil {
		log.Fatal(err)
	}

	if cfg.MetricsAddr != "" {
		serveMetrics(ctx, cfg.MetricsAddr, reg)
	}
}

// run replays the configured script against each selected policy and writes
// the transcripts to out in policy order.
func run(ctx context.Context, cfg config, reg prometheus.Registerer, logger *slog.Logger, out io.Writer) error {
	policies, err := selectPolicies(cfg.Policy)
	if err != nil {
		return err
	}
	script, err := cfg.script()
	if err != nil {
		return err
	}
	ops, err := replay.Parse(script)
	if err != nil {
		return err
	}

	// Every goroutine owns its own cache instance.
	transcripts := make([]*replay.Transcript, len(policies))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range policies {
		g.Go(func() error {
			tr, err := replay.Run(gctx, replay.Config{
				Policy:     p,
				MaxItems:   cfg.MaxItems,
				Registerer: reg,
				Logger:     logger,
			}, ops)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			transcripts[i] = tr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, tr := range transcripts {
		fmt.Fprintf(out, "== %s (run %s)\n", strings.ToUpper(tr.Policy.String()), tr.ID)
		fmt.Fprint(out, tr.String())
		fmt.Fprintf(out, "-- hits=%d misses=%d evictions=%d size=%d\n",
			tr.Stats.Hits, tr.Stats.Misses, tr.Stats.Evictions, tr.Stats.Size)
	}
	return nil
}

func selectPolicies(name string) ([]cache.Policy, error) {
	if strings.EqualFold(strings.TrimSpace(name), "all") {
		return cache.Policies(), nil
	}
	p, err := cache.ParsePolicy(name)
	if err != nil {
		return nil, err
	}
	return []cache.Policy{p}, nil
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("serving metrics on %s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
