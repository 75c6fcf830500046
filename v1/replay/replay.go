package replay

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mirkobrombin/go-evict/v1/cache"
	"github.com/mirkobrombin/go-evict/v1/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/mirkobrombin/go-evict/v1/replay")

// Config selects the cache a script runs against.
type Config struct {
	Policy   cache.Policy
	MaxItems int
	// Registerer, when set, receives the per-cache collectors.
	Registerer prometheus.Registerer
	// Logger, when set, receives the cache debug records.
	Logger *slog.Logger
}

// Transcript is the observable outcome of a run.
type Transcript struct {
	ID       string
	Policy   cache.Policy
	Lines    []string
	Discards []string
	Final    map[any]any
	Stats    cache.Stats
}

// String renders the transcript lines, one per row.
func (t *Transcript) String() string {
	var b strings.Builder
	for _, l := range t.Lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

// Run executes ops against a fresh cache built from cfg. It stops early with
// ctx.Err() when ctx is cancelled between operations.
func Run(ctx context.Context, cfg Config, ops []Op) (*Transcript, error) {
	tr := &Transcript{ID: uuid.NewString(), Policy: cfg.Policy}
	policy := cfg.Policy.String()

	ctx, span := tracer.Start(ctx, "replay.Run", trace.WithAttributes(
		attribute.String("evict.run_id", tr.ID),
		attribute.String("evict.policy", policy),
		attribute.Int("evict.max_items", cfg.MaxItems),
		attribute.Int("evict.ops", len(ops)),
	))
	defer span.End()

	metrics.RunsGauge.Inc()
	defer metrics.RunsGauge.Dec()

	var opSpan trace.Span
	opts := []cache.Option[any, any]{
		cache.WithDiscard[any, any](func(key, _ any) {
			line := fmt.Sprintf("DISCARD: %v", key)
			tr.Lines = append(tr.Lines, line)
			tr.Discards = append(tr.Discards, fmt.Sprint(key))
			metrics.DiscardCounter.WithLabelValues(policy).Inc()
			if opSpan != nil {
				opSpan.AddEvent("discard", trace.WithAttributes(attribute.String("evict.key", fmt.Sprint(key))))
			}
		}),
	}
	if cfg.MaxItems != 0 {
		opts = append(opts, cache.WithMaxItems[any, any](cfg.MaxItems))
	}
	if cfg.Registerer != nil {
		opts = append(opts, cache.WithMetrics[any, any](cfg.Registerer))
	}
	if cfg.Logger != nil {
		opts = append(opts, cache.WithLogger[any, any](cfg.Logger))
	}
	c, err := cache.New[any, any](cfg.Policy, opts...)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	for _, op := range ops {
		select {
		case <-ctx.Done():
			span.RecordError(ctx.Err())
			return tr, ctx.Err()
		default:
		}
		_, opSpan = tracer.Start(ctx, "cache."+op.Kind.String(), trace.WithAttributes(
			attribute.String("evict.key", fmt.Sprint(op.Key)),
		))
		metrics.OpsCounter.WithLabelValues(policy, op.Kind.String()).Inc()
		switch op.Kind {
		case OpPut:
			c.Put(op.Key, op.Value)
			tr.Lines = append(tr.Lines, fmt.Sprintf("PUT %v %v", op.Key, op.Value))
		case OpGet:
			v, ok := c.Get(op.Key)
			opSpan.SetAttributes(attribute.Bool("evict.hit", ok))
			tr.Lines = append(tr.Lines, fmt.Sprintf("GET %v -> %v", op.Key, v))
		case OpDump:
			tr.Lines = append(tr.Lines, dump(c))
		}
		opSpan.End()
		opSpan = nil
	}

	tr.Final = c.Snapshot()
	tr.Stats = c.Metrics()
	span.SetAttributes(attribute.Int("evict.discards", len(tr.Discards)))
	return tr, nil
}

// dump renders the contents in eviction order, head first.
func dump(c *cache.Cache[any, any]) string {
	snap := c.Snapshot()
	var b strings.Builder
	b.WriteString("DUMP")
	for _, k := range c.Keys() {
		fmt.Fprintf(&b, " %v=%v", k, snap[k])
	}
	return b.String()
}
