package replay

import (
	"context"
	stdErrors "errors"
	"os"
	"reflect"
	"testing"

	"github.com/mirkobrombin/go-evict/v1/cache"
	evicterrors "github.com/mirkobrombin/go-evict/v1/errors"
	"github.com/mirkobrombin/go-evict/v1/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var recorder = tracetest.NewSpanRecorder()

func TestMain(m *testing.M) {
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	os.Exit(m.Run())
}

const scenario = "put A Hello; put B World; put C Holberton; put D School; get A; put E Battery; dump"

func mustParse(t *testing.T, script string) []Op {
	t.Helper()
	ops, err := Parse(script)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return ops
}

func TestRunScenarios(t *testing.T) {
	tests := []struct {
		policy  cache.Policy
		discard []string
		dump    string
	}{
		{cache.BasicPolicy, nil, "DUMP A=Hello B=World C=Holberton D=School E=Battery"},
		{cache.FIFOPolicy, []string{"A"}, "DUMP B=World C=Holberton D=School E=Battery"},
		{cache.LIFOPolicy, []string{"D"}, "DUMP A=Hello B=World C=Holberton E=Battery"},
		{cache.LRUPolicy, []string{"B"}, "DUMP C=Holberton D=School A=Hello E=Battery"},
		{cache.MRUPolicy, []string{"A"}, "DUMP B=World C=Holberton D=School E=Battery"},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			tr, err := Run(context.Background(), Config{Policy: tt.policy}, mustParse(t, scenario))
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if !reflect.DeepEqual(tr.Discards, tt.discard) {
				t.Fatalf("expected discards %v, got %v", tt.discard, tr.Discards)
			}
			if last := tr.Lines[len(tr.Lines)-1]; last != tt.dump {
				t.Fatalf("expected %q, got %q", tt.dump, last)
			}
			if tr.ID == "" || tr.Policy != tt.policy {
				t.Fatalf("unexpected transcript header %q %s", tr.ID, tr.Policy)
			}
		})
	}
}

func TestRunTranscript(t *testing.T) {
	script := "put A 1; put B 2; put nil 3; put C nil; get nil; get Z; put C 3; put D 4; put E 5; get A; get E"
	tr, err := Run(context.Background(), Config{Policy: cache.FIFOPolicy, MaxItems: 3}, mustParse(t, script))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "PUT A 1\n" +
		"PUT B 2\n" +
		"PUT <nil> 3\n" +
		"PUT C <nil>\n" +
		"GET <nil> -> <nil>\n" +
		"GET Z -> <nil>\n" +
		"PUT C 3\n" +
		"DISCARD: A\n" +
		"PUT D 4\n" +
		"DISCARD: B\n" +
		"PUT E 5\n" +
		"GET A -> <nil>\n" +
		"GET E -> 5\n"
	if got := tr.String(); got != want {
		t.Fatalf("unexpected transcript:\n%s\nwant:\n%s", got, want)
	}
	if len(tr.Final) != 3 || tr.Final["C"] != "3" {
		t.Fatalf("unexpected final contents %v", tr.Final)
	}
	if tr.Stats.Evictions != 2 || tr.Stats.Hits != 1 || tr.Stats.Misses != 2 {
		t.Fatalf("unexpected stats %+v", tr.Stats)
	}
}

func TestRunMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	discards := metrics.DiscardCounter.WithLabelValues("lifo")
	puts := metrics.OpsCounter.WithLabelValues("lifo", "put")
	beforeDiscards := testutil.ToFloat64(discards)
	beforePuts := testutil.ToFloat64(puts)

	if _, err := Run(context.Background(), Config{Policy: cache.LIFOPolicy, Registerer: reg}, mustParse(t, scenario)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if d := testutil.ToFloat64(discards) - beforeDiscards; d != 1 {
		t.Fatalf("expected 1 discard, got %v", d)
	}
	if d := testutil.ToFloat64(puts) - beforePuts; d != 5 {
		t.Fatalf("expected 5 puts, got %v", d)
	}
	if n, err := testutil.GatherAndCount(reg, "evict_cache_evictions_total"); err != nil || n != 1 {
		t.Fatalf("expected cache collectors on registerer, got %d (%v)", n, err)
	}
}

func TestRunTracing(t *testing.T) {
	tr, err := Run(context.Background(), Config{Policy: cache.MRUPolicy}, mustParse(t, scenario))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var root, withDiscard bool
	for _, s := range recorder.Ended() {
		for _, a := range s.Attributes() {
			if s.Name() == "replay.Run" && a.Key == "evict.run_id" && a.Value.AsString() == tr.ID {
				root = true
			}
		}
		for _, e := range s.Events() {
			if s.Name() == "cache.put" && e.Name == "discard" {
				withDiscard = true
			}
		}
	}
	if !root {
		t.Fatalf("expected a replay.Run span for %s", tr.ID)
	}
	if !withDiscard {
		t.Fatalf("expected a discard event on a put span")
	}
}

func TestRunErrors(t *testing.T) {
	if _, err := Run(context.Background(), Config{Policy: cache.LRUPolicy, MaxItems: -2}, nil); !stdErrors.Is(err, evicterrors.ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr, err := Run(ctx, Config{Policy: cache.LRUPolicy}, mustParse(t, scenario))
	if !stdErrors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(tr.Lines) != 0 {
		t.Fatalf("expected no lines after cancellation, got %v", tr.Lines)
	}
}

func TestRunTwiceOnOneRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	ops := mustParse(t, "put A 1; put B 2")
	for i := 0; i < 2; i++ {
		if _, err := Run(context.Background(), Config{Policy: cache.LRUPolicy, Registerer: reg}, ops); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if v := testutil.ToFloat64(counterFor(t, reg, "evict_cache_admissions_total")); v != 4 {
		t.Fatalf("expected 4 admissions across runs, got %v", v)
	}
}

// counterFor returns the value of the single series named name in reg as a
// collector testutil can read.
func counterFor(t *testing.T, reg *prometheus.Registry, name string) prometheus.Collector {
	t.Helper()
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        name,
		Help:        "Total number of keys admitted into the cache",
		ConstLabels: prometheus.Labels{"policy": "lru"},
	})
	var are prometheus.AlreadyRegisteredError
	if err := reg.Register(c); !stdErrors.As(err, &are) {
		t.Fatalf("expected %s to be registered, got %v", name, err)
	}
	return are.ExistingCollector
}
