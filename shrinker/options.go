package shrinker

import (
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// instrumentationName names the tracer and meter obtained from providers.
const instrumentationName = "github.com/katalvlaran/lvshrink/shrinker"

// Option customizes a Minimize run.
// Option constructors validate their input and panic on meaningless values.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	maxAttempts int
	tracer      trace.Tracer
	meter       metric.Meter
	observer    func(Event)
}

func newConfig(opts ...Option) *config {
	c := &config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer: tracenoop.NewTracerProvider().Tracer(instrumentationName),
		meter:  metricnoop.NewMeterProvider().Meter(instrumentationName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithLogger routes trial and summary records to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("shrinker: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}

// WithMaxAttempts caps the number of predicate evaluations. Zero means no
// cap. Panics on negative n.
func WithMaxAttempts(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("shrinker: WithMaxAttempts(%d) negative", n))
	}
	return func(c *config) { c.maxAttempts = n }
}

// WithTracer wraps each run in a span from t. Panics on nil.
func WithTracer(t trace.Tracer) Option {
	if t == nil {
		panic("shrinker: WithTracer(nil)")
	}
	return func(c *config) { c.tracer = t }
}

// WithMeter records run counters on instruments created from m. Panics on nil.
func WithMeter(m metric.Meter) Option {
	if m == nil {
		panic("shrinker: WithMeter(nil)")
	}
	return func(c *config) { c.meter = m }
}

// WithObserver calls fn synchronously for every trial. Panics on nil.
func WithObserver(fn func(Event)) Option {
	if fn == nil {
		panic("shrinker: WithObserver(nil)")
	}
	return func(c *config) { c.observer = fn }
}
