package property

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/lvshrink/shrinker"
)

// DefaultIterations is the number of random trials Check runs by default.
const DefaultIterations = 100

// Option customizes Check.
type Option func(*config)

type config struct {
	iterations int
	seed       int64
	logger     *slog.Logger
	shrink     []shrinker.Option
}

func newConfig(opts ...Option) *config {
	c := &config{
		iterations: DefaultIterations,
		seed:       1,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithIterations sets the number of random trials. Panics on n <= 0.
func WithIterations(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("property: WithIterations(%d) must be positive", n))
	}
	return func(c *config) { c.iterations = n }
}

// WithSeed seeds the random source; equal seeds give equal runs.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithLogger routes progress records to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("property: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}

// WithShrinkOptions forwards opts to shrinker.Minimize.
func WithShrinkOptions(opts ...shrinker.Option) Option {
	return func(c *config) { c.shrink = append(c.shrink, opts...) }
}
