package shrinker

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

const (
	metricAttemptsTotal  = "lvshrink.shrink.attempts.total"
	metricSuccessesTotal = "lvshrink.shrink.successes.total"
	metricSkippedTotal   = "lvshrink.shrink.skipped.total"
	metricRunDuration    = "lvshrink.shrink.duration.seconds"
)

// runMetrics holds the instruments updated at the end of every run.
type runMetrics struct {
	attempts  metric.Int64Counter
	successes metric.Int64Counter
	skipped   metric.Int64Counter
	duration  metric.Float64Histogram
}

func newRunMetrics(m metric.Meter) (*runMetrics, error) {
	var firstErr error
	setErr := func(name string, err error) {
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("create %s: %w", name, err)
		}
	}

	rm := &runMetrics{}
	var err error
	rm.attempts, err = m.Int64Counter(metricAttemptsTotal,
		metric.WithDescription("Predicate evaluations"), metric.WithUnit("{attempt}"))
	setErr(metricAttemptsTotal, err)
	rm.successes, err = m.Int64Counter(metricSuccessesTotal,
		metric.WithDescription("Accepted smaller candidates"), metric.WithUnit("{candidate}"))
	setErr(metricSuccessesTotal, err)
	rm.skipped, err = m.Int64Counter(metricSkippedTotal,
		metric.WithDescription("Candidates skipped without evaluation"), metric.WithUnit("{candidate}"))
	setErr(metricSkippedTotal, err)
	rm.duration, err = m.Float64Histogram(metricRunDuration,
		metric.WithDescription("Minimize wall time in seconds"), metric.WithUnit("s"))
	setErr(metricRunDuration, err)

	if firstErr != nil {
		return nil, firstErr
	}
	return rm, nil
}

// record adds the totals of one run. Safe on a nil receiver.
func (rm *runMetrics) record(ctx context.Context, res Result) {
	if rm == nil {
		return
	}
	rm.attempts.Add(ctx, int64(res.Attempts))
	rm.successes.Add(ctx, int64(res.Successes))
	rm.skipped.Add(ctx, int64(res.Skipped))
	rm.duration.Record(ctx, res.Duration.Seconds())
}
