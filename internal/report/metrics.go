package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "github.com/katalvlaran/lvshrink"

// Metrics bridges shrinker instruments into a private Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider
}

// NewMetrics creates a Prometheus exporter backed by an OTel MeterProvider.
// Each call uses an independent registry.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	return &Metrics{
		registry: registry,
		provider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)),
	}, nil
}

// Meter returns the meter to pass to shrinker.WithMeter.
func (m *Metrics) Meter() metric.Meter {
	return m.provider.Meter(meterName)
}

// Snapshot gathers the registry and renders every lvshrink counter and
// histogram count as a table.
func (m *Metrics) Snapshot() (string, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return "", fmt.Errorf("gather metrics: %w", err)
	}

	type row struct {
		name  string
		value float64
	}
	var rows []row
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "lvshrink_") {
			continue
		}
		for _, sample := range mf.GetMetric() {
			switch {
			case sample.GetCounter() != nil:
				rows = append(rows, row{mf.GetName(), sample.GetCounter().GetValue()})
			case sample.GetHistogram() != nil:
				rows = append(rows, row{mf.GetName() + " (count)", float64(sample.GetHistogram().GetSampleCount())})
			}
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Metric", "Value"})
	for _, r := range rows {
		tbl.AppendRow(table.Row{r.name, r.value})
	}
	return tbl.Render(), nil
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}
