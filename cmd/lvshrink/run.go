package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"

	"github.com/katalvlaran/lvshrink/internal/config"
	"github.com/katalvlaran/lvshrink/internal/demo"
	"github.com/katalvlaran/lvshrink/internal/report"
	"github.com/katalvlaran/lvshrink/property"
	"github.com/katalvlaran/lvshrink/shrinker"
)

const tracerName = "github.com/katalvlaran/lvshrink/cmd/lvshrink"

// flagBinding maps a command flag onto a config key.
type flagBinding struct {
	flag string
	key  string
}

var runBindings = []flagBinding{
	{"seed", "check.seed"},
	{"iterations", "check.iterations"},
	{"max-attempts", "check.max_attempts"},
	{"format", "output.format"},
	{"metrics", "output.metrics"},
	{"log-level", "logging.level"},
}

func newRunCommand(opts *rootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Check a property and minimize its counterexample",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts, runBindings)
			if err != nil {
				return err
			}
			p, err := demo.Lookup(name)
			if err != nil {
				return err
			}
			return runProperty(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), p, cfg)
		},
	}

	cmd.Flags().StringVarP(&name, "property", "p", "", "property to check (see: lvshrink properties)")
	cmd.Flags().Int64("seed", config.DefaultSeed, "random seed")
	cmd.Flags().Int("iterations", config.DefaultIterations, "random trials before giving up")
	cmd.Flags().Int("max-attempts", config.DefaultMaxAttempts, "cap on shrink attempts (0 = none)")
	cmd.Flags().String("format", config.DefaultFormat, "report format: text or yaml")
	cmd.Flags().Bool("metrics", false, "print a metrics snapshot after the report")
	cmd.Flags().Bool("no-color", false, "disable coloured output")
	cmd.Flags().String("log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")
	_ = cmd.MarkFlagRequired("property")

	return cmd
}

// loadConfig layers changed flags over env and the config file.
func loadConfig(cmd *cobra.Command, opts *rootOptions, bindings []flagBinding) (*config.Config, error) {
	v := config.New(opts.configPath)
	if err := bindFlags(v, cmd, bindings); err != nil {
		return nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor || !cfg.Output.Color {
		color.NoColor = true //nolint:reassign // library global
	}
	return cfg, nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, bindings []flagBinding) error {
	for _, b := range bindings {
		f := cmd.Flags().Lookup(b.flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(b.key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", b.flag, err)
		}
	}
	return nil
}

func runProperty(ctx context.Context, stdout, stderr io.Writer, p demo.Property, cfg *config.Config) error {
	logger := cfg.Logging.NewLogger(stderr)

	shrinkOpts := []shrinker.Option{
		shrinker.WithLogger(logger),
		shrinker.WithMaxAttempts(cfg.Check.MaxAttempts),
		shrinker.WithTracer(otel.Tracer(tracerName)),
	}

	var metrics *report.Metrics
	if cfg.Output.Metrics {
		m, err := report.NewMetrics()
		if err != nil {
			return err
		}
		defer func() { _ = m.Shutdown(ctx) }()
		metrics = m
		shrinkOpts = append(shrinkOpts, shrinker.WithMeter(m.Meter()))
	}

	out, checkErr := p.Check(ctx, property.WithSeed(cfg.Check.Seed),
		property.WithIterations(cfg.Check.Iterations),
		property.WithLogger(logger),
		property.WithShrinkOptions(shrinkOpts...))
	if checkErr != nil && out == nil {
		return checkErr
	}
	if checkErr != nil {
		logger.Warn("shrinking stopped early", "error", checkErr)
	}

	doc := report.NewDocument(p.Name, cfg.Check.Seed, out)
	if err := writeDocument(stdout, cfg.Output.Format, doc); err != nil {
		return err
	}

	if metrics != nil {
		snap, err := metrics.Snapshot()
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, snap)
	}

	if out != nil {
		return errPropertyFailed
	}
	return nil
}

func writeDocument(w io.Writer, format string, doc report.Document) error {
	if format == config.FormatYAML {
		return report.WriteYAML(w, doc)
	}
	return report.WriteText(w, doc)
}
