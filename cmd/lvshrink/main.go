// Package main provides the lvshrink CLI: it checks built-in properties,
// minimizes their counterexamples and replays recheck tokens.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// errPropertyFailed signals a counterexample; the report was already printed.
var errPropertyFailed = errors.New("property failed")

type rootOptions struct {
	configPath string
}

func main() {
	err := execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		if !errors.Is(err, errPropertyFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "lvshrink",
		Short: "Property checks with structural shrinking",
		Long: `lvshrink runs built-in properties against random inputs and
minimizes the first counterexample it finds.

Commands:
  run         check a property and minimize its counterexample
  recheck     replay a recheck token
  properties  list the built-in properties`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default .lvshrink.yaml in . or $HOME)")

	rootCmd.AddCommand(newRunCommand(opts))
	rootCmd.AddCommand(newRecheckCommand(opts))
	rootCmd.AddCommand(newPropertiesCommand())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lvshrink %s\n", version)
		},
	}
}
