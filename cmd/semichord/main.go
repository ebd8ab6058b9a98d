package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/semichord/internal/cli"
	"github.com/matzehuels/semichord/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		os.Exit(report(ctx, err))
	}
}

// report prints err and returns the exit status for it.
func report(ctx context.Context, err error) int {
	if ctx.Err() != nil {
		return 130 // Standard shell convention for SIGINT
	}
	if code := errors.GetCode(err); code != "" {
		fmt.Fprintf(os.Stderr, "%s (%s)\n", err, code)
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	if errors.IsValidation(err) {
		return 2
	}
	return 1
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// The level is only known once flags are parsed.
	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := cli.LogInfo
		if verbose {
			level = cli.LogDebug
		}
		c.SetLogLevel(level)

		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
