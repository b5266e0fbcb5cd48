package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blueprint/internal/cli"
	bperrors "github.com/matzehuels/blueprint/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for bad input (briefs, flags, paths) and 1 otherwise.
func exitCode(err error) int {
	switch bperrors.GetCode(err) {
	case bperrors.ErrCodeMissingBrief, bperrors.ErrCodeInvalidBrief, bperrors.ErrCodeInvalidTheme,
		bperrors.ErrCodeInvalidFormat, bperrors.ErrCodeInvalidFacade, bperrors.ErrCodeInvalidSection,
		bperrors.ErrCodeInvalidPath, bperrors.ErrCodeFileNotFound:
		return 2
	}
	return 1
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
