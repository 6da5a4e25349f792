// Command ssac is the example driver for package ssa/mir: it lowers a
// static MIR fixture and prints the resulting SSA listing, or decodes and
// prints an already-encoded byte stream from disk. Per SPEC_FULL.md §6,
// this CLI is outside the engine's own scope: reading a file is an I/O
// convenience for demonstrating the decoder, not a disk format the
// encoding schema commits to.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ssac: failed to initialise logger:", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if err := newRootCmd(logger.Sugar()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(log *zap.SugaredLogger) *cobra.Command {
	root := &cobra.Command{
		Use:           "ssac",
		Short:         "ssac builds and inspects the SSA instruction stream",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newBuildCmd(log))
	root.AddCommand(newDecodeCmd(log))
	return root
}
