package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gossair/gossair/mir"
	"github.com/gossair/gossair/ssa"
)

func newBuildCmd(log *zap.SugaredLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Lower the demo MIR fixture and print its SSA listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			fn := demoFunction()
			log.Debugw("lowering started", "function", fn.Name)

			out, err := mir.Lower(fn, ssa.WithLogger(log))
			if err != nil {
				return fmt.Errorf("ssac build: %w", err)
			}
			log.Debugw("lowering finished", "function", fn.Name, "bytes", len(out))

			text, err := ssa.NewPrinter().Format(out)
			if err != nil {
				return fmt.Errorf("ssac build: printing: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
