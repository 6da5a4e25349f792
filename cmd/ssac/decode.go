package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gossair/gossair/ssa"
)

func newDecodeCmd(log *zap.SugaredLogger) *cobra.Command {
	var inPath string

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode an SSA byte stream and print its listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(inPath)
			if err != nil {
				return fmt.Errorf("ssac decode: %w", err)
			}
			log.Debugw("decoding started", "path", inPath, "bytes", len(raw))

			text, err := ssa.NewPrinter().Format(raw)
			fmt.Fprint(cmd.OutOrStdout(), text)
			if err != nil {
				return fmt.Errorf("ssac decode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "path to an encoded SSA byte stream")
	cmd.MarkFlagRequired("in") //nolint:errcheck

	return cmd
}
