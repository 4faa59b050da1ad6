// Command tm2to1 translates a deterministic two-tape Turing machine into a
// behaviorally equivalent one-tape machine, and can run either kind of
// machine against literal input for inspection.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/asphodex/tm2to1"
	"github.com/asphodex/tm2to1/compiler"
	"github.com/asphodex/tm2to1/filereader"
)

const defaultOutputPath = "one_taped_translation.tm"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	logger := logrus.New()

	root := &cobra.Command{
		Use:           "tm2to1",
		Short:         "Translate two-tape Turing machines into one-tape Turing machines",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each construction pass as it runs")

	root.AddCommand(newTranslateCmd(logger))
	root.AddCommand(newRunCmd(logger))

	return root
}

func newTranslateCmd(logger *logrus.Logger) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "translate <input.tm> [output.tm]",
		Short: "Compile a two-tape machine into a one-tape machine",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			out := defaultOutputPath
			if len(args) == 2 {
				out = args[1]
			}
			if outputPath != "" {
				out = outputPath
			}

			m2, err := filereader.ReadFileCtx(ctx, args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			if err := m2.Validate(); err != nil {
				return fmt.Errorf("%s is not a valid machine: %w", args[0], err)
			}

			m1, err := compiler.Compile(m2, logger)
			if err != nil {
				return fmt.Errorf("compiling %s: %w", args[0], err)
			}

			if err := filereader.WriteFileCtx(ctx, out, m1); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}

			formatted, err := filereader.Format(m1)
			if err != nil {
				return fmt.Errorf("formatting result: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatted)

			logger.WithField("path", out).Info("wrote one-tape machine")
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "out", "o", "", "output path (default: "+defaultOutputPath+")")

	return cmd
}

func newRunCmd(logger *logrus.Logger) *cobra.Command {
	var maxSteps uint

	cmd := &cobra.Command{
		Use:   "run <machine.tm> <input>",
		Short: "Simulate a machine's first tape against literal input",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			tm, err := filereader.ReadFileCtx(ctx, args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			input := make([]turing.Letter, 0, len(args[1]))
			for _, r := range args[1] {
				input = append(input, turing.Letter(string(r)))
			}

			cfg, err := tm.Simulate(ctx, input, maxSteps)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "halted with error:", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "state=%s accepted=%t steps=%d\n", cfg.State, cfg.Accepted, cfg.Steps)
			return nil
		},
	}
	cmd.Flags().UintVar(&maxSteps, "max-steps", 1_000_000, "step bound before giving up (0 disables the bound)")

	return cmd
}
