package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ErrStrategiesDisagree = errors.New("strategies disagree")

type cli struct {
	verbose    bool
	configPath string

	logger *zap.Logger
	cfg    *Config
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "foldbench",
		Short: "Compare per-item and per-pass composition of program folds",
		Long: `foldbench folds small programs through a chain of passes.

Passes can be composed per item (every element goes through the whole chain
before the next element is visited) or per pass (each pass traverses the whole
program before the next one starts). Both give the same result; the bench
command measures what each costs.

Programs are written as s-expressions:

    (program (arguments 1 2) (statements 1 1 2 3 3 3))`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
			if c.verbose {
				level.SetLevel(zapcore.DebugLevel)
			}
			core := zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(cmd.ErrOrStderr()),
				level,
			)
			c.logger = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

			path := c.configPath
			if path == "" {
				path = DefaultConfigFile
			}
			var err error
			c.cfg, err = LoadConfig(path)
			if err != nil {
				return err
			}
			c.logger.Debug("Loaded config",
				zap.String("path", path),
				zap.Strings("passes", c.cfg.Passes),
				zap.String("strategy", c.cfg.Strategy))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Config file (default: "+DefaultConfigFile+")")

	rootCmd.AddCommand(c.runCmd(), c.evalCmd(), c.checkCmd(), c.benchCmd())
	return rootCmd
}

// foldFlags are shared by run and eval.
type foldFlags struct {
	strategy string
	passes   []string
	compare  bool
}

func (f *foldFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", "", "Composition strategy: iter (per item) or seq (per pass)")
	cmd.Flags().StringSliceVarP(&f.passes, "passes", "p", nil, "Comma-separated pass chain (dedup, dummy)")
	cmd.Flags().BoolVar(&f.compare, "compare", false, "Run both strategies and fail if their results differ")
}

func (c *cli) runCmd() *cobra.Command {
	var flags foldFlags
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Fold the program literal in a file and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("error reading file %s: %w", args[0], err)
			}
			return c.fold(cmd, &flags, string(source))
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *cli) evalCmd() *cobra.Command {
	var flags foldFlags
	cmd := &cobra.Command{
		Use:   "eval <code>",
		Short: "Fold an inline program literal and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.fold(cmd, &flags, args[0])
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *cli) fold(cmd *cobra.Command, flags *foldFlags, source string) error {
	passes := c.cfg.Passes
	if cmd.Flags().Changed("passes") {
		passes = flags.passes
	}
	strategyName := c.cfg.Strategy
	if cmd.Flags().Changed("strategy") {
		strategyName = flags.strategy
	}
	strategy, err := ParseStrategy(strategyName)
	if err != nil {
		return err
	}

	p, err := ParseProgram(source)
	if err != nil {
		return fmt.Errorf("parsing program: %w", err)
	}
	c.logger.Debug("Folding program",
		zap.Strings("passes", passes),
		zap.String("strategy", string(strategy)),
		zap.Int("arguments", len(p.Arguments)),
		zap.Int("statements", len(p.Statements)))

	out, err := foldWith(p, passes, c.cfg.PassOptions(), strategy)
	if err != nil {
		return err
	}

	if flags.compare {
		for _, other := range Strategies {
			if other == strategy {
				continue
			}
			got, err := foldWith(p, passes, c.cfg.PassOptions(), other)
			if err != nil {
				return err
			}
			if ProgramToSExpr(got) != ProgramToSExpr(out) {
				return fmt.Errorf("%w: %s gave %s, %s gave %s", ErrStrategiesDisagree,
					strategy, ProgramToSExpr(out), other, ProgramToSExpr(got))
			}
			c.logger.Debug("Strategies agree", zap.String("other", string(other)))
		}
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), ProgramToSExpr(out))
	return err
}

// newStringChain builds the chains run and eval fold with.
var newStringChain = NewChain[string]

// foldWith folds p through a fresh chain built from passes.
func foldWith(p Program[string], passes []string, opts PassOptions, strategy Strategy) (Program[string], error) {
	chain, err := newStringChain(passes, opts)
	if err != nil {
		return Program[string]{}, err
	}
	return Apply(strategy, p, chain...), nil
}

func (c *cli) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse program literal files without folding them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs *multierror.Error
			for _, filename := range args {
				source, err := os.ReadFile(filename)
				if err != nil {
					errs = multierror.Append(errs, fmt.Errorf("error reading file %s: %w", filename, err))
					continue
				}
				p, err := ParseProgram(string(source))
				if err != nil {
					errs = multierror.Append(errs, fmt.Errorf("%s: %w", filename, err))
					continue
				}
				c.logger.Debug("Checked program",
					zap.String("file", filename),
					zap.Int("arguments", len(p.Arguments)),
					zap.Int("statements", len(p.Statements)))
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no errors found\n", filename)
			}
			return errs.ErrorOrNil()
		},
	}
}

func (c *cli) benchCmd() *cobra.Command {
	var format string
	var strategies []string
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark both composition strategies on a synthetic program",
		Long: `bench folds a synthetic program through the configured pass chain with
each composition strategy and reports the cost per fold. The program holds
bench.arguments copies of bench.value as arguments and bench.statements
copies as statements.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "go" {
				return fmt.Errorf("unknown format %q", format)
			}
			selected := Strategies
			if len(strategies) > 0 {
				selected = nil
				for _, name := range strategies {
					s, err := ParseStrategy(name)
					if err != nil {
						return err
					}
					selected = append(selected, s)
				}
			}

			c.logger.Info("Running benchmarks",
				zap.Strings("passes", c.cfg.Passes),
				zap.Int("arguments", c.cfg.Bench.Arguments),
				zap.Int("statements", c.cfg.Bench.Statements))
			results, err := RunBenchmarks(c.cfg, selected)
			if err != nil {
				return err
			}

			if format == "go" {
				return WriteBenchLines(cmd.OutOrStdout(), results)
			}
			WriteBenchTable(cmd.OutOrStdout(), results)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or go")
	cmd.Flags().StringSliceVarP(&strategies, "strategy", "s", nil, "Strategies to run (default: all)")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
