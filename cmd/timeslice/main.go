// Command timeslice is a small demo of the timeslice library. It processes
// a synthetic integer sequence in cooperative batches on a sched.Loop and
// logs batch progress with zerolog.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/timeslice-go/timeslice"
	"github.com/timeslice-go/timeslice/sched"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeslice",
		Short: "Cooperative batch-processing demo",
		Long: `Demo for the timeslice library.

A task walks a value sequence in bounded batches, yielding control back to
its scheduler between batches so other queued work can run. Batches are
bounded either by an element count or by a wall-clock time budget.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newRunCmd())

	return cmd
}

func newRunCmd() *cobra.Command {
	var (
		budget     string
		amount     float64
		items      int
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process a synthetic integer sequence in cooperative batches",
		Example: `  # Ten-element batches over 100 values
  timeslice run --budget iterations --amount 10 --items 100

  # 2ms time budget per batch, with per-batch debug logging
  timeslice run --budget milliseconds --amount 2 --items 10000 --log-level debug

  # Strategy from a YAML file: {budget: iterations, amount: 25}
  timeslice run --config strategy.yaml --items 1000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, budget, amount, items, configPath, logLevel)
		},
	}

	cmd.Flags().StringVar(&budget, "budget", "iterations", `batch budget: "iterations" or "milliseconds"`)
	cmd.Flags().Float64Var(&amount, "amount", 10, "budget amount: elements per batch, or milliseconds per batch")
	cmd.Flags().IntVar(&items, "items", 100, "number of synthetic values to process")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML file holding a strategy config (overrides --budget/--amount)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runDemo(cmd *cobra.Command, budget string, amount float64, items int, configPath, logLevel string) error {
	lvl, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zl := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).Level(lvl).With().Timestamp().Logger()

	strategy, err := loadStrategy(budget, amount, configPath)
	if err != nil {
		return err
	}

	values := make([]int, items)
	for i := range values {
		values[i] = i
	}

	loop := sched.NewLoop()
	defer loop.Stop()

	stats := timeslice.NewBasicStatsCollector()

	// sum is only touched on the loop goroutine; reading it after Wait is
	// ordered by the completion signal.
	sum := 0
	task, err := timeslice.NewWithOptions(loop, values, func(v int) bool {
		sum += v
		return true
	}, strategy, &timeslice.Options{
		Logger: timeslice.NewZerologLogger(zl),
		Stats:  stats,
		OnProgress: func(p timeslice.ProgressSnapshot) {
			zl.Debug().
				Int("processed", p.ProcessedItems).
				Int("total", p.TotalItems).
				Float64("percent", p.PercentComplete).
				Msg("progress")
		},
	})
	if err != nil {
		return err
	}

	if err := task.Wait(cmd.Context()); err != nil {
		return err
	}

	s := stats.GetStats()
	zl.Info().
		Str("task", task.ID()).
		Str("strategy", strategy.String()).
		Uint64("batches", s.BatchesCompleted).
		Uint64("items", s.ItemsProcessed).
		Dur("avg_batch", s.AverageBatchTime()).
		Int("sum", sum).
		Msg("done")

	return nil
}

func loadStrategy(budget string, amount float64, configPath string) (timeslice.Strategy, error) {
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return timeslice.Strategy{}, fmt.Errorf("reading strategy config %s: %w", configPath, err)
		}
		return timeslice.ParseStrategyConfig(data)
	}

	return timeslice.StrategyConfig{Budget: budget, Amount: amount}.Strategy()
}
