package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/maelqr/ecosched/app"
	"github.com/maelqr/ecosched/config"
	"github.com/maelqr/ecosched/infra/logger"
)

var benchCmd = &cobra.Command{
	Use:   "bench <instance-folder>",
	Short: "Run a benchmark campaign on one instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("bench-command").Errorf("service close: %v", err)
		}
	}()
	svc.StartMetrics(ctx)

	sum, err := svc.Bench(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("instance: %s\nruns: %d\nfeasible: %d\nbest: %.3f\nmean: %.3f\nstddev: %.3f\nmedian: %.3f\n",
		sum.Instance, sum.Runs, sum.Feasible, sum.Best, sum.Mean, sum.StdDev, sum.Median)
	return nil
}
