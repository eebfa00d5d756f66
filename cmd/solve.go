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

var solveCmd = &cobra.Command{
	Use:   "solve <instance-folder>",
	Short: "Solve one instance and export the schedule",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
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
			logger.New("solve-command").Errorf("service close: %v", err)
		}
	}()
	svc.StartMetrics(ctx)

	res, err := svc.Solve(ctx, args[0])
	if err != nil {
		return err
	}
	if !res.Feasible {
		return fmt.Errorf("no feasible schedule found")
	}
	fmt.Printf("objective: %.3f\nenergy: %d\nmakespan: %d\niterations: %d\n",
		res.Objective, res.Solution.TotalEnergy(), res.Solution.Cmax(), res.Iterations)
	return nil
}
