// Package main is the rlmesh command line interface.
//
// Usage:
//
//	rlmesh [flags] <command>
//
// Commands:
//
//	train - train an agent on the built-in grid world
//	eval  - evaluate an agent on the built-in grid world
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rlmesh/rlmesh/agent"
	"github.com/rlmesh/rlmesh/env"
	"github.com/rlmesh/rlmesh/logging"
	"github.com/rlmesh/rlmesh/memory"
	"github.com/rlmesh/rlmesh/metrics"
	"github.com/rlmesh/rlmesh/trainer"
)

func main() {
	for _, envFile := range []string{".env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type runFlags struct {
	configPath string
	logDir     string
	timesteps  int
	seed       int64
	verbose    bool
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rlmesh",
		Short:         "rlmesh runs reinforcement learning agents against simulated environments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := &runFlags{}
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "agent config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&flags.logDir, "log-dir", "", "override the configured log directory")
	rootCmd.PersistentFlags().IntVarP(&flags.timesteps, "timesteps", "t", 10000, "number of environment steps")
	rootCmd.PersistentFlags().Int64Var(&flags.seed, "seed", 0, "override the configured seed")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newRunCmd("train", "Train a random agent on the built-in grid world", flags, false),
		newRunCmd("eval", "Evaluate a random agent on the built-in grid world", flags, true),
	)
	return rootCmd
}

func newRunCmd(use, short string, flags *runFlags, eval bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), flags, eval)
		},
	}
}

func run(ctx context.Context, flags *runFlags, eval bool) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	level := logging.LogLevelInfo
	if flags.verbose {
		level = logging.LogLevelDebug
	}
	logger := logging.NewSlogLogger(level, "text", false)

	cfg := agent.DefaultConfig()
	if flags.configPath != "" {
		var err error
		if cfg, err = agent.LoadConfig(flags.configPath); err != nil {
			return err
		}
	}
	if flags.logDir != "" {
		cfg.LogDir = flags.logDir
	}
	if flags.seed != 0 {
		cfg.Seed = flags.seed
	}

	world, err := env.NewGridWorld()
	if err != nil {
		return err
	}
	defer world.Close()

	mem, err := memory.NewRing(10000, cfg.Seed)
	if err != nil {
		return err
	}

	if cfg.ExperimentName == "" {
		cfg.ExperimentName = fmt.Sprintf("%s_random", time.Now().Format("06-01-02_15-04-05"))
	}

	writer, err := metrics.NewCSVWriter(filepath.Join(cfg.LogDir, cfg.ExperimentName))
	if err != nil {
		return err
	}
	defer writer.Close()

	a, err := agent.NewRandom(world, nil, func(o *agent.Options) {
		o.Config = cfg
		o.Memory = mem
		o.Logger = logger
		o.Writer = writer
	})
	if err != nil {
		return err
	}

	seq, err := trainer.NewSequential(a, world, func(o *trainer.Options) {
		o.Timesteps = flags.timesteps
		o.Logger = logger
	})
	if err != nil {
		return err
	}

	var res trainer.Result
	if eval {
		res, err = seq.Eval(ctx)
	} else {
		res, err = seq.Train(ctx)
	}
	if err != nil {
		return err
	}

	logger.Info("scalars written",
		"dir", a.ExperimentDir(), "episodes", res.Episodes, "total_reward", res.TotalReward)
	return nil
}
