// Package main implements the main entry point for the CHIP-8 interpreter
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/chip8vm/internal/cli"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts.Quiet)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(logger, opts.Quiet)

	if err := run(ctx, logger, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		// faults are logged by the runner
		var faultErr *runner.FaultError
		if errors.As(err, &faultErr) {
			os.Exit(1)
		}
		logger.Fatal("Running program failed", log.Err(err))
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	program, err := loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	cfg, err := config.CPUConfig(opts)
	if err != nil {
		return fmt.Errorf("creating cpu config: %w", err)
	}

	c := cpu.New(cfg)
	if err := c.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program into memory: %w", err)
	}
	logger.Debug("Program loaded",
		log.String("file", opts.Input),
		log.Int("size", len(program)))

	r := runner.New(logger, c, runner.Options{
		MaxSteps:      opts.MaxSteps,
		TimerInterval: opts.TimerInterval,
	})
	result, runErr := r.Run(ctx)
	logger.Info("Execution finished",
		log.Int("steps", result.Steps),
		log.Bool("halted", result.Halted))

	if opts.Dump {
		if err := c.Dump(os.Stdout); err != nil {
			return fmt.Errorf("dumping state: %w", err)
		}
	}
	return runErr
}

func printBanner(logger *log.Logger, quiet bool) {
	if quiet {
		return
	}
	logger.Info("chip8vm - CHIP-8 interpreter",
		log.String("version", buildinfo.Version(version, commit, date)))
}
