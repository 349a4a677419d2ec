// Package main implements a CHIP-8 program disassembler
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/cli"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	opts, err := cli.ParseDisasmFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	// the banner would end up in the assembly when printing to the console
	if opts.Output != "" {
		printBanner(logger, opts)
	}

	if err := disasmFile(logger, opts); err != nil {
		logger.Fatal("Disassembling failed", log.Err(err))
	}
}

func disasmFile(logger *log.Logger, opts options.Disassembler) error {
	program, err := loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	var outputFile io.WriteCloser
	if opts.Output == "" {
		outputFile = os.Stdout
	} else {
		outputFile, err = os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("creating file '%s': %w", opts.Output, err)
		}
	}

	if err = disasm.Disassemble(logger, program, outputFile, opts); err != nil {
		_ = outputFile.Close()
		return fmt.Errorf("processing file: %w", err)
	}
	if err = outputFile.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}

	if opts.Output != "" {
		logger.Info("Disassembly written", log.String("file", opts.Output))
	}
	return nil
}

func printBanner(logger *log.Logger, opts options.Disassembler) {
	if opts.Quiet {
		return
	}
	logger.Info("chip8disasm - CHIP-8 disassembler",
		log.String("version", buildinfo.Version(version, commit, date)))
}
