// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/random"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CPUConfig creates the CPU configuration for the given program options.
func CPUConfig(opts options.Program) (cpu.Config, error) {
	shift, err := ShiftMode(opts.Shift)
	if err != nil {
		return cpu.Config{}, err
	}

	cfg := cpu.Config{
		Shift: shift,
	}
	if opts.Seed != 0 {
		cfg.Random = random.New(opts.Seed)
	}
	return cfg, nil
}

// ShiftMode converts a shift mode name to the CPU setting.
func ShiftMode(name string) (cpu.ShiftMode, error) {
	switch name {
	case options.ShiftVY, "":
		return cpu.ShiftByVY, nil
	case options.ShiftOne:
		return cpu.ShiftByOne, nil
	case options.ShiftCosmac:
		return cpu.ShiftVYByOne, nil
	default:
		return 0, fmt.Errorf("unsupported shift mode: %s. Valid options: %s, %s, %s",
			name, options.ShiftVY, options.ShiftOne, options.ShiftCosmac)
	}
}
