// Package runner drives the CPU: it decides the instruction cadence, ticks
// the timers and reports faults.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/retrogolib/log"
)

// Options of the runner.
type Options struct {
	MaxSteps      int // stop after this many instructions, 0 means no limit
	TimerInterval int // instructions per timer tick, 0 disables the timers
}

// Result describes a finished run.
type Result struct {
	Steps  int  // number of retired instructions
	Halted bool // the program reached a jump to its own address
}

// FaultError is returned by Run when an instruction faulted.
// The fault has already been logged by the runner.
type FaultError struct {
	Steps int // instructions retired before the fault
	Err   error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Steps, e.Err)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}

// Runner executes a program on a CPU.
type Runner struct {
	logger *log.Logger
	cpu    *cpu.CPU
	opts   Options

	sound bool // buzzer state after the last step
}

// New returns a runner for the given CPU.
func New(logger *log.Logger, c *cpu.CPU, opts Options) *Runner {
	return &Runner{
		logger: logger,
		cpu:    c,
		opts:   opts,
	}
}

// Run executes instructions until the step limit is reached, the program
// halts, the context is cancelled or a fault occurs.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var result Result

	for r.opts.MaxSteps == 0 || result.Steps < r.opts.MaxSteps {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("running program: %w", err)
		}

		// a jump to its own address is the common end of program idiom
		ins, ok := r.next()
		if ok && ins.IsJump() && ins.Address == r.cpu.PC {
			result.Halted = true
			r.logger.Info("Program halted",
				log.Hex("address", r.cpu.PC),
				log.Int("steps", result.Steps))
			return result, nil
		}
		if ok && ins.NeedsKeypad() && !r.cpu.HasKeypad() {
			r.logger.Warn("Keypad instruction without keypad",
				log.Hex("address", r.cpu.PC),
				log.String("instruction", ins.String()))
		}

		if err := r.cpu.Step(); err != nil {
			r.logFault(err)
			return result, &FaultError{Steps: result.Steps, Err: err}
		}
		result.Steps++

		if r.opts.TimerInterval > 0 && result.Steps%r.opts.TimerInterval == 0 {
			r.cpu.TickTimers()
		}
		r.updateSound()
	}

	r.logger.Debug("Step limit reached", log.Int("steps", result.Steps))
	return result, nil
}

// next decodes the instruction at the program counter without executing it.
func (r *Runner) next() (instruction.Instruction, bool) {
	opcode, err := r.cpu.Fetch()
	if err != nil {
		return instruction.Instruction{}, false
	}
	return instruction.Decode(opcode)
}

// updateSound logs buzzer state changes.
func (r *Runner) updateSound() {
	active := r.cpu.SoundActive()
	if active == r.sound {
		return
	}
	r.sound = active
	r.logger.Debug("Buzzer", log.Bool("active", active))
}


func (r *Runner) logFault(err error) {
	var stepErr *cpu.StepError
	if !errors.As(err, &stepErr) {
		r.logger.Error("Execution failed", log.Err(err))
		return
	}

	r.logger.Error("Execution failed",
		log.Hex("pc", stepErr.PC),
		log.Hex("opcode", stepErr.Opcode),
		log.Err(stepErr.Err))
}
