// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/options"
)

// ParseFlags parses the interpreter command line flags.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := options.NewProgram()
	readProgramFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags, name: "chip8vm", file: "program to run"}
	}

	if err := validateArgs(flags, args, "chip8vm", "program to run"); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// ParseDisasmFlags parses the disassembler command line flags.
func ParseDisasmFlags() (options.Disassembler, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := options.NewDisassembler()
	noHexComments, noOffsets := readDisasmFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags, name: "chip8disasm", file: "file to disassemble"}
	}

	if err := validateArgs(flags, args, "chip8disasm", "file to disassemble"); err != nil {
		return opts, err
	}

	// Apply inverse logic for hex comments and offsets
	opts.HexComments = !*noHexComments
	opts.OffsetComments = !*noOffsets
	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
	name  string
	file  string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: %s [options] <%s>\n\n", e.name, e.file)
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string, name, file string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after %s, please pass the %s as last argument", arg, file, file),
				name:  name,
				file:  file,
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Shift = strings.ToLower(opts.Shift)
	if _, err := config.ShiftMode(opts.Shift); err != nil {
		return err
	}

	if opts.MaxSteps < 0 {
		return fmt.Errorf("invalid step count: %d", opts.MaxSteps)
	}
	if opts.TimerInterval < 0 {
		return fmt.Errorf("invalid timer interval: %d", opts.TimerInterval)
	}
	return nil
}

func readProgramFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.IntVar(&opts.MaxSteps, "n", 0, "number of instructions to execute, 0 runs until the program halts or faults")
	flags.IntVar(&opts.TimerInterval, "timer", opts.TimerInterval, "instructions executed per 60Hz timer tick, 0 disables the timers")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number instruction, 0 seeds from the clock")
	flags.StringVar(&opts.Shift, "shift", opts.Shift, "shift instruction behavior (vy/one/cosmac)")
	flags.BoolVar(&opts.Dump, "dump", false, "dump the machine state after the run")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readDisasmFlags(flags *flag.FlagSet, opts *options.Disassembler) (*bool, *bool) {
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	noHexComments := flags.Bool("nohexcomments", false, "do not output opcode bytes as hex values in comments")
	noOffsets := flags.Bool("nooffsets", false, "do not output offsets in comments")
	return noHexComments, noOffsets
}
