// Package options contains the program options.
package options

// Shift mode names accepted on the command line.
const (
	ShiftVY     = "vy"
	ShiftOne    = "one"
	ShiftCosmac = "cosmac"
)

// Program options of the interpreter.
type Program struct {
	Input string // program image to run

	MaxSteps      int    // number of instructions to execute, 0 runs until halt or fault
	TimerInterval int    // instructions per timer tick, 0 disables timers
	Seed          uint64 // seed for the random source, 0 seeds from the clock
	Shift         string // shift instruction behavior: vy, one or cosmac

	Dump  bool // dump the machine state after the run
	Debug bool
	Quiet bool
}

// Disassembler defines options to control the disassembler.
type Disassembler struct {
	Input  string
	Output string // output file, printed on console if empty

	HexComments    bool // output opcodes as hex values in comments
	OffsetComments bool // output addresses in comments

	Debug bool
	Quiet bool
}

// NewProgram returns program options with default values.
func NewProgram() Program {
	return Program{
		TimerInterval: 10,
		Shift:         ShiftVY,
	}
}

// NewDisassembler returns disassembler options with default values.
func NewDisassembler() Disassembler {
	return Disassembler{
		HexComments:    true,
		OffsetComments: true,
	}
}
