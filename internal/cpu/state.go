package cpu

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/stack"
)

// CHIP-8 machine dimensions.
const (
	MemorySize    = 4096
	RegisterCount = 16
	StackSize     = 16

	// FlagRegister is the register index that receives carry, borrow and collision flags.
	FlagRegister = 0xF

	DisplayWidth  = 64
	DisplayHeight = 32

	// ProgramStart is the memory address where programs are loaded and execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart
)

// State is the complete mutable machine state.
type State struct {
	Memory [MemorySize]byte
	V      [RegisterCount]uint8
	I      uint16
	PC     uint16
	Stack  *stack.Bounded[uint16]

	// Display is row-major, a pixel is at x + y*DisplayWidth.
	Display [DisplayWidth * DisplayHeight]bool

	DelayTimer uint8
	SoundTimer uint8
}

// NewState returns a cleared state.
func NewState() *State {
	s := &State{
		Stack: stack.New[uint16](StackSize),
	}
	s.Clear()
	return s
}

// Clear zeroes memory, registers, display, stack and timers and sets the
// program counter to ProgramStart.
func (s *State) Clear() {
	clear(s.Memory[:])
	clear(s.V[:])
	clear(s.Display[:])
	s.Stack.Clear()
	s.PC = ProgramStart
	s.I = 0
	s.DelayTimer = 0
	s.SoundTimer = 0
}

// Pixel returns the display pixel at the given coordinates, wrapping both axes.
func (s *State) Pixel(x, y int) bool {
	return s.Display[pixelIndex(x, y)]
}

func pixelIndex(x, y int) int {
	x %= DisplayWidth
	if x < 0 {
		x += DisplayWidth
	}
	y %= DisplayHeight
	if y < 0 {
		y += DisplayHeight
	}
	return x + y*DisplayWidth
}

// Dump writes a human readable rendering of the registers, timers, stack and
// display to w.
func (s *State) Dump(w io.Writer) error {
	buf := &strings.Builder{}

	fmt.Fprintf(buf, "PC:\t0x%03X\n", s.PC)
	fmt.Fprintf(buf, "I:\t0x%03X\n\n", s.I)

	for i, v := range s.V {
		fmt.Fprintf(buf, "V%02d: 0x%02X\n", i, v)
	}

	fmt.Fprintf(buf, "\ndelayTimer:\t%d\n", s.DelayTimer)
	fmt.Fprintf(buf, "soundTimer:\t%d\n\n", s.SoundTimer)

	fmt.Fprintf(buf, "Stack (%d/%d):", s.Stack.Len(), s.Stack.Cap())
	for _, address := range s.Stack.Values() {
		fmt.Fprintf(buf, " 0x%03X", address)
	}

	buf.WriteString("\n\nFrame buffer:\n")
	for y := range DisplayHeight {
		for x := range DisplayWidth {
			if s.Display[x+y*DisplayWidth] {
				buf.WriteByte('1')
			} else {
				buf.WriteByte('0')
			}
		}
		buf.WriteByte('\n')
	}

	if _, err := io.WriteString(w, buf.String()); err != nil {
		return fmt.Errorf("writing state dump: %w", err)
	}
	return nil
}
