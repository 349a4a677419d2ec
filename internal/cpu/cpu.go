package cpu

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/font"
	"github.com/retroenv/chip8vm/internal/random"
)

// ShiftMode selects how the shift instructions 8XY6 and 8XYE pick their
// operand and shift amount.
type ShiftMode uint8

const (
	// ShiftByVY shifts VX by the low 3 bits of VY.
	ShiftByVY ShiftMode = iota
	// ShiftByOne shifts VX by one and ignores VY.
	ShiftByOne
	// ShiftVYByOne stores VY shifted by one in VX, as the COSMAC VIP did.
	ShiftVYByOne
)

// Keypad reports the state of the 16 key hex keypad.
type Keypad interface {
	// Pressed returns whether the key 0x0-0xF is currently held down.
	Pressed(key uint8) bool
	// Key returns a currently pressed key, false if no key is pressed.
	Key() (uint8, bool)
}

// Config contains the collaborators and behavior settings of a CPU.
type Config struct {
	Font   []byte        // font sprites installed on reset, defaults to font.Data
	Random random.Source // source for the random instruction, defaults to a time seeded PRNG
	Keypad Keypad        // optional, key instructions fault without it
	Shift  ShiftMode
}

// CPU executes instructions against its machine state.
// It is not safe for concurrent use.
type CPU struct {
	State

	font   []byte
	random random.Source
	keypad Keypad
	shift  ShiftMode
}

// New returns a reset CPU using the given configuration.
func New(cfg Config) *CPU {
	c := &CPU{
		State:  *NewState(),
		font:   cfg.Font,
		random: cfg.Random,
		keypad: cfg.Keypad,
		shift:  cfg.Shift,
	}
	if c.font == nil {
		c.font = font.Data[:]
	}
	if c.random == nil {
		c.random = random.NewTimeSeeded()
	}
	c.Reset()
	return c
}

// Reset clears the machine state and installs the font.
func (c *CPU) Reset() {
	c.Clear()
	copy(c.Memory[font.BaseAddress:], c.font)
}

// LoadProgram resets the machine and copies the program image to ProgramStart.
func (c *CPU) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("program of %d bytes does not fit: %w",
			len(program), &MemoryError{Address: MemorySize})
	}

	c.Reset()
	copy(c.Memory[ProgramStart:], program)
	return nil
}

// TickTimers decrements the delay and sound timers if they are not zero.
// It is meant to be called by the driver at 60Hz.
func (c *CPU) TickTimers() {
	if c.DelayTimer > 0 {
		c.DelayTimer--
	}
	if c.SoundTimer > 0 {
		c.SoundTimer--
	}
}

// HasKeypad returns whether a keypad is configured.
func (c *CPU) HasKeypad() bool {
	return c.keypad != nil
}

// SoundActive returns whether the buzzer should sound.
func (c *CPU) SoundActive() bool {
	return c.SoundTimer > 0
}
