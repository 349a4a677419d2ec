package cpu

import (
	"github.com/retroenv/chip8vm/internal/instruction"
)

// Fetch returns the big-endian opcode at the program counter.
func (c *CPU) Fetch() (uint16, error) {
	if err := c.checkMemory(int(c.PC), instruction.Size); err != nil {
		return 0, err
	}
	return uint16(c.Memory[c.PC])<<8 | uint16(c.Memory[c.PC+1]), nil
}

// Step executes the instruction at the program counter and advances the
// program counter past it unless the instruction transferred control.
// Faults are returned as *StepError.
func (c *CPU) Step() error {
	pc := c.PC

	opcode, err := c.Fetch()
	if err != nil {
		return &StepError{PC: pc, Err: err}
	}

	ins, ok := instruction.Decode(opcode)
	if !ok {
		return &StepError{PC: pc, Opcode: opcode, Err: &DecodeError{Opcode: opcode}}
	}

	redirected, err := c.execute(ins)
	if err != nil {
		c.PC = pc
		return &StepError{PC: pc, Opcode: opcode, Err: err}
	}

	if !redirected {
		c.PC += instruction.Size
	}
	return nil
}
