package cpu

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/font"
	"github.com/retroenv/chip8vm/internal/instruction"
)

// Execute applies the instruction to the machine state.
//
// The program counter is expected to hold the address of the instruction.
// Only instructions that transfer control change it: jumps and calls set
// the target, return restores the address of the call and a taken skip
// adds 2. Advancing past the executed instruction is done by Step.
// A faulting instruction leaves the state unchanged.
func (c *CPU) Execute(ins instruction.Instruction) error {
	_, err := c.execute(ins)
	return err
}

// execute returns true if the program counter must not be advanced past
// the instruction.
func (c *CPU) execute(ins instruction.Instruction) (bool, error) {
	switch ins.Kind {
	case instruction.ClearScreen:
		clear(c.Display[:])
	case instruction.Return:
		return false, c.ret()
	case instruction.Jump:
		c.PC = ins.Address
		return true, nil
	case instruction.Call:
		return true, c.call(ins.Address)
	case instruction.JumpOffset:
		c.PC = uint16(c.V[0]) + ins.Address
		return true, nil

	case instruction.SkipEqualImm:
		c.skipIf(c.V[ins.X] == ins.NN)
	case instruction.SkipNotEqualImm:
		c.skipIf(c.V[ins.X] != ins.NN)
	case instruction.SkipEqualReg:
		c.skipIf(c.V[ins.X] == c.V[ins.Y])
	case instruction.SkipNotEqualReg:
		c.skipIf(c.V[ins.X] != c.V[ins.Y])

	case instruction.StoreImm:
		c.V[ins.X] = ins.NN
	case instruction.AddImm:
		c.V[ins.X] += ins.NN

	case instruction.Move, instruction.Or, instruction.And, instruction.Xor,
		instruction.AddReg, instruction.Sub, instruction.SubReverse,
		instruction.ShiftRight, instruction.ShiftLeft:
		c.alu(ins)

	case instruction.LoadIndex:
		c.I = ins.Address
	case instruction.AddIndex:
		c.I += uint16(c.V[ins.X])
	case instruction.FontAddress:
		c.I = font.Address(c.V[ins.X])
	case instruction.Random:
		c.V[ins.X] = c.random.Byte() & ins.NN
	case instruction.Draw:
		return false, c.draw(ins)

	case instruction.StoreDelayTimer:
		c.V[ins.X] = c.DelayTimer
	case instruction.LoadDelayTimer:
		c.DelayTimer = c.V[ins.X]
	case instruction.LoadSoundTimer:
		c.SoundTimer = c.V[ins.X]

	case instruction.StoreBCD:
		return false, c.storeBCD(ins.X)
	case instruction.StoreRegisters:
		return false, c.storeRegisters(ins.X)
	case instruction.RestoreRegisters:
		return false, c.restoreRegisters(ins.X)

	case instruction.SkipKeyPressed, instruction.SkipKeyNotPressed, instruction.WaitKey:
		return c.key(ins)

	default:
		return false, &DecodeError{Opcode: ins.Encode()}
	}
	return false, nil
}

func (c *CPU) ret() error {
	address, err := c.Stack.Pop()
	if err != nil {
		return fmt.Errorf("returning from subroutine: %w", err)
	}
	c.PC = address
	return nil
}

func (c *CPU) call(address uint16) error {
	if err := c.Stack.Push(c.PC); err != nil {
		return fmt.Errorf("calling subroutine %03X: %w", address, err)
	}
	c.PC = address
	return nil
}

func (c *CPU) skipIf(condition bool) {
	if condition {
		c.PC += instruction.Size
	}
}

// alu executes the register to register 8XYN instructions.
// The flag register is written after the result, so VF as destination
// ends up holding the flag.
func (c *CPU) alu(ins instruction.Instruction) {
	x, y := c.V[ins.X], c.V[ins.Y]

	switch ins.Kind {
	case instruction.Move:
		c.V[ins.X] = y
	case instruction.Or:
		c.V[ins.X] = x | y
	case instruction.And:
		c.V[ins.X] = x & y
	case instruction.Xor:
		c.V[ins.X] = x ^ y

	case instruction.AddReg:
		sum := uint16(x) + uint16(y)
		c.V[ins.X] = uint8(sum)
		c.V[FlagRegister] = boolToFlag(sum > 0xFF)
	case instruction.Sub:
		c.V[ins.X] = x - y
		c.V[FlagRegister] = boolToFlag(x >= y)
	case instruction.SubReverse:
		c.V[ins.X] = y - x
		c.V[FlagRegister] = boolToFlag(y >= x)

	case instruction.ShiftRight:
		value, amount := c.shiftOperands(x, y)
		c.V[ins.X] = value >> amount
		c.V[FlagRegister] = value & 0x01
	case instruction.ShiftLeft:
		value, amount := c.shiftOperands(x, y)
		c.V[ins.X] = value << amount
		c.V[FlagRegister] = value >> 7
	}
}

func (c *CPU) shiftOperands(x, y uint8) (uint8, uint8) {
	switch c.shift {
	case ShiftByOne:
		return x, 1
	case ShiftVYByOne:
		return y, 1
	default:
		return x, y & 0x07
	}
}

// draw XORs an N byte sprite from memory at I onto the display at VX, VY.
// Coordinates wrap around both axes. VF is set if any pixel was cleared.
func (c *CPU) draw(ins instruction.Instruction) error {
	if err := c.checkMemory(int(c.I), int(ins.N)); err != nil {
		return fmt.Errorf("reading sprite: %w", err)
	}

	originX, originY := int(c.V[ins.X]), int(c.V[ins.Y])
	var collision bool

	for row := range int(ins.N) {
		line := c.Memory[int(c.I)+row]
		for column := range 8 {
			if line&(0x80>>column) == 0 {
				continue
			}

			idx := pixelIndex(originX+column, originY+row)
			if c.Display[idx] {
				collision = true
			}
			c.Display[idx] = !c.Display[idx]
		}
	}

	c.V[FlagRegister] = boolToFlag(collision)
	return nil
}

// storeBCD writes the hundreds, tens and ones digits of VX to I, I+1 and I+2.
func (c *CPU) storeBCD(x uint8) error {
	if err := c.checkMemory(int(c.I), 3); err != nil {
		return fmt.Errorf("storing BCD: %w", err)
	}

	value := c.V[x]
	c.Memory[c.I] = value / 100
	c.Memory[c.I+1] = value / 10 % 10
	c.Memory[c.I+2] = value % 10
	return nil
}

// storeRegisters copies V0 to VX inclusive to memory at I and advances I by X+1.
func (c *CPU) storeRegisters(x uint8) error {
	count := int(x) + 1
	if err := c.checkMemory(int(c.I), count); err != nil {
		return fmt.Errorf("storing registers: %w", err)
	}

	copy(c.Memory[c.I:], c.V[:count])
	c.I += uint16(count)
	return nil
}

// restoreRegisters fills V0 to VX inclusive from memory at I and advances I by X+1.
func (c *CPU) restoreRegisters(x uint8) error {
	count := int(x) + 1
	if err := c.checkMemory(int(c.I), count); err != nil {
		return fmt.Errorf("restoring registers: %w", err)
	}

	copy(c.V[:count], c.Memory[c.I:])
	c.I += uint16(count)
	return nil
}

// key executes the keypad instructions. Waiting for a key keeps the program
// counter on the instruction until a key is pressed.
func (c *CPU) key(ins instruction.Instruction) (bool, error) {
	if c.keypad == nil {
		return false, &UnsupportedError{Opcode: ins.Encode()}
	}

	switch ins.Kind {
	case instruction.SkipKeyPressed:
		c.skipIf(c.keypad.Pressed(c.V[ins.X] & 0x0F))
	case instruction.SkipKeyNotPressed:
		c.skipIf(!c.keypad.Pressed(c.V[ins.X] & 0x0F))
	case instruction.WaitKey:
		key, ok := c.keypad.Key()
		if !ok {
			return true, nil
		}
		c.V[ins.X] = key & 0x0F
	}
	return false, nil
}

// checkMemory returns an error if the length bytes starting at address do
// not fit into memory.
func (c *CPU) checkMemory(address, length int) error {
	if address+length > MemorySize {
		return &MemoryError{Address: max(address, MemorySize)}
	}
	return nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
