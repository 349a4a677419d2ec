package cpu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/retrogolib/assert"
)

func TestStoreImmediate(t *testing.T) {
	for r := range uint16(RegisterCount) {
		t.Run(fmt.Sprintf("V%X", r), func(t *testing.T) {
			c := newTestCPU(t)
			fresh := newTestCPU(t)

			execute(t, c, 0x6000|r<<8|0xA5)

			for i := range RegisterCount {
				if uint16(i) == r {
					assert.Equal(t, uint8(0xA5), c.V[i])
				} else {
					assert.Equal(t, fresh.V[i], c.V[i])
				}
			}
			assert.Equal(t, fresh.PC, c.PC)
			assert.Equal(t, fresh.I, c.I)
			assert.Equal(t, fresh.DelayTimer, c.DelayTimer)
			assert.Equal(t, fresh.SoundTimer, c.SoundTimer)
		})
	}
}

func TestAddImmediate(t *testing.T) {
	c := newTestCPU(t)
	c.V[2] = 0xFF
	c.V[FlagRegister] = 7

	execute(t, c, 0x7202)

	assert.Equal(t, uint8(0x01), c.V[2])
	assert.Equal(t, uint8(7), c.V[FlagRegister])
}

func TestAddCarry(t *testing.T) {
	c := newTestCPU(t)
	c.V[0] = 252
	c.V[1] = 2

	execute(t, c, 0x8014)
	assert.Equal(t, uint8(254), c.V[0])
	assert.Equal(t, uint8(0), c.V[FlagRegister])

	execute(t, c, 0x8014)
	assert.Equal(t, uint8(0), c.V[0])
	assert.Equal(t, uint8(1), c.V[FlagRegister])
}

func TestAddCarryIntoFlagRegister(t *testing.T) {
	c := newTestCPU(t)
	c.V[FlagRegister] = 0xFF
	c.V[1] = 0x02

	execute(t, c, 0x8F14)

	assert.Equal(t, uint8(1), c.V[FlagRegister])
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		x, y   uint8
		result uint8
		flag   uint8
	}{
		{"sub no borrow", 0x8125, 10, 3, 7, 1},
		{"sub equal", 0x8125, 5, 5, 0, 1},
		{"sub borrow", 0x8125, 3, 10, 249, 0},
		{"subn no borrow", 0x8127, 3, 10, 7, 1},
		{"subn equal", 0x8127, 5, 5, 0, 1},
		{"subn borrow", 0x8127, 10, 3, 249, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t)
			c.V[1] = tt.x
			c.V[2] = tt.y

			execute(t, c, tt.opcode)

			assert.Equal(t, tt.result, c.V[1])
			assert.Equal(t, tt.y, c.V[2])
			assert.Equal(t, tt.flag, c.V[FlagRegister])
		})
	}
}

func TestBitwise(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		expected uint8
	}{
		{"move", 0x8120, 0b0101_0101},
		{"or", 0x8121, 0b1111_0101},
		{"and", 0x8122, 0b0101_0000},
		{"xor", 0x8123, 0b1010_0101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t)
			c.V[1] = 0b1111_0000
			c.V[2] = 0b0101_0101
			c.V[FlagRegister] = 0x42

			execute(t, c, tt.opcode)

			assert.Equal(t, tt.expected, c.V[1])
			assert.Equal(t, uint8(0x42), c.V[FlagRegister])
		})
	}
}

//nolint:funlen // test tables can be long
func TestShift(t *testing.T) {
	tests := []struct {
		name   string
		mode   ShiftMode
		opcode uint16
		x, y   uint8
		result uint8
		flag   uint8
	}{
		{"right by VY", ShiftByVY, 0x8126, 0b1000_0111, 2, 0b0010_0001, 1},
		{"right by VY uses low bits", ShiftByVY, 0x8126, 0b1000_0110, 0x09, 0b0100_0011, 0},
		{"left by VY", ShiftByVY, 0x812E, 0b1100_0001, 3, 0b0000_1000, 1},
		{"left by VY zero", ShiftByVY, 0x812E, 0b0100_0001, 0, 0b0100_0001, 0},
		{"right by one", ShiftByOne, 0x8126, 0b0000_0011, 5, 0b0000_0001, 1},
		{"left by one", ShiftByOne, 0x812E, 0b1000_0001, 5, 0b0000_0010, 1},
		{"right VY by one", ShiftVYByOne, 0x8126, 0xFF, 0b0000_0100, 0b0000_0010, 0},
		{"left VY by one", ShiftVYByOne, 0x812E, 0x00, 0b1000_0000, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Config{Shift: tt.mode})
			c.V[1] = tt.x
			c.V[2] = tt.y

			execute(t, c, tt.opcode)

			assert.Equal(t, tt.result, c.V[1])
			assert.Equal(t, tt.flag, c.V[FlagRegister])
		})
	}
}

func TestSkip(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		taken  bool
	}{
		{"se immediate taken", 0x3105, true},
		{"se immediate not taken", 0x3106, false},
		{"sne immediate taken", 0x4106, true},
		{"sne immediate not taken", 0x4105, false},
		{"se register taken", 0x5130, true},
		{"se register not taken", 0x5120, false},
		{"sne register taken", 0x9120, true},
		{"sne register not taken", 0x9130, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t)
			c.V[1] = 5
			c.V[2] = 6
			c.V[3] = 5

			execute(t, c, tt.opcode)

			if tt.taken {
				assert.Equal(t, uint16(ProgramStart+2), c.PC)
			} else {
				assert.Equal(t, uint16(ProgramStart), c.PC)
			}
		})
	}
}

func TestJump(t *testing.T) {
	c := newTestCPU(t)

	execute(t, c, 0x1ABC)
	assert.Equal(t, uint16(0xABC), c.PC)
	assert.Equal(t, 0, c.Stack.Len())

	c.V[0] = 0x10
	execute(t, c, 0xB300)
	assert.Equal(t, uint16(0x310), c.PC)
}

func TestCallReturn(t *testing.T) {
	c := newTestCPU(t)
	c.PC = 0x234

	execute(t, c, 0x2456)
	assert.Equal(t, uint16(0x456), c.PC)
	assert.Equal(t, 1, c.Stack.Len())
	top, err := c.Stack.Peek()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x234), top)

	execute(t, c, 0x00EE)
	assert.Equal(t, uint16(0x234), c.PC)
	assert.Equal(t, 0, c.Stack.Len())
}

func TestCallOverflow(t *testing.T) {
	c := newTestCPU(t)

	for range StackSize {
		execute(t, c, 0x2300)
	}

	err := c.Execute(decode(t, 0x2400))
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, uint16(0x300), c.PC)
	assert.Equal(t, StackSize, c.Stack.Len())
}

func TestReturnUnderflow(t *testing.T) {
	c := newTestCPU(t)

	err := c.Execute(decode(t, 0x00EE))
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint16(ProgramStart), c.PC)
}

func TestIndex(t *testing.T) {
	c := newTestCPU(t)

	execute(t, c, 0xA123)
	assert.Equal(t, uint16(0x123), c.I)

	c.V[4] = 0xFF
	c.V[FlagRegister] = 3
	execute(t, c, 0xF41E)
	assert.Equal(t, uint16(0x222), c.I)
	assert.Equal(t, uint8(3), c.V[FlagRegister])
}

func TestFontAddress(t *testing.T) {
	c := newTestCPU(t)
	c.V[2] = 0x1B

	execute(t, c, 0xF229)

	assert.Equal(t, uint16(0xB*5), c.I)
}

func TestRandom(t *testing.T) {
	c := newTestCPU(t, 0xFF, 0xA5)

	execute(t, c, 0xC30F)
	assert.Equal(t, uint8(0x0F), c.V[3])

	execute(t, c, 0xC3F0)
	assert.Equal(t, uint8(0xA0), c.V[3])
}

func TestTimers(t *testing.T) {
	c := newTestCPU(t)
	c.V[1] = 42
	c.V[2] = 17

	execute(t, c, 0xF115)
	execute(t, c, 0xF218)
	assert.Equal(t, uint8(42), c.DelayTimer)
	assert.Equal(t, uint8(17), c.SoundTimer)

	execute(t, c, 0xF307)
	assert.Equal(t, uint8(42), c.V[3])
	assert.Equal(t, uint8(42), c.DelayTimer)
}

func TestStoreBCD(t *testing.T) {
	c := newTestCPU(t)
	c.V[5] = 139
	c.I = 0x900

	execute(t, c, 0xF533)

	assert.Equal(t, byte(1), c.Memory[0x900])
	assert.Equal(t, byte(3), c.Memory[0x901])
	assert.Equal(t, byte(9), c.Memory[0x902])
	assert.Equal(t, uint16(0x900), c.I)
}

func TestStoreBCDOutOfBounds(t *testing.T) {
	c := newTestCPU(t)
	c.I = 0xFFE

	err := c.Execute(decode(t, 0xF033))

	var memErr *MemoryError
	assert.True(t, errors.As(err, &memErr))
	assert.Equal(t, MemorySize, memErr.Address)
	assert.Equal(t, byte(0), c.Memory[0xFFE])
}

func TestStoreRestoreRegisters(t *testing.T) {
	c := newTestCPU(t)
	values := []uint8{99, 98, 97, 96, 95, 94}
	copy(c.V[:], values)
	c.V[6] = 0x77
	c.I = 0x900

	execute(t, c, 0xF555)

	for i, v := range values {
		assert.Equal(t, v, c.Memory[0x900+i])
	}
	assert.Equal(t, byte(0), c.Memory[0x906])
	assert.Equal(t, uint16(0x906), c.I)

	clear(c.V[:])
	c.I = 0x900

	execute(t, c, 0xF565)

	for i, v := range values {
		assert.Equal(t, v, c.V[i])
	}
	assert.Equal(t, uint8(0), c.V[6])
	assert.Equal(t, uint16(0x906), c.I)
}

func TestStoreRegistersOutOfBounds(t *testing.T) {
	c := newTestCPU(t)
	c.I = 0xFFC

	err := c.Execute(decode(t, 0xF455))
	assert.True(t, errors.Is(err, ErrMemoryOutOfBounds))
	assert.Equal(t, uint16(0xFFC), c.I)

	err = c.Execute(decode(t, 0xF465))
	assert.True(t, errors.Is(err, ErrMemoryOutOfBounds))

	// the last register fits exactly
	execute(t, c, 0xF355)
	assert.Equal(t, uint16(0x1000), c.I)
}

func TestClearScreen(t *testing.T) {
	c := newTestCPU(t)
	for i := range c.Display {
		c.Display[i] = i%3 == 0
	}
	c.V[FlagRegister] = 5

	execute(t, c, 0x00E0)

	for _, pixel := range c.Display {
		assert.False(t, pixel)
	}
	assert.Equal(t, uint8(5), c.V[FlagRegister])
}

func TestKeypadWithoutCollaborator(t *testing.T) {
	for _, opcode := range []uint16{0xE19E, 0xE1A1, 0xF10A} {
		t.Run(fmt.Sprintf("%04X", opcode), func(t *testing.T) {
			c := newTestCPU(t)

			err := c.Execute(decode(t, opcode))

			var unsupported *UnsupportedError
			assert.True(t, errors.As(err, &unsupported))
			assert.Equal(t, opcode, unsupported.Opcode)
			assert.True(t, errors.Is(err, ErrNoKeypad))
		})
	}
}

func TestKeypad(t *testing.T) {
	c := New(Config{Keypad: newMockKeypad(0x7)})
	c.V[1] = 0x7
	c.V[2] = 0x3

	execute(t, c, 0xE19E)
	assert.Equal(t, uint16(ProgramStart+2), c.PC)

	execute(t, c, 0xE29E)
	assert.Equal(t, uint16(ProgramStart+2), c.PC)

	execute(t, c, 0xE2A1)
	assert.Equal(t, uint16(ProgramStart+4), c.PC)

	execute(t, c, 0xF30A)
	assert.Equal(t, uint8(0x7), c.V[3])
}

func TestExecuteInvalid(t *testing.T) {
	c := newTestCPU(t)

	err := c.Execute(instruction.Instruction{})
	assert.True(t, errors.Is(err, ErrDecode))
}
