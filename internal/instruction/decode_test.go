package instruction

import (
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

//nolint:funlen // test tables can be long
func TestDecode(t *testing.T) {
	tests := []struct {
		opcode   uint16
		expected Instruction
	}{
		{0x00E0, Instruction{Kind: ClearScreen}},
		{0x00EE, Instruction{Kind: Return}},
		{0x1234, Instruction{Kind: Jump, Address: 0x234}},
		{0x2ABC, Instruction{Kind: Call, Address: 0xABC}},
		{0x3A12, Instruction{Kind: SkipEqualImm, X: 0xA, NN: 0x12}},
		{0x4BFF, Instruction{Kind: SkipNotEqualImm, X: 0xB, NN: 0xFF}},
		{0x5120, Instruction{Kind: SkipEqualReg, X: 1, Y: 2}},
		{0x6C7B, Instruction{Kind: StoreImm, X: 0xC, NN: 0x7B}},
		{0x7001, Instruction{Kind: AddImm, X: 0, NN: 1}},
		{0x8120, Instruction{Kind: Move, X: 1, Y: 2}},
		{0x8121, Instruction{Kind: Or, X: 1, Y: 2}},
		{0x8122, Instruction{Kind: And, X: 1, Y: 2}},
		{0x8123, Instruction{Kind: Xor, X: 1, Y: 2}},
		{0x8124, Instruction{Kind: AddReg, X: 1, Y: 2}},
		{0x8125, Instruction{Kind: Sub, X: 1, Y: 2}},
		{0x8126, Instruction{Kind: ShiftRight, X: 1, Y: 2}},
		{0x8127, Instruction{Kind: SubReverse, X: 1, Y: 2}},
		{0x812E, Instruction{Kind: ShiftLeft, X: 1, Y: 2}},
		{0x9DE0, Instruction{Kind: SkipNotEqualReg, X: 0xD, Y: 0xE}},
		{0xA2F0, Instruction{Kind: LoadIndex, Address: 0x2F0}},
		{0xB300, Instruction{Kind: JumpOffset, Address: 0x300}},
		{0xC50F, Instruction{Kind: Random, X: 5, NN: 0x0F}},
		{0xD125, Instruction{Kind: Draw, X: 1, Y: 2, N: 5}},
		{0xE39E, Instruction{Kind: SkipKeyPressed, X: 3}},
		{0xE4A1, Instruction{Kind: SkipKeyNotPressed, X: 4}},
		{0xF507, Instruction{Kind: StoreDelayTimer, X: 5}},
		{0xF60A, Instruction{Kind: WaitKey, X: 6}},
		{0xF715, Instruction{Kind: LoadDelayTimer, X: 7}},
		{0xF818, Instruction{Kind: LoadSoundTimer, X: 8}},
		{0xF91E, Instruction{Kind: AddIndex, X: 9}},
		{0xFA29, Instruction{Kind: FontAddress, X: 0xA}},
		{0xFB33, Instruction{Kind: StoreBCD, X: 0xB}},
		{0xFC55, Instruction{Kind: StoreRegisters, X: 0xC}},
		{0xFD65, Instruction{Kind: RestoreRegisters, X: 0xD}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%04X", tt.opcode), func(t *testing.T) {
			ins, ok := Decode(tt.opcode)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, ins)
		})
	}
}

func TestDecodeFailure(t *testing.T) {
	opcodes := []uint16{
		0x0000, // machine code subroutine calls are not supported
		0x0123,
		0x00E1,
		0x00EF,
		0x5121, // register compare forms require a zero low nibble
		0x912F,
		0x8128, // undefined ALU selectors
		0x812D,
		0x812F,
		0xE19F,
		0xE1A2,
		0xF100,
		0xF130,
		0xF166,
		0xF1FF,
	}

	for _, opcode := range opcodes {
		t.Run(fmt.Sprintf("%04X", opcode), func(t *testing.T) {
			ins, ok := Decode(opcode)
			assert.False(t, ok)
			assert.Equal(t, Invalid, ins.Kind)
		})
	}
}

// TestDecodeAll verifies over the whole opcode space that every decodable
// opcode re-encodes to itself and renders to a non-empty line.
func TestDecodeAll(t *testing.T) {
	seen := make(map[Kind]int)

	for op := range 0x10000 {
		opcode := uint16(op)
		ins, ok := Decode(opcode)
		if !ok {
			continue
		}

		seen[ins.Kind]++
		if ins.Encode() != opcode {
			t.Fatalf("opcode %04X re-encodes to %04X", opcode, ins.Encode())
		}
		if ins.String() == "" {
			t.Fatalf("opcode %04X renders empty", opcode)
		}
	}

	assert.Equal(t, int(RestoreRegisters), len(seen))
	assert.Equal(t, 1, seen[ClearScreen])
	assert.Equal(t, 1, seen[Return])
	assert.Equal(t, 0x1000, seen[Jump])
	assert.Equal(t, 0x100, seen[Move])
	assert.Equal(t, 0x10, seen[StoreBCD])
}

// TestDecodeMatchesOpcodeTable verifies that every decoded instruction has
// the mnemonic of a matching entry of the CHIP-8 opcode table.
func TestDecodeMatchesOpcodeTable(t *testing.T) {
	for op := range 0x10000 {
		opcode := uint16(op)
		ins, ok := Decode(opcode)
		if !ok {
			continue
		}

		var found bool
		for _, entry := range chip8.Opcodes[int(opcode>>12)] {
			if entry.Info.Mask&opcode == entry.Info.Value && entry.Instruction.Name == ins.Name() {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("opcode %04X decodes to %s without a matching table entry", opcode, ins.Name())
		}
	}
}

func TestDecodeStrictRegisterSkips(t *testing.T) {
	for _, opcode := range []uint16{0x5121, 0x512F, 0x9121, 0x912F} {
		_, ok := Decode(opcode)
		assert.False(t, ok)
	}
}

func TestDecodeDeterministic(t *testing.T) {
	first, ok1 := Decode(0xD7A3)
	second, ok2 := Decode(0xD7A3)

	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestEncodeInvalid(t *testing.T) {
	assert.Equal(t, uint16(0), Instruction{}.Encode())
}
