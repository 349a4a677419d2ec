package cpu

import (
	"testing"

	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/chip8vm/internal/random"
)

type mockKeypad struct {
	pressed map[uint8]bool
}

func newMockKeypad(keys ...uint8) *mockKeypad {
	k := &mockKeypad{pressed: make(map[uint8]bool)}
	for _, key := range keys {
		k.pressed[key] = true
	}
	return k
}

func (k *mockKeypad) Pressed(key uint8) bool {
	return k.pressed[key]
}

func (k *mockKeypad) Key() (uint8, bool) {
	for key := range uint8(16) {
		if k.pressed[key] {
			return key, true
		}
	}
	return 0, false
}

func newTestCPU(t *testing.T, randomBytes ...byte) *CPU {
	t.Helper()
	return New(Config{Random: random.NewSequence(randomBytes...)})
}

func decode(t *testing.T, opcode uint16) instruction.Instruction {
	t.Helper()
	ins, ok := instruction.Decode(opcode)
	if !ok {
		t.Fatalf("opcode %04X does not decode", opcode)
	}
	return ins
}

func execute(t *testing.T, c *CPU, opcode uint16) {
	t.Helper()
	if err := c.Execute(decode(t, opcode)); err != nil {
		t.Fatalf("executing %04X: %v", opcode, err)
	}
}
