package cpu

import (
	"errors"
	"fmt"

	"github.com/retroenv/chip8vm/internal/stack"
)

var (
	// ErrDecode is returned for opcodes outside of the instruction set.
	ErrDecode = errors.New("undecodable opcode")
	// ErrMemoryOutOfBounds is returned for accesses beyond the 4KB memory.
	ErrMemoryOutOfBounds = errors.New("memory access out of bounds")
	// ErrNoKeypad is returned for key instructions when no keypad is configured.
	ErrNoKeypad = errors.New("unsupported without input collaborator")

	// ErrStackOverflow is returned when calling with a full call stack.
	ErrStackOverflow = stack.ErrOverflow
	// ErrStackUnderflow is returned when returning with an empty call stack.
	ErrStackUnderflow = stack.ErrUnderflow
)

// DecodeError reports an opcode that does not decode to an instruction.
type DecodeError struct {
	Opcode uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %04X", ErrDecode, e.Opcode)
}

func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

// MemoryError reports the first address outside of memory that an
// instruction or fetch tried to access.
type MemoryError struct {
	Address int
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("%s: address %04X", ErrMemoryOutOfBounds, e.Address)
}

func (e *MemoryError) Unwrap() error {
	return ErrMemoryOutOfBounds
}

// UnsupportedError reports a key instruction executed without a keypad.
type UnsupportedError struct {
	Opcode uint16
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: opcode %04X", ErrNoKeypad, e.Opcode)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrNoKeypad
}

// StepError wraps a fault with the location of the failing instruction.
type StepError struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("executing opcode %04X at %04X: %s", e.Opcode, e.PC, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
