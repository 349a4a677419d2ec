// Package disasm implements a linear sweep disassembler for CHIP-8 programs.
package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// offset is a single decoded location of the program.
type offset struct {
	address uint16
	data    []byte

	ins   instruction.Instruction
	valid bool // data holds a decodable opcode
}

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options options.Disassembler
	writer  io.Writer

	offsets []offset

	jumpTargets set.Set[uint16] // addresses that are jumped to
	callTargets set.Set[uint16] // addresses that are called
}

// New creates a new disassembler for the program image that is loaded
// at the program start address.
func New(logger *log.Logger, program []byte, writer io.Writer, options options.Disassembler) (*Disasm, error) {
	if len(program) == 0 {
		return nil, fmt.Errorf("program is empty")
	}
	if len(program) > cpu.MaxProgramSize {
		return nil, fmt.Errorf("program size %d exceeds maximum of %d bytes", len(program), cpu.MaxProgramSize)
	}

	dis := &Disasm{
		logger:      logger,
		options:     options,
		writer:      writer,
		jumpTargets: set.New[uint16](),
		callTargets: set.New[uint16](),
	}
	dis.decode(program)
	return dis, nil
}

// Process disassembles the program and writes the assembly to the writer.
func (dis *Disasm) Process() error {
	dis.collectTargets()

	dis.logger.Debug("Disassembled program",
		log.Int("offsets", len(dis.offsets)),
		log.Int("jump_targets", len(dis.jumpTargets)),
		log.Int("call_targets", len(dis.callTargets)))

	if err := dis.writeHeader(); err != nil {
		return err
	}

	var blockEnded, previousSkip bool
	for i, offset := range dis.offsets {
		if err := dis.writeLabel(i, offset.address, blockEnded); err != nil {
			return err
		}
		if err := dis.writeOffset(offset); err != nil {
			return err
		}

		blockEnded = offset.valid && !previousSkip && (offset.ins.IsJump() || offset.ins.IsReturn())
		previousSkip = offset.valid && offset.ins.IsSkip()
	}
	return nil
}

// Disassemble is a convenience wrapper that disassembles the program into the writer.
func Disassemble(logger *log.Logger, program []byte, writer io.Writer, options options.Disassembler) error {
	dis, err := New(logger, program, writer, options)
	if err != nil {
		return err
	}
	return dis.Process()
}

// decode splits the program into instruction sized offsets. A trailing odd
// byte becomes a single data byte.
func (dis *Disasm) decode(program []byte) {
	address := uint16(cpu.ProgramStart)

	for i := 0; i < len(program); i += instruction.Size {
		data := program[i:min(i+instruction.Size, len(program))]
		offset := offset{
			address: address,
			data:    data,
		}

		if len(data) == instruction.Size {
			opcode := uint16(data[0])<<8 | uint16(data[1])
			offset.ins, offset.valid = instruction.Decode(opcode)
			if !offset.valid {
				dis.logger.Debug("Invalid opcode",
					log.Hex("address", address),
					log.Hex("opcode", opcode))
			}
		}

		dis.offsets = append(dis.offsets, offset)
		address += instruction.Size
	}
}
