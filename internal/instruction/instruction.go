package instruction

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Size is the size of every instruction in bytes.
const Size = 2

// Kind identifies one instruction form.
type Kind uint8

// Instruction forms, named by their effect. The comment lists the opcode pattern.
const (
	Invalid           Kind = iota
	ClearScreen            // 00E0
	Return                 // 00EE
	Jump                   // 1NNN
	Call                   // 2NNN
	SkipEqualImm           // 3XNN
	SkipNotEqualImm        // 4XNN
	SkipEqualReg           // 5XY0
	StoreImm               // 6XNN
	AddImm                 // 7XNN
	Move                   // 8XY0
	Or                     // 8XY1
	And                    // 8XY2
	Xor                    // 8XY3
	AddReg                 // 8XY4
	Sub                    // 8XY5
	ShiftRight             // 8XY6
	SubReverse             // 8XY7
	ShiftLeft              // 8XYE
	SkipNotEqualReg        // 9XY0
	LoadIndex              // ANNN
	JumpOffset             // BNNN
	Random                 // CXNN
	Draw                   // DXYN
	SkipKeyPressed         // EX9E
	SkipKeyNotPressed      // EXA1
	StoreDelayTimer        // FX07
	WaitKey                // FX0A
	LoadDelayTimer         // FX15
	LoadSoundTimer         // FX18
	AddIndex               // FX1E
	FontAddress            // FX29
	StoreBCD               // FX33
	StoreRegisters         // FX55
	RestoreRegisters       // FX65
)

// Instruction is a decoded opcode with its operand fields.
// Fields that the form does not use are zero.
type Instruction struct {
	Kind Kind

	X       uint8  // register index, bits 8-11
	Y       uint8  // register index, bits 4-7
	N       uint8  // sprite height, bits 0-3
	NN      uint8  // immediate byte, bits 0-7
	Address uint16 // address, bits 0-11
}

var mnemonics = map[Kind]*chip8.Instruction{
	ClearScreen:       chip8.ClsInst,
	Return:            chip8.RetInst,
	Jump:              chip8.JpInst,
	Call:              chip8.CallInst,
	SkipEqualImm:      chip8.SeInst,
	SkipNotEqualImm:   chip8.SneInst,
	SkipEqualReg:      chip8.SeInst,
	StoreImm:          chip8.LdInst,
	AddImm:            chip8.AddInst,
	Move:              chip8.LdInst,
	Or:                chip8.OrInst,
	And:               chip8.AndInst,
	Xor:               chip8.XorInst,
	AddReg:            chip8.AddInst,
	Sub:               chip8.SubInst,
	ShiftRight:        chip8.ShrInst,
	SubReverse:        chip8.SubnInst,
	ShiftLeft:         chip8.ShlInst,
	SkipNotEqualReg:   chip8.SneInst,
	LoadIndex:         chip8.LdInst,
	JumpOffset:        chip8.JpInst,
	Random:            chip8.RndInst,
	Draw:              chip8.DrwInst,
	SkipKeyPressed:    chip8.SkpInst,
	SkipKeyNotPressed: chip8.SknpInst,
	StoreDelayTimer:   chip8.LdInst,
	WaitKey:           chip8.LdInst,
	LoadDelayTimer:    chip8.LdInst,
	LoadSoundTimer:    chip8.LdInst,
	AddIndex:          chip8.AddInst,
	FontAddress:       chip8.LdInst,
	StoreBCD:          chip8.LdInst,
	StoreRegisters:    chip8.LdInst,
	RestoreRegisters:  chip8.LdInst,
}

// Name returns the mnemonic of the instruction, or an empty string for an
// invalid instruction.
func (i Instruction) Name() string {
	ins, ok := mnemonics[i.Kind]
	if !ok {
		return ""
	}
	return ins.Name
}

// IsJump returns true for the unconditional jump to a literal address.
// The jump with V0 offset has no static target and is not included.
func (i Instruction) IsJump() bool {
	return i.Kind == Jump
}

// IsCall returns true if the instruction is a subroutine call.
func (i Instruction) IsCall() bool {
	return i.Kind == Call
}

// IsReturn returns true if the instruction returns from a subroutine.
func (i Instruction) IsReturn() bool {
	return i.Kind == Return
}

// IsSkip returns true if the instruction conditionally skips the next one.
func (i Instruction) IsSkip() bool {
	if i.Kind == Invalid {
		return false
	}
	return chip8.SkipInstructions.Contains(i.Name())
}

// NeedsKeypad returns true if executing the instruction requires key state.
func (i Instruction) NeedsKeypad() bool {
	switch i.Kind {
	case SkipKeyPressed, SkipKeyNotPressed, WaitKey:
		return true
	default:
		return false
	}
}
