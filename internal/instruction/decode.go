package instruction

import (
	"math/bits"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Decode maps a 16-bit opcode to its instruction.
// It returns false if the opcode is not part of the instruction set.
func Decode(opcode uint16) (Instruction, bool) {
	ins := Instruction{
		X:       uint8((opcode & 0x0F00) >> 8),
		Y:       uint8((opcode & 0x00F0) >> 4),
		N:       uint8(opcode & 0x000F),
		NN:      uint8(opcode & 0x00FF),
		Address: opcode & 0x0FFF,
	}

	ins.Kind = decodeKind(opcode)
	if ins.Kind == Invalid {
		return Instruction{}, false
	}
	return ins.operands(), true
}

// kinds maps the fixed opcode bits of each table entry to its instruction form.
var kinds = map[uint16]Kind{
	0x00E0: ClearScreen,
	0x00EE: Return,
	0x1000: Jump,
	0x2000: Call,
	0x3000: SkipEqualImm,
	0x4000: SkipNotEqualImm,
	0x5000: SkipEqualReg,
	0x6000: StoreImm,
	0x7000: AddImm,
	0x8000: Move,
	0x8001: Or,
	0x8002: And,
	0x8003: Xor,
	0x8004: AddReg,
	0x8005: Sub,
	0x8006: ShiftRight,
	0x8007: SubReverse,
	0x800E: ShiftLeft,
	0x9000: SkipNotEqualReg,
	0xA000: LoadIndex,
	0xB000: JumpOffset,
	0xC000: Random,
	0xD000: Draw,
	0xE09E: SkipKeyPressed,
	0xE0A1: SkipKeyNotPressed,
	0xF007: StoreDelayTimer,
	0xF00A: WaitKey,
	0xF015: LoadDelayTimer,
	0xF018: LoadSoundTimer,
	0xF01E: AddIndex,
	0xF029: FontAddress,
	0xF033: StoreBCD,
	0xF055: StoreRegisters,
	0xF065: RestoreRegisters,
}

// decodeKind looks up the opcode in the CHIP-8 opcode table of its first
// nibble. When several entries match, the one with the most fixed bits wins,
// so 00E0 is not taken for a machine routine call.
func decodeKind(opcode uint16) Kind {
	kind := Invalid
	best := -1

	for _, op := range chip8.Opcodes[int(opcode>>12)] {
		if op.Info.Mask&opcode != op.Info.Value {
			continue
		}
		k, ok := kinds[op.Info.Value]
		if !ok {
			continue
		}
		if fixed := bits.OnesCount16(op.Info.Mask); fixed > best {
			kind, best = k, fixed
		}
	}

	// register compare skips require a zero low nibble
	if (kind == SkipEqualReg || kind == SkipNotEqualReg) && opcode&0x000F != 0 {
		return Invalid
	}
	return kind
}

// operands returns a copy with only the fields used by the instruction form set.
func (i Instruction) operands() Instruction {
	ins := Instruction{Kind: i.Kind}

	switch i.Kind {
	case Jump, Call, LoadIndex, JumpOffset:
		ins.Address = i.Address
	case SkipEqualImm, SkipNotEqualImm, StoreImm, AddImm, Random:
		ins.X = i.X
		ins.NN = i.NN
	case SkipEqualReg, SkipNotEqualReg, Move, Or, And, Xor, AddReg, Sub, ShiftRight, SubReverse, ShiftLeft:
		ins.X = i.X
		ins.Y = i.Y
	case Draw:
		ins.X = i.X
		ins.Y = i.Y
		ins.N = i.N
	case SkipKeyPressed, SkipKeyNotPressed, StoreDelayTimer, WaitKey, LoadDelayTimer, LoadSoundTimer,
		AddIndex, FontAddress, StoreBCD, StoreRegisters, RestoreRegisters:
		ins.X = i.X
	}
	return ins
}

// Encode returns the opcode of the instruction.
// Encode of a decoded instruction returns the decoded opcode.
func (i Instruction) Encode() uint16 {
	x := uint16(i.X&0x0F) << 8
	y := uint16(i.Y&0x0F) << 4
	xnn := x | uint16(i.NN)
	xy := x | y
	addr := i.Address & 0x0FFF

	switch i.Kind {
	case ClearScreen:
		return 0x00E0
	case Return:
		return 0x00EE
	case Jump:
		return 0x1000 | addr
	case Call:
		return 0x2000 | addr
	case SkipEqualImm:
		return 0x3000 | xnn
	case SkipNotEqualImm:
		return 0x4000 | xnn
	case SkipEqualReg:
		return 0x5000 | xy
	case StoreImm:
		return 0x6000 | xnn
	case AddImm:
		return 0x7000 | xnn
	case Move:
		return 0x8000 | xy
	case Or:
		return 0x8001 | xy
	case And:
		return 0x8002 | xy
	case Xor:
		return 0x8003 | xy
	case AddReg:
		return 0x8004 | xy
	case Sub:
		return 0x8005 | xy
	case ShiftRight:
		return 0x8006 | xy
	case SubReverse:
		return 0x8007 | xy
	case ShiftLeft:
		return 0x800E | xy
	case SkipNotEqualReg:
		return 0x9000 | xy
	case LoadIndex:
		return 0xA000 | addr
	case JumpOffset:
		return 0xB000 | addr
	case Random:
		return 0xC000 | xnn
	case Draw:
		return 0xD000 | xy | uint16(i.N&0x0F)
	case SkipKeyPressed:
		return 0xE09E | x
	case SkipKeyNotPressed:
		return 0xE0A1 | x
	case StoreDelayTimer:
		return 0xF007 | x
	case WaitKey:
		return 0xF00A | x
	case LoadDelayTimer:
		return 0xF015 | x
	case LoadSoundTimer:
		return 0xF018 | x
	case AddIndex:
		return 0xF01E | x
	case FontAddress:
		return 0xF029 | x
	case StoreBCD:
		return 0xF033 | x
	case StoreRegisters:
		return 0xF055 | x
	case RestoreRegisters:
		return 0xF065 | x
	default:
		return 0
	}
}
