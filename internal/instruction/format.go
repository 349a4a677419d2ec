package instruction

import "fmt"

// AddressFormatter renders an address operand.
type AddressFormatter func(address uint16) string

// HexAddress renders an address as $NNN.
func HexAddress(address uint16) string {
	return fmt.Sprintf("$%03X", address)
}

// String returns the instruction in assembly notation.
func (i Instruction) String() string {
	return i.Format(HexAddress)
}

// Format returns the instruction in assembly notation, rendering the
// address operand of jp, call and ld I with the given formatter.
func (i Instruction) Format(address AddressFormatter) string {
	name := i.Name()
	if name == "" {
		return ""
	}
	if params := i.params(address); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

func (i Instruction) params(address AddressFormatter) string {
	switch i.Kind {
	case ClearScreen, Return:
		return ""

	case Jump, Call:
		return address(i.Address)
	case JumpOffset:
		return fmt.Sprintf("V0, %s", address(i.Address))
	case LoadIndex:
		return fmt.Sprintf("I, %s", address(i.Address))

	case SkipEqualImm, SkipNotEqualImm, StoreImm, AddImm, Random:
		return fmt.Sprintf("V%X, $%02X", i.X, i.NN)

	case SkipEqualReg, SkipNotEqualReg, Move, Or, And, Xor, AddReg, Sub, SubReverse, ShiftRight, ShiftLeft:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)

	case Draw:
		return fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.N)

	case SkipKeyPressed, SkipKeyNotPressed:
		return fmt.Sprintf("V%X", i.X)
	}

	return i.miscParams()
}

func (i Instruction) miscParams() string {
	switch i.Kind {
	case StoreDelayTimer:
		return fmt.Sprintf("V%X, DT", i.X)
	case WaitKey:
		return fmt.Sprintf("V%X, K", i.X)
	case LoadDelayTimer:
		return fmt.Sprintf("DT, V%X", i.X)
	case LoadSoundTimer:
		return fmt.Sprintf("ST, V%X", i.X)
	case AddIndex:
		return fmt.Sprintf("I, V%X", i.X)
	case FontAddress:
		return fmt.Sprintf("F, V%X", i.X)
	case StoreBCD:
		return fmt.Sprintf("B, V%X", i.X)
	case StoreRegisters:
		return fmt.Sprintf("[I], V%X", i.X)
	case RestoreRegisters:
		return fmt.Sprintf("V%X, [I]", i.X)
	default:
		return ""
	}
}
