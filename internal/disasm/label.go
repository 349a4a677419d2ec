package disasm

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/instruction"
)

const (
	jumpNaming = "addr_%03X"
	callNaming = "sub_%03X"
	startLabel = "start"
)

// collectTargets gathers all jump and call destinations that point to the
// start of a decoded offset.
func (dis *Disasm) collectTargets() {
	for _, offset := range dis.offsets {
		if !offset.valid {
			continue
		}

		switch {
		case offset.ins.IsCall():
			dis.callTargets.Add(offset.ins.Address)
		case offset.ins.IsJump():
			dis.jumpTargets.Add(offset.ins.Address)
		}
	}
}

// label returns the label name of the address or an empty string if the
// address is not a target. Call targets take precedence over jump targets.
func (dis *Disasm) label(address uint16) string {
	if !dis.isCodeAddress(address) {
		return ""
	}

	switch {
	case dis.callTargets.Contains(address):
		return fmt.Sprintf(callNaming, address)
	case dis.jumpTargets.Contains(address):
		return fmt.Sprintf(jumpNaming, address)
	default:
		return ""
	}
}

// isCodeAddress returns whether the address is the start of an offset.
func (dis *Disasm) isCodeAddress(address uint16) bool {
	if len(dis.offsets) == 0 || address%instruction.Size != 0 {
		return false
	}
	first := dis.offsets[0].address
	last := dis.offsets[len(dis.offsets)-1].address
	return address >= first && address <= last
}

// formatAddress returns the label of the address if it has one, otherwise
// the hex notation.
func (dis *Disasm) formatAddress(address uint16) string {
	if name := dis.label(address); name != "" {
		return name
	}
	return instruction.HexAddress(address)
}
