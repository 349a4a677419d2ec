package disasm

import (
	"fmt"
	"strings"

	"github.com/retroenv/chip8vm/internal/cpu"
)

func (dis *Disasm) writeHeader() error {
	if _, err := fmt.Fprintf(dis.writer, "; Program size: %d bytes\n", dis.programSize()); err != nil {
		return fmt.Errorf("writing program size: %w", err)
	}
	if _, err := fmt.Fprintf(dis.writer, "; Code base address: $%03X\n\n", cpu.ProgramStart); err != nil {
		return fmt.Errorf("writing code base address: %w", err)
	}
	if _, err := fmt.Fprintf(dis.writer, ".org $%03X\n\n", cpu.ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}
	if _, err := fmt.Fprintf(dis.writer, "%s:\n", startLabel); err != nil {
		return fmt.Errorf("writing start label: %w", err)
	}
	return nil
}

// writeLabel writes the label of the address if it has one. An empty line
// separates labels and code following an unconditional jump or return.
func (dis *Disasm) writeLabel(index int, address uint16, blockEnded bool) error {
	name := dis.label(address)
	if index > 0 && (name != "" || blockEnded) {
		if _, err := fmt.Fprintln(dis.writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	if name == "" {
		return nil
	}

	if _, err := fmt.Fprintf(dis.writer, "%s:\n", name); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}
	return nil
}

func (dis *Disasm) writeOffset(offset offset) error {
	var code string
	switch {
	case offset.valid && (offset.ins.IsJump() || offset.ins.IsCall()):
		code = offset.ins.Format(dis.formatAddress)
	case offset.valid:
		code = offset.ins.String()
	case len(offset.data) == 1:
		code = fmt.Sprintf(".byte $%02X", offset.data[0])
	default:
		code = fmt.Sprintf(".word $%02X%02X", offset.data[0], offset.data[1])
	}

	comment := dis.comment(offset)
	if comment == "" {
		if _, err := fmt.Fprintf(dis.writer, "  %s\n", code); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(dis.writer, "  %-30s ; %s\n", code, comment); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

func (dis *Disasm) comment(offset offset) string {
	var parts []string
	if dis.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%03X", offset.address))
	}
	if dis.options.HexComments {
		var sb strings.Builder
		for _, b := range offset.data {
			fmt.Fprintf(&sb, "%02X", b)
		}
		parts = append(parts, "$"+sb.String())
	}
	return strings.Join(parts, " ")
}

func (dis *Disasm) programSize() int {
	size := 0
	for _, offset := range dis.offsets {
		size += len(offset.data)
	}
	return size
}
