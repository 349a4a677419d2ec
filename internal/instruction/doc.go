// Package instruction provides the closed set of CHIP-8 instructions.
//
// # Instruction Set
//
// CHIP-8 instructions are 2 bytes (16 bits), stored big-endian:
//   - The high nibble selects the instruction group
//   - Groups 0x0, 0x8, 0xE and 0xF use the low byte or low nibble as a secondary selector
//   - Operands are embedded: register indexes X and Y, an 8-bit immediate NN,
//     a 12-bit address NNN or a 4-bit sprite height N
//
// # Decoding
//
// Decode maps an opcode to an Instruction value. It is a pure function; the
// same opcode always yields the same Instruction. Machine code subroutine
// calls (0NNN other than 00E0 and 00EE) are not part of the set and fail to
// decode, as do undefined secondary selectors.
//
// # Usage Example
//
//	ins, ok := instruction.Decode(0xA2F0)
//	if !ok {
//		return fmt.Errorf("unknown opcode %04X", 0xA2F0)
//	}
//	fmt.Println(ins) // ld I, $2F0
package instruction
