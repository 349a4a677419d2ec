// Package cpu implements the CHIP-8 machine state and instruction execution.
//
// # Memory Layout
//
// CHIP-8 systems have 4KB of memory (0x000-0xFFF):
//   - 0x000-0x04F: font sprites for the hex digits, 5 bytes each
//   - 0x050-0x1FF: unused interpreter area
//   - ProgramStart-0xFFF: program and data area
//
// The 64x32 display buffer and the 16 entry call stack live outside of the
// addressable memory.
//
// # Execution Model
//
// Step fetches, decodes and executes exactly one instruction. Timers are not
// decremented by Step; the driver decides the cadence and calls TickTimers.
// All faults are returned as errors, a faulted machine needs Reset and a
// program reload before it can run again.
//
// # Usage Example
//
//	c := cpu.New(cpu.Config{Random: random.New(1)})
//	if err := c.LoadProgram(program); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for {
//		if err := c.Step(); err != nil {
//			return fmt.Errorf("executing: %w", err)
//		}
//	}
package cpu
