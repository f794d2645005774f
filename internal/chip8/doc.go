// Package chip8 implements the CHIP-8 interpreter core.
//
// # Machine Overview
//
// CHIP-8 is an interpreted virtual machine from the 1970s designed for simple games.
// A Machine holds the complete state of one virtual CPU:
//   - 4KB of byte addressable memory (0x000-0xFFF)
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag register
//   - a 16-bit index register I and a 16-bit program counter
//   - a 16 level call stack
//   - a delay and a sound timer
//   - a 16 key hexadecimal keypad
//   - a 64x32 monochrome display
//
// # Memory Layout
//
//	0x000-0x1FF: Interpreter area, the glyph table lives at FontStart (0x050)
//	0x200-0xFFF: Program image and data (MaxImageSize bytes)
//
// # Execution
//
// The machine does not pace itself. A driver calls Cycle at the cadence of its
// choice, decrements the timers at 60Hz and feeds key state in between cycles:
//
//	m := chip8.New()
//	if err := m.Load(rom); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for running {
//		if err := m.Cycle(); err != nil {
//			logger.Warn("Instruction rejected", log.Err(err))
//		}
//	}
//
// Errors returned by Cycle are not fatal: the rejected instruction is a no-op and
// the machine can continue with the next cycle. Undefined instruction words are
// silently ignored.
//
// The key wait instruction (Fx0A) never suspends. If no key is down it rewinds
// the program counter so that the same instruction is executed again on the next
// cycle.
//
// A Machine is not safe for concurrent use.
package chip8
