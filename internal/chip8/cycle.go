package chip8

import "fmt"

// Cycle fetches the instruction word at the program counter, advances the
// program counter by 2 and executes the instruction.
//
// A returned error wraps one of the package errors. The instruction that
// caused it had no effect besides the program counter advance and the machine
// can keep running.
func (m *Machine) Cycle() error {
	address := m.pc & addressMask
	word := m.fetch(address)
	m.pc += 2

	ins := Decode(word)
	if err := m.execute(ins); err != nil {
		return fmt.Errorf("opcode %04X at $%03X: %w", word, address, err)
	}
	return nil
}

// fetch reads the big-endian instruction word at the given address.
func (m *Machine) fetch(address uint16) uint16 {
	hi := m.memory[address&addressMask]
	lo := m.memory[(address+1)&addressMask]
	return uint16(hi)<<8 | uint16(lo)
}

// execute runs the state transition of a decoded instruction.
//
//nolint:cyclop,funlen // one case per instruction form
func (m *Machine) execute(ins Instruction) error {
	switch ins.Kind {
	case Undefined, Sys:
		return nil

	case Cls:
		m.cls()
	case Ret:
		return m.ret()
	case Jp:
		m.pc = ins.NNN()
	case Call:
		return m.call(ins.NNN())
	case JpV0:
		m.pc = uint16(m.registers[0]) + ins.NNN()

	case SeByte:
		m.skipIf(m.registers[ins.X()] == ins.NN())
	case SneByte:
		m.skipIf(m.registers[ins.X()] != ins.NN())
	case SeReg:
		m.skipIf(m.registers[ins.X()] == m.registers[ins.Y()])
	case SneReg:
		m.skipIf(m.registers[ins.X()] != m.registers[ins.Y()])
	case Skp:
		return m.skipKey(ins.X(), true)
	case Sknp:
		return m.skipKey(ins.X(), false)

	case LdByte:
		m.registers[ins.X()] = ins.NN()
	case AddByte:
		m.registers[ins.X()] += ins.NN()
	case LdReg:
		m.registers[ins.X()] = m.registers[ins.Y()]
	case Or:
		m.registers[ins.X()] |= m.registers[ins.Y()]
	case And:
		m.registers[ins.X()] &= m.registers[ins.Y()]
	case Xor:
		m.registers[ins.X()] ^= m.registers[ins.Y()]
	case AddReg:
		m.add(ins.X(), ins.Y())
	case Sub:
		m.sub(ins.X(), ins.X(), ins.Y())
	case Subn:
		m.sub(ins.X(), ins.Y(), ins.X())
	case Shr:
		m.shr(ins.X())
	case Shl:
		m.shl(ins.X())
	case Rnd:
		m.registers[ins.X()] = m.random() & ins.NN()

	case LdI:
		m.index = ins.NNN()
	case AddI:
		m.index += uint16(m.registers[ins.X()])
	case LdF:
		return m.loadGlyph(ins.X())
	case LdB:
		m.storeBCD(ins.X())
	case LdIVx:
		m.storeRegisters(ins.X())
	case LdVxI:
		m.loadRegisters(ins.X())

	case LdVxDT:
		m.registers[ins.X()] = m.delayTimer
	case LdDTVx:
		m.delayTimer = m.registers[ins.X()]
	case LdSTVx:
		m.soundTimer = m.registers[ins.X()]
	case LdVxK:
		m.waitKey(ins.X())

	case Drw:
		m.draw(ins.X(), ins.Y(), ins.N())
	}
	return nil
}
