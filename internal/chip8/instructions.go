package chip8

// cls turns all pixels off. The cleared screen has to be presented as well,
// so the frame is marked dirty.
func (m *Machine) cls() {
	m.display.Clear()
	m.drawFlag = true
}

// ret pops the return address from the stack into the program counter.
func (m *Machine) ret() error {
	if m.sp == 0 {
		return ErrStackUnderflow
	}
	m.sp--
	m.pc = m.stack[m.sp]
	return nil
}

// call pushes the address of the next instruction and jumps to address.
func (m *Machine) call(address uint16) error {
	if int(m.sp) >= StackLevels {
		return ErrStackOverflow
	}
	m.stack[m.sp] = m.pc
	m.sp++
	m.pc = address
	return nil
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += 2
	}
}

// skipKey skips the next instruction if the key in Vx is in the wanted state.
func (m *Machine) skipKey(x uint8, down bool) error {
	key := m.registers[x]
	if key >= KeyCount {
		return ErrInvalidKey
	}
	m.skipIf(m.keypad[key] == down)
	return nil
}

// add sets Vx to Vx + Vy, VF is set to the carry.
func (m *Machine) add(x, y uint8) {
	sum := uint16(m.registers[x]) + uint16(m.registers[y])
	m.registers[FlagRegister] = boolToFlag(sum > 0xFF)
	m.registers[x] = uint8(sum)
}

// sub sets Vdst to Va - Vb, VF is set to 1 if no borrow occurs.
func (m *Machine) sub(dst, a, b uint8) {
	va, vb := m.registers[a], m.registers[b]
	m.registers[FlagRegister] = boolToFlag(va >= vb)
	m.registers[dst] = va - vb
}

// shr shifts Vx right by one, VF receives the bit shifted out.
func (m *Machine) shr(x uint8) {
	value := m.registers[x]
	m.registers[FlagRegister] = value & 0x01
	m.registers[x] = value >> 1
}

// shl shifts Vx left by one, VF receives the bit shifted out.
func (m *Machine) shl(x uint8) {
	value := m.registers[x]
	m.registers[FlagRegister] = value >> 7
	m.registers[x] = value << 1
}

// loadGlyph points I to the glyph of the hexadecimal digit in Vx.
func (m *Machine) loadGlyph(x uint8) error {
	digit := m.registers[x]
	if digit > 0xF {
		return ErrInvalidGlyph
	}
	m.index = GlyphAddress(digit)
	return nil
}

// storeBCD writes the decimal digits of Vx to I, I+1 and I+2.
func (m *Machine) storeBCD(x uint8) {
	value := m.registers[x]
	m.writeMemory(m.index, value/100)
	m.writeMemory(m.index+1, value/10%10)
	m.writeMemory(m.index+2, value%10)
}

// storeRegisters copies V0..Vx to memory at I and advances I past them.
func (m *Machine) storeRegisters(x uint8) {
	for i := range uint16(x) + 1 {
		m.writeMemory(m.index+i, m.registers[i])
	}
	m.index += uint16(x) + 1
}

// loadRegisters fills V0..Vx from memory at I and advances I past them.
func (m *Machine) loadRegisters(x uint8) {
	for i := range uint16(x) + 1 {
		m.registers[i] = m.ReadMemory(m.index + i)
	}
	m.index += uint16(x) + 1
}

// waitKey stores the lowest pressed key in Vx. Without a pressed key the
// program counter is rewound so the instruction runs again next cycle.
func (m *Machine) waitKey(x uint8) {
	for key, down := range m.keypad {
		if down {
			m.registers[x] = uint8(key)
			return
		}
	}
	m.pc -= 2
}

// draw XORs an n byte sprite from memory at I onto the screen. The origin
// wraps around the screen edges, sprite pixels beyond the edges are clipped.
// VF is set to 1 if any lit pixel was turned off.
func (m *Machine) draw(x, y, height uint8) {
	originX := int(m.registers[x]) % ScreenWidth
	originY := int(m.registers[y]) % ScreenHeight
	m.registers[FlagRegister] = 0

	for row := range int(height) {
		py := originY + row
		if py >= ScreenHeight {
			break
		}
		sprite := m.ReadMemory(m.index + uint16(row))

		for col := range 8 {
			px := originX + col
			if px >= ScreenWidth {
				break
			}
			if sprite&(0x80>>col) == 0 {
				continue
			}
			if m.display.Plot(px, py) {
				m.registers[FlagRegister] = 1
			}
		}
	}

	m.drawFlag = true
}

func (m *Machine) writeMemory(address uint16, value byte) {
	m.memory[address&addressMask] = value
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
