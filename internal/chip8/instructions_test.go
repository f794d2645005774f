package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestAddRegister(t *testing.T) {
	m := newTestMachine(t, 0x8124)
	for a := range 256 {
		for b := range 256 {
			m.pc = ProgramStart
			m.registers[1] = uint8(a)
			m.registers[2] = uint8(b)
			runCycles(t, m, 1)

			assert.Equal(t, uint8((a+b)%256), m.Register(1))
			assert.Equal(t, boolToFlag(a+b > 255), m.Register(FlagRegister))
		}
	}
}

func TestSubtract(t *testing.T) {
	m := newTestMachine(t, 0x8125, 0x8347)
	for a := range 256 {
		for b := range 256 {
			m.pc = ProgramStart
			m.registers[1], m.registers[2] = uint8(a), uint8(b)
			m.registers[3], m.registers[4] = uint8(a), uint8(b)

			runCycles(t, m, 1)
			assert.Equal(t, uint8((a-b+256)%256), m.Register(1))
			assert.Equal(t, boolToFlag(a >= b), m.Register(FlagRegister))

			// reverse subtract: V3 = V4 - V3
			runCycles(t, m, 1)
			assert.Equal(t, uint8((b-a+256)%256), m.Register(3))
			assert.Equal(t, boolToFlag(b >= a), m.Register(FlagRegister))
		}
	}
}

func TestShift(t *testing.T) {
	m := newTestMachine(t, 0x8106, 0x820E)
	for v := range 256 {
		m.pc = ProgramStart
		m.registers[1] = uint8(v)
		m.registers[2] = uint8(v)

		runCycles(t, m, 1)
		assert.Equal(t, uint8(v>>1), m.Register(1))
		assert.Equal(t, uint8(v&1), m.Register(FlagRegister))

		runCycles(t, m, 1)
		assert.Equal(t, uint8(v<<1), m.Register(2))
		assert.Equal(t, uint8(v>>7), m.Register(FlagRegister))
	}
}

func TestAddImmediate(t *testing.T) {
	m := newTestMachine(t, 0x6AFF, 0x7A02)
	m.registers[FlagRegister] = 7
	runCycles(t, m, 2)

	assert.Equal(t, uint8(0x01), m.Register(0xA))
	// carry is not reported for immediate adds
	assert.Equal(t, uint8(7), m.Register(FlagRegister))
}

func TestBitwise(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		want uint8
	}{
		{"load", 0x8120, 0x0F},
		{"or", 0x8121, 0x3F},
		{"and", 0x8122, 0x0C},
		{"xor", 0x8123, 0x33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, tt.word)
			m.registers[1] = 0x3C
			m.registers[2] = 0x0F
			runCycles(t, m, 1)
			assert.Equal(t, tt.want, m.Register(1))
		})
	}
}

func TestExampleProgram(t *testing.T) {
	m := newTestMachine(t, 0x6A05, 0x6B03, 0x8AB4)
	runCycles(t, m, 3)

	assert.Equal(t, uint8(8), m.Register(0xA))
	assert.Equal(t, uint8(0), m.Register(FlagRegister))
	assert.Equal(t, uint16(ProgramStart+6), m.PC())
}

func TestJump(t *testing.T) {
	m := newTestMachine(t, 0x1ABC)
	runCycles(t, m, 1)
	assert.Equal(t, uint16(0xABC), m.PC())

	m = newTestMachine(t, 0x6010, 0xB300)
	runCycles(t, m, 2)
	assert.Equal(t, uint16(0x310), m.PC())
}

func TestCallReturn(t *testing.T) {
	// 0x200: call 0x300, 0x300: return
	m := newTestMachine(t, 0x2300)
	m.memory[0x300], m.memory[0x301] = 0x00, 0xEE

	runCycles(t, m, 1)
	assert.Equal(t, uint16(0x300), m.PC())
	assert.Equal(t, uint8(1), m.StackPointer())

	runCycles(t, m, 1)
	assert.Equal(t, uint16(ProgramStart+2), m.PC())
	assert.Equal(t, uint8(0), m.StackPointer())
}

func TestCall_StackOverflow(t *testing.T) {
	// a subroutine at 0x200 that calls itself
	m := newTestMachine(t, 0x2200)

	runCycles(t, m, StackLevels)
	assert.Equal(t, uint8(StackLevels), m.StackPointer())
	stack := m.stack

	err := m.Cycle()
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, uint8(StackLevels), m.StackPointer())
	assert.Equal(t, stack, m.stack)
	// the rejected call only advanced the program counter
	assert.Equal(t, uint16(ProgramStart+2), m.PC())

	// the machine keeps running after the rejection
	m.memory[0x202], m.memory[0x203] = 0x00, 0xEE
	runCycles(t, m, 1)
	assert.Equal(t, uint8(StackLevels-1), m.StackPointer())
	assert.Equal(t, uint16(ProgramStart+2), m.PC())
}

func TestReturn_StackUnderflow(t *testing.T) {
	m := newTestMachine(t, 0x00EE, 0x6A01)

	err := m.Cycle()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.ErrorContains(t, err, "opcode 00EE at $200")
	assert.Equal(t, uint8(0), m.StackPointer())
	assert.Equal(t, uint16(ProgramStart+2), m.PC())

	runCycles(t, m, 1)
	assert.Equal(t, uint8(1), m.Register(0xA))
}

func TestSkip(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		skip bool
	}{
		{"SE byte equal", 0x3142, true},
		{"SE byte not equal", 0x3143, false},
		{"SNE byte equal", 0x4142, false},
		{"SNE byte not equal", 0x4143, true},
		{"SE reg equal", 0x5120, true},
		{"SE reg not equal", 0x5130, false},
		{"SNE reg equal", 0x9120, false},
		{"SNE reg not equal", 0x9130, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, tt.word)
			m.registers[1] = 0x42
			m.registers[2] = 0x42
			m.registers[3] = 0x43
			runCycles(t, m, 1)

			want := uint16(ProgramStart + 2)
			if tt.skip {
				want += 2
			}
			assert.Equal(t, want, m.PC())
		})
	}
}

func TestSkipKey(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		down bool
		skip bool
	}{
		{"SKP pressed", 0xE19E, true, true},
		{"SKP released", 0xE19E, false, false},
		{"SKNP pressed", 0xE1A1, true, false},
		{"SKNP released", 0xE1A1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, tt.word)
			m.registers[1] = 0xB
			assert.NoError(t, m.SetKey(0xB, tt.down))
			runCycles(t, m, 1)

			want := uint16(ProgramStart + 2)
			if tt.skip {
				want += 2
			}
			assert.Equal(t, want, m.PC())
		})
	}
}

func TestSkipKey_InvalidKey(t *testing.T) {
	for _, word := range []uint16{0xE19E, 0xE1A1} {
		m := newTestMachine(t, word)
		m.registers[1] = KeyCount

		err := m.Cycle()
		assert.True(t, errors.Is(err, ErrInvalidKey))
		assert.Equal(t, uint16(ProgramStart+2), m.PC())
	}
}

func TestWaitKey(t *testing.T) {
	m := newTestMachine(t, 0xF50A)

	for range 5 {
		runCycles(t, m, 1)
		assert.Equal(t, uint16(ProgramStart), m.PC())
	}

	assert.NoError(t, m.SetKey(0xC, true))
	assert.NoError(t, m.SetKey(0x7, true))
	runCycles(t, m, 1)

	assert.Equal(t, uint16(ProgramStart+2), m.PC())
	assert.Equal(t, uint8(0x7), m.Register(5))
}

func TestTimers(t *testing.T) {
	m := newTestMachine(t, 0x6133, 0xF115, 0xF218, 0xF307)
	m.registers[2] = 0x44
	runCycles(t, m, 3)

	assert.Equal(t, uint8(0x33), m.DelayTimer())
	assert.Equal(t, uint8(0x44), m.SoundTimer())

	m.SetDelayTimer(0x21)
	runCycles(t, m, 1)
	assert.Equal(t, uint8(0x21), m.Register(3))
}

func TestRandom(t *testing.T) {
	m := newTestMachine(t, 0xC10F)
	m.random = func() uint8 { return 0xAB }
	runCycles(t, m, 1)
	assert.Equal(t, uint8(0x0B), m.Register(1))

	m = newTestMachine(t)
	for range 1000 {
		m.pc = ProgramStart
		m.memory[ProgramStart], m.memory[ProgramStart+1] = 0xC2, 0x3C
		runCycles(t, m, 1)
		assert.Equal(t, uint8(0), m.Register(2)&^0x3C)
	}
}

func TestIndex(t *testing.T) {
	m := newTestMachine(t, 0xA123, 0x61FF, 0xF11E)
	runCycles(t, m, 2)
	assert.Equal(t, uint16(0x123), m.Index())

	runCycles(t, m, 1)
	assert.Equal(t, uint16(0x222), m.Index())
}

func TestLoadGlyph(t *testing.T) {
	m := newTestMachine(t, 0xF129)
	m.registers[1] = 0xA
	runCycles(t, m, 1)
	assert.Equal(t, uint16(FontStart+0xA*GlyphSize), m.Index())
	assert.Equal(t, byte(0xF0), m.ReadMemory(m.Index()))

	m = newTestMachine(t, 0xA300, 0xF129)
	m.registers[1] = 0x10
	runCycles(t, m, 1)
	err := m.Cycle()
	assert.True(t, errors.Is(err, ErrInvalidGlyph))
	assert.Equal(t, uint16(0x300), m.Index())
}

func TestStoreBCD(t *testing.T) {
	tests := []struct {
		value  uint8
		digits [3]byte
	}{
		{0, [3]byte{0, 0, 0}},
		{7, [3]byte{0, 0, 7}},
		{42, [3]byte{0, 4, 2}},
		{255, [3]byte{2, 5, 5}},
	}

	for _, tt := range tests {
		m := newTestMachine(t, 0xA400, 0xF433)
		m.registers[4] = tt.value
		runCycles(t, m, 2)

		assert.Equal(t, tt.digits[0], m.ReadMemory(0x400))
		assert.Equal(t, tt.digits[1], m.ReadMemory(0x401))
		assert.Equal(t, tt.digits[2], m.ReadMemory(0x402))
		assert.Equal(t, uint16(0x400), m.Index())
	}
}

func TestStoreLoadRegisters(t *testing.T) {
	m := newTestMachine(t, 0xA400, 0xF355, 0xA400, 0xF365)
	for i := range uint8(RegisterCount) {
		m.registers[i] = 0x10 + i
	}

	runCycles(t, m, 2)
	for i := range uint16(4) {
		assert.Equal(t, byte(0x10+i), m.ReadMemory(0x400+i))
	}
	assert.Equal(t, byte(0), m.ReadMemory(0x404))
	assert.Equal(t, uint16(0x404), m.Index())

	m.registers = [RegisterCount]uint8{}
	runCycles(t, m, 2)
	for i := range uint8(4) {
		assert.Equal(t, 0x10+i, m.Register(i))
	}
	assert.Equal(t, uint8(0), m.Register(4))
	assert.Equal(t, uint16(0x404), m.Index())
}

func TestStoreRegisters_WrapsMemory(t *testing.T) {
	m := newTestMachine(t, 0xAFFE, 0xF255)
	m.registers[0], m.registers[1], m.registers[2] = 1, 2, 3
	runCycles(t, m, 2)

	assert.Equal(t, byte(1), m.ReadMemory(0xFFE))
	assert.Equal(t, byte(2), m.ReadMemory(0xFFF))
	assert.Equal(t, byte(3), m.ReadMemory(0x000))
}

func TestUndefinedOpcodes(t *testing.T) {
	for _, word := range []uint16{0x0123, 0x8AB8, 0xE100, 0xF1FF} {
		m := newTestMachine(t, word)
		m.registers[1] = 0x55
		runCycles(t, m, 1)

		assert.Equal(t, uint16(ProgramStart+2), m.PC())
		assert.Equal(t, uint8(0x55), m.Register(1))
		assert.False(t, m.DrawFlag())
	}
}
