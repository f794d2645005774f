package chip8

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Memory layout and hardware dimensions.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// ProgramStart is the memory address where program images are loaded and
	// execution begins.
	ProgramStart = 0x200

	// MaxImageSize is the largest program image that fits into memory.
	MaxImageSize = MemorySize - ProgramStart

	// RegisterCount is the number of general-purpose registers.
	RegisterCount = 16

	// FlagRegister is the register index that flag producing instructions write to.
	FlagRegister = 0xF

	// StackLevels is the number of return addresses the call stack can hold.
	// All levels are usable, the call that would need a 17th level fails.
	StackLevels = 16

	// KeyCount is the number of keys on the hexadecimal keypad.
	KeyCount = 16

	addressMask = MemorySize - 1
)

// Machine is the state of a single CHIP-8 virtual CPU.
type Machine struct {
	memory    [MemorySize]byte
	registers [RegisterCount]uint8
	index     uint16
	pc        uint16
	stack     [StackLevels]uint16
	sp        uint8

	delayTimer uint8
	soundTimer uint8

	keypad   [KeyCount]bool
	display  Display
	drawFlag bool

	image  []byte // loaded program, restored by Reset
	random func() uint8
}

// Option configures a Machine.
type Option func(*Machine)

// WithSeed seeds the random source with a fixed value instead of the clock.
func WithSeed(seed uint64) Option {
	return func(m *Machine) {
		m.random = newRandom(seed)
	}
}

// New returns a powered on machine with the glyph table loaded and the
// program counter at ProgramStart.
func New(options ...Option) *Machine {
	m := &Machine{
		random: newRandom(uint64(time.Now().UnixNano())),
	}
	for _, option := range options {
		option(m)
	}
	m.Reset()
	return m
}

func newRandom(seed uint64) func() uint8 {
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))
	return func() uint8 {
		return uint8(rng.UintN(256))
	}
}

// Reset returns the machine to its power on state. A previously loaded
// program image is copied back into memory.
func (m *Machine) Reset() {
	m.memory = [MemorySize]byte{}
	m.registers = [RegisterCount]uint8{}
	m.stack = [StackLevels]uint16{}
	m.keypad = [KeyCount]bool{}
	m.display.Clear()
	m.index = 0
	m.sp = 0
	m.delayTimer = 0
	m.soundTimer = 0
	m.drawFlag = false
	m.pc = ProgramStart

	copy(m.memory[FontStart:], fontSet[:])
	copy(m.memory[ProgramStart:], m.image)
}

// Load copies a program image into memory starting at ProgramStart.
// Images larger than MaxImageSize are rejected and leave the machine unchanged.
func (m *Machine) Load(image []byte) error {
	if len(image) > MaxImageSize {
		return fmt.Errorf("image size %d exceeds %d bytes: %w", len(image), MaxImageSize, ErrImageTooLarge)
	}

	m.image = append(m.image[:0], image...)
	copy(m.memory[ProgramStart:], m.image)
	return nil
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// Index returns the index register I.
func (m *Machine) Index() uint16 {
	return m.index
}

// Register returns the value of register Vx. Only the low nibble of x is used.
func (m *Machine) Register(x uint8) uint8 {
	return m.registers[x&0xF]
}

// StackPointer returns the number of return addresses on the stack.
func (m *Machine) StackPointer() uint8 {
	return m.sp
}

// ReadMemory returns the byte at the given address, wrapped to 12 bits.
func (m *Machine) ReadMemory(address uint16) byte {
	return m.memory[address&addressMask]
}

// NextOpcode returns the address and instruction word that the next call to
// Cycle will execute, without changing any state.
func (m *Machine) NextOpcode() (uint16, uint16) {
	address := m.pc & addressMask
	return address, m.fetch(address)
}

// DelayTimer returns the delay timer value.
func (m *Machine) DelayTimer() uint8 {
	return m.delayTimer
}

// SetDelayTimer sets the delay timer value.
func (m *Machine) SetDelayTimer(value uint8) {
	m.delayTimer = value
}

// SoundTimer returns the sound timer value.
func (m *Machine) SoundTimer() uint8 {
	return m.soundTimer
}

// SetSoundTimer sets the sound timer value.
func (m *Machine) SetSoundTimer(value uint8) {
	m.soundTimer = value
}

// SetKey marks a keypad key as pressed or released.
func (m *Machine) SetKey(key uint8, down bool) error {
	if key >= KeyCount {
		return fmt.Errorf("key %d: %w", key, ErrInvalidKey)
	}
	m.keypad[key] = down
	return nil
}

// KeyDown returns whether the given keypad key is pressed.
func (m *Machine) KeyDown(key uint8) bool {
	if key >= KeyCount {
		return false
	}
	return m.keypad[key]
}

// Display returns the display surface.
func (m *Machine) Display() *Display {
	return &m.display
}

// DrawFlag returns whether the display changed since the flag was last cleared.
func (m *Machine) DrawFlag() bool {
	return m.drawFlag
}

// ClearDrawFlag marks the current frame as consumed.
func (m *Machine) ClearDrawFlag() {
	m.drawFlag = false
}
