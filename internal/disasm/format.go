// Package disasm converts CHIP-8 instruction words and program images into
// assembly text. It is used by the chip8disasm tool and for instruction
// tracing in the emulator.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// mnemonics maps every instruction form to its assembly name.
var mnemonics = [...]string{
	chip8.Sys:     "sys",
	chip8.Cls:     "cls",
	chip8.Ret:     "ret",
	chip8.Jp:      "jp",
	chip8.Call:    "call",
	chip8.SeByte:  "se",
	chip8.SneByte: "sne",
	chip8.SeReg:   "se",
	chip8.LdByte:  "ld",
	chip8.AddByte: "add",
	chip8.LdReg:   "ld",
	chip8.Or:      "or",
	chip8.And:     "and",
	chip8.Xor:     "xor",
	chip8.AddReg:  "add",
	chip8.Sub:     "sub",
	chip8.Shr:     "shr",
	chip8.Subn:    "subn",
	chip8.Shl:     "shl",
	chip8.SneReg:  "sne",
	chip8.LdI:     "ld",
	chip8.JpV0:    "jp",
	chip8.Rnd:     "rnd",
	chip8.Drw:     "drw",
	chip8.Skp:     "skp",
	chip8.Sknp:    "sknp",
	chip8.LdVxDT:  "ld",
	chip8.LdVxK:   "ld",
	chip8.LdDTVx:  "ld",
	chip8.LdSTVx:  "ld",
	chip8.AddI:    "add",
	chip8.LdF:     "ld",
	chip8.LdB:     "ld",
	chip8.LdIVx:   "ld",
	chip8.LdVxI:   "ld",
}

// pattern holds the fixed bits of an instruction form.
type pattern struct {
	mask  uint16
	value uint16
}

// patterns lists the fixed bits of every instruction form. Operand bits that
// are not rendered by formatParams are fixed to zero.
var patterns = [...]pattern{
	chip8.Sys:     {0xF000, 0x0000},
	chip8.Cls:     {0xFFFF, 0x00E0},
	chip8.Ret:     {0xFFFF, 0x00EE},
	chip8.Jp:      {0xF000, 0x1000},
	chip8.Call:    {0xF000, 0x2000},
	chip8.SeByte:  {0xF000, 0x3000},
	chip8.SneByte: {0xF000, 0x4000},
	chip8.SeReg:   {0xF00F, 0x5000},
	chip8.LdByte:  {0xF000, 0x6000},
	chip8.AddByte: {0xF000, 0x7000},
	chip8.LdReg:   {0xF00F, 0x8000},
	chip8.Or:      {0xF00F, 0x8001},
	chip8.And:     {0xF00F, 0x8002},
	chip8.Xor:     {0xF00F, 0x8003},
	chip8.AddReg:  {0xF00F, 0x8004},
	chip8.Sub:     {0xF00F, 0x8005},
	chip8.Shr:     {0xF0FF, 0x8006},
	chip8.Subn:    {0xF00F, 0x8007},
	chip8.Shl:     {0xF0FF, 0x800E},
	chip8.SneReg:  {0xF00F, 0x9000},
	chip8.LdI:     {0xF000, 0xA000},
	chip8.JpV0:    {0xF000, 0xB000},
	chip8.Rnd:     {0xF000, 0xC000},
	chip8.Drw:     {0xF000, 0xD000},
	chip8.Skp:     {0xF0FF, 0xE09E},
	chip8.Sknp:    {0xF0FF, 0xE0A1},
	chip8.LdVxDT:  {0xF0FF, 0xF007},
	chip8.LdVxK:   {0xF0FF, 0xF00A},
	chip8.LdDTVx:  {0xF0FF, 0xF015},
	chip8.LdSTVx:  {0xF0FF, 0xF018},
	chip8.AddI:    {0xF0FF, 0xF01E},
	chip8.LdF:     {0xF0FF, 0xF029},
	chip8.LdB:     {0xF0FF, 0xF033},
	chip8.LdIVx:   {0xF0FF, 0xF055},
	chip8.LdVxI:   {0xF0FF, 0xF065},
}

// canonical reports whether assembling the text of the instruction gives
// back its word. The interpreter ignores some operand bits, a listing must
// not.
func canonical(ins chip8.Instruction) bool {
	if ins.Kind == chip8.Undefined || int(ins.Kind) >= len(patterns) {
		return false
	}
	p := patterns[ins.Kind]
	return ins.Word&p.mask == p.value
}

// listingText returns the assembly text of a word in a program listing.
// Words without an exact opcode encoding are kept as .byte directives.
func listingText(word uint16, target string) string {
	ins := chip8.Decode(word)
	if _, ok := identify(word); !ok || !canonical(ins) {
		return formatData(word)
	}
	return formatWithTarget(ins, target)
}

// Disassemble returns the assembly text of a single instruction word as the
// interpreter executes it. Words that do not map to an instruction are
// rendered as a .byte directive.
func Disassemble(word uint16) string {
	return Format(chip8.Decode(word))
}

// Format returns the assembly text of a decoded instruction.
func Format(ins chip8.Instruction) string {
	return formatWithTarget(ins, "")
}

// formatWithTarget formats the instruction, using target instead of the
// numeric address operand if it is set.
func formatWithTarget(ins chip8.Instruction, target string) string {
	if ins.Kind == chip8.Undefined || int(ins.Kind) >= len(mnemonics) {
		return formatData(ins.Word)
	}

	name := mnemonics[ins.Kind]
	params := formatParams(ins, target)
	if params == "" {
		return name
	}
	return fmt.Sprintf("%s %s", name, params)
}

// formatParams returns the operand string of an instruction.
//
//nolint:cyclop
func formatParams(ins chip8.Instruction, target string) string {
	x, y := ins.X(), ins.Y()
	address := fmt.Sprintf("$%03X", ins.NNN())
	if target != "" {
		address = target
	}

	switch ins.Kind {
	case chip8.Cls, chip8.Ret:
		return ""
	case chip8.Sys, chip8.Jp, chip8.Call:
		return address
	case chip8.JpV0:
		return "V0, " + address
	case chip8.LdI:
		return "I, " + address
	case chip8.SeByte, chip8.SneByte, chip8.LdByte, chip8.AddByte, chip8.Rnd:
		return fmt.Sprintf("V%X, $%02X", x, ins.NN())
	case chip8.SeReg, chip8.SneReg, chip8.LdReg, chip8.Or, chip8.And, chip8.Xor,
		chip8.AddReg, chip8.Sub, chip8.Subn:
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.Shr, chip8.Shl, chip8.Skp, chip8.Sknp:
		return fmt.Sprintf("V%X", x)
	case chip8.Drw:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, ins.N())
	case chip8.LdVxDT:
		return fmt.Sprintf("V%X, DT", x)
	case chip8.LdVxK:
		return fmt.Sprintf("V%X, K", x)
	case chip8.LdDTVx:
		return fmt.Sprintf("DT, V%X", x)
	case chip8.LdSTVx:
		return fmt.Sprintf("ST, V%X", x)
	case chip8.AddI:
		return fmt.Sprintf("I, V%X", x)
	case chip8.LdF:
		return fmt.Sprintf("F, V%X", x)
	case chip8.LdB:
		return fmt.Sprintf("B, V%X", x)
	case chip8.LdIVx:
		return fmt.Sprintf("[I], V%X", x)
	case chip8.LdVxI:
		return fmt.Sprintf("V%X, [I]", x)
	default:
		return ""
	}
}

func formatData(word uint16) string {
	return fmt.Sprintf(".byte $%02X, $%02X", byte(word>>8), byte(word))
}
