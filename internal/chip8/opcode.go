package chip8

import "fmt"

// Kind identifies one of the 35 instruction forms.
type Kind uint8

// Instruction forms, named after their word pattern.
const (
	Undefined Kind = iota
	Sys            // 0nnn
	Cls            // 00E0
	Ret            // 00EE
	Jp             // 1nnn
	Call           // 2nnn
	SeByte         // 3xkk
	SneByte        // 4xkk
	SeReg          // 5xy0
	LdByte         // 6xkk
	AddByte        // 7xkk
	LdReg          // 8xy0
	Or             // 8xy1
	And            // 8xy2
	Xor            // 8xy3
	AddReg         // 8xy4
	Sub            // 8xy5
	Shr            // 8xy6
	Subn           // 8xy7
	Shl            // 8xyE
	SneReg         // 9xy0
	LdI            // Annn
	JpV0           // Bnnn
	Rnd            // Cxkk
	Drw            // Dxyn
	Skp            // Ex9E
	Sknp           // ExA1
	LdVxDT         // Fx07
	LdVxK          // Fx0A
	LdDTVx         // Fx15
	LdSTVx         // Fx18
	AddI           // Fx1E
	LdF            // Fx29
	LdB            // Fx33
	LdIVx          // Fx55
	LdVxI          // Fx65
)

var kindNames = [...]string{
	Undefined: "undefined",
	Sys:       "0nnn",
	Cls:       "00E0",
	Ret:       "00EE",
	Jp:        "1nnn",
	Call:      "2nnn",
	SeByte:    "3xkk",
	SneByte:   "4xkk",
	SeReg:     "5xy0",
	LdByte:    "6xkk",
	AddByte:   "7xkk",
	LdReg:     "8xy0",
	Or:        "8xy1",
	And:       "8xy2",
	Xor:       "8xy3",
	AddReg:    "8xy4",
	Sub:       "8xy5",
	Shr:       "8xy6",
	Subn:      "8xy7",
	Shl:       "8xyE",
	SneReg:    "9xy0",
	LdI:       "Annn",
	JpV0:      "Bnnn",
	Rnd:       "Cxkk",
	Drw:       "Dxyn",
	Skp:       "Ex9E",
	Sknp:      "ExA1",
	LdVxDT:    "Fx07",
	LdVxK:     "Fx0A",
	LdDTVx:    "Fx15",
	LdSTVx:    "Fx18",
	AddI:      "Fx1E",
	LdF:       "Fx29",
	LdB:       "Fx33",
	LdIVx:     "Fx55",
	LdVxI:     "Fx65",
}

// String returns the word pattern of the instruction form.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Instruction is a decoded instruction word with its operand fields.
type Instruction struct {
	Word uint16
	Kind Kind
}

// X returns the register index in bits 11-8.
func (i Instruction) X() uint8 {
	return uint8(i.Word>>8) & 0xF
}

// Y returns the register index in bits 7-4.
func (i Instruction) Y() uint8 {
	return uint8(i.Word>>4) & 0xF
}

// N returns the 4-bit immediate in bits 3-0.
func (i Instruction) N() uint8 {
	return uint8(i.Word) & 0xF
}

// NN returns the 8-bit immediate in bits 7-0.
func (i Instruction) NN() uint8 {
	return uint8(i.Word)
}

// NNN returns the 12-bit address in bits 11-0.
func (i Instruction) NNN() uint16 {
	return i.Word & 0x0FFF
}

// Decode maps an instruction word to its instruction form. The leading nibble
// selects the form; the 0, 8 and E families select on the trailing nibble and
// the F family on the trailing byte. Words without a form decode as Undefined.
func Decode(word uint16) Instruction {
	return Instruction{Word: word, Kind: decodeKind(word)}
}

func decodeKind(word uint16) Kind {
	switch word >> 12 {
	case 0x0:
		switch word & 0xF {
		case 0x0:
			return Cls
		case 0xE:
			return Ret
		default:
			return Sys
		}
	case 0x1:
		return Jp
	case 0x2:
		return Call
	case 0x3:
		return SeByte
	case 0x4:
		return SneByte
	case 0x5:
		return SeReg
	case 0x6:
		return LdByte
	case 0x7:
		return AddByte
	case 0x8:
		return decodeALU(word)
	case 0x9:
		return SneReg
	case 0xA:
		return LdI
	case 0xB:
		return JpV0
	case 0xC:
		return Rnd
	case 0xD:
		return Drw
	case 0xE:
		switch word & 0xF {
		case 0xE:
			return Skp
		case 0x1:
			return Sknp
		}
	case 0xF:
		return decodeMisc(word)
	}
	return Undefined
}

func decodeALU(word uint16) Kind {
	switch word & 0xF {
	case 0x0:
		return LdReg
	case 0x1:
		return Or
	case 0x2:
		return And
	case 0x3:
		return Xor
	case 0x4:
		return AddReg
	case 0x5:
		return Sub
	case 0x6:
		return Shr
	case 0x7:
		return Subn
	case 0xE:
		return Shl
	}
	return Undefined
}

func decodeMisc(word uint16) Kind {
	switch word & 0xFF {
	case 0x07:
		return LdVxDT
	case 0x0A:
		return LdVxK
	case 0x15:
		return LdDTVx
	case 0x18:
		return LdSTVx
	case 0x1E:
		return AddI
	case 0x29:
		return LdF
	case 0x33:
		return LdB
	case 0x55:
		return LdIVx
	case 0x65:
		return LdVxI
	}
	return Undefined
}
