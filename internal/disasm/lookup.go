package disasm

import (
	"github.com/retroenv/retrochip8/internal/chip8"
	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// flow describes how an instruction continues the program execution.
type flow uint8

const (
	flowInvalid  flow = iota // not an instruction, treated as data
	flowNext                 // continues with the next instruction
	flowJump                 // continues at the target address
	flowIndirect             // jump with a register dependent target
	flowCall                 // calls the target and continues after the return
	flowReturn               // returns to the caller
	flowSkip                 // continues with the next or the one after
	flowData                 // references data at the target, continues with the next
)

// identify returns the opcode definition of the instruction word.
func identify(word uint16) (cpu.Opcode, bool) {
	nibble := int(word >> 12)
	for _, op := range cpu.Opcodes[nibble] {
		if op.Info.Mask&word == op.Info.Value {
			return op, op.Instruction != nil
		}
	}
	return cpu.Opcode{}, false
}

// classify returns the execution flow of an instruction word.
func classify(word uint16) flow {
	switch chip8.Decode(word).Kind {
	case chip8.Undefined:
		return flowInvalid
	case chip8.Ret:
		return flowReturn
	default:
	}

	op, ok := identify(word)
	if !ok {
		return flowNext
	}

	ins := op.Instruction
	switch {
	case ins == cpu.JpInst:
		if word&0xF000 == 0xB000 {
			return flowIndirect
		}
		return flowJump
	case ins == cpu.CallInst:
		return flowCall
	case cpu.SkipInstructions.Contains(ins.Name):
		return flowSkip
	case ins == cpu.LdInst && word&0xF000 == 0xA000:
		return flowData
	default:
		return flowNext
	}
}
