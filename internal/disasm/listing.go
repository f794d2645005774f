package disasm

import (
	"fmt"
	"hash/crc32"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/set"
)

const (
	dataBytesPerLine = 16

	startLabel  = "Start"
	funcNaming  = "_func_%03x"
	labelNaming = "_label_%03x"
	dataNaming  = "_data_%03x"
)

// offsetType defines the type of a program offset.
type offsetType uint8

const (
	codeOffset      offsetType = 1 << iota
	callDestination            // destination of a call, indicating a subroutine
	jumpDestination
	dataReference // referenced by an index register load
	covered       // second byte of an instruction
)

// offset contains the analysis result for one byte of the image.
type offset struct {
	typ    offsetType
	label  string
	target uint16 // branch or data target of the instruction starting here
}

func (o *offset) isType(typ offsetType) bool {
	return o.typ&typ != 0
}

// Options of the listing writer.
type Options struct {
	OffsetComments bool // add the address of every line as comment
	HexComments    bool // add the instruction bytes as comment
	ZeroBytes      bool // output trailing zero bytes
}

// Listing contains the code flow analysis of a program image and writes it
// as assembly source.
type Listing struct {
	image   []byte
	offsets []offset
	options Options
}

// New analyzes the program image by following the execution flow from the
// program start. Bytes that are not reached are output as data.
func New(image []byte, options Options) (*Listing, error) {
	if len(image) > chip8.MaxImageSize {
		return nil, fmt.Errorf("image size %d exceeds %d bytes: %w", len(image), chip8.MaxImageSize, chip8.ErrImageTooLarge)
	}

	l := &Listing{
		image:   image,
		offsets: make([]offset, len(image)),
		options: options,
	}
	l.followExecutionFlow()
	l.markCoveredBytes()
	l.assignLabels()
	return l, nil
}

// Label returns the label assigned to the address.
func (l *Listing) Label(address uint16) string {
	index, ok := l.index(address)
	if !ok {
		return ""
	}
	return l.offsets[index].label
}

// IsCode returns whether an instruction starts at the address.
func (l *Listing) IsCode(address uint16) bool {
	index, ok := l.index(address)
	if !ok {
		return false
	}
	o := l.offsets[index]
	return o.isType(codeOffset) && !o.isType(covered)
}

// index converts a memory address into an image index.
func (l *Listing) index(address uint16) (int, bool) {
	if address < chip8.ProgramStart {
		return 0, false
	}
	index := int(address - chip8.ProgramStart)
	if index >= len(l.image) {
		return 0, false
	}
	return index, true
}

func (l *Listing) word(index int) (uint16, bool) {
	if index+1 >= len(l.image) {
		return 0, false
	}
	return uint16(l.image[index])<<8 | uint16(l.image[index+1]), true
}

func (l *Listing) followExecutionFlow() {
	parsed := set.New[uint16]()
	toParse := []uint16{chip8.ProgramStart}

	for len(toParse) > 0 {
		address := toParse[0]
		toParse = toParse[1:]
		if parsed.Contains(address) {
			continue
		}
		parsed.Add(address)

		index, ok := l.index(address)
		if !ok {
			continue
		}
		word, ok := l.word(index)
		if !ok {
			continue
		}

		fl := classify(word)
		if fl == flowInvalid {
			continue
		}
		l.offsets[index].typ |= codeOffset

		next := address + 2
		target := word & 0x0FFF

		switch fl {
		case flowNext, flowIndirect:
			toParse = append(toParse, next)
		case flowJump:
			l.addReference(index, target, jumpDestination)
			toParse = append(toParse, target)
		case flowCall:
			l.addReference(index, target, callDestination)
			toParse = append(toParse, target, next)
		case flowSkip:
			toParse = append(toParse, next, next+2)
		case flowData:
			l.addReference(index, target, dataReference)
			toParse = append(toParse, next)
		case flowReturn, flowInvalid:
		}
	}
}

// addReference records a reference from the instruction at index to the
// target address if the target is inside of the image.
func (l *Listing) addReference(index int, target uint16, typ offsetType) {
	targetIndex, ok := l.index(target)
	if !ok {
		return
	}
	l.offsets[index].target = target
	l.offsets[targetIndex].typ |= typ
}

// markCoveredBytes marks the second byte of every output instruction.
// Code that starts inside of a previous instruction is output as part of it.
func (l *Listing) markCoveredBytes() {
	for i := 0; i < len(l.offsets); i++ {
		o := &l.offsets[i]
		if !o.isType(codeOffset) {
			continue
		}
		if i+1 < len(l.offsets) {
			l.offsets[i+1].typ |= covered
		}
		i++
	}
}

func (l *Listing) assignLabels() {
	for i := range l.offsets {
		o := &l.offsets[i]
		if o.isType(covered) {
			continue
		}

		address := chip8.ProgramStart + uint16(i)
		switch {
		case address == chip8.ProgramStart:
			o.label = startLabel
		case o.isType(callDestination):
			o.label = fmt.Sprintf(funcNaming, address)
		case o.isType(jumpDestination):
			o.label = fmt.Sprintf(labelNaming, address)
		case o.isType(dataReference):
			o.label = fmt.Sprintf(dataNaming, address)
		}
	}
}

// Write outputs the listing as assembly source.
func (l *Listing) Write(w io.Writer) error {
	if err := l.writeHeader(w); err != nil {
		return err
	}

	endIndex := l.endIndex()
	for i := 0; i < endIndex; {
		o := l.offsets[i]

		if o.label != "" {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return fmt.Errorf("writing line: %w", err)
				}
			}
			if _, err := fmt.Fprintf(w, "%s:\n", o.label); err != nil {
				return fmt.Errorf("writing label %s: %w", o.label, err)
			}
		}

		if o.isType(codeOffset) && !o.isType(covered) && i+1 < len(l.image) {
			if err := l.writeCode(w, i); err != nil {
				return err
			}
			i += 2
			continue
		}

		count, err := l.writeData(w, i, endIndex)
		if err != nil {
			return err
		}
		i += count
	}
	return nil
}

func (l *Listing) writeHeader(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "; CHIP-8 ROM Disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, "; CRC32 checksum: %08x\n", crc32.ChecksumIEEE(l.image)); err != nil {
		return fmt.Errorf("writing checksum: %w", err)
	}
	if _, err := fmt.Fprintf(w, "; Program starts at $%03X in CHIP-8 memory space\n\n", chip8.ProgramStart); err != nil {
		return fmt.Errorf("writing memory space comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, ".org $%03X\n\n", chip8.ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}
	return nil
}

func (l *Listing) writeCode(w io.Writer, index int) error {
	word, _ := l.word(index)

	var target string
	o := l.offsets[index]
	if o.target != 0 {
		target = l.Label(o.target)
	}

	line := "    " + listingText(word, target)
	comment := l.comment(index, l.image[index:index+2])
	return writeLine(w, line, comment)
}

// writeData bundles data bytes up to the next label, instruction or line
// limit and returns the number of bytes written.
func (l *Listing) writeData(w io.Writer, startIndex, endIndex int) (int, error) {
	end := startIndex + 1
	for end < endIndex && end-startIndex < dataBytesPerLine {
		o := l.offsets[end]
		if o.label != "" || (o.isType(codeOffset) && !o.isType(covered)) {
			break
		}
		end++
	}

	data := l.image[startIndex:end]
	var buf strings.Builder
	buf.WriteString("    .byte ")
	for j, b := range data {
		if j > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "$%02X", b)
	}

	if err := writeLine(w, buf.String(), l.comment(startIndex, nil)); err != nil {
		return 0, err
	}
	return len(data), nil
}

func (l *Listing) comment(index int, data []byte) string {
	var parts []string
	if l.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%03X", chip8.ProgramStart+index))
	}
	if l.options.HexComments && len(data) > 0 {
		parts = append(parts, fmt.Sprintf("% X", data))
	}
	return strings.Join(parts, "  ")
}

// endIndex returns the index after the last byte to output. Trailing zero
// bytes are omitted unless requested.
func (l *Listing) endIndex() int {
	if l.options.ZeroBytes {
		return len(l.image)
	}

	for i := len(l.image) - 1; i >= 0; i-- {
		o := l.offsets[i]
		if l.image[i] != 0 || o.isType(codeOffset|covered) || o.label != "" {
			return i + 1
		}
	}
	return 0
}

func writeLine(w io.Writer, line, comment string) error {
	var err error
	if comment == "" {
		_, err = fmt.Fprintf(w, "%s\n", line)
	} else {
		_, err = fmt.Fprintf(w, "%-32s ; %s\n", line, comment)
	}
	if err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}
