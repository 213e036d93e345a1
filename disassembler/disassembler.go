package disassembler

import (
	"fmt"
	"strings"

	"github.com/newhook/i8080/cpu"
)

const maxMemory = 0x10000

// Location is one decoded instruction at a fixed address: the opcode
// byte, its operand bytes if any, and the Instruction it decoded to
// (nil for a byte this table doesn't recognize, and also when the
// instruction's operand bytes would run past the end of memory; such
// a Location renders as a single "db" byte rather than panicking).
type Location struct {
	PC           uint16
	Opcode       byte
	OperandBytes []byte
	Inst         *Instruction
}

// Size is the number of bytes this instruction occupies in memory.
func (l Location) Size() int {
	if l.Inst == nil {
		return 1
	}
	return l.Inst.Size()
}

func (l Location) text() string {
	if l.Inst == nil {
		return fmt.Sprintf("db $%02X", l.Opcode)
	}
	operand := l.Inst.Operand.Format(l.OperandBytes)
	if operand == "" {
		return l.Inst.Mnemonic
	}
	return fmt.Sprintf("%s %s", l.Inst.Mnemonic, operand)
}

// String renders the classic "$addr: hex-bytes  mnemonic" disassembly
// line.
func (l Location) String() string {
	hex := fmt.Sprintf("%02X", l.Opcode)
	for _, b := range l.OperandBytes {
		hex += fmt.Sprintf(" %02X", b)
	}
	return fmt.Sprintf("$%04X: %-9s %s", l.PC, hex, l.text())
}

func decodeAt(mem *cpu.Memory, pc uint16) Location {
	opcode := mem[pc]
	loc := Location{PC: pc, Opcode: opcode}

	inst, ok := instructionSet[opcode]
	if !ok {
		return loc
	}
	loc.Inst = &inst

	width := inst.Operand.Width()
	if width == 0 {
		return loc
	}
	if int(pc)+width >= maxMemory {
		loc.Inst = nil
		return loc
	}
	loc.OperandBytes = make([]byte, width)
	for i := 0; i < width; i++ {
		loc.OperandBytes[i] = mem[int(pc)+1+i]
	}
	return loc
}

// Range walks memory from start for length bytes, decoding one
// instruction at a time and stopping when the walk runs past the
// requested length (the last instruction decoded may extend beyond it
// if its operand straddles the boundary).
func Range(mem *cpu.Memory, start uint16, length int) []Location {
	var locs []Location
	pc := int(start)
	end := int(start) + length
	for pc < end && pc < maxMemory {
		loc := decodeAt(mem, uint16(pc))
		locs = append(locs, loc)
		pc += loc.Size()
	}
	return locs
}

// Format renders Range's output as one line per instruction.
func Format(mem *cpu.Memory, start uint16, length int) string {
	var out strings.Builder
	for _, loc := range Range(mem, start, length) {
		out.WriteString(loc.String())
		out.WriteString("\n")
	}
	return out.String()
}

// One decodes and formats the single instruction at pc, the form the
// monitor's disassembly pane uses to show the instruction about to
// execute.
func One(mem *cpu.Memory, pc uint16) Location {
	return decodeAt(mem, pc)
}
