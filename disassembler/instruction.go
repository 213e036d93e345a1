// Package disassembler turns 8080 machine code back into assembly
// text, one instruction at a time. It mirrors the core's own opcode
// table rather than re-deriving operand lengths from field widths, so
// the two can never drift out of sync silently; a new entry in
// cpu.nopAliases with no matching instructionSet row would disassemble
// as an unknown byte, which is the failure mode we want.
package disassembler

import (
	"fmt"

	"github.com/newhook/i8080/cpu"
)

// Operand describes how an instruction's trailing bytes, if any,
// should be read out of the opcode stream and rendered.
type Operand int

const (
	NoOperand Operand = iota
	Imm8              // D8: immediate byte, e.g. MVI A,$12
	Imm16             // D16: immediate word, e.g. LXI H,$1234
	Addr16            // addr: absolute address, e.g. JMP $1234
	Port8             // port byte used by IN/OUT
)

// Width reports how many operand bytes follow the opcode byte.
func (o Operand) Width() int {
	switch o {
	case Imm8, Port8:
		return 1
	case Imm16, Addr16:
		return 2
	default:
		return 0
	}
}

// Format renders the operand bytes (low byte first, as they appear in
// memory) the way 8080 assemblers conventionally print them.
func (o Operand) Format(bytes []byte) string {
	switch o {
	case NoOperand:
		return ""
	case Imm8, Port8:
		return fmt.Sprintf("$%02X", bytes[0])
	case Imm16, Addr16:
		return fmt.Sprintf("$%02X%02X", bytes[1], bytes[0])
	default:
		return "???"
	}
}

// Instruction is one row of the opcode table: a mnemonic plus however
// the operand bytes, if any, attach to it in assembly text.
type Instruction struct {
	Mnemonic string
	Operand  Operand
	OpCode   byte
}

// Size is the total instruction length in bytes, opcode included.
func (i Instruction) Size() int {
	return 1 + i.Operand.Width()
}

var regName = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}

var instructionSet = buildInstructionSet()

func buildInstructionSet() map[byte]Instruction {
	set := make(map[byte]Instruction, 256)

	add := func(op byte, mnemonic string, operand Operand) {
		set[op] = Instruction{Mnemonic: mnemonic, Operand: operand, OpCode: op}
	}

	// MOV dst,src spans 0x40-0x7F in row-major dst/src order, except
	// 0x76 (MOV M,M would be) which the core reuses as HLT.
	for dst := 0; dst < 8; dst++ {
		for src := 0; src < 8; src++ {
			op := byte(0x40 + dst*8 + src)
			if op == cpu.HLT {
				add(op, "HLT", NoOperand)
				continue
			}
			add(op, fmt.Sprintf("MOV %s,%s", regName[dst], regName[src]), NoOperand)
		}
	}

	// The eight ALU families share the same register ordering as MOV's
	// source operand and occupy 0x80-0xBF a row per operation.
	aluOps := []struct {
		base byte
		name string
	}{
		{0x80, "ADD"}, {0x88, "ADC"}, {0x90, "SUB"}, {0x98, "SBB"},
		{0xA0, "ANA"}, {0xA8, "XRA"}, {0xB0, "ORA"}, {0xB8, "CMP"},
	}
	for _, fam := range aluOps {
		for r := 0; r < 8; r++ {
			add(fam.base+byte(r), fam.name+" "+regName[r], NoOperand)
		}
	}

	pairs := []string{"B", "D", "H", "SP"}
	for i, p := range pairs {
		base := byte(i * 0x10)
		add(base+0x01, "LXI "+p, Imm16)
		add(base+0x03, "INX "+p, NoOperand)
		add(base+0x09, "DAD "+p, NoOperand)
		add(base+0x0B, "DCX "+p, NoOperand)
	}
	add(0x02, "STAX B", NoOperand)
	add(0x12, "STAX D", NoOperand)
	add(0x0A, "LDAX B", NoOperand)
	add(0x1A, "LDAX D", NoOperand)

	for r := 0; r < 8; r++ {
		base := byte(r * 8)
		add(base+0x04, "INR "+regName[r], NoOperand)
		add(base+0x05, "DCR "+regName[r], NoOperand)
		add(base+0x06, "MVI "+regName[r], Imm8)
	}

	pushPopPairs := []string{"B", "D", "H", "PSW"}
	for i, p := range pushPopPairs {
		base := byte(0xC0 + i*0x10)
		add(base+0x01, "POP "+p, NoOperand)
		add(base+0x05, "PUSH "+p, NoOperand)
	}

	rstVectors := []byte{cpu.RST_0, cpu.RST_1, cpu.RST_2, cpu.RST_3, cpu.RST_4, cpu.RST_5, cpu.RST_6, cpu.RST_7}
	for n, op := range rstVectors {
		add(op, fmt.Sprintf("RST %d", n), NoOperand)
	}

	conds := []struct {
		suffix         string
		jmp, call, ret byte
	}{
		{"NZ", cpu.JNZ, cpu.CNZ, cpu.RNZ},
		{"Z", cpu.JZ, cpu.CZ, cpu.RZ},
		{"NC", cpu.JNC, cpu.CNC, cpu.RNC},
		{"C", cpu.JC, cpu.CC, cpu.RC},
		{"PO", cpu.JPO, cpu.CPO, cpu.RPO},
		{"PE", cpu.JPE, cpu.CPE, cpu.RPE},
		{"P", cpu.JP, cpu.CP, cpu.RP},
		{"M", cpu.JM, cpu.CM, cpu.RM},
	}
	for _, cc := range conds {
		add(cc.jmp, "J"+cc.suffix, Addr16)
		add(cc.call, "C"+cc.suffix, Addr16)
		add(cc.ret, "R"+cc.suffix, NoOperand)
	}

	add(cpu.NOP, "NOP", NoOperand)
	add(cpu.RLC, "RLC", NoOperand)
	add(cpu.RRC, "RRC", NoOperand)
	add(cpu.RAL, "RAL", NoOperand)
	add(cpu.RAR, "RAR", NoOperand)
	add(cpu.DAA, "DAA", NoOperand)
	add(cpu.CMA, "CMA", NoOperand)
	add(cpu.STC, "STC", NoOperand)
	add(cpu.CMC, "CMC", NoOperand)
	add(cpu.SHLD, "SHLD", Addr16)
	add(cpu.LHLD, "LHLD", Addr16)
	add(cpu.STA, "STA", Addr16)
	add(cpu.LDA, "LDA", Addr16)
	add(cpu.JMP, "JMP", Addr16)
	add(cpu.CALL, "CALL", Addr16)
	add(cpu.RET, "RET", NoOperand)
	add(cpu.PCHL, "PCHL", NoOperand)
	add(cpu.SPHL, "SPHL", NoOperand)
	add(cpu.XTHL, "XTHL", NoOperand)
	add(cpu.XCHG, "XCHG", NoOperand)
	add(cpu.IN, "IN", Port8)
	add(cpu.OUT, "OUT", Port8)
	add(cpu.EI, "EI", NoOperand)
	add(cpu.DI, "DI", NoOperand)
	add(cpu.ADI, "ADI", Imm8)
	add(cpu.ACI, "ACI", Imm8)
	add(cpu.SUI, "SUI", Imm8)
	add(cpu.SBI, "SBI", Imm8)
	add(cpu.ANI, "ANI", Imm8)
	add(cpu.XRI, "XRI", Imm8)
	add(cpu.ORI, "ORI", Imm8)
	add(cpu.CPI, "CPI", Imm8)

	for op, name := range map[byte]string{
		0x08: "NOP", 0x10: "NOP", 0x18: "NOP", 0x20: "NOP", 0x28: "NOP",
		0x30: "NOP", 0x38: "NOP", 0xCB: "NOP", 0xD9: "NOP", 0xDD: "NOP",
		0xED: "NOP", 0xFD: "NOP",
	} {
		add(op, name, NoOperand)
	}

	return set
}

// Decode looks up the Instruction for an opcode byte.
func Decode(opcode byte) (Instruction, bool) {
	inst, ok := instructionSet[opcode]
	return inst, ok
}
