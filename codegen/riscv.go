package codegen

import (
	"fmt"
	"strings"
)

// Backend accumulates RISC-V assembly text.  It is a pure formatting
// facility: it performs no semantic checking of operands, and its output is
// append-only.  Every emitter below takes an optional one-line comment; the
// empty string suppresses the comment.
type Backend struct {
	asmText strings.Builder

	// wordSize is the machine word size in bytes (4 for RV32).
	wordSize int
}

// NewBackend creates a backend for 32-bit RISC-V.
func NewBackend() *Backend {
	return &Backend{wordSize: 4}
}

// WordSize returns the word size in bytes.
func (b *Backend) WordSize() int {
	return b.wordSize
}

func (b *Backend) String() string {
	return b.asmText.String()
}

// Register is a RISC-V integer register.
type Register int

const (
	A0 Register = iota
	A1
	A2
	A3
	A4
	A5
	A6
	A7
	T0
	T1
	T2
	T3
	T4
	T5
	T6
	S1
	S2
	S3
	S4
	S5
	S6
	S7
	S8
	S9
	S10
	S11
	FP
	SP
	GP
	RA
	ZERO
)

var registerNames = [...]string{
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6",
	"s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
	"fp", "sp", "gp", "ra", "zero",
}

func (r Register) String() string {
	return registerNames[r]
}

// Emit appends str to the output verbatim, followed by a newline.  str should
// have no trailing newline.
func (b *Backend) Emit(str string) {
	b.asmText.WriteString(str)
	b.asmText.WriteByte('\n')
}

// EmitInsn emits an instruction or directive, aligned with its one-line
// comment when one is given.
func (b *Backend) EmitInsn(insn, comment string) {
	if comment != "" {
		b.Emit(fmt.Sprintf("  %-40s # %s", insn, comment))
	} else {
		b.Emit(fmt.Sprintf("  %s", insn))
	}
}

// EmitLocalLabel emits a label marker for label.  Invoke only once per unique
// label.
func (b *Backend) EmitLocalLabel(label Label, comment string) {
	if comment != "" {
		b.Emit(fmt.Sprintf("%-42s # %s", label.String()+":", comment))
	} else {
		b.Emit(label.String() + ":")
	}
}

// EmitGlobalLabel emits a `.globl` directive and a label marker for label.
// Invoke only once per unique label.
func (b *Backend) EmitGlobalLabel(label Label) {
	b.Emit(fmt.Sprintf("\n.globl %s", label))
	b.Emit(fmt.Sprintf("%s:", label))
}

// DefineSym defines the symbolic assembler constant @name to value with an
// `.equiv` directive.  value may be a numeral or another symbol.
func (b *Backend) DefineSym(name, value string) {
	if strings.HasPrefix(name, "@") {
		b.EmitInsn(fmt.Sprintf(".equiv %s, %s", name, value), "")
	} else {
		b.EmitInsn(fmt.Sprintf(".equiv @%s, %s", name, value), "")
	}
}

// DefineIntSym defines @name to an integer value.
func (b *Backend) DefineIntSym(name string, value int) {
	b.DefineSym(name, fmt.Sprintf("%d", value))
}

// EmitWordLiteral emits a data word containing an integer value.
func (b *Backend) EmitWordLiteral(value int, comment string) {
	b.EmitInsn(fmt.Sprintf(".word %d", value), comment)
}

// EmitWordAddress emits a data word containing the address addr, or the
// literal 0 if addr is nil.
func (b *Backend) EmitWordAddress(addr *Label, comment string) {
	if addr == nil {
		b.EmitWordLiteral(0, comment)
	} else {
		b.EmitInsn(fmt.Sprintf(".word %s", addr), comment)
	}
}

// EmitString emits value as a null-terminated ASCII string constant.
func (b *Backend) EmitString(value, comment string) {
	quoted := strings.NewReplacer(
		"\\", "\\\\",
		"\n", "\\n",
		"\t", "\\t",
		"\"", "\\\"",
	).Replace(value)
	b.EmitInsn(fmt.Sprintf(".string \"%s\"", quoted), comment)
}

// StartData marks the start of a data section.
func (b *Backend) StartData() {
	b.Emit("\n.data")
}

// StartCode marks the start of a code section.
func (b *Backend) StartCode() {
	b.Emit("\n.text")
}

// AlignNext aligns the next instruction or word to a multiple of 2**pow
// bytes.
func (b *Backend) AlignNext(pow int) {
	b.EmitInsn(fmt.Sprintf(".align %d", pow), "")
}

// EmitEcall emits an environment call.
func (b *Backend) EmitEcall(comment string) {
	b.EmitInsn("ecall", comment)
}

// EmitLA emits a load-address pseudo-instruction: rd = &label.
func (b *Backend) EmitLA(rd Register, label Label, comment string) {
	b.EmitInsn(fmt.Sprintf("la %s, %s", rd, label), comment)
}

// EmitLI emits a load-immediate pseudo-instruction: rd = imm.
func (b *Backend) EmitLI(rd Register, imm int, comment string) {
	b.EmitInsn(fmt.Sprintf("li %s, %d", rd, imm), comment)
}

// EmitLUI emits a load-upper-immediate instruction setting the upper 20 bits
// of rd to imm, 0 <= imm < 2**20.
func (b *Backend) EmitLUI(rd Register, imm int, comment string) {
	b.EmitInsn(fmt.Sprintf("lui %s, %d", rd, imm), comment)
}

// EmitMV emits a move: rd = rs.
func (b *Backend) EmitMV(rd, rs Register, comment string) {
	b.EmitInsn(fmt.Sprintf("mv %s, %s", rd, rs), comment)
}

// EmitJR emits a computed jump to the address in rs.
func (b *Backend) EmitJR(rs Register, comment string) {
	b.EmitInsn(fmt.Sprintf("jr %s", rs), comment)
}

// EmitJ emits an unconditional jump to label.
func (b *Backend) EmitJ(label Label, comment string) {
	b.EmitInsn(fmt.Sprintf("j %s", label), comment)
}

// EmitJAL emits a jump-and-link to label.
func (b *Backend) EmitJAL(label Label, comment string) {
	b.EmitInsn(fmt.Sprintf("jal %s", label), comment)
}

// EmitJALR emits a computed jump-and-link to the address in rs.
func (b *Backend) EmitJALR(rs Register, comment string) {
	b.EmitInsn(fmt.Sprintf("jalr %s", rs), comment)
}

// EmitADDI emits rd = rs + imm, -2048 <= imm < 2048.
func (b *Backend) EmitADDI(rd, rs Register, imm int, comment string) {
	b.EmitInsn(fmt.Sprintf("addi %s, %s, %d", rd, rs, imm), comment)
}

// EmitADDISym emits rd = rs + imm where imm is a symbolic assembler constant
// (see DefineSym) or an expression of the form @NAME+NUM or @NAME-NUM.
func (b *Backend) EmitADDISym(rd, rs Register, imm, comment string) {
	b.EmitInsn(fmt.Sprintf("addi %s, %s, %s", rd, rs, imm), comment)
}

// EmitADD emits rd = rs1 + rs2 mod 2**32.
func (b *Backend) EmitADD(rd, rs1, rs2 Register, comment string) {
	b.EmitInsn(fmt.Sprintf("add %s, %s, %s", rd, rs1, rs2), comment)
}

// EmitSUB emits rd = rs1 - rs2 mod 2**32.
func (b *Backend) EmitSUB(rd, rs1, rs2 Register, comment string) {
	b.EmitInsn(fmt.Sprintf("sub %s, %s, %s", rd, rs1, rs2), comment)
}

// EmitMUL emits rd = rs1 * rs2 mod 2**32.
func (b *Backend) EmitMUL(rd, rs1, rs2 Register, comment string) {
	b.EmitInsn(fmt.Sprintf("mul %s, %s, %s", rd, rs1, rs2), comment)
}

// EmitDIV emits a signed divide rd = rs1 / rs2, rounding toward 0.  If
// rs2 == 0, rd is set to -1.
func (b *Backend) EmitDIV(rd, rs1, rs2 Register, comment string) {
	b.EmitInsn(fmt.Sprintf("div %s, %s, %s", rd, rs1, rs2), comment)
}

// EmitREM emits rd = rs1 rem rs2, defined so that
// (rs1 / rs2) * rs2 + (rs1 rem rs2) == rs1 with / as for EmitDIV.
func (b *Backend) EmitREM(rd, rs1, rs2 Register, comment string) {
	b.EmitInsn(fmt.Sprintf("rem %s, %s, %s", rd, rs1, rs2), comment)
}

// EmitXOR emits rd = rs1 ^ rs2.
func (b *Backend) EmitXOR(rd, rs1, rs2 Register, comment string) {
	b.EmitInsn(fmt.Sprintf("xor %s, %s, %s", rd, rs1, rs2), comment)
}

// EmitXORI emits rd = rs ^ imm, -2048 <= imm < 2048.
func (b *Backend) EmitXORI(rd, rs Register, imm int, comment string) {
	b.EmitInsn(fmt.Sprintf("xori %s, %s, %d", rd, rs, imm), comment)
}

// EmitAND emits rd = rs1 & rs2.
func (b *Backend) EmitAND(rd, rs1, rs2 Register, comment string) {
	b.EmitInsn(fmt.Sprintf("and %s, %s, %s", rd, rs1, rs2), comment)
}

// EmitANDI emits rd = rs & imm, -2048 <= imm < 2048.
func (b *Backend) EmitANDI(rd, rs Register, imm int, comment string) {
	b.EmitInsn(fmt.Sprintf("andi %s, %s, %d", rd, rs, imm), comment)
}

// EmitOR emits rd = rs1 | rs2.
func (b *Backend) EmitOR(rd, rs1, rs2 Register, comment string) {
	b.EmitInsn(fmt.Sprintf("or %s, %s, %s", rd, rs1, rs2), comment)
}

// EmitORI emits rd = rs | imm, -2048 <= imm < 2048.
func (b *Backend) EmitORI(rd, rs Register, imm int, comment string) {
	b.EmitInsn(fmt.Sprintf("ori %s, %s, %d", rd, rs, imm), comment)
}

// EmitSLL emits a logical left shift rd = rs1 << (rs2 & 0x1f).
func (b *Backend) EmitSLL(rd, rs1, rs2 Register, comment string) {
	b.EmitInsn(fmt.Sprintf("sll %s, %s, %s", rd, rs1, rs2), comment)
}

// EmitSLLI emits a logical left shift rd = rs << (imm & 0x1f).
func (b *Backend) EmitSLLI(rd, rs Register, imm int, comment string) {
	b.EmitInsn(fmt.Sprintf("slli %s, %s, %d", rd, rs, imm), comment)
}

// EmitSRL emits a logical right shift rd = rs1 >>> (rs2 & 0x1f).
func (b *Backend) EmitSRL(rd, rs1, rs2 Register, comment string) {
	b.EmitInsn(fmt.Sprintf("srl %s, %s, %s", rd, rs1, rs2), comment)
}

// EmitSRLI emits a logical right shift rd = rs >>> (imm & 0x1f).
func (b *Backend) EmitSRLI(rd, rs Register, imm int, comment string) {
	b.EmitInsn(fmt.Sprintf("srli %s, %s, %d", rd, rs, imm), comment)
}

// EmitSRA emits an arithmetic right shift rd = rs1 >> (rs2 & 0x1f).
func (b *Backend) EmitSRA(rd, rs1, rs2 Register, comment string) {
	b.EmitInsn(fmt.Sprintf("sra %s, %s, %s", rd, rs1, rs2), comment)
}

// EmitSRAI emits an arithmetic right shift rd = rs >> (imm & 0x1f).
func (b *Backend) EmitSRAI(rd, rs Register, imm int, comment string) {
	b.EmitInsn(fmt.Sprintf("srai %s, %s, %d", rd, rs, imm), comment)
}

// EmitLW emits a load word: rd = MEMORY[rs + imm]:4, -2048 <= imm < 2048.
func (b *Backend) EmitLW(rd, rs Register, imm int, comment string) {
	b.EmitInsn(fmt.Sprintf("lw %s, %d(%s)", rd, imm, rs), comment)
}

// EmitLWSym emits a load word whose offset is a symbolic constant
// expression (see EmitADDISym).
func (b *Backend) EmitLWSym(rd, rs Register, imm, comment string) {
	b.EmitInsn(fmt.Sprintf("lw %s, %s(%s)", rd, imm, rs), comment)
}

// EmitLWGlobal emits a load word from static storage: rd = MEMORY[label]:4.
func (b *Backend) EmitLWGlobal(rd Register, label Label, comment string) {
	b.EmitInsn(fmt.Sprintf("lw %s, %s", rd, label), comment)
}

// EmitSW emits a store word: MEMORY[rs1 + imm]:4 = rs2, -2048 <= imm < 2048.
func (b *Backend) EmitSW(rs2, rs1 Register, imm int, comment string) {
	b.EmitInsn(fmt.Sprintf("sw %s, %d(%s)", rs2, imm, rs1), comment)
}

// EmitSWSym emits a store word whose offset is a symbolic constant
// expression (see EmitADDISym).
func (b *Backend) EmitSWSym(rs2, rs1 Register, imm, comment string) {
	b.EmitInsn(fmt.Sprintf("sw %s, %s(%s)", rs2, imm, rs1), comment)
}

// EmitSWGlobal emits a store word to static storage, MEMORY[label]:4 = rs,
// using tmp as a scratch register.
func (b *Backend) EmitSWGlobal(rs Register, label Label, tmp Register, comment string) {
	b.EmitInsn(fmt.Sprintf("sw %s, %s, %s", rs, label, tmp), comment)
}

// EmitLB emits a load byte with sign extension: rd = MEMORY[rs + imm]:1.
func (b *Backend) EmitLB(rd, rs Register, imm int, comment string) {
	b.EmitInsn(fmt.Sprintf("lb %s, %d(%s)", rd, imm, rs), comment)
}

// EmitLBU emits a load byte with zero extension: rd = MEMORY[rs + imm]:1.
func (b *Backend) EmitLBU(rd, rs Register, imm int, comment string) {
	b.EmitInsn(fmt.Sprintf("lbu %s, %d(%s)", rd, imm, rs), comment)
}

// EmitSB emits a store byte: MEMORY[rs1 + imm]:1 = low byte of rs2.
func (b *Backend) EmitSB(rs2, rs1 Register, imm int, comment string) {
	b.EmitInsn(fmt.Sprintf("sb %s, %d(%s)", rs2, imm, rs1), comment)
}

// EmitBEQ emits: if rs1 == rs2 goto label.
func (b *Backend) EmitBEQ(rs1, rs2 Register, label Label, comment string) {
	b.EmitInsn(fmt.Sprintf("beq %s, %s, %s", rs1, rs2, label), comment)
}

// EmitBNE emits: if rs1 != rs2 goto label.
func (b *Backend) EmitBNE(rs1, rs2 Register, label Label, comment string) {
	b.EmitInsn(fmt.Sprintf("bne %s, %s, %s", rs1, rs2, label), comment)
}

// EmitBGE emits (signed): if rs1 >= rs2 goto label.
func (b *Backend) EmitBGE(rs1, rs2 Register, label Label, comment string) {
	b.EmitInsn(fmt.Sprintf("bge %s, %s, %s", rs1, rs2, label), comment)
}

// EmitBGEU emits (unsigned): if rs1 >= rs2 goto label.
func (b *Backend) EmitBGEU(rs1, rs2 Register, label Label, comment string) {
	b.EmitInsn(fmt.Sprintf("bgeu %s, %s, %s", rs1, rs2, label), comment)
}

// EmitBLT emits (signed): if rs1 < rs2 goto label.
func (b *Backend) EmitBLT(rs1, rs2 Register, label Label, comment string) {
	b.EmitInsn(fmt.Sprintf("blt %s, %s, %s", rs1, rs2, label), comment)
}

// EmitBLTU emits (unsigned): if rs1 < rs2 goto label.
func (b *Backend) EmitBLTU(rs1, rs2 Register, label Label, comment string) {
	b.EmitInsn(fmt.Sprintf("bltu %s, %s, %s", rs1, rs2, label), comment)
}

// EmitBEQZ emits: if rs == 0 goto label.
func (b *Backend) EmitBEQZ(rs Register, label Label, comment string) {
	b.EmitInsn(fmt.Sprintf("beqz %s, %s", rs, label), comment)
}

// EmitBNEZ emits: if rs != 0 goto label.
func (b *Backend) EmitBNEZ(rs Register, label Label, comment string) {
	b.EmitInsn(fmt.Sprintf("bnez %s, %s", rs, label), comment)
}

// EmitBLTZ emits: if rs < 0 goto label.
func (b *Backend) EmitBLTZ(rs Register, label Label, comment string) {
	b.EmitInsn(fmt.Sprintf("bltz %s, %s", rs, label), comment)
}

// EmitBGTZ emits: if rs > 0 goto label.
func (b *Backend) EmitBGTZ(rs Register, label Label, comment string) {
	b.EmitInsn(fmt.Sprintf("bgtz %s, %s", rs, label), comment)
}

// EmitBLEZ emits: if rs <= 0 goto label.
func (b *Backend) EmitBLEZ(rs Register, label Label, comment string) {
	b.EmitInsn(fmt.Sprintf("blez %s, %s", rs, label), comment)
}

// EmitBGEZ emits: if rs >= 0 goto label.
func (b *Backend) EmitBGEZ(rs Register, label Label, comment string) {
	b.EmitInsn(fmt.Sprintf("bgez %s, %s", rs, label), comment)
}

// EmitSLT emits: rd = 1 if rs1 < rs2 else 0.
func (b *Backend) EmitSLT(rd, rs1, rs2 Register, comment string) {
	b.EmitInsn(fmt.Sprintf("slt %s, %s, %s", rd, rs1, rs2), comment)
}

// EmitSEQZ emits: rd = 1 if rs == 0 else 0.
func (b *Backend) EmitSEQZ(rd, rs Register, comment string) {
	b.EmitInsn(fmt.Sprintf("seqz %s, %s", rd, rs), comment)
}

// EmitSNEZ emits: rd = 1 if rs != 0 else 0.
func (b *Backend) EmitSNEZ(rd, rs Register, comment string) {
	b.EmitInsn(fmt.Sprintf("snez %s, %s", rd, rs), comment)
}
