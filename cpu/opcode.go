package cpu

import (
	"fmt"
)

// Opcode is the operation of an instruction, from the top four bits of
// the instruction word.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_BR   = Opcode(0)  // br
	OP_ADD  = Opcode(1)  // add
	OP_LD   = Opcode(2)  // ld
	OP_ST   = Opcode(3)  // st
	OP_JSR  = Opcode(4)  // jsr
	OP_AND  = Opcode(5)  // and
	OP_LDR  = Opcode(6)  // ldr
	OP_STR  = Opcode(7)  // str
	OP_RTI  = Opcode(8)  // rti
	OP_NOT  = Opcode(9)  // not
	OP_LDI  = Opcode(10) // ldi
	OP_STI  = Opcode(11) // sti
	OP_JMP  = Opcode(12) // jmp
	OP_RES  = Opcode(13) // res
	OP_LEA  = Opcode(14) // lea
	OP_TRAP = Opcode(15) // trap
)

// Flag is a condition flag bit. The condition register holds exactly
// one flag; a branch condition may combine several.
type Flag uint16

const (
	FLAG_POS = Flag(1 << 0) // Last result was positive.
	FLAG_ZRO = Flag(1 << 1) // Last result was zero.
	FLAG_NEG = Flag(1 << 2) // Last result was negative.
)

// String returns the flag set as assembly-style condition letters.
func (flag Flag) String() (text string) {
	if flag&FLAG_NEG != 0 {
		text += "n"
	}
	if flag&FLAG_ZRO != 0 {
		text += "z"
	}
	if flag&FLAG_POS != 0 {
		text += "p"
	}

	return
}

// Trap is a system service vector, from the low eight bits of a trap
// instruction.
type Trap int

//go:generate go tool stringer -linecomment -type=Trap
const (
	TRAP_GETC  = Trap(0x20) // getc
	TRAP_OUT   = Trap(0x21) // out
	TRAP_PUTS  = Trap(0x22) // puts
	TRAP_IN    = Trap(0x23) // in
	TRAP_PUTSP = Trap(0x24) // putsp
	TRAP_HALT  = Trap(0x25) // halt
)

// REG_LINK is the register that receives the return address of a
// subroutine call.
const REG_LINK = 7

// Code is a single instruction word.
type Code uint16

// signExtend widens a two's complement field of the given bit count to
// the full word width.
func signExtend(value uint16, bits int) uint16 {
	if (value>>(bits-1))&1 != 0 {
		value |= 0xffff << bits
	}

	return value
}

// makeCode assembles an instruction word from an opcode and its
// operand bits.
func makeCode(op Opcode, bits uint16) Code {
	return Code((uint16(op) << 12) | bits)
}

// MakeCodeReg creates a register-form ADD or AND instruction.
func MakeCodeReg(op Opcode, dr, sr1, sr2 int) Code {
	return makeCode(op, uint16(dr&7)<<9|uint16(sr1&7)<<6|uint16(sr2&7))
}

// MakeCodeImm creates an immediate-form ADD or AND instruction.
func MakeCodeImm(op Opcode, dr, sr1, imm int) Code {
	return makeCode(op, uint16(dr&7)<<9|uint16(sr1&7)<<6|1<<5|uint16(imm)&0x1f)
}

// MakeCodeNot creates a NOT instruction.
func MakeCodeNot(dr, sr int) Code {
	return makeCode(OP_NOT, uint16(dr&7)<<9|uint16(sr&7)<<6|0x3f)
}

// MakeCodeBr creates a conditional branch instruction.
func MakeCodeBr(nzp Flag, offset int) Code {
	return makeCode(OP_BR, uint16(nzp&7)<<9|uint16(offset)&0x1ff)
}

// MakeCodeJmp creates a JMP instruction. A base register of REG_LINK
// is the conventional subroutine return.
func MakeCodeJmp(base int) Code {
	return makeCode(OP_JMP, uint16(base&7)<<6)
}

// MakeCodeJsr creates a PC-relative subroutine call.
func MakeCodeJsr(offset int) Code {
	return makeCode(OP_JSR, 1<<11|uint16(offset)&0x7ff)
}

// MakeCodeJsrr creates a register-indirect subroutine call.
func MakeCodeJsrr(base int) Code {
	return makeCode(OP_JSR, uint16(base&7)<<6)
}

// MakeCodePc creates a PC-relative load or store (LD, LDI, LEA, ST,
// STI). The register field is the destination for loads and the
// source for stores.
func MakeCodePc(op Opcode, reg, offset int) Code {
	return makeCode(op, uint16(reg&7)<<9|uint16(offset)&0x1ff)
}

// MakeCodeBase creates a base-plus-offset load or store (LDR, STR).
func MakeCodeBase(op Opcode, reg, base, offset int) Code {
	return makeCode(op, uint16(reg&7)<<9|uint16(base&7)<<6|uint16(offset)&0x3f)
}

// MakeCodeTrap creates a system trap instruction.
func MakeCodeTrap(vector Trap) Code {
	return makeCode(OP_TRAP, uint16(vector)&0xff)
}

// Op returns the operation of the instruction.
func (code Code) Op() Opcode {
	return Opcode((uint16(code) >> 12) & 0xf)
}

// Dr returns the destination (or store source) register field.
func (code Code) Dr() int {
	return int((uint16(code) >> 9) & 0x7)
}

// Sr1 returns the first source (or base) register field.
func (code Code) Sr1() int {
	return int((uint16(code) >> 6) & 0x7)
}

// Sr2 returns the second source register field.
func (code Code) Sr2() int {
	return int(uint16(code) & 0x7)
}

// HasImm returns true when the second operand is an immediate.
func (code Code) HasImm() bool {
	return (uint16(code) & (1 << 5)) != 0
}

// Imm5 returns the sign extended five bit immediate operand.
func (code Code) Imm5() uint16 {
	return signExtend(uint16(code)&0x1f, 5)
}

// Offset6 returns the sign extended base register displacement.
func (code Code) Offset6() uint16 {
	return signExtend(uint16(code)&0x3f, 6)
}

// PCOffset9 returns the sign extended program counter displacement.
func (code Code) PCOffset9() uint16 {
	return signExtend(uint16(code)&0x1ff, 9)
}

// PCOffset11 returns the sign extended subroutine call displacement.
func (code Code) PCOffset11() uint16 {
	return signExtend(uint16(code)&0x7ff, 11)
}

// Long returns true when a subroutine call is PC-relative.
func (code Code) Long() bool {
	return (uint16(code) & (1 << 11)) != 0
}

// NZP returns the branch condition flags.
func (code Code) NZP() Flag {
	return Flag((uint16(code) >> 9) & 0x7)
}

// Vector returns the system service vector of a trap instruction.
func (code Code) Vector() Trap {
	return Trap(uint16(code) & 0xff)
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	op := code.Op()

	switch op {
	case OP_BR:
		out = fmt.Sprintf("%v%v #%+d", op, code.NZP(), int16(code.PCOffset9()))
	case OP_ADD, OP_AND:
		if code.HasImm() {
			out = fmt.Sprintf("%v r%d, r%d, #%+d", op, code.Dr(), code.Sr1(), int16(code.Imm5()))
		} else {
			out = fmt.Sprintf("%v r%d, r%d, r%d", op, code.Dr(), code.Sr1(), code.Sr2())
		}
	case OP_NOT:
		out = fmt.Sprintf("%v r%d, r%d", op, code.Dr(), code.Sr1())
	case OP_LD, OP_LDI, OP_LEA, OP_ST, OP_STI:
		out = fmt.Sprintf("%v r%d, #%+d", op, code.Dr(), int16(code.PCOffset9()))
	case OP_LDR, OP_STR:
		out = fmt.Sprintf("%v r%d, r%d, #%+d", op, code.Dr(), code.Sr1(), int16(code.Offset6()))
	case OP_JSR:
		if code.Long() {
			out = fmt.Sprintf("%v #%+d", op, int16(code.PCOffset11()))
		} else {
			out = fmt.Sprintf("jsrr r%d", code.Sr1())
		}
	case OP_JMP:
		if code.Sr1() == REG_LINK {
			out = "ret"
		} else {
			out = fmt.Sprintf("%v r%d", op, code.Sr1())
		}
	case OP_TRAP:
		out = fmt.Sprintf("%v %v", op, code.Vector())
	default:
		out = op.String()
	}

	return
}
