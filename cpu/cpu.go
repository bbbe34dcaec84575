package cpu

import (
	"errors"
	"fmt"
	"log"

	"github.com/ezrec/lc3/memory"
)

// Terminal is the console surface used by the system traps.
type Terminal interface {
	// ReadKey blocks until a key is available.
	ReadKey() (key uint16, err error)
	// WriteKey writes one character to the display.
	WriteKey(key uint16) error
	// WriteString writes a host string to the display.
	WriteString(s string) error
	// Flush drains buffered display output.
	Flush() error
}

// Cpu is the register and execution state of the LC-3 machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   *memory.Memory // Address space, including the device registers.
	Terminal Terminal       // Console for the system traps.

	Reg  [8]uint16 // General purpose register bank.
	PC   uint16    // Program counter.
	Cond Flag      // Condition flags of the last result.

	Halted bool // Set once the machine has stopped.
	Ticks  int  // Executed instruction counter.
}

// NewCpu creates a CPU attached to an address space and a terminal,
// ready to run.
func NewCpu(mem *memory.Memory, terminal Terminal) (cpu *Cpu) {
	cpu = &Cpu{
		Memory:   mem,
		Terminal: terminal,
	}

	cpu.Reset()

	return
}

// Reset returns the machine to its power-on state.
// - Clears the registers and statistics counters.
// - Sets the program counter to the start of user space.
// - Sets the condition flags to zero-result.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Reg[:])
	cpu.PC = memory.SPACE_USER
	cpu.Cond = FLAG_ZRO
	cpu.Halted = false
	cpu.Ticks = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc", "cond",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
		"ticks",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("0x%04x", cpu.PC)
		case "cond":
			strval = cpu.Cond.String()
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7":
			strval = fmt.Sprintf("0x%04x", cpu.Reg[byte(reg[1]-'0')])
		case "ticks":
			strval = fmt.Sprintf("%d", cpu.Ticks)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// setReg writes a result register and records the sign of the value in
// the condition flags. Exactly one flag is set at any time.
func (cpu *Cpu) setReg(reg int, value uint16) {
	cpu.Reg[reg] = value

	switch {
	case value == 0:
		cpu.Cond = FLAG_ZRO
	case (value >> 15) != 0:
		cpu.Cond = FLAG_NEG
	default:
		cpu.Cond = FLAG_POS
	}
}

// Tick fetches and executes a single instruction. Once the machine has
// halted, Tick does nothing.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		return
	}

	code := Code(cpu.Memory.Read(cpu.PC))
	cpu.PC++

	err = cpu.Execute(code)

	return
}

// Execute executes a single decoded instruction. The program counter
// has already advanced past the instruction; relative branches and
// return addresses start from that value.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	if cpu.Verbose {
		log.Printf("%04x: %v", cpu.PC-1, code)
	}

	mem := cpu.Memory

	switch code.Op() {
	case OP_BR:
		if (code.NZP() & cpu.Cond) != 0 {
			cpu.PC += code.PCOffset9()
		}
	case OP_ADD:
		b := cpu.Reg[code.Sr2()]
		if code.HasImm() {
			b = code.Imm5()
		}
		cpu.setReg(code.Dr(), cpu.Reg[code.Sr1()]+b)
	case OP_LD:
		cpu.setReg(code.Dr(), mem.Read(cpu.PC+code.PCOffset9()))
	case OP_ST:
		mem.Write(cpu.PC+code.PCOffset9(), cpu.Reg[code.Dr()])
	case OP_JSR:
		// The link saves first; a register call through the link
		// register branches to the saved return address.
		cpu.Reg[REG_LINK] = cpu.PC
		if code.Long() {
			cpu.PC += code.PCOffset11()
		} else {
			cpu.PC = cpu.Reg[code.Sr1()]
		}
	case OP_AND:
		b := cpu.Reg[code.Sr2()]
		if code.HasImm() {
			b = code.Imm5()
		}
		cpu.setReg(code.Dr(), cpu.Reg[code.Sr1()]&b)
	case OP_LDR:
		cpu.setReg(code.Dr(), mem.Read(cpu.Reg[code.Sr1()]+code.Offset6()))
	case OP_STR:
		mem.Write(cpu.Reg[code.Sr1()]+code.Offset6(), cpu.Reg[code.Dr()])
	case OP_RTI:
		err = ErrOpcodePrivileged
	case OP_NOT:
		cpu.setReg(code.Dr(), ^cpu.Reg[code.Sr1()])
	case OP_LDI:
		cpu.setReg(code.Dr(), mem.Read(mem.Read(cpu.PC+code.PCOffset9())))
	case OP_STI:
		mem.Write(mem.Read(cpu.PC+code.PCOffset9()), cpu.Reg[code.Dr()])
	case OP_JMP:
		cpu.PC = cpu.Reg[code.Sr1()]
	case OP_RES:
		err = ErrOpcodeReserved
	case OP_LEA:
		cpu.setReg(code.Dr(), cpu.PC+code.PCOffset9())
	case OP_TRAP:
		err = cpu.trap(code.Vector())
	}

	if err == nil {
		cpu.Ticks++
	}

	return
}
