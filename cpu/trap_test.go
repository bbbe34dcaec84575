package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/lc3/memory"
)

var errNoKeys = errors.New("no keys")

// testTerminal implements Terminal over fixed keys and a capture buffer.
type testTerminal struct {
	keys    []uint16
	out     []byte
	flushes int
}

var _ Terminal = (*testTerminal)(nil)

func (tt *testTerminal) ReadKey() (key uint16, err error) {
	if len(tt.keys) == 0 {
		err = errNoKeys
		return
	}
	key = tt.keys[0]
	tt.keys = tt.keys[1:]
	return
}

func (tt *testTerminal) WriteKey(key uint16) (err error) {
	tt.out = append(tt.out, byte(key))
	return
}

func (tt *testTerminal) WriteString(s string) (err error) {
	tt.out = append(tt.out, s...)
	return
}

func (tt *testTerminal) Flush() (err error) {
	tt.flushes++
	return
}

func TestTrapGetc(t *testing.T) {
	assert := assert.New(t)

	term := &testTerminal{keys: []uint16{'A'}}
	cpu := NewCpu(memory.NewMemory(), term)

	assert.NoError(cpu.Execute(MakeCodeTrap(TRAP_GETC)))
	assert.Equal(uint16('A'), cpu.Reg[0])
	assert.Equal(FLAG_POS, cpu.Cond)

	// No echo.
	assert.Empty(term.out)

	// Input exhausted is fatal.
	err := cpu.Execute(MakeCodeTrap(TRAP_GETC))
	assert.ErrorIs(err, errNoKeys)
}

func TestTrapOut(t *testing.T) {
	assert := assert.New(t)

	term := &testTerminal{}
	cpu := NewCpu(memory.NewMemory(), term)

	cpu.Reg[0] = 'B'
	assert.NoError(cpu.Execute(MakeCodeTrap(TRAP_OUT)))
	assert.Equal("B", string(term.out))
	assert.Equal(1, term.flushes)
}

func TestTrapPuts(t *testing.T) {
	assert := assert.New(t)

	term := &testTerminal{}
	mem := memory.NewMemory()
	cpu := NewCpu(mem, term)

	for n, key := range "Hello, world!" {
		mem.Write(uint16(0x3100+n), uint16(key))
	}
	cpu.Reg[0] = 0x3100

	assert.NoError(cpu.Execute(MakeCodeTrap(TRAP_PUTS)))
	assert.Equal("Hello, world!", string(term.out))
	assert.Equal(1, term.flushes)
}

func TestTrapIn(t *testing.T) {
	assert := assert.New(t)

	term := &testTerminal{keys: []uint16{'y'}}
	cpu := NewCpu(memory.NewMemory(), term)

	assert.NoError(cpu.Execute(MakeCodeTrap(TRAP_IN)))
	assert.Equal(uint16('y'), cpu.Reg[0])
	assert.Equal(FLAG_POS, cpu.Cond)

	// Prompt, then the echoed key.
	assert.Equal("Enter a character: y", string(term.out))
}

func TestTrapPutsp(t *testing.T) {
	assert := assert.New(t)

	term := &testTerminal{}
	mem := memory.NewMemory()
	cpu := NewCpu(mem, term)

	// "abcde" packed two characters per word.
	mem.Write(0x3200, 'b'<<8|'a')
	mem.Write(0x3201, 'd'<<8|'c')
	mem.Write(0x3202, 'e')
	cpu.Reg[0] = 0x3200

	assert.NoError(cpu.Execute(MakeCodeTrap(TRAP_PUTSP)))
	assert.Equal("abcde", string(term.out))
	assert.Equal(1, term.flushes)
}

func TestTrapHalt(t *testing.T) {
	assert := assert.New(t)

	term := &testTerminal{}
	mem := memory.NewMemory()
	cpu := NewCpu(mem, term)

	mem.Write(memory.SPACE_USER, uint16(MakeCodeTrap(TRAP_HALT)))
	mem.Write(memory.SPACE_USER+1, uint16(MakeCodeImm(OP_ADD, 0, 0, 1)))

	assert.NoError(cpu.Tick())
	assert.True(cpu.Halted)
	assert.Equal("HALT\n", string(term.out))

	// No further fetches occur.
	assert.NoError(cpu.Tick())
	assert.Equal(uint16(0), cpu.Reg[0])
	assert.Equal(1, cpu.Ticks)
}

func TestTrapUnknown(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(memory.NewMemory(), &testTerminal{})

	err := cpu.Execute(MakeCodeTrap(Trap(0x26)))
	assert.ErrorIs(err, ErrTrapUnknown)
}

func TestTrapNoTerminal(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(memory.NewMemory(), nil)

	err := cpu.Execute(MakeCodeTrap(TRAP_OUT))
	assert.ErrorIs(err, ErrNoTerminal)
}

func TestTrapLinkUntouched(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(memory.NewMemory(), &testTerminal{})

	// Traps do not save a return address.
	cpu.Reg[REG_LINK] = 0xaaaa
	cpu.Reg[0] = 'x'
	assert.NoError(cpu.Execute(MakeCodeTrap(TRAP_OUT)))
	assert.Equal(uint16(0xaaaa), cpu.Reg[REG_LINK])
}
