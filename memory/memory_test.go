// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package memory

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testKeys implements Keyboard over a fixed list of pending keys.
type testKeys struct {
	keys []uint16
}

func (tk *testKeys) Poll() (key uint16, ok bool) {
	if len(tk.keys) == 0 {
		return
	}
	key = tk.keys[0]
	tk.keys = tk.keys[1:]
	ok = true
	return
}

// testDisplay implements Display, recording every key written to it.
type testDisplay struct {
	ready bool
	keys  []uint16
}

func (td *testDisplay) Ready() bool {
	return td.ready
}

func (td *testDisplay) WriteKey(key uint16) (err error) {
	td.keys = append(td.keys, key)
	return
}

func TestMemoryReadWrite(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()

	table := [](struct {
		addr  uint16
		value uint16
	}){
		{0x0000, 0xffff},
		{0x2fff, 0x1234},
		{SPACE_USER, 0xf025},
		{0xfdff, 0x8000},
		{0xffff, 0x0001},
	}

	for _, entry := range table {
		m.Write(entry.addr, entry.value)
		assert.Equal(entry.value, m.Read(entry.addr), "0x%04x", entry.addr)
	}

	// Unwritten addresses read as zero.
	assert.Equal(uint16(0), m.Read(0x1000))

	m.Reset()
	for _, entry := range table {
		assert.Equal(uint16(0), m.Read(entry.addr), "0x%04x", entry.addr)
	}
}

func TestMemoryKeyboardStatus(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()

	// No keyboard attached: never ready.
	assert.Equal(uint16(0), m.Read(DEV_KBSR))

	keys := &testKeys{}
	m.Keyboard = keys

	// Keyboard attached, nothing pending.
	assert.Equal(uint16(0), m.Read(DEV_KBSR))

	// A pending key latches into the data register.
	keys.keys = []uint16{'A'}
	assert.Equal(DEV_READY, m.Read(DEV_KBSR))
	assert.Equal(uint16('A'), m.Read(DEV_KBDR))

	// The poll consumed the key; the data register retains it.
	assert.Equal(uint16(0), m.Read(DEV_KBSR))
	assert.Equal(uint16('A'), m.Read(DEV_KBDR))

	// An unread key is overwritten by the next poll.
	keys.keys = []uint16{'B', 'C'}
	assert.Equal(DEV_READY, m.Read(DEV_KBSR))
	assert.Equal(DEV_READY, m.Read(DEV_KBSR))
	assert.Equal(uint16('C'), m.Read(DEV_KBDR))
}

func TestMemoryDisplayStatus(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()

	// No display attached: never ready.
	assert.Equal(uint16(0), m.Read(DEV_DSR))

	display := &testDisplay{}
	m.Display = display
	assert.Equal(uint16(0), m.Read(DEV_DSR))

	display.ready = true
	assert.Equal(DEV_READY, m.Read(DEV_DSR))
}

func TestMemoryDisplayData(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()
	display := &testDisplay{ready: true}
	m.Display = display

	m.Write(DEV_DDR, 'H')
	m.Write(DEV_DDR, 'i')

	// Forwarded to the device, and stored like any other word.
	assert.Equal([]uint16{'H', 'i'}, display.keys)
	assert.Equal(uint16('i'), m.Read(DEV_DDR))
}

func TestMemoryStringZ(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()

	m.Write(0x3100, 'H')
	m.Write(0x3101, 'i')
	m.Write(0x3102, '!')
	m.Write(0x3103, 0)
	m.Write(0x3104, 'x') // beyond the terminator

	assert.Equal([]uint16{'H', 'i', '!'}, slices.Collect(m.StringZ(0x3100)))

	// A string may be empty.
	assert.Empty(slices.Collect(m.StringZ(0x3103)))
}
