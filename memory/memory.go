// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package memory implements the LC-3 address space: a flat array of 65536
// 16-bit words with a handful of addresses intercepted as device registers.
package memory

import (
	"iter"
	"log"
)

const (
	SIZE = 1 << 16 // Addressable words.
)

// Address space regions, low to high.
const (
	SPACE_TRAPS   = uint16(0x0000) // Trap vector table.
	SPACE_INTS    = uint16(0x0100) // Interrupt vector table.
	SPACE_SYSTEM  = uint16(0x0200) // Supervisor space.
	SPACE_USER    = uint16(0x3000) // User programs; default load origin.
	SPACE_DEVICES = uint16(0xFE00) // Memory mapped device registers.
)

// Memory mapped device registers.
const (
	DEV_KBSR = uint16(0xFE00) // Keyboard status.
	DEV_KBDR = uint16(0xFE02) // Keyboard data.
	DEV_DSR  = uint16(0xFE04) // Display status.
	DEV_DDR  = uint16(0xFE06) // Display data.
)

// DEV_READY is the ready bit of the keyboard and display status registers.
const DEV_READY = uint16(1 << 15)

// Keyboard is polled when a program reads the keyboard status register.
type Keyboard interface {
	// Poll returns the next pending key, without blocking.
	Poll() (key uint16, ok bool)
}

// Display accepts characters written through the display data register.
type Display interface {
	// Ready reports whether the display can accept another character.
	Ready() bool
	// WriteKey emits the low byte of key to the display.
	WriteKey(key uint16) error
}

// Memory is the simulated LC-3 address space.
//
// Every address is readable and writable plain storage, except that a read
// of DEV_KBSR polls the attached Keyboard (latching any pending key into
// DEV_KBDR), a read of DEV_DSR reflects the attached Display, and a write
// to DEV_DDR is forwarded to the Display. Either device may be nil, in
// which case its status register always reads not-ready.
type Memory struct {
	Verbose bool // Set to enable verbose logging.

	Data [SIZE]uint16

	Keyboard Keyboard
	Display  Display
}

// NewMemory creates a new, zeroed Memory with no devices attached.
func NewMemory() (m *Memory) {
	m = &Memory{}
	return
}

// Reset zeroes every word of memory. Attached devices are kept.
func (m *Memory) Reset() {
	clear(m.Data[:])
}

// Read returns the word at addr, refreshing device status registers first.
func (m *Memory) Read(addr uint16) (value uint16) {
	switch addr {
	case DEV_KBSR:
		if m.Keyboard != nil {
			if key, ok := m.Keyboard.Poll(); ok {
				m.Data[DEV_KBSR] = DEV_READY
				m.Data[DEV_KBDR] = key
				if m.Verbose {
					log.Printf("memory: kbsr: key 0x%02x", key)
				}
			} else {
				m.Data[DEV_KBSR] = 0
			}
		} else {
			m.Data[DEV_KBSR] = 0
		}
	case DEV_DSR:
		if m.Display != nil && m.Display.Ready() {
			m.Data[DEV_DSR] = DEV_READY
		} else {
			m.Data[DEV_DSR] = 0
		}
	}

	value = m.Data[addr]
	return
}

// Write stores value at addr unconditionally. A write to the display data
// register is additionally forwarded to the attached Display.
func (m *Memory) Write(addr uint16, value uint16) {
	m.Data[addr] = value

	if addr == DEV_DDR && m.Display != nil {
		if err := m.Display.WriteKey(value); err != nil && m.Verbose {
			log.Printf("memory: ddr: %v", err)
		}
	}
}

// StringZ iterates the words of a zero terminated string starting at addr.
// The terminating zero word is not yielded. Addresses wrap at the top of
// memory, as they do for every other access.
func (m *Memory) StringZ(addr uint16) iter.Seq[uint16] {
	return func(yield func(value uint16) bool) {
		for {
			value := m.Read(addr)
			if value == 0 {
				return
			}
			if !yield(value) {
				return
			}
			addr++
		}
	}
}
