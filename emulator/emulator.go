// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator assembles the LC-3 machine: memory, processor, and
// console, with image loading and a run loop.
package emulator

import (
	"io"
	"log"
	"os"

	"github.com/ezrec/lc3/cpu"
	lc3io "github.com/ezrec/lc3/io"
	"github.com/ezrec/lc3/memory"
)

// Emulator state. CPU + memory + console.
type Emulator struct {
	Verbose  bool // If set, enables verbose logging.
	*cpu.Cpu      // Reference to the CPU state.

	Memory  *memory.Memory // Address space shared with the CPU.
	Console *lc3io.Console // Terminal attached to the machine.
}

// NewEmulator creates a new emulator around a console. The console
// serves as the keyboard device, the display device, and the trap
// terminal.
func NewEmulator(console *lc3io.Console) (emu *Emulator) {
	mem := memory.NewMemory()
	mem.Keyboard = console
	mem.Display = console

	emu = &Emulator{
		Cpu:     cpu.NewCpu(mem, console),
		Memory:  mem,
		Console: console,
	}

	return
}

// LoadImage loads one big-endian image stream into memory. Later
// images overlay earlier ones at overlapping addresses.
func (emu *Emulator) LoadImage(r io.Reader) (err error) {
	emu.Memory.Verbose = emu.Verbose

	_, _, err = emu.Memory.LoadImage(r)

	return
}

// LoadImageFile loads the image file at path into memory.
func (emu *Emulator) LoadImageFile(path string) (err error) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	err = emu.LoadImage(file)

	return
}

// Reset returns the processor to its power-on state. Loaded images
// stay in memory.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Memory.Verbose = emu.Verbose

	pc := emu.Cpu.PC
	defer func() {
		if err != nil {
			err = &ErrRuntime{PC: pc, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	done = emu.Cpu.Halted

	return
}

// Run ticks the machine until it halts or fails.
func (emu *Emulator) Run() (err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: halt after %d ticks", emu.Cpu.Ticks)
	}

	return
}
