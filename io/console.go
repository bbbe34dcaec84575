// Package io provides the console device for the LC-3 emulator.
// A Console feeds keys from an input stream to the keyboard device
// registers and the character traps, and writes display output
// through a single buffered writer.
package io

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/ezrec/lc3/cpu"
	"github.com/ezrec/lc3/memory"
)

const (
	// CONSOLE_KEYS is the number of pending keys buffered from the input pump.
	CONSOLE_KEYS = 8
)

// Console is the terminal of the emulated machine. One Console serves
// both directions: keys for the keyboard registers and the input traps,
// characters for the display registers and the output traps.
type Console struct {
	Input  io.Reader
	Output *bufio.Writer

	file  *os.File
	saved unix.Termios
	raw   bool

	keys chan byte
}

var _ cpu.Terminal = (*Console)(nil)
var _ memory.Keyboard = (*Console)(nil)
var _ memory.Display = (*Console)(nil)

// NewConsole returns a console reading keys from the file and writing
// display output to the writer. Raw mode is available when the file is
// a terminal.
func NewConsole(input *os.File, output io.Writer) (con *Console) {
	con = NewConsoleReader(input, output)
	con.file = input

	return
}

// NewConsoleReader returns a console over plain byte streams, with no
// raw mode support.
func NewConsoleReader(input io.Reader, output io.Writer) (con *Console) {
	con = &Console{
		Input:  input,
		Output: bufio.NewWriter(output),
		keys:   make(chan byte, CONSOLE_KEYS),
	}

	go con.pump()

	return
}

// pump moves bytes from the input stream into the key buffer.
// The buffer is closed when the input is exhausted.
func (con *Console) pump() {
	var one [1]byte

	for {
		n, err := con.Input.Read(one[:])
		if n > 0 {
			con.keys <- one[0]
		}
		if err != nil {
			close(con.keys)
			return
		}
	}
}

// Raw switches the input terminal to unbuffered, unechoed reads.
// It does nothing when the input is not a terminal, so the console
// works unchanged over pipes and files.
func (con *Console) Raw() (err error) {
	if con.raw || con.file == nil {
		return
	}

	if !term.IsTerminal(int(con.file.Fd())) {
		return
	}

	err = termios.Tcgetattr(con.file.Fd(), &con.saved)
	if err != nil {
		return
	}

	tio := con.saved
	tio.Lflag &^= unix.ICANON | unix.ECHO
	err = termios.Tcsetattr(con.file.Fd(), termios.TCSANOW, &tio)
	if err != nil {
		return
	}

	con.raw = true

	return
}

// Restore returns the terminal to its saved settings. It may be called
// on any exit path, any number of times.
func (con *Console) Restore() (err error) {
	if !con.raw {
		return
	}

	con.raw = false
	err = termios.Tcsetattr(con.file.Fd(), termios.TCSANOW, &con.saved)

	return
}

// Poll reports a pending key without blocking.
func (con *Console) Poll() (key uint16, ok bool) {
	select {
	case b, open := <-con.keys:
		if !open {
			return
		}
		key = uint16(b)
		ok = true
	default:
	}

	return
}

// ReadKey blocks until a key is available.
func (con *Console) ReadKey() (key uint16, err error) {
	if con.keys == nil {
		err = ErrKeyboardEOF
		return
	}

	b, open := <-con.keys
	if !open {
		err = ErrKeyboardEOF
		return
	}

	key = uint16(b)

	return
}

// Ready reports whether the display accepts a character.
func (con *Console) Ready() bool {
	return con.Output != nil
}

// WriteKey writes the low byte of the key to the display.
func (con *Console) WriteKey(key uint16) (err error) {
	err = con.Output.WriteByte(byte(key))

	return
}

// WriteString writes a host string to the display.
func (con *Console) WriteString(s string) (err error) {
	_, err = con.Output.WriteString(s)

	return
}

// Flush drains buffered display output to the underlying writer.
func (con *Console) Flush() (err error) {
	err = con.Output.Flush()

	return
}
