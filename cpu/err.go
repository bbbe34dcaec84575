package cpu

import (
	"errors"

	"github.com/ezrec/lc3/translate"
)

var f = translate.From

var (
	// Execution errors
	ErrOpcodeReserved   = errors.New(f("reserved opcode"))
	ErrOpcodePrivileged = errors.New(f("privileged opcode"))
	ErrTrapUnknown      = errors.New(f("trap unknown"))
	ErrNoTerminal       = errors.New(f("terminal missing"))
)

type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x %v", uint16(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}
