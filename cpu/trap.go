package cpu

// trap dispatches a system service vector. Character input and output
// go through the attached terminal.
func (cpu *Cpu) trap(vector Trap) (err error) {
	if cpu.Terminal == nil {
		err = ErrNoTerminal
		return
	}

	switch vector {
	case TRAP_GETC:
		var key uint16
		key, err = cpu.Terminal.ReadKey()
		if err != nil {
			return
		}
		cpu.setReg(0, key)
	case TRAP_OUT:
		err = cpu.Terminal.WriteKey(cpu.Reg[0])
		if err != nil {
			return
		}
		err = cpu.Terminal.Flush()
	case TRAP_PUTS:
		for word := range cpu.Memory.StringZ(cpu.Reg[0]) {
			err = cpu.Terminal.WriteKey(word)
			if err != nil {
				return
			}
		}
		err = cpu.Terminal.Flush()
	case TRAP_IN:
		err = cpu.Terminal.WriteString("Enter a character: ")
		if err != nil {
			return
		}
		err = cpu.Terminal.Flush()
		if err != nil {
			return
		}
		var key uint16
		key, err = cpu.Terminal.ReadKey()
		if err != nil {
			return
		}
		err = cpu.Terminal.WriteKey(key)
		if err != nil {
			return
		}
		err = cpu.Terminal.Flush()
		if err != nil {
			return
		}
		cpu.setReg(0, key)
	case TRAP_PUTSP:
		// Two characters pack into each word, low byte first. A zero
		// high byte in a nonzero word is skipped, not terminal.
		for word := range cpu.Memory.StringZ(cpu.Reg[0]) {
			err = cpu.Terminal.WriteKey(word & 0xff)
			if err != nil {
				return
			}
			if (word >> 8) != 0 {
				err = cpu.Terminal.WriteKey(word >> 8)
				if err != nil {
					return
				}
			}
		}
		err = cpu.Terminal.Flush()
	case TRAP_HALT:
		err = cpu.Terminal.WriteString("HALT\n")
		if err != nil {
			return
		}
		err = cpu.Terminal.Flush()
		if err != nil {
			return
		}
		cpu.Halted = true
	default:
		err = ErrTrapUnknown
	}

	return
}
