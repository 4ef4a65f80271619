package cpu

import "github.com/mixvm/negroni/mix"

// jumpTo sets PC to address and saves the return address (PC+1) into
// J, matching every jump mnemonic except JSJ.
func jumpTo(c *Computer, address int64) {
	c.J = mix.AddressFromValue(int64(c.PC) + 1)
	c.PC = int(address)
}

// conditionalJump jumps when condition holds, else advances PC by one
// (ported from original_source/src/operations/jump.rs's conditional_jump;
// grounded test vectors in jump.rs's test_jmp/test_jsj/test_jov/...).
func conditionalJump(c *Computer, address int64, condition bool) {
	if condition {
		jumpTo(c, address)
		return
	}
	c.PC++
}

// makeJump implements the JMP family (opcode 39, mod 0..9): JMP, JSJ
// (jump without saving J), JOV/JNOV (test and clear overflow), and the
// six comparison jumps.
func makeJump(mod byte) Handler {
	return func(c *Computer, i mix.Instruction) error {
		address, err := c.IndexedAddressValue(i)
		if err != nil {
			return err
		}
		switch mod {
		case mix.ModJMP:
			jumpTo(c, address)
		case mix.ModJSJ:
			c.PC = int(address)
		case mix.ModJOV:
			conditionalJump(c, address, c.Overflow)
			c.Overflow = false
		case mix.ModJNOV:
			conditionalJump(c, address, !c.Overflow)
			c.Overflow = false
		case mix.ModJL:
			conditionalJump(c, address, c.Comparison == mix.Less)
		case mix.ModJE:
			conditionalJump(c, address, c.Comparison == mix.Equal)
		case mix.ModJG:
			conditionalJump(c, address, c.Comparison == mix.Greater)
		case mix.ModJGE:
			conditionalJump(c, address, c.Comparison != mix.Less)
		case mix.ModJNE:
			conditionalJump(c, address, c.Comparison != mix.Equal)
		case mix.ModJLE:
			conditionalJump(c, address, c.Comparison != mix.Greater)
		default:
			return &UnknownOp{Operation: i.Operation, Modification: mod}
		}
		return nil
	}
}

// makeRegisterJump implements J*N/J*Z/J*P/J*NN/J*NZ/J*NP (opcodes
// 40..47, mod 0..5): jump according to the sign/zeroness of reg's
// value, ported from original_source/src/operations/jump.rs's
// RegisterJump::execute.
func makeRegisterJump(reg mix.RegisterName, mod byte) Handler {
	return func(c *Computer, i mix.Instruction) error {
		address, err := c.IndexedAddressValue(i)
		if err != nil {
			return err
		}
		value := c.Register(reg).Value()
		var condition bool
		switch mod {
		case mix.ModJN:
			condition = value < 0
		case mix.ModJZ:
			condition = value == 0
		case mix.ModJP:
			condition = value > 0
		case mix.ModJNN:
			condition = value >= 0
		case mix.ModJNZ:
			condition = value != 0
		case mix.ModJNP:
			condition = value <= 0
		default:
			return &UnknownOp{Operation: i.Operation, Modification: mod}
		}
		conditionalJump(c, address, condition)
		return nil
	}
}

// opJBUS implements JBUS (opcode 34): jump if the device named by the
// modification byte is busy. Non-blocking: a pure poll of the device's
// busy flag, never waiting.
func opJBUS(c *Computer, i mix.Instruction) error {
	address, err := c.IndexedAddressValue(i)
	if err != nil {
		return err
	}
	d := c.Devices.Device(int(i.Modification))
	busy := d != nil && d.Busy()
	conditionalJump(c, address, busy)
	return nil
}

// opJRED implements JRED (opcode 38): jump if the device named by the
// modification byte is ready (i.e. not busy).
func opJRED(c *Computer, i mix.Instruction) error {
	address, err := c.IndexedAddressValue(i)
	if err != nil {
		return err
	}
	d := c.Devices.Device(int(i.Modification))
	ready := d == nil || !d.Busy()
	conditionalJump(c, address, ready)
	return nil
}
