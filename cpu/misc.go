package cpu

import (
	"fmt"

	"github.com/mixvm/negroni/mix"
)

// opNOP has no effect (spec.md §4.C).
func opNOP(c *Computer, i mix.Instruction) error { return nil }

// opHLT sets running=false; a non-zero address field is a fatal
// ExecutionFault (grounded on original_source/src/operations/misc.rs's
// Halt, which panics on a non-zero code).
func opHLT(c *Computer, i mix.Instruction) error {
	if i.Address.Value() != 0 {
		return &ExecutionFault{Reason: fmt.Sprintf("HLT with non-zero code %d", i.Address.Value())}
	}
	c.Running = false
	return nil
}

// opNUM implements NUM (opcode 5, mod 0): read A and X as 10 decimal
// digits (each byte mod 10), assemble into A with A's existing sign.
func opNUM(c *Computer, i mix.Instruction) error {
	var val int64
	for _, b := range c.A.Bytes {
		val = val*10 + int64(b%10)
	}
	for _, b := range c.X.Bytes {
		val = val*10 + int64(b%10)
	}
	sign := c.A.Sign
	c.A = mix.FromValueWithOverflow(int64(sign) * val)
	c.A.Sign = sign
	return nil
}

// opCHAR implements CHAR (opcode 5, mod 1): split |A| into 10 decimal
// digits, storing digit d as byte 30+d across A (high 5) and X (low 5),
// preserving A and X's signs.
func opCHAR(c *Computer, i mix.Instruction) error {
	mag := absInt64(c.A.Value())
	var digits [10]byte
	for idx := 9; idx >= 0; idx-- {
		digits[idx] = byte(mag % 10)
		mag /= 10
	}
	newA := mix.Word{Sign: c.A.Sign}
	newX := mix.Word{Sign: c.X.Sign}
	for k := 0; k < 5; k++ {
		newA.Bytes[k] = 30 + digits[k]
		newX.Bytes[k] = 30 + digits[5+k]
	}
	c.A = newA
	c.X = newX
	return nil
}
