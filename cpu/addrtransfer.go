package cpu

import "github.com/mixvm/negroni/mix"

// makeIncDec implements INCA/INCX/INC1../INC6 (negate=false) and their
// DEC counterparts (negate=true), opcodes 48..55 mod 0/1. A and X
// preserve their prior sign when the sum is exactly zero (Knuth
// p.131); index registers do not carry that rule since Address has no
// such convention. Ported from original_source/src/operations/
// address_transfer/increase.rs.
func makeIncDec(reg mix.RegisterName, negate bool) Handler {
	return func(c *Computer, i mix.Instruction) error {
		value, err := c.IndexedAddressValue(i)
		if err != nil {
			return err
		}
		if negate {
			value = -value
		}
		switch reg {
		case mix.RegA:
			c.A = sumToWord(c, c.A.Value()+value, c.A.Sign)
		case mix.RegX:
			c.X = sumToWord(c, c.X.Value()+value, c.X.Sign)
		default:
			idx := int(reg) - int(mix.RegI1) + 1
			sum := c.IndexRegister(idx).Value() + value
			c.SetIndexRegister(idx, mix.AddressFromValue(sum))
		}
		return nil
	}
}

func sumToWord(c *Computer, sum int64, prevSign mix.Sign) mix.Word {
	var result mix.Word
	if absInt64(sum) <= mix.MaxWordMagnitude {
		result = mix.MustFromValue(sum)
	} else {
		c.Overflow = true
		result = mix.FromValueWithOverflow(sum)
	}
	if sum == 0 {
		result.Sign = prevSign
	}
	return result
}

// makeEnter implements ENTA/ENTX/ENT1../ENT6 (negate=false) and their
// ENN counterparts (negate=true), opcodes 48..55 mod 2/3. A
// zero-valued result takes its sign from the instruction's address
// field, not from the destination register -- the one place MIX lets
// the source text choose the sign of a zero. Ported from
// original_source/src/operations/address_transfer/enter.rs.
func makeEnter(reg mix.RegisterName, negate bool) Handler {
	return func(c *Computer, i mix.Instruction) error {
		value, err := c.IndexedAddressValue(i)
		if err != nil {
			return err
		}
		word := mix.FromValueWithOverflow(value)
		if value == 0 {
			word.Sign = i.Address.Sign
		}
		if negate {
			word = word.ToggleSign()
		}
		setRegister(c, reg, word)
		return nil
	}
}
