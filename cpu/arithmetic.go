package cpu

import "github.com/mixvm/negroni/mix"

// opADD and opSUB implement spec.md §4.C's ADD/SUB: V <- M[addr].field;
// A <- A +- V, preserving A's existing sign when the mathematical
// result is exactly zero (Knuth p.131), grounded on
// original_source/src/operations/arithmetic.rs.
func opADD(c *Computer, i mix.Instruction) error { return addSub(c, i, 1) }
func opSUB(c *Computer, i mix.Instruction) error { return addSub(c, i, -1) }

func addSub(c *Computer, i mix.Instruction, dir int64) error {
	addr, err := c.IndexedAddressValue(i)
	if err != nil {
		return err
	}
	v := c.Memory.Read(int(addr)).ApplyFieldSpec(i.Modification)
	prevSign := c.A.Sign

	result := c.A.Value() + dir*v.Value()
	if result == 0 {
		c.A = mix.Word{Sign: prevSign}
		return nil
	}
	if absInt64(result) > mix.MaxWordMagnitude {
		c.Overflow = true
		c.A = mix.FromValueWithOverflow(result)
		return nil
	}
	c.A = mix.MustFromValue(result)
	return nil
}

// opMUL implements MUL: AX <- A * V as a 10-byte signed product, sign =
// XOR of input signs (spec.md §4.C; original_source/src/operations/
// arithmetic/multiplication.rs).
func opMUL(c *Computer, i mix.Instruction) error {
	addr, err := c.IndexedAddressValue(i)
	if err != nil {
		return err
	}
	v := c.Memory.Read(int(addr)).ApplyFieldSpec(i.Modification)

	product := absInt64(c.A.Value()) * absInt64(v.Value())
	sign := xorSign(c.A.Sign, v.Sign)

	hi := product / mix.WordModulus
	lo := product % mix.WordModulus
	c.A = mix.FromValueWithOverflow(int64(sign) * hi)
	c.X = mix.FromValueWithOverflow(int64(sign) * lo)
	c.A.Sign = sign
	c.X.Sign = sign
	return nil
}

// opDIV implements DIV: undefined behaviour (|A|>=|V| or V=0) zeroes A
// and X and sets overflow; otherwise the 10-byte numerator A*64^5+|X|
// divides by |V|, quotient to A (sign = XOR), remainder to X (sign =
// A's original sign). Grounded on original_source/src/operations/
// arithmetic/division.rs.
func opDIV(c *Computer, i mix.Instruction) error {
	addr, err := c.IndexedAddressValue(i)
	if err != nil {
		return err
	}
	v := c.Memory.Read(int(addr)).ApplyFieldSpec(i.Modification)

	aAbs := absInt64(c.A.Value())
	vAbs := absInt64(v.Value())
	if vAbs == 0 || aAbs >= vAbs {
		c.Overflow = true
		c.A = mix.Zero()
		c.X = mix.Zero()
		return nil
	}

	xAbs := absInt64(c.X.Value())
	numerator := aAbs*mix.WordModulus + xAbs
	quotient := numerator / vAbs
	remainder := numerator % vAbs

	qSign := xorSign(c.A.Sign, v.Sign)
	rSign := c.A.Sign

	aw, err := mix.FromValue(int64(qSign) * quotient)
	if err != nil {
		return err
	}
	xw, err := mix.FromValue(int64(rSign) * remainder)
	if err != nil {
		return err
	}
	aw.Sign = qSign
	xw.Sign = rSign
	c.A = aw
	c.X = xw
	return nil
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func xorSign(a, b mix.Sign) mix.Sign {
	if (a == mix.Negative) != (b == mix.Negative) {
		return mix.Negative
	}
	return mix.Positive
}
