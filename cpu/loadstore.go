package cpu

import "github.com/mixvm/negroni/mix"

// setRegister stores w into one of the nine registers, truncating via
// CastToAddress for index registers (they only hold two bytes).
func setRegister(c *Computer, reg mix.RegisterName, w mix.Word) {
	switch reg {
	case mix.RegA:
		c.A = w
	case mix.RegX:
		c.X = w
	default:
		c.SetIndexRegister(int(reg)-int(mix.RegI1)+1, w.CastToAddress())
	}
}

// makeLoad implements LDA/LD1../LDX (negate=false) and LDAN../LDXN
// (negate=true): V <- M[addr].field, optionally sign-toggled, into reg.
func makeLoad(reg mix.RegisterName, negate bool) Handler {
	return func(c *Computer, i mix.Instruction) error {
		addr, err := c.IndexedAddressValue(i)
		if err != nil {
			return err
		}
		v := c.Memory.Read(int(addr)).ApplyFieldSpec(i.Modification)
		if negate {
			v = v.ToggleSign()
		}
		setRegister(c, reg, v)
		return nil
	}
}

// storeInto copies register's low-order bytes into M[addr]'s field,
// per Knuth's store rule: ported from original_source/src/operations/
// storing.rs's Store::execute and get_bytes_to_store. When the field's
// left edge is 0, the destination word's sign is overwritten from the
// register's sign and the byte copy starts at position 1 (the sign
// byte is never counted among the data bytes).
func storeInto(c *Computer, addr int64, modification byte, register mix.Word) {
	left, right := mix.DecodeFieldSpec(modification)
	numBytes := right - left + 1
	if left == 0 {
		numBytes--
	}
	offset := mix.WordBytes - numBytes
	bytes := register.Bytes[offset : offset+numBytes]

	word := c.Memory.Read(int(addr))
	if left == 0 {
		word.Sign = register.Sign
		left = 1
	}
	for k := 0; k < numBytes; k++ {
		word.Bytes[left-1+k] = bytes[k]
	}
	c.Memory.Write(int(addr), word)
}

// makeStore implements STA/ST1../STX.
func makeStore(reg mix.RegisterName) Handler {
	return func(c *Computer, i mix.Instruction) error {
		addr, err := c.IndexedAddressValue(i)
		if err != nil {
			return err
		}
		storeInto(c, addr, i.Modification, c.Register(reg))
		return nil
	}
}

// makeStoreJ implements STJ, whose default field is (0:2) and whose
// source is the unsigned jump register cast to a word.
func makeStoreJ() Handler {
	return func(c *Computer, i mix.Instruction) error {
		addr, err := c.IndexedAddressValue(i)
		if err != nil {
			return err
		}
		storeInto(c, addr, i.Modification, c.J.CastToWord())
		return nil
	}
}

// makeStoreZero implements STZ: store a zero word into the field.
func makeStoreZero() Handler {
	return func(c *Computer, i mix.Instruction) error {
		addr, err := c.IndexedAddressValue(i)
		if err != nil {
			return err
		}
		storeInto(c, addr, i.Modification, mix.Zero())
		return nil
	}
}

// makeCompare implements CMPA/CMP1../CMPX: compare reg's field against
// M[addr]'s field and set the comparison flag. Field (0:0) always
// extracts a zero magnitude on both sides, so the comparison is
// always Equal, matching Knuth's rule.
func makeCompare(reg mix.RegisterName) Handler {
	return func(c *Computer, i mix.Instruction) error {
		addr, err := c.IndexedAddressValue(i)
		if err != nil {
			return err
		}
		regField := c.Register(reg).ApplyFieldSpec(i.Modification)
		memField := c.Memory.Read(int(addr)).ApplyFieldSpec(i.Modification)
		c.Comparison = mix.CompareValues(regField.Value(), memField.Value())
		return nil
	}
}
