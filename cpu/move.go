package cpu

import "github.com/mixvm/negroni/mix"

// opMOVE implements MOVE (opcode 7): copy i.Modification consecutive
// words from M[addr] to M[I1], advancing I1 by that count. The loop
// runs in ascending address order, so an overlapping move's source
// reads may observe the destination's own writes -- Knuth specifies
// this behaviour and some programs rely on it. Ported from
// original_source/src/operations/mov.rs.
func opMOVE(c *Computer, i mix.Instruction) error {
	src, err := c.IndexedAddressValue(i)
	if err != nil {
		return err
	}
	dst := c.IndexRegister(1).Value()
	count := int64(i.Modification)

	for k := int64(0); k < count; k++ {
		c.Memory.Write(int(dst+k), c.Memory.Read(int(src+k)))
	}
	c.SetIndexRegister(1, mix.AddressFromValue(dst+count))
	return nil
}
