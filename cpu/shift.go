package cpu

import "github.com/mixvm/negroni/mix"

// opShift implements SLA/SRA/SLAX/SRAX/SLC/SRC (opcode 6, mod 0..5):
// linear shifts (mod 0..3) zero-fill, circular shifts (mod 4..5) wrap.
// Odd modifications (the "R" variants) negate the shift count. Grounded
// on original_source/src/operations/shift.rs.
func opShift(c *Computer, i mix.Instruction) error {
	m, err := c.IndexedAddressValue(i)
	if err != nil {
		return err
	}
	if i.Modification%2 == 1 {
		m = -m
	}

	switch i.Modification {
	case 0, 1: // SLA, SRA: A alone
		c.A.Bytes = shiftLinear(c.A.Bytes, m)
	case 2, 3: // SLAX, SRAX: A|X as one 10-byte window
		combined := combineAX(c.A, c.X)
		combined = shiftLinear10(combined, m)
		c.A.Bytes, c.X.Bytes = splitAX(combined)
	case 4, 5: // SLC, SRC: A|X circular
		combined := combineAX(c.A, c.X)
		combined = shiftCircular(combined, m)
		c.A.Bytes, c.X.Bytes = splitAX(combined)
	default:
		return &UnknownOp{Operation: i.Operation, Modification: i.Modification}
	}
	return nil
}

func combineAX(a, x mix.Word) [10]byte {
	var out [10]byte
	copy(out[0:5], a.Bytes[:])
	copy(out[5:10], x.Bytes[:])
	return out
}

func splitAX(b [10]byte) (a, x [5]byte) {
	copy(a[:], b[0:5])
	copy(x[:], b[5:10])
	return
}

func shiftLinear(bytes [5]byte, m int64) [5]byte {
	var out [5]byte
	n := int64(len(bytes))
	for i := int64(0); i < n; i++ {
		j := i + m
		if j >= 0 && j < n {
			out[i] = bytes[j]
		}
	}
	return out
}

func shiftLinear10(bytes [10]byte, m int64) [10]byte {
	var out [10]byte
	n := int64(len(bytes))
	for i := int64(0); i < n; i++ {
		j := i + m
		if j >= 0 && j < n {
			out[i] = bytes[j]
		}
	}
	return out
}

func shiftCircular(bytes [10]byte, m int64) [10]byte {
	var out [10]byte
	n := int64(len(bytes))
	mm := m % n
	for i := int64(0); i < n; i++ {
		j := i + mm
		if j < 0 {
			j += n
		} else if j >= n {
			j -= n
		}
		out[i] = bytes[j]
	}
	return out
}
