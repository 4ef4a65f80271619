package mix

import "fmt"

// MaxAddressMagnitude is 64^2 - 1, the largest magnitude an Address holds.
const MaxAddressMagnitude = 64*64 - 1

// Address is a sign plus two bytes; used for jump targets, index
// registers, and the address field of an instruction.
type Address struct {
	Sign  Sign
	Bytes [2]byte
}

// ZeroAddress is the positive-zero address.
func ZeroAddress() Address { return Address{Sign: Positive} }

// AddressFromValue builds an Address from a signed magnitude, truncating
// silently to the low 12 bits of magnitude the way a register load does
// (callers that need overflow detection should check the value's range
// themselves; MIX index registers are only ever two bytes wide).
func AddressFromValue(v int64) Address {
	mag := v
	s := signOf(v)
	if mag < 0 {
		mag = -mag
	}
	mag &= (ByteBase*ByteBase - 1)
	var a Address
	a.Sign = s
	a.Bytes[0] = byte((mag / ByteBase) % ByteBase)
	a.Bytes[1] = byte(mag % ByteBase)
	return a
}

// Value returns the address's signed integer value.
func (a Address) Value() int64 {
	mag := int64(a.Bytes[0])*ByteBase + int64(a.Bytes[1])
	return mag * int64(a.Sign)
}

// CastToWord embeds the address into a word, padding the first three
// bytes with zero and copying the sign.
func (a Address) CastToWord() Word {
	return Word{Sign: a.Sign, Bytes: [WordBytes]byte{0, 0, 0, a.Bytes[0], a.Bytes[1]}}
}

func (a Address) String() string {
	return fmt.Sprintf("%s%02d%02d", a.Sign, a.Bytes[0], a.Bytes[1])
}
