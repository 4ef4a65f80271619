package mix

// Instruction is the decomposition of a word into an executable form:
// address, index specification (byte 2), modification/field (byte 3),
// and operation (byte 4). The word's sign belongs to the address.
type Instruction struct {
	Address      Address
	IndexSpec    byte
	Modification byte
	Operation    byte
}

// FromWord decomposes a word into an Instruction. This is total: any
// byte pattern yields a syntactically valid instruction, though the
// operation may not be recognised by the dispatch table.
func FromWord(w Word) Instruction {
	return Instruction{
		Address:      Address{Sign: w.Sign, Bytes: [2]byte{w.Bytes[0], w.Bytes[1]}},
		IndexSpec:    w.Bytes[2],
		Modification: w.Bytes[3],
		Operation:    w.Bytes[4],
	}
}

// ToWord is the inverse of FromWord.
func (i Instruction) ToWord() Word {
	return FromInstruction(i)
}
