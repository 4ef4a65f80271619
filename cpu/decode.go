package cpu

import "github.com/mixvm/negroni/mix"

// Handler executes one decoded instruction against the computer.
type Handler func(*Computer, mix.Instruction) error

// Decoded is an executable action tagged with whether it advances PC on
// completion (spec.md §4.C: "every operation declares whether PC
// auto-advances"). Grounded on the teacher's
// DecodedInstruction{Handler func(*CPU,*DecodedInstruction) error, ...}
// in cpu/decode.go -- the tagged-dispatch shape spec.md §9 itself
// recommends.
type Decoded struct {
	Handler    Handler
	AdvancesPC bool
}

type dispatchKey struct {
	opcode       byte
	modification byte
}

var dispatchTable = buildDispatchTable()

// Decode resolves an instruction's (opcode, modification) pair to an
// executable Decoded action. Most families dispatch on modification;
// families whose F-part is a genuine field spec (LDA, ADD, CMPA, ...)
// ignore modification for dispatch purposes and pass the whole
// instruction to a single handler that applies the field itself.
func Decode(i mix.Instruction) (*Decoded, error) {
	if d, ok := dispatchTable[dispatchKey{i.Operation, i.Modification}]; ok {
		return d, nil
	}
	if d, ok := fieldSpecFamily[i.Operation]; ok {
		return d, nil
	}
	return nil, &UnknownOp{Operation: i.Operation, Modification: i.Modification}
}

// fieldSpecFamily holds the opcodes whose modification byte is a real
// field spec (not a discriminator): dispatch only on opcode.
var fieldSpecFamily map[byte]*Decoded

func buildDispatchTable() map[dispatchKey]*Decoded {
	t := make(map[dispatchKey]*Decoded)
	fieldSpecFamily = make(map[byte]*Decoded)

	advance := func(h Handler) *Decoded { return &Decoded{Handler: h, AdvancesPC: true} }
	noAdvance := func(h Handler) *Decoded { return &Decoded{Handler: h, AdvancesPC: false} }

	t[dispatchKey{mix.OpNOP, 0}] = advance(opNOP)

	fieldSpecFamily[mix.OpADD] = advance(opADD)
	fieldSpecFamily[mix.OpSUB] = advance(opSUB)
	fieldSpecFamily[mix.OpMUL] = advance(opMUL)
	fieldSpecFamily[mix.OpDIV] = advance(opDIV)

	t[dispatchKey{mix.OpNumCharHlt, mix.ModNUM}] = advance(opNUM)
	t[dispatchKey{mix.OpNumCharHlt, mix.ModCHAR}] = advance(opCHAR)
	t[dispatchKey{mix.OpNumCharHlt, mix.ModHLT}] = noAdvance(opHLT)

	for mod := byte(0); mod <= 5; mod++ {
		t[dispatchKey{mix.OpShift, mod}] = advance(opShift)
	}

	fieldSpecFamily[mix.OpMOVE] = advance(opMOVE)

	loadOpcodes := []byte{mix.OpLDA, mix.OpLD1, mix.OpLD2, mix.OpLD3, mix.OpLD4, mix.OpLD5, mix.OpLD6, mix.OpLDX}
	loadNOpcodes := []byte{mix.OpLDAN, mix.OpLD1N, mix.OpLD2N, mix.OpLD3N, mix.OpLD4N, mix.OpLD5N, mix.OpLD6N, mix.OpLDXN}
	storeOpcodes := []byte{mix.OpSTA, mix.OpST1, mix.OpST2, mix.OpST3, mix.OpST4, mix.OpST5, mix.OpST6, mix.OpSTX}
	cmpOpcodes := []byte{mix.OpCMPA, mix.OpCMP1, mix.OpCMP2, mix.OpCMP3, mix.OpCMP4, mix.OpCMP5, mix.OpCMP6, mix.OpCMPX}
	jumpRegOpcodes := []byte{mix.OpJAReg, mix.OpJ1Reg, mix.OpJ2Reg, mix.OpJ3Reg, mix.OpJ4Reg, mix.OpJ5Reg, mix.OpJ6Reg, mix.OpJXReg}
	addrOpcodes := []byte{mix.OpAddrA, mix.OpAddr1, mix.OpAddr2, mix.OpAddr3, mix.OpAddr4, mix.OpAddr5, mix.OpAddr6, mix.OpAddrX}

	for i := range loadOpcodes {
		reg := mix.RegisterName(i)
		fieldSpecFamily[loadOpcodes[i]] = advance(makeLoad(reg, false))
		fieldSpecFamily[loadNOpcodes[i]] = advance(makeLoad(reg, true))
		fieldSpecFamily[storeOpcodes[i]] = advance(makeStore(reg))
		fieldSpecFamily[cmpOpcodes[i]] = advance(makeCompare(reg))

		for mod := byte(0); mod <= 5; mod++ {
			t[dispatchKey{jumpRegOpcodes[i], mod}] = noAdvance(makeRegisterJump(reg, mod))
		}
		t[dispatchKey{addrOpcodes[i], mix.ModINC}] = advance(makeIncDec(reg, false))
		t[dispatchKey{addrOpcodes[i], mix.ModDEC}] = advance(makeIncDec(reg, true))
		t[dispatchKey{addrOpcodes[i], mix.ModENT}] = advance(makeEnter(reg, false))
		t[dispatchKey{addrOpcodes[i], mix.ModENN}] = advance(makeEnter(reg, true))
	}
	fieldSpecFamily[mix.OpSTJ] = advance(makeStoreJ())
	fieldSpecFamily[mix.OpSTZ] = advance(makeStoreZero())

	for mod := byte(0); mod <= 9; mod++ {
		t[dispatchKey{mix.OpJMP, mod}] = noAdvance(makeJump(mod))
	}

	fieldSpecFamily[mix.OpJBUS] = noAdvance(opJBUS)
	fieldSpecFamily[mix.OpJRED] = noAdvance(opJRED)
	fieldSpecFamily[mix.OpIOC] = advance(opIOC)
	fieldSpecFamily[mix.OpIN] = advance(opIN)
	fieldSpecFamily[mix.OpOUT] = advance(opOUT)

	return t
}
