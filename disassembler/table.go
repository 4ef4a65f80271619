package disassembler

import "github.com/mixvm/negroni/mix"

// opKey identifies a mnemonic that shares its opcode with others,
// distinguished only by modification (spec.md §4.D's "several mnemonics
// share an opcode" families: NUM/CHAR/HLT, the shift family, the JMP
// family, register-conditional jumps, INC/DEC/ENT/ENN).
type opKey struct {
	Op  byte
	Mod byte
}

var byOpcodeMod map[opKey]string
var byOpcode map[byte]string

func init() {
	byOpcodeMod = make(map[opKey]string)
	byOpcode = make(map[byte]string)
	for name, m := range mix.MnemonicTable {
		if !m.FPartIsFieldSpec {
			byOpcodeMod[opKey{m.Opcode, m.Modification}] = name
		}
		if _, exists := byOpcode[m.Opcode]; !exists {
			byOpcode[m.Opcode] = name
		}
	}
}

// mnemonicFor reverses mix.MnemonicTable: given a decoded instruction,
// report the mnemonic that assembled it and whether that mnemonic's
// F-part is a caller-supplied field spec (for operand formatting).
func mnemonicFor(instr mix.Instruction) (name string, hasFieldSpec bool) {
	if name, ok := byOpcodeMod[opKey{instr.Operation, instr.Modification}]; ok {
		return name, mix.MnemonicTable[name].FPartIsFieldSpec
	}
	if name, ok := byOpcode[instr.Operation]; ok {
		return name, mix.MnemonicTable[name].FPartIsFieldSpec
	}
	return "", false
}
