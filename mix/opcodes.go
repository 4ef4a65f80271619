package mix

// Opcode constants for the full MIX instruction set (Knuth, TAOCP vol 1,
// §1.3.1). Several mnemonics share an opcode and are distinguished only
// by modification (the instruction's F byte); see MnemonicTable.
const (
	OpNOP = 0
	OpADD = 1
	OpSUB = 2
	OpMUL = 3
	OpDIV = 4

	OpNumCharHlt = 5 // NUM (mod 0), CHAR (mod 1), HLT (mod 2)

	OpShift = 6 // SLA,SRA,SLAX,SRAX,SLC,SRC (mod 0..5)

	OpMOVE = 7

	OpLDA = 8
	OpLD1 = 9
	OpLD2 = 10
	OpLD3 = 11
	OpLD4 = 12
	OpLD5 = 13
	OpLD6 = 14
	OpLDX = 15

	OpLDAN = 16
	OpLD1N = 17
	OpLD2N = 18
	OpLD3N = 19
	OpLD4N = 20
	OpLD5N = 21
	OpLD6N = 22
	OpLDXN = 23

	OpSTA = 24
	OpST1 = 25
	OpST2 = 26
	OpST3 = 27
	OpST4 = 28
	OpST5 = 29
	OpST6 = 30
	OpSTX = 31
	OpSTJ = 32
	OpSTZ = 33

	OpJBUS = 34
	OpIOC  = 35
	OpIN   = 36
	OpOUT  = 37
	OpJRED = 38

	OpJMP = 39 // JMP,JSJ,JOV,JNOV,JL,JE,JG,JGE,JNE,JLE (mod 0..9)

	// Register-value conditional jumps, one opcode per register:
	// A, I1..I6, X (mod 0..5 = N,Z,P,NN,NZ,NP).
	OpJAReg  = 40
	OpJ1Reg  = 41
	OpJ2Reg  = 42
	OpJ3Reg  = 43
	OpJ4Reg  = 44
	OpJ5Reg  = 45
	OpJ6Reg  = 46
	OpJXReg  = 47

	// Address transfer, one opcode per register: A, I1..I6, X
	// (mod 0=INC, 1=DEC, 2=ENT, 3=ENN).
	OpAddrA = 48
	OpAddr1 = 49
	OpAddr2 = 50
	OpAddr3 = 51
	OpAddr4 = 52
	OpAddr5 = 53
	OpAddr6 = 54
	OpAddrX = 55

	// Comparison, one opcode per register: A, I1..I6, X.
	OpCMPA = 56
	OpCMP1 = 57
	OpCMP2 = 58
	OpCMP3 = 59
	OpCMP4 = 60
	OpCMP5 = 61
	OpCMP6 = 62
	OpCMPX = 63
)

// Modification values for the opcodes that pack several mnemonics onto
// one opcode via the F byte.
const (
	ModNUM  = 0
	ModCHAR = 1
	ModHLT  = 2

	ModSLA  = 0
	ModSRA  = 1
	ModSLAX = 2
	ModSRAX = 3
	ModSLC  = 4
	ModSRC  = 5

	ModJMP  = 0
	ModJSJ  = 1
	ModJOV  = 2
	ModJNOV = 3
	ModJL   = 4
	ModJE   = 5
	ModJG   = 6
	ModJGE  = 7
	ModJNE  = 8
	ModJLE  = 9

	ModJN  = 0
	ModJZ  = 1
	ModJP  = 2
	ModJNN = 3
	ModJNZ = 4
	ModJNP = 5

	ModINC = 0
	ModDEC = 1
	ModENT = 2
	ModENN = 3
)

// RegisterName identifies one of the registers A, I1..I6 and X; the
// jump register J has no RegisterName.
type RegisterName int

const (
	RegA RegisterName = iota
	RegI1
	RegI2
	RegI3
	RegI4
	RegI5
	RegI6
	RegX
)

var registerSuffix = [...]string{"A", "1", "2", "3", "4", "5", "6", "X"}

// Mnemonic describes one MIXAL mnemonic's encoding: the opcode, the
// modification byte to use when the mnemonic doesn't let the source
// specify one, and whether the F-part in source overrides that default
// (FPartIsFieldSpec) or is fixed by the mnemonic itself.
type Mnemonic struct {
	Opcode           byte
	Modification     byte
	FPartIsFieldSpec bool
	Register         RegisterName // meaningful for load/store/jump/addr/cmp families
}

// MnemonicTable maps every MIXAL operator to its encoding.
var MnemonicTable = buildMnemonicTable()

func buildMnemonicTable() map[string]Mnemonic {
	t := make(map[string]Mnemonic)

	t["NOP"] = Mnemonic{Opcode: OpNOP}
	t["ADD"] = Mnemonic{Opcode: OpADD, Modification: FieldSpec(0, 5), FPartIsFieldSpec: true}
	t["SUB"] = Mnemonic{Opcode: OpSUB, Modification: FieldSpec(0, 5), FPartIsFieldSpec: true}
	t["MUL"] = Mnemonic{Opcode: OpMUL, Modification: FieldSpec(0, 5), FPartIsFieldSpec: true}
	t["DIV"] = Mnemonic{Opcode: OpDIV, Modification: FieldSpec(0, 5), FPartIsFieldSpec: true}

	t["NUM"] = Mnemonic{Opcode: OpNumCharHlt, Modification: ModNUM}
	t["CHAR"] = Mnemonic{Opcode: OpNumCharHlt, Modification: ModCHAR}
	t["HLT"] = Mnemonic{Opcode: OpNumCharHlt, Modification: ModHLT}

	t["SLA"] = Mnemonic{Opcode: OpShift, Modification: ModSLA}
	t["SRA"] = Mnemonic{Opcode: OpShift, Modification: ModSRA}
	t["SLAX"] = Mnemonic{Opcode: OpShift, Modification: ModSLAX}
	t["SRAX"] = Mnemonic{Opcode: OpShift, Modification: ModSRAX}
	t["SLC"] = Mnemonic{Opcode: OpShift, Modification: ModSLC}
	t["SRC"] = Mnemonic{Opcode: OpShift, Modification: ModSRC}

	t["MOVE"] = Mnemonic{Opcode: OpMOVE, Modification: 1, FPartIsFieldSpec: true}

	loadOpcodes := []byte{OpLDA, OpLD1, OpLD2, OpLD3, OpLD4, OpLD5, OpLD6, OpLDX}
	loadNOpcodes := []byte{OpLDAN, OpLD1N, OpLD2N, OpLD3N, OpLD4N, OpLD5N, OpLD6N, OpLDXN}
	storeOpcodes := []byte{OpSTA, OpST1, OpST2, OpST3, OpST4, OpST5, OpST6, OpSTX}
	jumpRegOpcodes := []byte{OpJAReg, OpJ1Reg, OpJ2Reg, OpJ3Reg, OpJ4Reg, OpJ5Reg, OpJ6Reg, OpJXReg}
	addrOpcodes := []byte{OpAddrA, OpAddr1, OpAddr2, OpAddr3, OpAddr4, OpAddr5, OpAddr6, OpAddrX}
	cmpOpcodes := []byte{OpCMPA, OpCMP1, OpCMP2, OpCMP3, OpCMP4, OpCMP5, OpCMP6, OpCMPX}

	for i, suffix := range registerSuffix {
		reg := RegisterName(i)
		t["LD"+suffix] = Mnemonic{Opcode: loadOpcodes[i], Modification: FieldSpec(0, 5), FPartIsFieldSpec: true, Register: reg}
		t["LD"+suffix+"N"] = Mnemonic{Opcode: loadNOpcodes[i], Modification: FieldSpec(0, 5), FPartIsFieldSpec: true, Register: reg}
		t["ST"+suffix] = Mnemonic{Opcode: storeOpcodes[i], Modification: FieldSpec(0, 5), FPartIsFieldSpec: true, Register: reg}
		t["CMP"+suffix] = Mnemonic{Opcode: cmpOpcodes[i], Modification: FieldSpec(0, 5), FPartIsFieldSpec: true, Register: reg}

		t["J"+suffix+"N"] = Mnemonic{Opcode: jumpRegOpcodes[i], Modification: ModJN, Register: reg}
		t["J"+suffix+"Z"] = Mnemonic{Opcode: jumpRegOpcodes[i], Modification: ModJZ, Register: reg}
		t["J"+suffix+"P"] = Mnemonic{Opcode: jumpRegOpcodes[i], Modification: ModJP, Register: reg}
		t["J"+suffix+"NN"] = Mnemonic{Opcode: jumpRegOpcodes[i], Modification: ModJNN, Register: reg}
		t["J"+suffix+"NZ"] = Mnemonic{Opcode: jumpRegOpcodes[i], Modification: ModJNZ, Register: reg}
		t["J"+suffix+"NP"] = Mnemonic{Opcode: jumpRegOpcodes[i], Modification: ModJNP, Register: reg}

		t["INC"+suffix] = Mnemonic{Opcode: addrOpcodes[i], Modification: ModINC, Register: reg}
		t["DEC"+suffix] = Mnemonic{Opcode: addrOpcodes[i], Modification: ModDEC, Register: reg}
		t["ENT"+suffix] = Mnemonic{Opcode: addrOpcodes[i], Modification: ModENT, Register: reg}
		t["ENN"+suffix] = Mnemonic{Opcode: addrOpcodes[i], Modification: ModENN, Register: reg}
	}
	// STJ's default field spec is (0:2) -- J has only two significant
	// bytes -- and STZ behaves like a normal full-word store.
	t["STJ"] = Mnemonic{Opcode: OpSTJ, Modification: FieldSpec(0, 2), FPartIsFieldSpec: true}
	t["STZ"] = Mnemonic{Opcode: OpSTZ, Modification: FieldSpec(0, 5), FPartIsFieldSpec: true}

	t["JBUS"] = Mnemonic{Opcode: OpJBUS, FPartIsFieldSpec: true}
	t["IOC"] = Mnemonic{Opcode: OpIOC, FPartIsFieldSpec: true}
	t["IN"] = Mnemonic{Opcode: OpIN, FPartIsFieldSpec: true}
	t["OUT"] = Mnemonic{Opcode: OpOUT, FPartIsFieldSpec: true}
	t["JRED"] = Mnemonic{Opcode: OpJRED, FPartIsFieldSpec: true}

	t["JMP"] = Mnemonic{Opcode: OpJMP, Modification: ModJMP}
	t["JSJ"] = Mnemonic{Opcode: OpJMP, Modification: ModJSJ}
	t["JOV"] = Mnemonic{Opcode: OpJMP, Modification: ModJOV}
	t["JNOV"] = Mnemonic{Opcode: OpJMP, Modification: ModJNOV}
	t["JL"] = Mnemonic{Opcode: OpJMP, Modification: ModJL}
	t["JE"] = Mnemonic{Opcode: OpJMP, Modification: ModJE}
	t["JG"] = Mnemonic{Opcode: OpJMP, Modification: ModJG}
	t["JGE"] = Mnemonic{Opcode: OpJMP, Modification: ModJGE}
	t["JNE"] = Mnemonic{Opcode: OpJMP, Modification: ModJNE}
	t["JLE"] = Mnemonic{Opcode: OpJMP, Modification: ModJLE}

	return t
}
