package mixal

import (
	"fmt"
	"sort"

	"github.com/mixvm/negroni/mix"
)

// Assembler is the single-pass MIXAL backend: it walks a parsed Program
// once, maintaining a location counter, symbol table, future-reference
// table, and literal-constant table, and produces an address->word
// mapping plus a program-start address. Ported from
// original_source/src/mixal/assembler.rs's Assembler/StatementVisitor/
// NodeVisitor.
type Assembler struct {
	Words        map[int]mix.Word
	ProgramStart int

	locationCounter int
	symbolTable     map[string]int64
	futureRefs      map[string][]int

	literalConstants map[string]int64
	literalOrder     []string

	localCounter [10]int
}

// New creates an empty Assembler.
func New() *Assembler {
	return &Assembler{
		Words:            make(map[int]mix.Word),
		symbolTable:      make(map[string]int64),
		futureRefs:       make(map[string][]int),
		literalConstants: make(map[string]int64),
	}
}

// Assemble parses and assembles MIXAL source in one call.
func Assemble(source string) (*Assembler, error) {
	program, err := NewParser(source).Parse()
	if err != nil {
		return nil, err
	}
	a := New()
	if err := a.AssembleProgram(program); err != nil {
		return nil, err
	}
	return a, nil
}

// AssembleProgram runs the single assembly pass over an already-parsed
// Program.
func (a *Assembler) AssembleProgram(program *Program) error {
	for _, st := range program.Statements {
		if err := a.assembleStatement(st); err != nil {
			return err
		}
	}

	if len(a.futureRefs) > 0 {
		names := make([]string, 0, len(a.futureRefs))
		for name := range a.futureRefs {
			names = append(names, name)
		}
		sort.Strings(names)
		return &AssembleError{Message: fmt.Sprintf("unresolved symbol(s) at END: %v", names)}
	}
	return nil
}

func (a *Assembler) assembleStatement(st Statement) error {
	switch {
	case st.Mix != nil:
		return a.assembleMixStatement(st)
	case st.Equ != nil:
		return a.assembleEquStatement(st)
	case st.Orig != nil:
		return a.assembleOrigStatement(st)
	case st.Con != nil:
		return a.assembleConStatement(st)
	case st.IsAlf:
		return a.assembleAlfStatement(st)
	case st.End != nil:
		return a.assembleEndStatement(st)
	default:
		return &AssembleError{Message: "empty statement"}
	}
}

func (a *Assembler) assembleMixStatement(st Statement) error {
	a.dealWithSymbolDeclaration(st.Symbol)

	instruction, err := a.buildInstruction(st.Mix)
	if err != nil {
		return err
	}

	a.Words[a.locationCounter] = instruction.ToWord()
	a.dealWithLocalSymbolDeclaration(st.Symbol)
	a.locationCounter++
	return nil
}

func (a *Assembler) buildInstruction(mp *MixPart) (mix.Instruction, error) {
	info, ok := mix.MnemonicTable[mp.Op]
	if !ok {
		return mix.Instruction{}, &AssembleError{Message: fmt.Sprintf("unknown op code %q", mp.Op)}
	}

	addressValue := int64(0)
	if mp.APart != nil {
		v, err := mp.APart.Eval(a)
		if err != nil {
			return mix.Instruction{}, err
		}
		addressValue = v
	}

	fieldSpec := info.Modification
	if mp.FPart != nil {
		if !info.FPartIsFieldSpec {
			return mix.Instruction{}, &AssembleError{Message: fmt.Sprintf("%s does not take an F-part", mp.Op)}
		}
		v, err := mp.FPart.Eval(a)
		if err != nil {
			return mix.Instruction{}, err
		}
		fieldSpec = byte(v)
	}

	index := byte(0)
	if mp.IndexPart != nil {
		v, err := mp.IndexPart.Eval(a)
		if err != nil {
			return mix.Instruction{}, err
		}
		index = byte(v)
	}

	return mix.Instruction{
		Operation:    info.Opcode,
		Address:      mix.AddressFromValue(addressValue),
		Modification: fieldSpec,
		IndexSpec:    index,
	}, nil
}

func (a *Assembler) assembleEquStatement(st Statement) error {
	if st.Symbol == nil {
		return &AssembleError{Message: "EQU requires a symbol"}
	}
	value, err := a.evalWValue(st.Equ)
	if err != nil {
		return err
	}
	// Decision (DESIGN.md, mixal Open Question 3): route EQU through the
	// same defineSymbol path as ordinary labels, so forward references to
	// an EQU'd symbol are fixed up like any other. The original
	// implementation inserts directly into the symbol table and skips
	// fixupFutureRefs, so forward refs to an EQU'd name never patch.
	return a.declareSymbol(st.Symbol, value)
}

func (a *Assembler) assembleOrigStatement(st Statement) error {
	a.dealWithSymbolDeclaration(st.Symbol)
	value, err := a.evalWValue(st.Orig)
	if err != nil {
		return err
	}
	a.dealWithLocalSymbolDeclaration(st.Symbol)
	a.locationCounter = int(value)
	return nil
}

func (a *Assembler) assembleConStatement(st Statement) error {
	a.dealWithSymbolDeclaration(st.Symbol)
	value, err := a.evalWValue(st.Con)
	if err != nil {
		return err
	}
	word, err := mix.FromValue(value)
	if err != nil {
		return err
	}
	a.Words[a.locationCounter] = word
	a.dealWithLocalSymbolDeclaration(st.Symbol)
	a.locationCounter++
	return nil
}

func (a *Assembler) assembleAlfStatement(st Statement) error {
	a.dealWithSymbolDeclaration(st.Symbol)
	word, err := mix.WordFromCharCode([]rune(st.Alf))
	if err != nil {
		return err
	}
	a.Words[a.locationCounter] = word
	a.dealWithLocalSymbolDeclaration(st.Symbol)
	a.locationCounter++
	return nil
}

func (a *Assembler) assembleEndStatement(st Statement) error {
	if err := a.insertLiteralConstants(); err != nil {
		return err
	}

	a.dealWithSymbolDeclaration(st.Symbol)
	value, err := a.evalWValue(st.End)
	if err != nil {
		return err
	}
	a.ProgramStart = int(value)
	a.dealWithLocalSymbolDeclaration(st.Symbol)
	return nil
}

// evalWValue evaluates a W-value conforming to Knuth's full rule: each
// part is evaluated in turn and inserted into the named field (default
// (0:5)) of a word that starts at zero and accumulates left to right.
// Decision (DESIGN.md, mixal Open Question 2): the original only
// evaluates parts[0]; this implements the documented "conforming"
// behavior instead.
func (a *Assembler) evalWValue(w *WValue) (int64, error) {
	word := mix.Zero()
	for _, part := range w.Parts {
		value, err := part.Expression.Eval(a)
		if err != nil {
			return 0, err
		}

		fieldSpec := mix.FieldSpec(0, 5)
		if part.FieldSpec != nil {
			fv, err := part.FieldSpec.Eval(a)
			if err != nil {
				return 0, err
			}
			fieldSpec = byte(fv)
		}

		word = storeField(word, fieldSpec, value)
	}
	return word.Value(), nil
}

// storeField writes value into dst's (L:R) field, mirroring
// cpu.storeInto's byte-slice algorithm (grounded on the same
// original_source/src/operations/storing.rs rule) but against a plain
// word instead of a CPU register/memory cell.
func storeField(dst mix.Word, fieldSpec byte, value int64) mix.Word {
	left, right := mix.DecodeFieldSpec(fieldSpec)
	numBytes := right - left + 1
	if left == 0 {
		numBytes--
	}
	offset := mix.WordBytes - numBytes

	src := mix.FromValueWithOverflow(value)
	bytes := src.Bytes[offset : offset+numBytes]

	if left == 0 {
		dst.Sign = src.Sign
		left = 1
	}
	for k := 0; k < numBytes; k++ {
		dst.Bytes[left-1+k] = bytes[k]
	}
	return dst
}

func (a *Assembler) evalSymbol(sym Symbol) (int64, error) {
	if digit, kind, ok := sym.localKind(); ok && kind != 'H' {
		var name string
		if kind == 'F' {
			name = a.forwardLocalName(digit)
		} else {
			name = a.backwardLocalName(digit)
		}
		if v, ok := a.symbolTable[name]; ok {
			return v, nil
		}
		a.addFutureRef(name)
		return 0, nil
	}

	if v, ok := a.symbolTable[sym.Name]; ok {
		return v, nil
	}
	a.addFutureRef(sym.Name)
	return 0, nil
}

func (a *Assembler) evalLiteralConstant(valueNode Node) (int64, error) {
	value, err := valueNode.Eval(a)
	if err != nil {
		return 0, err
	}
	name := fmt.Sprintf("__literal:%d", value)
	if _, exists := a.literalConstants[name]; !exists {
		a.literalConstants[name] = value
		a.literalOrder = append(a.literalOrder, name)
	}
	a.addFutureRef(name)
	return 0, nil
}

func (a *Assembler) insertLiteralConstants() error {
	for _, name := range a.literalOrder {
		word, err := mix.FromValue(a.literalConstants[name])
		if err != nil {
			return err
		}
		a.Words[a.locationCounter] = word
		a.defineSymbol(name, int64(a.locationCounter))
		a.locationCounter++
	}
	a.literalOrder = nil
	a.literalConstants = make(map[string]int64)
	return nil
}

// dealWithSymbolDeclaration binds an ordinary (non-local) label to the
// current location counter. Called before a statement's value/address is
// evaluated, so a statement may reference its own label.
func (a *Assembler) dealWithSymbolDeclaration(sym *Symbol) {
	if sym == nil || sym.IsLocal() {
		return
	}
	a.addSymbolHere(sym.Name)
}

// dealWithLocalSymbolDeclaration binds a local nH declaration to the
// current location counter. Called after the statement's value/address
// is computed (and, for word-emitting statements, after the word is
// written), matching original_source's ordering.
func (a *Assembler) dealWithLocalSymbolDeclaration(sym *Symbol) {
	if sym == nil || !sym.IsLocalDeclaration() {
		return
	}
	digit, _, _ := sym.localKind()
	a.addSymbolHere(a.declareLocalName(digit))
}

// declareSymbol binds sym (ordinary or local nH) to an explicit value,
// used by EQU where the bound value is the evaluated W-value rather than
// the location counter.
func (a *Assembler) declareSymbol(sym *Symbol, value int64) error {
	if digit, kind, ok := sym.localKind(); ok {
		if kind != 'H' {
			return &AssembleError{Message: fmt.Sprintf("%q is not a declarable symbol", sym.Name)}
		}
		a.defineSymbol(a.declareLocalName(digit), value)
		return nil
	}
	a.defineSymbol(sym.Name, value)
	return nil
}

func (a *Assembler) addSymbolHere(name string) {
	a.defineSymbol(name, int64(a.locationCounter))
}

func (a *Assembler) defineSymbol(name string, value int64) {
	a.symbolTable[name] = value
	a.fixupFutureRefs(name)
}

func (a *Assembler) addFutureRef(name string) {
	a.futureRefs[name] = append(a.futureRefs[name], a.locationCounter)
}

// fixupFutureRefs patches the address field (sign + first two bytes) of
// every word that referenced name before it was defined. The rest of
// each word -- index spec, modification, operation -- is untouched, so a
// forward reference inside an F-part is never fixed up (spec.md §4.H's
// documented limitation).
func (a *Assembler) fixupFutureRefs(name string) {
	refs, ok := a.futureRefs[name]
	if !ok {
		return
	}
	target := mix.AddressFromValue(a.symbolTable[name])

	for _, addr := range refs {
		word := a.Words[addr]
		word.Sign = target.Sign
		word.Bytes[0] = target.Bytes[0]
		word.Bytes[1] = target.Bytes[1]
		a.Words[addr] = word
	}
	delete(a.futureRefs, name)
}

// declareLocalName, backwardLocalName, and forwardLocalName implement
// spec.md §4.H's "internal renaming scheme": each nH declaration is
// recorded under a name encoding its position in the sequence of nH
// declarations for that digit, so nB/nF can resolve by predicting which
// occurrence they mean (the most recent for B, the next for F) without
// needing a second pass.
func (a *Assembler) declareLocalName(digit byte) string {
	a.localCounter[digit-'0']++
	return fmt.Sprintf("%c#%d", digit, a.localCounter[digit-'0'])
}

func (a *Assembler) backwardLocalName(digit byte) string {
	return fmt.Sprintf("%c#%d", digit, a.localCounter[digit-'0'])
}

func (a *Assembler) forwardLocalName(digit byte) string {
	return fmt.Sprintf("%c#%d", digit, a.localCounter[digit-'0']+1)
}
