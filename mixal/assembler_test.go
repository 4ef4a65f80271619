package mixal

import (
	"testing"

	"github.com/mixvm/negroni/mix"
)

// TestForwardReference is spec.md scenario 7: a label referenced before
// its EQU definition must be patched once the definition is seen, and
// END's own W-value (a plain symbol reference) must resolve too.
func TestForwardReference(t *testing.T) {
	src := "START JMP FOO\n" +
		" FOO EQU 1000\n" +
		" END START\n"

	a, err := Assemble(src)
	if err != nil {
		t.Fatal(err)
	}
	if a.ProgramStart != 0 {
		t.Errorf("ProgramStart = %d, want 0", a.ProgramStart)
	}

	word, ok := a.Words[0]
	if !ok {
		t.Fatal("no word emitted at address 0")
	}
	instruction := mix.FromWord(word)
	if instruction.Operation != mix.OpJMP {
		t.Errorf("Operation = %d, want OpJMP", instruction.Operation)
	}
	if instruction.Address.Value() != 1000 {
		t.Errorf("Address = %d, want 1000", instruction.Address.Value())
	}
}

func TestUnresolvedSymbolAtEndIsAnError(t *testing.T) {
	src := "START JMP NOWHERE\n END START\n"
	_, err := Assemble(src)
	if err == nil {
		t.Fatal("expected an AssembleError for an unresolved symbol")
	}
}

func TestLocalLabels(t *testing.T) {
	// Two separate 2H declarations; the first JMP 2F targets the nearer
	// forward 2H, and the second JMP 2B targets the same, now-past, 2H.
	src := "" +
		" JMP 2F\n" +
		"2H STA 100\n" +
		" JMP 2B\n" +
		"2H STA 200\n" +
		" END 0\n"

	a, err := Assemble(src)
	if err != nil {
		t.Fatal(err)
	}

	first := mix.FromWord(a.Words[0]) // JMP 2F -> first 2H, at address 1
	if first.Address.Value() != 1 {
		t.Errorf("JMP 2F address = %d, want 1", first.Address.Value())
	}

	second := mix.FromWord(a.Words[2]) // JMP 2B -> most recent 2H, at address 1
	if second.Address.Value() != 1 {
		t.Errorf("JMP 2B address = %d, want 1", second.Address.Value())
	}
}

func TestLiteralConstant(t *testing.T) {
	src := " LDA =5=\n END 0\n"
	a, err := Assemble(src)
	if err != nil {
		t.Fatal(err)
	}

	instruction := mix.FromWord(a.Words[0])
	if instruction.Operation != mix.OpLDA {
		t.Fatalf("Operation = %d, want OpLDA", instruction.Operation)
	}
	literalAddr := instruction.Address.Value()
	if literalAddr != 1 {
		t.Fatalf("literal constant address = %d, want 1 (emitted right after the LDA)", literalAddr)
	}

	literalWord, ok := a.Words[int(literalAddr)]
	if !ok {
		t.Fatal("literal constant word was never emitted")
	}
	if literalWord.Value() != 5 {
		t.Errorf("literal word value = %d, want 5", literalWord.Value())
	}
}

func TestAlfStatement(t *testing.T) {
	src := ` MSG ALF "ABCDE"` + "\n END 0\n"
	a, err := Assemble(src)
	if err != nil {
		t.Fatal(err)
	}
	word := a.Words[0]
	runes, err := word.ToCharCode()
	if err != nil {
		t.Fatal(err)
	}
	if string(runes[:]) != "ABCDE" {
		t.Errorf("ALF word = %q, want ABCDE", string(runes[:]))
	}
}

// TestWValueSinglePart exercises the common case: a W-value with one
// part and no explicit field spec behaves like a plain expression.
func TestWValueSinglePart(t *testing.T) {
	src := " CON 77\n END 0\n"
	a, err := Assemble(src)
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Words[0].Value(); got != 77 {
		t.Errorf("CON 77 = %d, want 77", got)
	}
}

// TestWValueMultiPart is the conforming multi-part behavior decided in
// DESIGN.md: each part after the first is inserted into its own field of
// the same running word, rather than being discarded.
func TestWValueMultiPart(t *testing.T) {
	src := " CON 1(1:1),2(2:2),3(3:3)\n END 0\n"
	a, err := Assemble(src)
	if err != nil {
		t.Fatal(err)
	}
	word := a.Words[0]
	if word.Bytes[0] != 1 || word.Bytes[1] != 2 || word.Bytes[2] != 3 {
		t.Errorf("CON word = %v, want bytes [1 2 3 0 0]", word.Bytes)
	}
}

func TestShiftDivideIsUnsupported(t *testing.T) {
	src := " CON 4//2\n END 0\n"
	_, err := Assemble(src)
	if err != ErrUnsupportedOp {
		t.Fatalf("err = %v, want ErrUnsupportedOp", err)
	}
}

func TestUnknownMnemonicIsAParseError(t *testing.T) {
	_, err := NewParser(" FROB 1\n").Parse()
	if err == nil {
		t.Fatal("expected a SourceError for an unknown mnemonic")
	}
}

func TestSelfReferencingLabelResolvesImmediately(t *testing.T) {
	// An ordinary label is bound before its own line's operand is
	// evaluated, so a MIX statement can reference its own address
	// without going through the future-reference table at all.
	src := " ORIG 10\nHERE JMP HERE\n END HERE\n"
	a, err := Assemble(src)
	if err != nil {
		t.Fatal(err)
	}
	instruction := mix.FromWord(a.Words[10])
	if instruction.Address.Value() != 10 {
		t.Errorf("JMP HERE address = %d, want 10", instruction.Address.Value())
	}
	if a.ProgramStart != 10 {
		t.Errorf("ProgramStart = %d, want 10", a.ProgramStart)
	}
}
