package cpu

import (
	"testing"

	"github.com/mixvm/negroni/mix"
)

func TestDecodeFieldSpecFamilyIgnoresModification(t *testing.T) {
	for _, mod := range []byte{mix.FieldSpec(0, 5), mix.FieldSpec(1, 1), mix.FieldSpec(0, 0)} {
		d, err := Decode(mix.Instruction{Operation: mix.OpLDA, Modification: mod})
		if err != nil {
			t.Fatalf("mod=%d: %v", mod, err)
		}
		if d.Handler == nil || !d.AdvancesPC {
			t.Errorf("mod=%d: expected an advancing LDA handler", mod)
		}
	}
}

func TestDecodeUnknownOp(t *testing.T) {
	_, err := Decode(mix.Instruction{Operation: 200})
	if err == nil {
		t.Fatal("expected UnknownOp")
	}
	if _, ok := err.(*UnknownOp); !ok {
		t.Errorf("expected *UnknownOp, got %T", err)
	}
}

func TestDecodeJumpFamilyDoesNotAutoAdvance(t *testing.T) {
	d, err := Decode(mix.Instruction{Operation: mix.OpJMP, Modification: mix.ModJMP})
	if err != nil {
		t.Fatal(err)
	}
	if d.AdvancesPC {
		t.Error("jump handlers must own PC themselves")
	}
}

func TestDecodeHLTDoesNotAutoAdvance(t *testing.T) {
	d, err := Decode(mix.Instruction{Operation: mix.OpNumCharHlt, Modification: mix.ModHLT})
	if err != nil {
		t.Fatal(err)
	}
	if d.AdvancesPC {
		t.Error("HLT must leave PC untouched")
	}
}

func TestStepAdvancesAndHalts(t *testing.T) {
	c := newTestComputer(t)
	// NOP at 0, HLT at 1.
	c.Memory.Write(0, mix.FromInstruction(mix.Instruction{Operation: mix.OpNOP}))
	c.Memory.Write(1, mix.FromInstruction(mix.Instruction{Operation: mix.OpNumCharHlt, Modification: mix.ModHLT}))
	c.Running = true

	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.PC != 1 {
		t.Fatalf("PC = %d, want 1 after NOP", c.PC)
	}
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.PC != 1 {
		t.Errorf("PC = %d, want unchanged 1 after HLT", c.PC)
	}
	if c.Running {
		t.Error("Running should be false after HLT")
	}
}
