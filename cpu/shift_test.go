package cpu

import (
	"testing"

	"github.com/mixvm/negroni/mix"
)

// TestShiftChain is spec.md scenario 5, ported verbatim from
// original_source/src/operations/shift.rs's test_shifts: a sequence
// of SRAX, SLA, SRC, SRA, SLC applied to the same A/X pair, each step
// checked against Knuth's worked example.
func TestShiftChain(t *testing.T) {
	c := newTestComputer(t)
	c.A = mix.Word{Sign: mix.Positive, Bytes: [5]byte{1, 2, 3, 4, 5}}
	c.X = mix.Word{Sign: mix.Negative, Bytes: [5]byte{6, 7, 8, 9, 0}}

	steps := []struct {
		addr    int64
		mod     byte
		wantA   mix.Word
		wantX   mix.Word
	}{
		{1, mix.ModSRAX, mix.Word{Sign: mix.Positive, Bytes: [5]byte{0, 1, 2, 3, 4}}, mix.Word{Sign: mix.Negative, Bytes: [5]byte{5, 6, 7, 8, 9}}},
		{2, mix.ModSLA, mix.Word{Sign: mix.Positive, Bytes: [5]byte{2, 3, 4, 0, 0}}, mix.Word{Sign: mix.Negative, Bytes: [5]byte{5, 6, 7, 8, 9}}},
		{4, mix.ModSRC, mix.Word{Sign: mix.Positive, Bytes: [5]byte{6, 7, 8, 9, 2}}, mix.Word{Sign: mix.Negative, Bytes: [5]byte{3, 4, 0, 0, 5}}},
		{2, mix.ModSRA, mix.Word{Sign: mix.Positive, Bytes: [5]byte{0, 0, 6, 7, 8}}, mix.Word{Sign: mix.Negative, Bytes: [5]byte{3, 4, 0, 0, 5}}},
		{501, mix.ModSLC, mix.Word{Sign: mix.Positive, Bytes: [5]byte{0, 6, 7, 8, 3}}, mix.Word{Sign: mix.Negative, Bytes: [5]byte{4, 0, 0, 5, 0}}},
	}

	for i, step := range steps {
		err := opShift(c, mix.Instruction{Address: mix.AddressFromValue(step.addr), Modification: step.mod, Operation: mix.OpShift})
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if c.A != step.wantA {
			t.Errorf("step %d: A = %+v, want %+v", i, c.A, step.wantA)
		}
		if c.X != step.wantX {
			t.Errorf("step %d: X = %+v, want %+v", i, c.X, step.wantX)
		}
	}
}
