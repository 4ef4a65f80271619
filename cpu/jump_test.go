package cpu

import (
	"testing"

	"github.com/mixvm/negroni/mix"
)

// TestJMPSavesReturnAddress ports
// original_source/src/operations/jump.rs's test_jmp: JMP at PC=100 to
// 1000 sets PC=1000 and J=101.
func TestJMPSavesReturnAddress(t *testing.T) {
	c := newTestComputer(t)
	c.PC = 100
	h := makeJump(mix.ModJMP)
	if err := h(c, mix.Instruction{Address: mix.AddressFromValue(1000), Operation: mix.OpJMP, Modification: mix.ModJMP}); err != nil {
		t.Fatal(err)
	}
	if c.PC != 1000 {
		t.Errorf("PC = %d, want 1000", c.PC)
	}
	if c.J.Value() != 101 {
		t.Errorf("J = %d, want 101", c.J.Value())
	}
}

// TestJSJDoesNotSaveJ ports test_jsj: JSJ jumps without touching J.
func TestJSJDoesNotSaveJ(t *testing.T) {
	c := newTestComputer(t)
	c.PC = 100
	c.J = mix.AddressFromValue(50)
	h := makeJump(mix.ModJSJ)
	if err := h(c, mix.Instruction{Address: mix.AddressFromValue(1000), Operation: mix.OpJMP, Modification: mix.ModJSJ}); err != nil {
		t.Fatal(err)
	}
	if c.PC != 1000 {
		t.Errorf("PC = %d, want 1000", c.PC)
	}
	if c.J.Value() != 50 {
		t.Errorf("J = %d, want unchanged 50", c.J.Value())
	}
}

// TestJOVClearsOverflowRegardless ports test_jov/test_jnov: JOV jumps
// only when overflow is set, and always clears it afterward.
func TestJOVClearsOverflowRegardless(t *testing.T) {
	cases := []struct {
		overflow bool
		wantPC   int
	}{
		{true, 1000},
		{false, 101},
	}
	for _, tc := range cases {
		c := newTestComputer(t)
		c.PC = 100
		c.Overflow = tc.overflow
		h := makeJump(mix.ModJOV)
		if err := h(c, mix.Instruction{Address: mix.AddressFromValue(1000), Operation: mix.OpJMP, Modification: mix.ModJOV}); err != nil {
			t.Fatal(err)
		}
		if c.PC != tc.wantPC {
			t.Errorf("overflow=%v: PC = %d, want %d", tc.overflow, c.PC, tc.wantPC)
		}
		if c.Overflow {
			t.Error("overflow should always be cleared by JOV")
		}
	}
}

func TestComparisonJumps(t *testing.T) {
	cases := []struct {
		mod  byte
		cmp  mix.Comparison
		take bool
	}{
		{mix.ModJL, mix.Less, true},
		{mix.ModJL, mix.Equal, false},
		{mix.ModJE, mix.Equal, true},
		{mix.ModJG, mix.Greater, true},
		{mix.ModJGE, mix.Less, false},
		{mix.ModJGE, mix.Equal, true},
		{mix.ModJNE, mix.Equal, false},
		{mix.ModJNE, mix.Less, true},
		{mix.ModJLE, mix.Greater, false},
		{mix.ModJLE, mix.Equal, true},
	}
	for _, tc := range cases {
		c := newTestComputer(t)
		c.PC = 100
		c.Comparison = tc.cmp
		h := makeJump(tc.mod)
		if err := h(c, mix.Instruction{Address: mix.AddressFromValue(1000), Operation: mix.OpJMP, Modification: tc.mod}); err != nil {
			t.Fatal(err)
		}
		wantPC := 101
		if tc.take {
			wantPC = 1000
		}
		if c.PC != wantPC {
			t.Errorf("mod=%d cmp=%s: PC = %d, want %d", tc.mod, tc.cmp, c.PC, wantPC)
		}
	}
}

// TestRegisterJumps ports the shape of
// original_source/src/operations/jump.rs's RegisterJump tests: J*N/
// J*Z/J*P/J*NN/J*NZ/J*NP test the register's sign/zeroness.
func TestRegisterJumps(t *testing.T) {
	cases := []struct {
		mod   byte
		value int64
		take  bool
	}{
		{mix.ModJN, -5, true},
		{mix.ModJN, 5, false},
		{mix.ModJZ, 0, true},
		{mix.ModJZ, 1, false},
		{mix.ModJP, 5, true},
		{mix.ModJP, -5, false},
		{mix.ModJNN, 0, true},
		{mix.ModJNN, -1, false},
		{mix.ModJNZ, 1, true},
		{mix.ModJNZ, 0, false},
		{mix.ModJNP, -1, true},
		{mix.ModJNP, 1, false},
	}
	for _, tc := range cases {
		c := newTestComputer(t)
		c.PC = 100
		c.A = mix.MustFromValue(tc.value)
		h := makeRegisterJump(mix.RegA, tc.mod)
		if err := h(c, mix.Instruction{Address: mix.AddressFromValue(1000), Operation: mix.OpJAReg, Modification: tc.mod}); err != nil {
			t.Fatal(err)
		}
		wantPC := 101
		if tc.take {
			wantPC = 1000
		}
		if c.PC != wantPC {
			t.Errorf("mod=%d value=%d: PC = %d, want %d", tc.mod, tc.value, c.PC, wantPC)
		}
	}
}
