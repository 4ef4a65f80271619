package cpu

import (
	"testing"

	"github.com/mixvm/negroni/mix"
)

// TestIncA ports original_source/src/operations/address_transfer/
// increase.rs's test_inca.
func TestIncA(t *testing.T) {
	cases := []struct {
		addr int64
		want int64
	}{
		{2000, 3000},
		{-2000, -1000},
	}
	for _, tc := range cases {
		c := newTestComputer(t)
		c.A = mix.MustFromValue(1000)
		h := makeIncDec(mix.RegA, false)
		if err := h(c, mix.Instruction{Address: mix.AddressFromValue(tc.addr), Operation: mix.OpAddrA, Modification: mix.ModINC}); err != nil {
			t.Fatal(err)
		}
		if c.A.Value() != tc.want {
			t.Errorf("addr=%d: A = %d, want %d", tc.addr, c.A.Value(), tc.want)
		}
	}
}

func TestDecA(t *testing.T) {
	cases := []struct {
		addr int64
		want int64
	}{
		{2000, -1000},
		{-2000, 3000},
	}
	for _, tc := range cases {
		c := newTestComputer(t)
		c.A = mix.MustFromValue(1000)
		h := makeIncDec(mix.RegA, true)
		if err := h(c, mix.Instruction{Address: mix.AddressFromValue(tc.addr), Operation: mix.OpAddrA, Modification: mix.ModDEC}); err != nil {
			t.Fatal(err)
		}
		if c.A.Value() != tc.want {
			t.Errorf("addr=%d: A = %d, want %d", tc.addr, c.A.Value(), tc.want)
		}
	}
}

// TestIncIndexWithIndexing ports test_inci's indexed cases: INC3 with
// address=100, index_specification=1 (I1=1000) -> I3 = 1000+100+1000.
func TestIncIndexWithIndexing(t *testing.T) {
	c := newTestComputer(t)
	c.SetIndexRegister(3, mix.AddressFromValue(1000))
	c.SetIndexRegister(1, mix.AddressFromValue(1000))
	h := makeIncDec(mix.RegI3, false)
	inst := mix.Instruction{Address: mix.AddressFromValue(100), IndexSpec: 1, Operation: mix.OpAddr3, Modification: mix.ModINC}
	if err := h(c, inst); err != nil {
		t.Fatal(err)
	}
	if got := c.IndexRegister(3).Value(); got != 2100 {
		t.Errorf("I3 = %d, want 2100", got)
	}
}

// TestEnterZeroTakesSignFromAddressField ports
// original_source/src/operations/address_transfer/enter.rs's
// test_enta zero cases: ENTA 0 with a negative-zero address field
// yields a negative-zero accumulator, regardless of the prior value.
func TestEnterZeroTakesSignFromAddressField(t *testing.T) {
	c := newTestComputer(t)
	c.A = mix.MustFromValue(12345)
	h := makeEnter(mix.RegA, false)
	addr := mix.Address{Sign: mix.Negative}
	if err := h(c, mix.Instruction{Address: addr, Operation: mix.OpAddrA, Modification: mix.ModENT}); err != nil {
		t.Fatal(err)
	}
	if c.A.Sign != mix.Negative || c.A.Value() != 0 {
		t.Errorf("A = %+v, want negative zero", c.A)
	}
}

func TestEnterIndexed(t *testing.T) {
	c := newTestComputer(t)
	c.SetIndexRegister(1, mix.AddressFromValue(100))
	h := makeEnter(mix.RegA, false)
	inst := mix.Instruction{Address: mix.AddressFromValue(2000), IndexSpec: 1, Operation: mix.OpAddrA, Modification: mix.ModENT}
	if err := h(c, inst); err != nil {
		t.Fatal(err)
	}
	if c.A.Value() != 2100 {
		t.Errorf("A = %d, want 2100", c.A.Value())
	}
}

func TestEnnNegates(t *testing.T) {
	c := newTestComputer(t)
	h := makeEnter(mix.RegA, true)
	if err := h(c, mix.Instruction{Address: mix.AddressFromValue(2000), Operation: mix.OpAddrA, Modification: mix.ModENN}); err != nil {
		t.Fatal(err)
	}
	if c.A.Value() != -2000 {
		t.Errorf("A = %d, want -2000", c.A.Value())
	}
}
