package cpu

import (
	"testing"

	"github.com/mixvm/negroni/mix"
)

// TestIOTapeRoundtrip is spec.md scenario 6 and mirrors
// original_source/src/operations/io.rs's test_tape_roundtrip, driven
// through the CPU's opOUT/opIOC/opIN handlers and a tape device at
// slot 3.
func TestIOTapeRoundtrip(t *testing.T) {
	c := newTestComputer(t)
	for i := 0; i < 100; i++ {
		c.Memory.Write(1000+i, mix.MustFromValue(int64(i)))
	}

	instructions := []mix.Instruction{
		{Address: mix.AddressFromValue(1000), Modification: 3, Operation: mix.OpOUT},
		{Address: mix.AddressFromValue(-1), Modification: 3, Operation: mix.OpIOC},
		{Address: mix.AddressFromValue(2000), Modification: 3, Operation: mix.OpIN},
	}
	for _, inst := range instructions {
		if err := submitIO(c, inst); err != nil {
			t.Fatal(err)
		}
	}
	c.Devices.Device(3).WaitReady()

	for i := 0; i < 100; i++ {
		if got := c.Memory.Read(2000 + i).Value(); got != int64(i) {
			t.Errorf("M[%d] = %d, want %d", 2000+i, got, i)
		}
	}
}

func TestJBUSPollsWithoutBlocking(t *testing.T) {
	c := newTestComputer(t)
	c.PC = 10
	inst := mix.Instruction{Address: mix.AddressFromValue(1000), Modification: 3, Operation: mix.OpJBUS}
	if err := opJBUS(c, inst); err != nil {
		t.Fatal(err)
	}
	if c.PC != 11 {
		t.Errorf("PC = %d, want 11 (device not busy, untaken jump advances)", c.PC)
	}
}
