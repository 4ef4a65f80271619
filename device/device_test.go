package device

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mixvm/negroni/mix"
)

type fakeMemory struct {
	cells [4000]mix.Word
}

func (m *fakeMemory) Read(addr int) mix.Word   { return m.cells[addr] }
func (m *fakeMemory) Write(addr int, w mix.Word) { m.cells[addr] = w }
func (m *fakeMemory) Len() int                   { return len(m.cells) }

// TestTapeRoundtrip mirrors spec.md scenario 6 and
// original_source/src/operations/io.rs's test_tape_roundtrip: write
// M[1000..1099] via OUT, then read it back via IN, and expect
// M[2000..2099] to equal the original block.
func TestTapeRoundtrip(t *testing.T) {
	dir := t.TempDir()
	mem := &fakeMemory{}
	for i := 0; i < 100; i++ {
		mem.cells[1000+i] = mix.MustFromValue(int64(i))
	}

	tape, err := NewTape(filepath.Join(dir, "tape0"))
	if err != nil {
		t.Fatal(err)
	}
	dev := New(0, tape, mem, nil)
	defer dev.Shutdown()

	dev.WaitReady()
	if err := dev.Send(Message{Operation: mix.OpOUT, Address: 1000}); err != nil {
		t.Fatal(err)
	}
	dev.WaitReady()
	if err := dev.Send(Message{Operation: mix.OpIOC, Address: -1}); err != nil {
		t.Fatal(err)
	}
	dev.WaitReady()
	if err := dev.Send(Message{Operation: mix.OpIN, Address: 2000}); err != nil {
		t.Fatal(err)
	}
	dev.WaitReady()

	for i := 0; i < 100; i++ {
		if mem.cells[2000+i].Value() != int64(i) {
			t.Errorf("M[%d] = %d, want %d", 2000+i, mem.cells[2000+i].Value(), i)
		}
	}
}

func TestNewTableCreatesAllMandatorySlots(t *testing.T) {
	dir := t.TempDir()
	mem := &fakeMemory{}
	table, err := NewTable(dir, mem, func() int64 { return 0 })
	if err != nil {
		t.Fatal(err)
	}
	defer table.Shutdown()

	for _, slot := range []int{0, 7, 8, 15, CardReaderSlot, CardPunchSlot, LinePrinterSlot} {
		if table.Device(slot) == nil {
			t.Errorf("slot %d should be occupied", slot)
		}
	}
	if table.Device(19) != nil {
		t.Error("slot 19 (typewriter) should be unoccupied by default")
	}

	if _, err := os.Stat(filepath.Join(dir, "tape0")); err != nil {
		t.Errorf("expected tape0 backing file: %v", err)
	}
}
