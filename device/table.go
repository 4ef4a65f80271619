package device

import (
	"fmt"
	"path/filepath"
)

// Slot assignments, per spec.md §3/§4.E.
const (
	TapeSlotBase   = 0  // slots 0..7
	TapeSlotCount  = 8
	DiskSlotBase   = 8  // slots 8..15
	DiskSlotCount  = 8
	CardReaderSlot = 16
	CardPunchSlot  = 17
	LinePrinterSlot = 18
	// TypewriterSlot and PaperTapeSlot (19, 20) are optional per
	// spec.md §3 and are not instantiated by NewTable.
)

// NumSlots is the size of the device table.
const NumSlots = 21

// Table is the 21-slot I/O device table shared between the CPU and the
// device workers.
type Table struct {
	devices [NumSlots]*Device
}

// NewTable creates every mandatory device slot (tape 0-7, disk 8-15,
// card reader 16, card punch 17, line printer 18), with backing files
// under dir, and binds each to mem for transfers. xValue resolves the
// current X register value for disk block addressing.
func NewTable(dir string, mem MemoryAccessor, xValue func() int64) (*Table, error) {
	t := &Table{}

	for i := 0; i < TapeSlotCount; i++ {
		slot := TapeSlotBase + i
		backend, err := NewTape(filepath.Join(dir, fmt.Sprintf("tape%d", slot)))
		if err != nil {
			return nil, err
		}
		t.devices[slot] = New(slot, backend, mem, nil)
	}
	for i := 0; i < DiskSlotCount; i++ {
		slot := DiskSlotBase + i
		backend, err := NewDisk(filepath.Join(dir, fmt.Sprintf("disk%d", slot)))
		if err != nil {
			return nil, err
		}
		t.devices[slot] = New(slot, backend, mem, xValue)
	}
	reader, err := NewCardReader(filepath.Join(dir, "card_reader"))
	if err != nil {
		return nil, err
	}
	t.devices[CardReaderSlot] = New(CardReaderSlot, reader, mem, nil)

	punch, err := NewCardPunch(filepath.Join(dir, "card_punch"))
	if err != nil {
		return nil, err
	}
	t.devices[CardPunchSlot] = New(CardPunchSlot, punch, mem, nil)

	printer, err := NewLinePrinter(filepath.Join(dir, "line_printer"))
	if err != nil {
		return nil, err
	}
	t.devices[LinePrinterSlot] = New(LinePrinterSlot, printer, mem, nil)

	return t, nil
}

// Device returns the device at slot, or nil if the slot is unoccupied
// (the optional typewriter/paper-tape slots 19/20).
func (t *Table) Device(slot int) *Device {
	if slot < 0 || slot >= NumSlots {
		return nil
	}
	return t.devices[slot]
}

// Shutdown drains and closes every occupied slot (spec.md §5's graceful
// shutdown: a final wait_ready on every device before exit).
func (t *Table) Shutdown() {
	for _, d := range t.devices {
		if d != nil {
			d.Shutdown()
		}
	}
}
