// Package device implements the MIX I/O subsystem: a 21-slot device
// table, one worker goroutine per device consuming a FIFO mailbox, and
// busy/ready signalling via a condition variable, matching the
// concurrency contract in spec.md §4.E/§5.
package device

import (
	"fmt"
	"sync"

	"github.com/mixvm/negroni/mix"
)

// Message is a unit of work submitted to a device: an I/O opcode
// (IOC/IN/OUT) and a signed address (the CPU's effective address for
// the instruction that issued it).
type Message struct {
	Operation byte
	Address   int64
}

// IoError reports a fatal backing-file error (spec.md §7: "IoError:
// backing-file errors. Fatal"), latched on the Device that hit it so
// the CPU's next wait/send on that device learns about it instead of
// silently continuing with whatever the failed transfer left behind.
type IoError struct {
	Slot int
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("device %d: i/o error: %v", e.Slot, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// MemoryAccessor is the subset of cpu.Memory a device worker needs to
// transfer words to and from main memory. Kept as an interface so the
// device package never imports cpu (cpu imports device).
type MemoryAccessor interface {
	Read(addr int) mix.Word
	Write(addr int, w mix.Word)
	Len() int
}

// Backend performs the device-kind-specific work of a single message:
// reading or writing the backing file and shuffling words to/from
// memory. Implementations are provided per device kind (tape, disk,
// card reader, card punch, line printer).
type Backend interface {
	// BlockSize is the number of words transferred per IN/OUT.
	BlockSize() int
	// Process executes one message against mem, using x as the X
	// register's current value (only disk uses it, per spec.md §4.E).
	Process(msg Message, mem MemoryAccessor, x int64) error
	// Close releases the backing file.
	Close() error
}

// Device is one slot in the I/O device table: a worker goroutine, a
// FIFO mailbox, and busy/ready signalling.
type Device struct {
	Slot    int
	Backend Backend

	mu      sync.Mutex
	cond    *sync.Cond
	busy    bool
	mailbox chan job
	mem     MemoryAccessor
	xReg    func() int64
	fault   error

	closeOnce sync.Once
	done      chan struct{}
}

type job struct {
	msg Message
}

// New creates a device bound to mem for transfers and xValue for
// resolving the disk block number at processing time (see
// spec.md §4.E's disk semantics). The worker goroutine starts
// immediately.
func New(slot int, backend Backend, mem MemoryAccessor, xValue func() int64) *Device {
	d := &Device{
		Slot:    slot,
		Backend: backend,
		mailbox: make(chan job, 16),
		mem:     mem,
		xReg:    xValue,
		done:    make(chan struct{}),
	}
	d.cond = sync.NewCond(&d.mu)
	go d.run()
	return d
}

// BlockSize reports the device's block size in words.
func (d *Device) BlockSize() int { return d.Backend.BlockSize() }

// Busy reports the device's current busy flag without blocking
// (the non-blocking poll JBUS/JRED use).
func (d *Device) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

// WaitReady blocks the calling goroutine (the CPU) until the device is
// not busy, then reports the latched fatal error (if any) left by the
// most recently processed message (spec.md §7's IoError).
func (d *Device) WaitReady() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for d.busy {
		d.cond.Wait()
	}
	return d.fault
}

// Send submits a message to the device's mailbox, first marking the
// device busy. Per spec.md's IOC/IN/OUT semantics, the caller must have
// already called WaitReady so operations on the same device serialise.
// Send itself reports any fault latched by a prior message, since a
// caller may Send again without an intervening WaitReady.
func (d *Device) Send(msg Message) error {
	d.mu.Lock()
	if d.fault != nil {
		err := d.fault
		d.mu.Unlock()
		return err
	}
	d.busy = true
	d.mu.Unlock()

	select {
	case d.mailbox <- job{msg: msg}:
		return nil
	case <-d.done:
		return fmt.Errorf("device %d: closed", d.Slot)
	}
}

func (d *Device) run() {
	for {
		select {
		case j := <-d.mailbox:
			x := int64(0)
			if d.xReg != nil {
				x = d.xReg()
			}
			err := d.Backend.Process(j.msg, d.mem, x)
			d.mu.Lock()
			if err != nil {
				d.fault = &IoError{Slot: d.Slot, Err: err}
			}
			d.busy = false
			d.cond.Broadcast()
			d.mu.Unlock()
		case <-d.done:
			return
		}
	}
}

// Shutdown drains the mailbox (via WaitReady) then stops the worker. A
// fault latched by the last message is immaterial here: the machine is
// already tearing down.
func (d *Device) Shutdown() {
	_ = d.WaitReady()
	d.closeOnce.Do(func() { close(d.done) })
	d.Backend.Close()
}
