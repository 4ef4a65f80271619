package cpu

import (
	"fmt"

	"github.com/mixvm/negroni/device"
	"github.com/mixvm/negroni/mix"
)

// opIOC, opIN, and opOUT implement the three I/O operations (opcodes
// 35..37): wait for the target device (named by the modification
// byte) to be ready, then hand it a message and return immediately --
// the device's own worker goroutine performs the transfer
// asynchronously. Ported from original_source/src/operations/io.rs.
func opIOC(c *Computer, i mix.Instruction) error { return submitIO(c, i) }
func opIN(c *Computer, i mix.Instruction) error  { return submitIO(c, i) }
func opOUT(c *Computer, i mix.Instruction) error { return submitIO(c, i) }

func submitIO(c *Computer, i mix.Instruction) error {
	address, err := c.IndexedAddressValue(i)
	if err != nil {
		return err
	}
	d := c.Devices.Device(int(i.Modification))
	if d == nil {
		return &ExecutionFault{Reason: fmt.Sprintf("no device in slot %d", i.Modification)}
	}
	if err := d.WaitReady(); err != nil {
		return err
	}
	return d.Send(device.Message{Operation: i.Operation, Address: address})
}
