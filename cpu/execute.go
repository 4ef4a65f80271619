package cpu

import "github.com/mixvm/negroni/mix"

// Run starts the computer and executes fetch/decode/execute cycles
// until HLT clears Running or PC runs off the end of memory. Ported
// from original_source/src/computer.rs's Computer::start/
// fetch_decode_execute.
func (c *Computer) Run() error {
	c.Running = true
	for c.Running {
		if err := c.Step(); err != nil {
			return err
		}
		if c.PC >= MemorySize {
			c.Running = false
		}
	}
	return nil
}

// Step executes exactly one instruction: fetch, decode, dispatch, and
// (when the handler doesn't own PC, e.g. every jump) advance PC by
// one. PreStep, when set, runs before the fetch -- used by the
// interactive debugger to print state between instructions.
func (c *Computer) Step() error {
	if c.PreStep != nil {
		c.PreStep(c)
	}
	instruction := c.fetch()
	decoded, err := Decode(instruction)
	if err != nil {
		return err
	}
	if err := decoded.Handler(c, instruction); err != nil {
		return err
	}
	if decoded.AdvancesPC {
		c.PC++
	}
	return nil
}

func (c *Computer) fetch() mix.Instruction {
	word := c.Memory.Read(c.PC)
	return mix.FromWord(word)
}
