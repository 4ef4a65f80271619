package cpu

import "fmt"

// String renders the computer's register file for debugging, in the
// same field order as original_source/src/computer.rs's Debug impl
// (used by cmd/stir's --interactive stepper and its post-run dump).
func (c *Computer) String() string {
	return fmt.Sprintf(
		"Computer{\n"+
			"  PC:         %d\n"+
			"  rA:         %d\n"+
			"  rX:         %d\n"+
			"  rI1:        %d\n"+
			"  rI2:        %d\n"+
			"  rI3:        %d\n"+
			"  rI4:        %d\n"+
			"  rI5:        %d\n"+
			"  rI6:        %d\n"+
			"  rJ:         %d\n"+
			"  Overflow:   %t\n"+
			"  Comparison: %s\n"+
			"}",
		c.PC,
		c.A.Value(),
		c.X.Value(),
		c.I[0].Value(),
		c.I[1].Value(),
		c.I[2].Value(),
		c.I[3].Value(),
		c.I[4].Value(),
		c.I[5].Value(),
		c.J.Value(),
		c.Overflow,
		c.Comparison,
	)
}
