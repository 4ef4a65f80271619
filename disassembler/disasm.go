// Package disassembler turns decoded MIX instructions back into
// MIXAL-ish mnemonic lines, for cmd/stir's --interactive stepper and
// the cmd/dis listing.
//
// Adapted from the teacher's disassembler package: original_source has
// no MIX disassembler at all, and the teacher's own disassembler (a
// multi-stage m68k byte-stream sweep with control-flow analysis to
// resolve code/data ambiguity) has no MIX analogue -- MIX memory is
// already a flat array of decoded words with no instruction-boundary
// ambiguity to resolve. What's kept here is the teacher's idiom of
// recording a decoded (address, mnemonic, operand) triple and rendering
// it with a fixed-width mnemonic column (disassemble.go's
// "    %-8s %s\n" format), scaled down to the one-word-at-a-time shape
// MIX actually needs.
package disassembler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mixvm/negroni/mix"
)

// Format renders one decoded instruction as a single mnemonic line,
// e.g. "0010  LDA      2000,1(1:5)".
func Format(address int, instr mix.Instruction) string {
	name, hasFieldSpec := mnemonicFor(instr)
	if name == "" {
		name = fmt.Sprintf("OP%d/%d", instr.Operation, instr.Modification)
	}

	operand := formatOperand(instr, hasFieldSpec)
	if operand == "" {
		return fmt.Sprintf("%04d  %s", address, name)
	}
	return fmt.Sprintf("%04d  %-8s %s", address, name, operand)
}

func formatOperand(instr mix.Instruction, hasFieldSpec bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d", instr.Address.Value())
	if instr.IndexSpec != 0 {
		fmt.Fprintf(&sb, ",%d", instr.IndexSpec)
	}
	if hasFieldSpec {
		l, r := mix.DecodeFieldSpec(instr.Modification)
		fmt.Fprintf(&sb, "(%d:%d)", l, r)
	}
	return sb.String()
}

// Disassemble renders every word in a program's memory image as one
// Format line per address, in ascending address order -- the MIX
// counterpart to the teacher's Disassemble(code []byte), minus the
// code/data control-flow pass that byte-stream disassembly needs and
// word-addressed MIX memory doesn't.
func Disassemble(words map[int]mix.Word) string {
	locations := make([]int, 0, len(words))
	for addr := range words {
		locations = append(locations, addr)
	}
	sort.Ints(locations)

	var out strings.Builder
	for _, addr := range locations {
		instr := mix.FromWord(words[addr])
		out.WriteString(Format(addr, instr))
		out.WriteByte('\n')
	}
	return out.String()
}
