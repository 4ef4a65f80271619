package mixal

import "fmt"

// SourceError is a lexer or parser failure, carrying the position at
// which it was detected. Ported from spec.md §4.G's ParseError(location,
// message).
type SourceError struct {
	Line, Col int
	Message   string
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("mixal: %d:%d: %s", e.Line, e.Col, e.Message)
}

// AssembleError is a backend failure: unknown mnemonic, unresolved
// symbol at END, or a `//` SHIFTDIVIDE expression. A duplicate symbol
// binding is not reported: the later binding replaces the earlier one.
type AssembleError struct {
	Message string
}

func (e *AssembleError) Error() string {
	return "mixal: " + e.Message
}

// ErrUnsupportedOp is returned when an expression uses the SHIFTDIVIDE
// (`//`) operator, which spec.md's Open Question on the matter says to
// treat as a hard error (the original implementation panics).
var ErrUnsupportedOp = &AssembleError{Message: "the // operator is not supported"}
