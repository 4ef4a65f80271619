package mixal

import "fmt"

// Node is one node of a parsed expression tree. Eval is the expression
// evaluator from original_source/src/mixal/assembler.rs's NodeVisitor,
// expressed as a method per node type rather than a visitor, which is
// the idiomatic Go shape for the same dispatch.
type Node interface {
	Eval(a *Assembler) (int64, error)
}

// NumberNode is a literal decimal constant.
type NumberNode struct {
	Value int64
}

func (n NumberNode) Eval(a *Assembler) (int64, error) { return n.Value, nil }

// AsteriskNode is the current-location-counter atom, `*`.
type AsteriskNode struct{}

func (AsteriskNode) Eval(a *Assembler) (int64, error) { return int64(a.locationCounter), nil }

// SymbolNode references a symbol by its source-text name (which may be
// an ordinary name or a local nH/nF/nB reference).
type SymbolNode struct {
	Symbol Symbol
}

func (n SymbolNode) Eval(a *Assembler) (int64, error) { return a.evalSymbol(n.Symbol) }

// LiteralConstantNode is `=expr=` in an A-part: reserves a synthetic CON
// word emitted at END and evaluates (at reference time) to that word's
// eventual address via the future-reference mechanism.
type LiteralConstantNode struct {
	Value Node
}

func (n LiteralConstantNode) Eval(a *Assembler) (int64, error) {
	return a.evalLiteralConstant(n.Value)
}

// ExpressionNode is a binary (or unary, when Left is nil) operator
// application. Operator is one of PLUS, MINUS, ASTERISK, DIVIDE,
// SHIFTDIVIDE, FIELDSIGN.
type ExpressionNode struct {
	Left     Node // nil for a unary +/-
	Operator Token
	Right    Node
}

func (n ExpressionNode) Eval(a *Assembler) (int64, error) {
	var left int64
	if n.Left != nil {
		v, err := n.Left.Eval(a)
		if err != nil {
			return 0, err
		}
		left = v
	}

	right, err := n.Right.Eval(a)
	if err != nil {
		return 0, err
	}

	switch n.Operator {
	case PLUS:
		return left + right, nil
	case MINUS:
		return left - right, nil
	case ASTERISK:
		return left * right, nil
	case DIVIDE:
		if right == 0 {
			return 0, &AssembleError{Message: "division by zero"}
		}
		return left / right, nil
	case SHIFTDIVIDE:
		return 0, ErrUnsupportedOp
	case FIELDSIGN:
		return 8*left + right, nil
	default:
		return 0, &AssembleError{Message: fmt.Sprintf("unknown operator %s", n.Operator)}
	}
}

// WValuePart is one comma-separated part of a W-value: an expression and
// an optional field spec governing where it lands in the running word.
type WValuePart struct {
	Expression Node
	FieldSpec  Node // nil means the default field (0:5)
}

// WValue is the operand of EQU/ORIG/CON/END: one or more parts,
// each inserted into the named field of a word built up left to right.
type WValue struct {
	Parts []WValuePart
}

// Symbol is the raw text of a declared or referenced name: an ordinary
// identifier, or a local-label form nH (declaration), nF (forward
// reference), nB (backward reference), n a single digit 0-9.
type Symbol struct {
	Name string
}

// localKind reports the local-label digit and suffix (H, F, or B) if
// Name has that two-character shape; ok is false for ordinary symbols.
func (s Symbol) localKind() (digit byte, kind byte, ok bool) {
	if len(s.Name) != 2 {
		return 0, 0, false
	}
	d, k := s.Name[0], s.Name[1]
	if d < '0' || d > '9' {
		return 0, 0, false
	}
	if k != 'H' && k != 'F' && k != 'B' {
		return 0, 0, false
	}
	return d, k, true
}

// IsLocal reports whether this symbol uses Knuth's local-label form.
func (s Symbol) IsLocal() bool {
	_, _, ok := s.localKind()
	return ok
}

// IsLocalDeclaration reports whether this is a local-label declaration (nH).
func (s Symbol) IsLocalDeclaration() bool {
	_, k, ok := s.localKind()
	return ok && k == 'H'
}

// Program is a fully parsed MIXAL source: an ordered list of statements.
type Program struct {
	Statements []Statement
}

// Statement is one parsed MIXAL line. Assemble carries out that
// statement's effect on the Assembler (symbol binding, word emission,
// location-counter update).
type Statement struct {
	Symbol *Symbol

	// Exactly one of the following is set, identifying the statement kind.
	Mix  *MixPart
	Equ  *WValue
	Orig *WValue
	Con  *WValue
	End  *WValue

	IsAlf bool
	Alf   string // the characters between the ALF statement's quotes
}

// MixPart is the operand grammar of an ordinary MIX instruction
// statement: mnemonic plus the optional A, index, and F parts.
type MixPart struct {
	Op        string
	APart     Node // nil if absent
	IndexPart Node // nil if absent
	FPart     Node // nil if absent
}
