package mixal

import (
	"fmt"
	"strconv"

	"github.com/mixvm/negroni/mix"
)

// Parser is a recursive-descent, one-lexeme-lookahead parser over a
// Lexer, with an unbounded unscan buffer. Ported from
// original_source/src/mixal/parser.rs's ParseBuffer/Parser design.
type Parser struct {
	lexer *Lexer

	scanned   []Lexeme
	unscanned []Lexeme
}

// NewParser creates a Parser over the given MIXAL source text.
func NewParser(input string) *Parser {
	return &Parser{lexer: NewLexer(input)}
}

// Parse consumes the whole input and returns the parsed Program.
func (p *Parser) Parse() (*Program, error) {
	program := &Program{}

	for {
		lexeme := p.scan()
		if lexeme.Token == EOF {
			break
		}
		p.unscan()

		statement, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, statement)
	}

	return program, nil
}

func (p *Parser) parseStatement() (Statement, error) {
	lexeme := p.scan()
	if lexeme.Token == EOL {
		return p.parseStatement()
	}
	p.unscan()

	symbol := p.parseSymbol()
	opcode, err := p.parseOpcode()
	if err != nil {
		return Statement{}, err
	}

	switch opcode {
	case "EQU":
		return p.parseWValueStatement(symbol, func(s *Symbol, w *WValue) Statement {
			return Statement{Symbol: s, Equ: w}
		})
	case "ORIG":
		return p.parseWValueStatement(symbol, func(s *Symbol, w *WValue) Statement {
			return Statement{Symbol: s, Orig: w}
		})
	case "CON":
		return p.parseWValueStatement(symbol, func(s *Symbol, w *WValue) Statement {
			return Statement{Symbol: s, Con: w}
		})
	case "END":
		return p.parseWValueStatement(symbol, func(s *Symbol, w *WValue) Statement {
			return Statement{Symbol: s, End: w}
		})
	case "ALF":
		return p.parseAlfStatement(symbol)
	default:
		return p.parseMixStatement(symbol, opcode)
	}
}

func (p *Parser) parseMixStatement(symbol *Symbol, op string) (Statement, error) {
	if _, ok := mix.MnemonicTable[op]; !ok {
		return Statement{}, p.errorf("unknown op code %q", op)
	}

	p.swallowWhitespace()

	aPart, err := p.parseAPart()
	if err != nil {
		return Statement{}, err
	}
	indexPart, err := p.parseIndexPart()
	if err != nil {
		return Statement{}, err
	}
	fPart, err := p.parseFPart()
	if err != nil {
		return Statement{}, err
	}

	lexeme := p.scanIgnoreWhitespace()
	if lexeme.Token != EOL && lexeme.Token != EOF {
		return Statement{}, p.errorf("expected end of line, got %s %q", lexeme.Token, lexeme.Literal)
	}

	return Statement{
		Symbol: symbol,
		Mix: &MixPart{
			Op:        op,
			APart:     aPart,
			IndexPart: indexPart,
			FPart:     fPart,
		},
	}, nil
}

func (p *Parser) parseWValueStatement(symbol *Symbol, build func(*Symbol, *WValue) Statement) (Statement, error) {
	p.swallowWhitespace()

	w, err := p.parseWValue()
	if err != nil {
		return Statement{}, err
	}
	if w == nil {
		return Statement{}, p.errorf("expected W-value")
	}

	lexeme := p.scanIgnoreWhitespace()
	if lexeme.Token != EOL && lexeme.Token != EOF {
		return Statement{}, p.errorf("expected end of line")
	}

	return build(symbol, w), nil
}

func (p *Parser) parseAlfStatement(symbol *Symbol) (Statement, error) {
	p.swallowWhitespace()

	lexeme := p.scan()
	if lexeme.Token != STRINGLITERAL {
		return Statement{}, p.errorf("expected string literal after ALF")
	}
	charCode := lexeme.Literal

	lexeme = p.scanIgnoreWhitespace()
	if lexeme.Token != EOL && lexeme.Token != EOF {
		return Statement{}, p.errorf("expected end of line")
	}

	inner := charCode
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}
	return Statement{Symbol: symbol, IsAlf: true, Alf: inner}, nil
}

func (p *Parser) parseAPart() (Node, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if expr != nil {
		return expr, nil
	}

	quote := p.scan()
	if quote.Token != LITERALQUOTE {
		p.unscan()
		return nil, nil
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, p.errorf("expected expression after literal quote")
	}
	closing := p.scan()
	if closing.Token != LITERALQUOTE {
		return nil, p.errorf("expected closing literal quote")
	}
	return LiteralConstantNode{Value: value}, nil
}

func (p *Parser) parseIndexPart() (Node, error) {
	comma := p.scan()
	if comma.Token != COMMA {
		p.unscan()
		return nil, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if expr == nil {
		return nil, p.errorf("expected expression after comma")
	}
	return expr, nil
}

func (p *Parser) parseFPart() (Node, error) {
	lparen := p.scan()
	if lparen.Token != LPAREN {
		p.unscan()
		return nil, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if expr == nil {
		return nil, p.errorf("expected expression after (")
	}
	rparen := p.scan()
	if rparen.Token != RPAREN {
		return nil, p.errorf("expected closing )")
	}
	return expr, nil
}

func (p *Parser) parseWValue() (*WValue, error) {
	part, err := p.parseWValuePart()
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, nil
	}

	parts := []WValuePart{*part}
	for {
		comma := p.scan()
		if comma.Token != COMMA {
			p.unscan()
			return &WValue{Parts: parts}, nil
		}

		next, err := p.parseWValuePart()
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, p.errorf("expected W-value part after comma")
		}
		parts = append(parts, *next)
	}
}

func (p *Parser) parseWValuePart() (*WValuePart, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if expr == nil {
		return nil, nil
	}
	fPart, err := p.parseFPart()
	if err != nil {
		return nil, err
	}
	return &WValuePart{Expression: expr, FieldSpec: fPart}, nil
}

func (p *Parser) parseExpression() (Node, error) {
	node, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if node == nil {
		lexeme := p.scan()
		if lexeme.Token == PLUS || lexeme.Token == MINUS {
			atom, err := p.parseAtom()
			if err != nil {
				return nil, err
			}
			if atom == nil {
				return nil, p.errorf("expected atom after unary %s", lexeme.Token)
			}
			node = ExpressionNode{Operator: lexeme.Token, Right: atom}
		} else {
			p.unscan()
			return nil, nil
		}
	}

	return p.parseExpressionTail(node)
}

func (p *Parser) parseExpressionTail(head Node) (Node, error) {
	lexeme := p.scan()
	switch lexeme.Token {
	case PLUS, MINUS, ASTERISK, DIVIDE, SHIFTDIVIDE, FIELDSIGN:
		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if atom == nil {
			return nil, p.errorf("expected atom after %s", lexeme.Token)
		}
		expr := ExpressionNode{Left: head, Operator: lexeme.Token, Right: atom}
		return p.parseExpressionTail(expr)
	default:
		p.unscan()
		return head, nil
	}
}

func (p *Parser) parseAtom() (Node, error) {
	lexeme := p.scan()
	switch lexeme.Token {
	case NUMBER:
		value, err := strconv.ParseInt(lexeme.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid number %q", lexeme.Literal)
		}
		return NumberNode{Value: value}, nil
	case STRING:
		return SymbolNode{Symbol: Symbol{Name: lexeme.Literal}}, nil
	case ASTERISK:
		return AsteriskNode{}, nil
	default:
		p.unscan()
		return nil, nil
	}
}

func (p *Parser) parseSymbol() *Symbol {
	lexeme := p.scan()
	if lexeme.Token == STRING {
		return &Symbol{Name: lexeme.Literal}
	}
	if lexeme.Token == WS {
		// On an indented line, a leading name that is not an op code is
		// still the label.
		next := p.scan()
		if next.Token == STRING {
			_, isOp := mix.MnemonicTable[next.Literal]
			switch next.Literal {
			case "EQU", "ORIG", "CON", "ALF", "END":
				isOp = true
			}
			if !isOp {
				return &Symbol{Name: next.Literal}
			}
		}
		p.unscan()
	}
	p.unscan()
	return nil
}

func (p *Parser) parseOpcode() (string, error) {
	lexeme := p.scanIgnoreWhitespace()
	if lexeme.Token != STRING {
		return "", p.errorf("expected op code, got %s %q", lexeme.Token, lexeme.Literal)
	}
	return lexeme.Literal, nil
}

func (p *Parser) swallowWhitespace() {
	lexeme := p.scan()
	if lexeme.Token != WS {
		p.unscan()
	}
}

func (p *Parser) scanIgnoreWhitespace() Lexeme {
	lexeme := p.scan()
	if lexeme.Token == WS {
		return p.scan()
	}
	return lexeme
}

func (p *Parser) scan() Lexeme {
	var value Lexeme
	if n := len(p.unscanned); n > 0 {
		value = p.unscanned[n-1]
		p.unscanned = p.unscanned[:n-1]
	} else {
		value = p.lexer.Scan()
	}
	p.scanned = append(p.scanned, value)
	return value
}

func (p *Parser) unscan() {
	n := len(p.scanned)
	if n == 0 {
		panic("mixal: can't unscan")
	}
	value := p.scanned[n-1]
	p.scanned = p.scanned[:n-1]
	p.unscanned = append(p.unscanned, value)
}

func (p *Parser) errorf(format string, args ...any) *SourceError {
	line, col := p.position()
	return &SourceError{Line: line, Col: col, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) position() (int, int) {
	if n := len(p.scanned); n > 0 {
		last := p.scanned[n-1]
		return last.Line, last.Col
	}
	return 1, 0
}
