package formula

import (
	"encoding/binary"
	"math"

	"github.com/zephyrtronium/formula/arena"
)

// expr    = term { ('+' | '-') term }
// term    = power { ('*' | '/' | '%') power | power }
// power   = unary [ '^' power ]
// unary   = '-' power | primary
// primary = number | '(' expr ')' | '|' expr '|' | ident [ '(' expr ')' ]
//
// A power directly after another factor is an implicit multiplication. Unary
// minus takes a power as its operand, so -2^2 is -(2^2).

// Constants recognized by name.
const (
	Pi = 3.14159265358979323846
	E  = 2.71828182845904523536
)

// Parser parses one formula into nodes allocated from an arena. A Parser is
// used once; parse a new formula with a new Parser.
type Parser struct {
	src string
	pos int
	a   *arena.Arena
	// bars is the number of absolute value bars open in the current
	// parenthesized group. While a bar is open, | closes it rather than
	// starting an implicit multiplication.
	bars int
	// err is the first error encountered. It is never replaced.
	err *SyntaxError

	parsed bool
	root   Node
}

// NewParser creates a parser for src that allocates nodes from a.
func NewParser(src string, a *arena.Arena) *Parser {
	return &Parser{src: src, a: a}
}

// Parse parses a formula, allocating its nodes from a. It is a shortcut for
// NewParser(src, a).Parse().
func Parse(src string, a *arena.Arena) (Node, error) {
	return NewParser(src, a).Parse()
}

// Parse parses the entire input. On failure, the result is the zero Node and
// a *SyntaxError describing the first failure. Calling Parse again returns the
// same result.
func (p *Parser) Parse() (Node, error) {
	if p.parsed {
		return p.root, p.Err()
	}
	p.parsed = true
	n, err := p.expr()
	if err != nil {
		return Node{}, err
	}
	if !p.atEnd() {
		return Node{}, p.fail(MsgUnexpectedChar)
	}
	p.root = n
	return n, nil
}

// HasError returns whether parsing has failed.
func (p *Parser) HasError() bool {
	return p.err != nil
}

// Err returns the first parse error, if any.
func (p *Parser) Err() error {
	if p.err == nil {
		return nil
	}
	return p.err
}

// ErrorMessage returns the display form of the first parse error, or the
// empty string if there is none.
func (p *Parser) ErrorMessage() string {
	if p.err == nil {
		return ""
	}
	return p.err.Error()
}

// fail records an error at the cursor unless one is already recorded, and
// returns the recorded error.
func (p *Parser) fail(msg string) error {
	if p.err == nil {
		p.err = &SyntaxError{Msg: msg, Col: p.pos}
	}
	return p.err
}

func (p *Parser) node(k Kind) (Node, error) {
	n, ok := newNode(p.a, k)
	if !ok {
		return Node{}, p.fail(MsgOutOfMemory)
	}
	return n, nil
}

func (p *Parser) num(v float64) (Node, error) {
	n, err := p.node(KindNum)
	if err != nil {
		return Node{}, err
	}
	binary.LittleEndian.PutUint64(n.rec()[offValue:], math.Float64bits(v))
	return n, nil
}

func (p *Parser) variable(name byte) (Node, error) {
	n, err := p.node(KindVar)
	if err != nil {
		return Node{}, err
	}
	n.rec()[offOp] = name
	return n, nil
}

func (p *Parser) neg(operand Node) (Node, error) {
	n, err := p.node(KindNeg)
	if err != nil {
		return Node{}, err
	}
	n.setLink(offLeft, operand)
	return n, nil
}

func (p *Parser) binary(op byte, l, r Node) (Node, error) {
	n, err := p.node(KindBinary)
	if err != nil {
		return Node{}, err
	}
	b := n.rec()
	b[offOp] = op
	n.setLink(offLeft, l)
	n.setLink(offRight, r)
	return n, nil
}

func (p *Parser) call(name string, arg Node) (Node, error) {
	n, err := p.node(KindCall)
	if err != nil {
		return Node{}, err
	}
	if len(name) > MaxName {
		name = name[:MaxName]
	}
	b := n.rec()
	b[offNameLen] = byte(copy(b[offName:offName+MaxName], name))
	n.setLink(offLeft, arg)
	return n, nil
}

func (p *Parser) expr() (Node, error) {
	left, err := p.term()
	if err != nil {
		return Node{}, err
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.term()
		if err != nil {
			return Node{}, err
		}
		left, err = p.binary(op, left, right)
		if err != nil {
			return Node{}, err
		}
	}
}

func (p *Parser) term() (Node, error) {
	left, err := p.power()
	if err != nil {
		return Node{}, err
	}
	for {
		op := p.peek()
		switch {
		case op == '*', op == '/', op == '%':
			p.pos++
		case opensFactor(op) && (op != '|' || p.bars == 0):
			// 2x -> (2) * (x)
			op = '*'
		default:
			return left, nil
		}
		right, err := p.power()
		if err != nil {
			return Node{}, err
		}
		left, err = p.binary(op, left, right)
		if err != nil {
			return Node{}, err
		}
	}
}

func (p *Parser) power() (Node, error) {
	base, err := p.unary()
	if err != nil {
		return Node{}, err
	}
	if p.peek() != '^' {
		return base, nil
	}
	p.pos++
	// Recurse on power rather than unary for right associativity.
	exp, err := p.power()
	if err != nil {
		return Node{}, err
	}
	return p.binary('^', base, exp)
}

func (p *Parser) unary() (Node, error) {
	if p.peek() != '-' {
		return p.primary()
	}
	p.pos++
	operand, err := p.power()
	if err != nil {
		return Node{}, err
	}
	return p.neg(operand)
}

func (p *Parser) primary() (Node, error) {
	c := p.peek()
	switch {
	case p.pos >= len(p.src):
		return Node{}, p.fail(MsgUnexpectedEnd)
	case isDigit(c), c == '.':
		// Allocate before scanning so that exhaustion reports the start of
		// the number.
		n, err := p.num(0)
		if err != nil {
			return Node{}, err
		}
		v := p.scanNum()
		binary.LittleEndian.PutUint64(n.rec()[offValue:], math.Float64bits(v))
		return n, nil
	case c == '(':
		p.pos++
		inner, err := p.group()
		if err != nil {
			return Node{}, err
		}
		if p.peek() != ')' {
			return Node{}, p.fail(MsgExpectedClose)
		}
		p.pos++
		return inner, nil
	case c == '|':
		p.pos++
		p.bars++
		inner, err := p.expr()
		p.bars--
		if err != nil {
			return Node{}, err
		}
		if p.peek() != '|' {
			return Node{}, p.fail(MsgExpectedBar)
		}
		p.pos++
		return p.call("abs", inner)
	case isLetter(c), c == '_':
		return p.ident()
	default:
		return Node{}, p.fail(MsgUnexpectedChar)
	}
}

// group parses an expression inside parentheses, where bars opened outside
// the parentheses cannot be closed.
func (p *Parser) group() (Node, error) {
	bars := p.bars
	p.bars = 0
	n, err := p.expr()
	p.bars = bars
	return n, err
}

func (p *Parser) ident() (Node, error) {
	name := p.scanIdent()
	switch {
	case name == "pi":
		return p.num(Pi)
	case name == "e" && p.peek() != '(':
		return p.num(E)
	case name == "x", name == "y":
		return p.variable(name[0])
	}
	if p.peek() != '(' {
		return Node{}, p.fail(MsgUnknownIdent)
	}
	p.pos++
	arg, err := p.group()
	if err != nil {
		return Node{}, err
	}
	if p.peek() != ')' {
		return Node{}, p.fail(MsgExpectedArgEnd)
	}
	p.pos++
	return p.call(name, arg)
}
