package formula

import (
	"strconv"
	"strings"
)

// The parser reads bytes directly from its input; there is no separate token
// stream. These helpers classify and consume the input at the cursor.

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isIdent(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

// opensFactor returns whether c can begin a factor that follows another
// factor with no operator in between, as in 2x, 3sin(x), or 2(x+1).
func opensFactor(c byte) bool {
	return c == '(' || c == '|' || isLetter(c)
}

// skipSpace advances past spaces and tabs.
func (p *Parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

// peek skips whitespace and returns the byte at the cursor without consuming
// it. At the end of the input, the result is 0.
func (p *Parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

// atEnd returns whether only whitespace remains.
func (p *Parser) atEnd() bool {
	p.skipSpace()
	return p.pos >= len(p.src)
}

// scanNum consumes the run of digits and decimal points at the cursor and
// returns its numeric value.
func (p *Parser) scanNum() float64 {
	start := p.pos
	for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	return numPrefix(p.src[start:p.pos])
}

// numPrefix converts the longest prefix of s that is a decimal number. A run
// like 1.2.3 is 1.2, and a run with no digits is 0.
func numPrefix(s string) float64 {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		if j := strings.IndexByte(s[i+1:], '.'); j >= 0 {
			s = s[:i+1+j]
		}
	}
	if strings.Trim(s, ".") == "" {
		return 0
	}
	// Overflow gives ±Inf with ErrRange, which is the value we want.
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// scanIdent consumes the identifier at the cursor.
func (p *Parser) scanIdent() string {
	start := p.pos
	for p.pos < len(p.src) && isIdent(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}
