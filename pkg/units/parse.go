package units

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var superscripts = map[rune]rune{
	'⁰': '0', '¹': '1', '²': '2', '³': '3', '⁴': '4',
	'⁵': '5', '⁶': '6', '⁷': '7', '⁸': '8', '⁹': '9', '⁻': '-', '⁺': '+',
}

// Parse parses exactly one unit expression, e.g. "km", "km s-1", "m / s2", "kg.m**2" or "1".
// Comma-separated lists of units, unknown symbols and numeric scales are rejected with an
// ErrUnitsNotValid error.
func Parse(text string) (Unit, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Unit{}, NewNotValidError(text, errors.New("empty unit"))
	}
	if strings.Contains(trimmed, ",") {
		return Unit{}, NewNotValidError(text, errors.New("multiple units"))
	}
	if trimmed == "dimensionless" {
		return Dimensionless, nil
	}

	p := &parser{in: []rune(trimmed)}
	fs, err := p.expr()
	if err != nil {
		return Unit{}, NewNotValidError(text, err)
	}
	if !p.eof() {
		return Unit{}, NewNotValidError(text, fmt.Errorf("unexpected %q at position %d",
			string(p.in[p.pos]), p.pos))
	}

	return newUnit(fs), nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) Unit {
	u, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return u
}

type parser struct {
	in  []rune
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.in) }

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.in[p.pos]
}

func (p *parser) skipSpace() bool {
	skipped := false
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.pos++
		skipped = true
	}
	return skipped
}

// expr := term { sep term }, where a missing separator means multiplication
func (p *parser) expr() ([]Factor, error) {
	p.skipSpace()
	fs, err := p.term()
	if err != nil {
		return nil, err
	}

	for {
		p.skipSpace()
		if p.eof() || p.peek() == ')' {
			return fs, nil
		}

		invert := false
		switch p.peek() {
		case '*', '.', '·':
			p.pos++
		case '/':
			invert = true
			p.pos++
		}

		p.skipSpace()
		next, err := p.term()
		if err != nil {
			return nil, err
		}
		if invert {
			next = invertFactors(next)
		}
		fs = append(fs, next...)
	}
}

// term := '(' expr ')' [power] | '1' | symbol [power]
func (p *parser) term() ([]Factor, error) {
	if p.eof() {
		return nil, errors.New("unexpected end of unit")
	}

	c := p.peek()
	switch {
	case c == '(':
		p.pos++
		fs, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, errors.New("unbalanced parentheses")
		}
		p.pos++
		pow, err := p.power()
		if err != nil {
			return nil, err
		}
		for i := range fs {
			fs[i].Power *= pow
		}
		return fs, nil

	case unicode.IsDigit(c):
		start := p.pos
		for !p.eof() && unicode.IsDigit(p.peek()) {
			p.pos++
		}
		if num := string(p.in[start:p.pos]); num != "1" {
			return nil, fmt.Errorf("numeric scale %q is not supported", num)
		}
		return []Factor{}, nil

	case unicode.IsLetter(c) || c == '_':
		start := p.pos
		for !p.eof() && (unicode.IsLetter(p.peek()) || p.peek() == '_') {
			p.pos++
		}
		symbol := string(p.in[start:p.pos])
		if !IsKnownSymbol(symbol) {
			return nil, fmt.Errorf("unknown unit %q", symbol)
		}
		pow, err := p.power()
		if err != nil {
			return nil, err
		}
		return []Factor{{Symbol: symbol, Power: pow}}, nil
	}

	return nil, fmt.Errorf("unexpected %q at position %d", string(c), p.pos)
}

// power := [ '**' | '^' ] signed-int | superscript-int | <nothing>
func (p *parser) power() (int, error) {
	save := p.pos
	p.skipSpace()

	explicit := false
	switch {
	case p.peek() == '^':
		p.pos++
		explicit = true
	case p.peek() == '*' && p.pos+1 < len(p.in) && p.in[p.pos+1] == '*':
		p.pos += 2
		explicit = true
	default:
		// implicit powers must follow the symbol immediately
		p.pos = save
	}

	if explicit {
		p.skipSpace()
	}

	digits := []rune{}
	if c, ok := superscripts[p.peek()]; ok && !explicit {
		for !p.eof() {
			c, ok = superscripts[p.peek()]
			if !ok {
				break
			}
			digits = append(digits, c)
			p.pos++
		}
	} else {
		if c := p.peek(); c == '-' || c == '+' {
			digits = append(digits, c)
			p.pos++
		}
		for !p.eof() && unicode.IsDigit(p.peek()) {
			digits = append(digits, p.peek())
			p.pos++
		}
	}

	if len(digits) == 0 {
		if explicit {
			return 0, errors.New("missing exponent")
		}
		return 1, nil
	}

	pow, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0, fmt.Errorf("invalid exponent %q", string(digits))
	}
	return pow, nil
}

func invertFactors(fs []Factor) []Factor {
	ret := make([]Factor, len(fs))
	for i, f := range fs {
		ret[i] = Factor{Symbol: f.Symbol, Power: -f.Power}
	}
	return ret
}
