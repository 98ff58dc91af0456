package figure

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/matzehuels/ggframe/pkg/errors"
)

// Parse builds a composition item from an expression such as
// "(a | b) / c - spacer". Operators bind as "/" above "+" and "-" above
// "|", all left associative. Identifiers are looked up in plots; the name
// "spacer" yields a fresh blank plot.
func Parse(expr string, plots map[string]*Plot) (Item, error) {
	p := &parser{plots: plots}
	p.s.Init(strings.NewReader(expr))
	p.s.Mode = scanner.ScanIdents
	p.s.Error = func(_ *scanner.Scanner, msg string) { p.fail("%s", msg) }
	p.next()

	it := p.beside()
	if p.err == nil && p.tok != scanner.EOF {
		p.fail("unexpected %q", p.s.TokenText())
	}
	if p.err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, p.err, "invalid composition %q", expr)
	}
	return it, nil
}

type parser struct {
	s     scanner.Scanner
	tok   rune
	plots map[string]*Plot
	err   error
}

func (p *parser) next() { p.tok = p.s.Scan() }

func (p *parser) fail(format string, args ...any) {
	if p.err == nil {
		p.err = fmt.Errorf("%s: "+format, append([]any{p.s.Position}, args...)...)
	}
}

// beside = sum { "|" sum }
func (p *parser) beside() Item {
	lhs := p.sum()
	for p.err == nil && p.tok == '|' {
		p.next()
		lhs = Or(lhs, p.sum())
	}
	return lhs
}

// sum = stack { ("+" | "-") stack }
func (p *parser) sum() Item {
	lhs := p.stack()
	for p.err == nil && (p.tok == '+' || p.tok == '-') {
		op := p.tok
		p.next()
		rhs := p.stack()
		if op == '+' {
			lhs = Add(lhs, rhs)
		} else {
			lhs = Sub(lhs, rhs)
		}
	}
	return lhs
}

// stack = operand { "/" operand }
func (p *parser) stack() Item {
	lhs := p.operand()
	for p.err == nil && p.tok == '/' {
		p.next()
		lhs = Div(lhs, p.operand())
	}
	return lhs
}

// operand = ident | "(" beside ")"
func (p *parser) operand() Item {
	switch p.tok {
	case scanner.Ident:
		name := p.s.TokenText()
		p.next()
		if name == "spacer" {
			return NewSpacer("")
		}
		pl, ok := p.plots[name]
		if !ok {
			p.fail("unknown plot %q", name)
			return nil
		}
		return pl
	case '(':
		p.next()
		it := p.beside()
		if p.err == nil && p.tok != ')' {
			p.fail("expected ')'")
		}
		p.next()
		return it
	case scanner.EOF:
		p.fail("unexpected end of expression")
	default:
		p.fail("unexpected %q", p.s.TokenText())
	}
	return nil
}
