package expr

import (
	"strconv"

	"github.com/jacoelho/jaccs/internal/dots"
)

// RootName is the only name an expression may reference. It is bound to the
// wrapped root value at evaluation time.
const RootName = "_"

type parserState struct {
	tokens []token
	pos    int
}

func parse(input string) ([]dots.Key, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}

	state := parserState{tokens: tokens}
	if state.current().typ == tokenEOF {
		return nil, expressionError("expression is empty")
	}

	if err := state.parseRoot(); err != nil {
		return nil, err
	}

	var steps []dots.Key
	for state.current().typ != tokenEOF {
		step, err := state.parseStep()
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	return steps, nil
}

func (p *parserState) parseRoot() error {
	tok := p.advance()
	if tok.typ != tokenIdentifier {
		return expressionError("expression must start with %q, got %s at position %d", RootName, tok.typ, tok.pos)
	}
	if tok.literal != RootName {
		return expressionError("unknown name %q at position %d, only %q is defined", tok.literal, tok.pos, RootName)
	}
	return nil
}

func (p *parserState) parseStep() (dots.Key, error) {
	tok := p.advance()
	switch tok.typ {
	case tokenDot:
		name := p.advance()
		if name.typ != tokenIdentifier {
			return dots.Key{}, expressionError("expected field name after '.' at position %d, got %s", name.pos, name.typ)
		}
		return dots.Field(name.literal), nil
	case tokenLBracket:
		step, err := p.parseSubscript()
		if err != nil {
			return dots.Key{}, err
		}
		if closing := p.advance(); closing.typ != tokenRBracket {
			return dots.Key{}, expressionError("missing closing ']' at position %d", closing.pos)
		}
		return step, nil
	default:
		return dots.Key{}, expressionError("unexpected %s at position %d", tok.typ, tok.pos)
	}
}

func (p *parserState) parseSubscript() (dots.Key, error) {
	tok := p.current()
	switch tok.typ {
	case tokenString:
		p.advance()
		return dots.Name(tok.literal), nil
	case tokenInteger:
		p.advance()
		index, err := parseInteger(tok)
		if err != nil {
			return dots.Key{}, err
		}
		if p.current().typ != tokenColon {
			return dots.Index(index), nil
		}
		return p.parseSlice(dots.Span{Start: index, HasStart: true})
	case tokenColon:
		return p.parseSlice(dots.Span{})
	default:
		return dots.Key{}, expressionError("expected index, string or slice at position %d, got %s", tok.pos, tok.typ)
	}
}

// parseSlice continues after the optional start bound, positioned on the
// first ':'.
func (p *parserState) parseSlice(span dots.Span) (dots.Key, error) {
	p.advance()

	if tok := p.current(); tok.typ == tokenInteger {
		p.advance()
		end, err := parseInteger(tok)
		if err != nil {
			return dots.Key{}, err
		}
		span.End, span.HasEnd = end, true
	}

	if p.current().typ != tokenColon {
		return dots.Slice(span), nil
	}
	p.advance()

	if tok := p.current(); tok.typ == tokenInteger {
		p.advance()
		step, err := parseInteger(tok)
		if err != nil {
			return dots.Key{}, err
		}
		if step == 0 {
			return dots.Key{}, expressionError("slice step cannot be zero at position %d", tok.pos)
		}
		span.Step = step
	}

	return dots.Slice(span), nil
}

func parseInteger(tok token) (int, error) {
	value, err := strconv.Atoi(tok.literal)
	if err != nil {
		return 0, expressionError("invalid integer %q at position %d", tok.literal, tok.pos)
	}
	return value, nil
}

func (p *parserState) current() token {
	if p.pos >= len(p.tokens) {
		return token{typ: tokenEOF, pos: len(p.tokens)}
	}
	return p.tokens[p.pos]
}

func (p *parserState) advance() token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}
