package expr

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenIdentifier
	tokenInteger
	tokenString
	tokenDot
	tokenLBracket
	tokenRBracket
	tokenColon
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "end of expression"
	case tokenIdentifier:
		return "identifier"
	case tokenInteger:
		return "integer"
	case tokenString:
		return "string"
	case tokenDot:
		return "'.'"
	case tokenLBracket:
		return "'['"
	case tokenRBracket:
		return "']'"
	case tokenColon:
		return "':'"
	default:
		return "unknown token"
	}
}

type token struct {
	typ     tokenType
	literal string
	pos     int
}

func lex(input string) ([]token, error) {
	tokens := make([]token, 0, len(input)/2)
	pos := 0

	for pos < len(input) {
		r, size := utf8.DecodeRuneInString(input[pos:])
		if unicode.IsSpace(r) {
			pos += size
			continue
		}

		if isIdentifierStart(r) {
			start := pos
			pos += size
			for pos < len(input) {
				next, nextSize := utf8.DecodeRuneInString(input[pos:])
				if !isIdentifierPart(next) {
					break
				}
				pos += nextSize
			}
			tokens = append(tokens, token{typ: tokenIdentifier, literal: input[start:pos], pos: start})
			continue
		}

		if isNumberStart(input, pos) {
			numberToken, nextPos, err := lexInteger(input, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, numberToken)
			pos = nextPos
			continue
		}

		if input[pos] == '\'' || input[pos] == '"' {
			literal, nextPos, err := lexString(input, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{typ: tokenString, literal: literal, pos: pos})
			pos = nextPos
			continue
		}

		switch input[pos] {
		case '.':
			tokens = append(tokens, token{typ: tokenDot, pos: pos})
		case '[':
			tokens = append(tokens, token{typ: tokenLBracket, pos: pos})
		case ']':
			tokens = append(tokens, token{typ: tokenRBracket, pos: pos})
		case ':':
			tokens = append(tokens, token{typ: tokenColon, pos: pos})
		default:
			return nil, expressionError("unexpected character %q at position %d", r, pos)
		}
		pos++
	}

	tokens = append(tokens, token{typ: tokenEOF, pos: len(input)})
	return tokens, nil
}

func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentifierPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isNumberStart(input string, pos int) bool {
	if pos >= len(input) {
		return false
	}
	if input[pos] >= '0' && input[pos] <= '9' {
		return true
	}
	if input[pos] == '-' || input[pos] == '+' {
		return pos+1 < len(input) && input[pos+1] >= '0' && input[pos+1] <= '9'
	}
	return false
}

func lexInteger(input string, start int) (token, int, error) {
	pos := start
	if input[pos] == '-' || input[pos] == '+' {
		pos++
	}

	for pos < len(input) && input[pos] >= '0' && input[pos] <= '9' {
		pos++
	}

	if pos < len(input) && (input[pos] == '.' || input[pos] == 'e' || input[pos] == 'E') {
		return token{}, 0, expressionError("index must be an integer at position %d", start)
	}

	return token{typ: tokenInteger, literal: input[start:pos], pos: start}, pos, nil
}

func lexString(input string, start int) (string, int, error) {
	quote := input[start]
	var b strings.Builder

	for pos := start + 1; pos < len(input); pos++ {
		ch := input[pos]
		if ch == quote {
			return b.String(), pos + 1, nil
		}

		if ch == '\\' {
			pos++
			if pos >= len(input) {
				return "", 0, expressionError("unterminated escape sequence at position %d", start)
			}
			escaped := input[pos]
			switch escaped {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(escaped)
			}
			continue
		}

		if ch == '\n' || ch == '\r' {
			return "", 0, expressionError("unterminated string at position %d", start)
		}

		b.WriteByte(ch)
	}

	return "", 0, expressionError("unterminated string at position %d", start)
}
