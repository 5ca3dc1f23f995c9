package csslex

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnterminated is returned for strings and parenthesised groups that run
// past the end of their line or the source.
var ErrUnterminated = errors.New("unterminated token")

// SyntaxError describes where lexing failed.
type SyntaxError struct {
	What   string
	Offset int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d: %v", e.What, e.Offset, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

const matchOperators = "*^|$~"

// lexer walks CSS source one byte at a time.
type lexer struct {
	src    string
	offset int
	pos    int
	tokens []Token
}

// Lex splits source into tokens. Token offsets are shifted by offset so that
// a fragment can be lexed in the coordinates of its enclosing document.
// The tokens cover the whole source without gaps.
func Lex(source string, offset int) ([]Token, error) {
	const initialCapacityDivisor = 3
	lx := &lexer{
		src:    source,
		offset: offset,
		tokens: make([]Token, 0, len(source)/initialCapacityDivisor+1),
	}

	for lx.pos < len(lx.src) {
		if err := lx.next(); err != nil {
			return lx.tokens, err
		}
	}

	return lx.tokens, nil
}

// ToSource concatenates token values back into source text.
func ToSource(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Value)
	}
	return b.String()
}

func (lx *lexer) emit(kind Kind, start int) {
	lx.tokens = append(lx.tokens, Token{
		Kind:  kind,
		Value: lx.src[start:lx.pos],
		Start: lx.offset + start,
		End:   lx.offset + lx.pos,
	})
}

func (lx *lexer) peek(n int) byte {
	if lx.pos+n >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+n]
}

func (lx *lexer) next() error {
	ch := lx.src[lx.pos]

	switch {
	case ch == ' ' || ch == '\t':
		lx.white()
	case ch == '\n' || ch == '\r':
		lx.line()
	case ch == '/':
		lx.comment()
	case ch == '"' || ch == '\'':
		return lx.str()
	case ch == '(':
		return lx.brace()
	case ch == '-' || ch == '.' || isDigit(ch):
		lx.number()
	case isNameChar(ch):
		lx.identifier(lx.pos)
	default:
		lx.operator()
	}

	return nil
}

func (lx *lexer) white() {
	start := lx.pos
	for lx.pos < len(lx.src) && (lx.src[lx.pos] == ' ' || lx.src[lx.pos] == '\t') {
		lx.pos++
	}
	lx.emit(KindWhite, start)
}

func (lx *lexer) line() {
	start := lx.pos
	if lx.src[lx.pos] == '\r' && lx.peek(1) == '\n' {
		lx.pos++
	}
	lx.pos++
	lx.emit(KindLine, start)
}

// comment consumes a block comment, or a lone '/' operator.
func (lx *lexer) comment() {
	start := lx.pos
	if lx.peek(1) != '*' {
		lx.pos++
		lx.emit(KindOperator, start)
		return
	}

	end := strings.Index(lx.src[lx.pos+2:], "*/")
	if end < 0 {
		lx.pos = len(lx.src)
	} else {
		lx.pos += 2 + end + 2
	}
	lx.emit(KindComment, start)
}

// str consumes a quoted string. A newline is allowed only when escaped.
func (lx *lexer) str() error {
	start := lx.pos
	quote := lx.src[lx.pos]
	lx.pos++

	for lx.pos < len(lx.src) {
		switch ch := lx.src[lx.pos]; ch {
		case quote:
			lx.pos++
			lx.emit(KindString, start)
			return nil
		case '\\':
			lx.pos += 2
			if lx.pos <= len(lx.src) && lx.src[lx.pos-1] == '\r' && lx.peek(0) == '\n' {
				lx.pos++
			}
		case '\n', '\r':
			return &SyntaxError{What: "string", Offset: lx.offset + start, Err: ErrUnterminated}
		default:
			lx.pos++
		}
	}

	return &SyntaxError{What: "string", Offset: lx.offset + start, Err: ErrUnterminated}
}

// brace consumes a parenthesised group such as url(...) arguments, honouring
// nested parens and quoted strings.
func (lx *lexer) brace() error {
	start := lx.pos
	depth := 0

	for lx.pos < len(lx.src) {
		switch ch := lx.src[lx.pos]; ch {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				lx.pos++
				lx.emit(KindBrace, start)
				return nil
			}
		case '"', '\'':
			if end := strings.IndexByte(lx.src[lx.pos+1:], ch); end >= 0 {
				lx.pos += end + 1
			}
		}
		lx.pos++
	}

	return &SyntaxError{What: "brace", Offset: lx.offset + start, Err: ErrUnterminated}
}

// identifier consumes a name starting at start; bytes before lx.pos that
// belong to the name were already consumed by the caller.
func (lx *lexer) identifier(start int) {
	if lx.pos == start {
		lx.pos++
	}
	for lx.pos < len(lx.src) && (isNameChar(lx.src[lx.pos]) || isDigit(lx.src[lx.pos])) {
		lx.pos++
	}
	lx.emit(KindIdentifier, start)
}

// number consumes a number. A leading '.' or '-' not followed by a digit is an
// operator or the start of a vendor-prefixed identifier respectively.
func (lx *lexer) number() {
	start := lx.pos
	ch := lx.src[lx.pos]
	point := ch == '.'
	lx.pos++

	nondigit := !isDigit(lx.peek(0))
	switch {
	case point && nondigit:
		lx.emit(KindOperator, start)
		return
	case ch == '-' && nondigit:
		if isNameChar(lx.peek(0)) {
			lx.identifier(start)
		} else {
			lx.emit(KindOperator, start)
		}
		return
	}

	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if c == '.' && !point {
			point = true
		} else if !isDigit(c) {
			break
		}
		lx.pos++
	}
	lx.emit(KindNumber, start)
}

func (lx *lexer) operator() {
	start := lx.pos
	ch := lx.src[lx.pos]
	lx.pos++

	if lx.peek(0) == '=' && strings.IndexByte(matchOperators, ch) >= 0 {
		lx.pos++
		lx.emit(KindMatch, start)
		return
	}

	lx.emit(KindOperator, start)
}

func isNameChar(c byte) bool {
	return c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
