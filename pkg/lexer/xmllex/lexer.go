package xmllex

import (
	"strings"
)

// state is a tokenizer mode. It consumes one token from lx and returns its kind.
type state func(lx *lexer) Kind

type lexer struct {
	src    string
	offset int
	pos    int
	state  state
	tokens []Token

	// tag tracking for name classification
	sawTagName bool
	afterEq    bool
}

// Lex splits source into tokens with offsets shifted by offset. Tokens cover
// the whole source without gaps.
func Lex(source string, offset int) []Token {
	const initialCapacityDivisor = 4
	lx := &lexer{
		src:    source,
		offset: offset,
		state:  inText,
		tokens: make([]Token, 0, len(source)/initialCapacityDivisor+1),
	}

	for lx.pos < len(lx.src) {
		start := lx.pos
		var kind Kind
		if isSpace(lx.src[lx.pos]) {
			for lx.pos < len(lx.src) && isSpace(lx.src[lx.pos]) {
				lx.pos++
			}
			kind = KindWhitespace
		} else {
			kind = lx.state(lx)
		}
		lx.emit(kind, start)
	}

	return lx.tokens
}

func (lx *lexer) emit(kind Kind, start int) {
	lx.tokens = append(lx.tokens, Token{
		Kind:  kind,
		Value: lx.src[start:lx.pos],
		Start: lx.offset + start,
		End:   lx.offset + lx.pos,
	})
}

func (lx *lexer) rest() string {
	return lx.src[lx.pos:]
}

func (lx *lexer) consumeWhile(fn func(byte) bool) {
	for lx.pos < len(lx.src) && fn(lx.src[lx.pos]) {
		lx.pos++
	}
}

// consumeUntil advances past terminator, or to the end of source.
func (lx *lexer) consumeUntil(terminator string) bool {
	idx := strings.Index(lx.rest(), terminator)
	if idx < 0 {
		lx.pos = len(lx.src)
		return false
	}
	lx.pos += idx + len(terminator)
	return true
}

func inText(lx *lexer) Kind {
	rest := lx.rest()

	switch {
	case strings.HasPrefix(rest, "<!--"):
		lx.consumeUntil("-->")
		return KindComment
	case strings.HasPrefix(rest, "<![CDATA["):
		lx.consumeUntil("]]>")
		return KindCData
	case hasPrefixFold(rest, "<!DOCTYPE"):
		lx.consumeUntil(">")
		return KindDoctype
	case strings.HasPrefix(rest, "<?"):
		lx.consumeUntil("?>")
		return KindProcessing
	case strings.HasPrefix(rest, "</"):
		lx.pos += 2
		lx.enterTag()
		return KindPunctuation
	case strings.HasPrefix(rest, "<") && len(rest) > 1 && isNameStart(rest[1]):
		lx.pos++
		lx.enterTag()
		return KindPunctuation
	case rest[0] == '&':
		lx.pos++
		for lx.pos < len(lx.src) && !isSpace(lx.src[lx.pos]) && lx.src[lx.pos] != '<' {
			lx.pos++
			if lx.src[lx.pos-1] == ';' {
				break
			}
		}
		return KindEntity
	default:
		lx.pos++
		lx.consumeWhile(func(c byte) bool { return c != '&' && c != '<' && !isSpace(c) })
		return KindText
	}
}

func (lx *lexer) enterTag() {
	lx.state = inTag
	lx.sawTagName = false
	lx.afterEq = false
}

func inTag(lx *lexer) Kind {
	ch := lx.src[lx.pos]

	switch {
	case ch == '>':
		lx.pos++
		lx.state = inText
		return KindPunctuation
	case (ch == '/' || ch == '?') && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '>':
		lx.pos += 2
		lx.state = inText
		return KindPunctuation
	case ch == '=':
		lx.pos++
		lx.afterEq = true
		return KindPunctuation
	case ch == '"' || ch == '\'':
		lx.pos++
		lx.consumeUntil(string(ch))
		lx.afterEq = false
		return KindAttrValue
	case ch == '<':
		// Unclosed tag: restart in text mode.
		lx.state = inText
		return inText(lx)
	}

	if lx.afterEq {
		lx.afterEq = false
		lx.consumeWhile(func(c byte) bool { return !isSpace(c) && c != '>' })
		return KindAttrValue
	}

	lx.pos++
	lx.consumeWhile(isNameChar)

	switch {
	case !lx.sawTagName:
		lx.sawTagName = true
		return KindTagName
	default:
		return KindAttrName
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNameStart(c byte) bool {
	return c == '_' || c == ':' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isNameChar(c byte) bool {
	return !isSpace(c) && !strings.ContainsRune("=<>\"'/?", rune(c))
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
