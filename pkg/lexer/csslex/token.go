// Package csslex is a character-level CSS scanner producing tokens with
// absolute source offsets.
package csslex

import (
	"github.com/yaklabco/gozen/pkg/textrange"
)

// Kind classifies a CSS token.
type Kind uint8

// Token kinds produced by Lex. Optimize adds KindSelector and KindValue.
const (
	KindWhite      Kind = iota // spaces and tabs
	KindLine                   // a single newline sequence
	KindComment                // /* ... */
	KindString                 // quoted string including quotes
	KindBrace                  // parenthesised group including parens
	KindIdentifier             // name, possibly with a leading '-'
	KindNumber                 // integer or decimal number
	KindMatch                  // attribute match operator such as ^=
	KindOperator               // single punctuation character
	KindSelector               // accumulated selector text
	KindValue                  // accumulated property value
)

func (k Kind) String() string {
	switch k {
	case KindWhite:
		return "white"
	case KindLine:
		return "line"
	case KindComment:
		return "comment"
	case KindString:
		return "string"
	case KindBrace:
		return "brace"
	case KindIdentifier:
		return "identifier"
	case KindNumber:
		return "number"
	case KindMatch:
		return "match"
	case KindOperator:
		return "operator"
	case KindSelector:
		return "selector"
	case KindValue:
		return "value"
	default:
		return "unknown"
	}
}

// Token is a classified span of CSS source.
type Token struct {
	Kind  Kind
	Value string

	// Start and End are byte offsets into the lexed source plus the lex offset.
	Start int
	End   int
}

// Range returns the token span.
func (t Token) Range() textrange.Range {
	return textrange.New(t.Start, t.End)
}

// Is reports whether t is the operator op.
func (t Token) Is(op string) bool {
	return t.Kind == KindOperator && t.Value == op
}

// IsSpace reports whether t carries no meaning for the parser.
func (t Token) IsSpace() bool {
	return t.Kind == KindWhite || t.Kind == KindLine
}
