// Package xmllex is a state-machine tokenizer for XML and HTML fragments.
// It never fails: malformed markup degrades into text tokens.
package xmllex

import (
	"github.com/yaklabco/gozen/pkg/textrange"
)

// Kind classifies an XML token.
type Kind uint8

// Token kinds produced by Lex.
const (
	KindWhitespace  Kind = iota // spaces, tabs and newlines
	KindText                    // character data
	KindEntity                  // &name; reference
	KindPunctuation             // < </ > /> ?> =
	KindTagName                 // element name after < or </
	KindAttrName                // attribute name inside a tag
	KindAttrValue               // attribute value, quotes included when present
	KindName                    // any other name inside a tag
	KindComment                 // <!-- ... -->
	KindCData                   // <![CDATA[ ... ]]>
	KindDoctype                 // <!DOCTYPE ... >
	KindProcessing              // <? ... ?>
)

func (k Kind) String() string {
	switch k {
	case KindWhitespace:
		return "whitespace"
	case KindText:
		return "xml-text"
	case KindEntity:
		return "xml-entity"
	case KindPunctuation:
		return "xml-punctuation"
	case KindTagName:
		return "xml-tagname"
	case KindAttrName:
		return "xml-attname"
	case KindAttrValue:
		return "xml-attribute"
	case KindName:
		return "xml-name"
	case KindComment:
		return "xml-comment"
	case KindCData:
		return "xml-cdata"
	case KindDoctype:
		return "xml-doctype"
	case KindProcessing:
		return "xml-processing"
	default:
		return "unknown"
	}
}

// Token is a classified span of markup.
type Token struct {
	Kind  Kind
	Value string
	Start int
	End   int
}

// Range returns the token span.
func (t Token) Range() textrange.Range {
	return textrange.New(t.Start, t.End)
}

// Is reports whether t is the punctuation p.
func (t Token) Is(p string) bool {
	return t.Kind == KindPunctuation && t.Value == p
}

// IsQuoted reports whether t is an attribute value wrapped in quotes.
func (t Token) IsQuoted() bool {
	if t.Kind != KindAttrValue || t.Value == "" {
		return false
	}
	return t.Value[0] == '"' || t.Value[0] == '\''
}
