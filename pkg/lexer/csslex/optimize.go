package csslex

// Optimize folds raw tokens into the shape used by CSS editing: the run of
// tokens before '{' becomes a single KindSelector token and every run after a
// ':' inside a rule becomes a single KindValue token. Whitespace is attached to
// an accumulated token only when more content follows it, so selectors and
// values never carry leading or trailing space.
func Optimize(tokens []Token) []Token {
	opt := optimizer{
		result:   make([]Token, 0, len(tokens)),
		selector: -1,
		value:    -1,
	}

	for _, tok := range tokens {
		opt.feed(tok)
	}
	opt.flushPending()

	return opt.result
}

type optimizer struct {
	result   []Token
	pending  []Token
	selector int
	value    int
	inRules  bool
	inValue  bool
}

func (o *optimizer) feed(tok Token) {
	if tok.IsSpace() {
		if o.selector >= 0 || o.value >= 0 {
			o.pending = append(o.pending, tok)
		} else {
			o.result = append(o.result, tok)
		}
		return
	}

	switch {
	case tok.Is("{"):
		o.inRules = true
		o.closeAccumulators()
		o.push(tok)
	case o.inRules:
		switch {
		case tok.Is(":") && !o.inValue:
			o.inValue = true
			o.push(tok)
		case tok.Is(";"):
			o.inValue = false
			o.closeAccumulators()
			o.push(tok)
		case tok.Is("}"):
			o.inValue = false
			o.inRules = false
			o.closeAccumulators()
			o.push(tok)
		case o.inValue || o.value >= 0:
			o.accumulate(tok, KindValue, &o.value)
		default:
			o.push(tok)
		}
	case o.selector >= 0 || (!isStopToken(tok) && tok.Kind != KindComment):
		o.accumulate(tok, KindSelector, &o.selector)
	default:
		o.push(tok)
	}
}

func (o *optimizer) accumulate(tok Token, kind Kind, index *int) {
	if *index < 0 {
		o.push(Token{Kind: kind, Value: tok.Value, Start: tok.Start, End: tok.End})
		*index = len(o.result) - 1
		return
	}

	acc := &o.result[*index]
	for _, space := range o.pending {
		acc.Value += space.Value
	}
	o.pending = o.pending[:0]
	acc.Value += tok.Value
	acc.End = tok.End
}

// push appends a standalone token, emitting any pending whitespace first.
func (o *optimizer) push(tok Token) {
	o.flushPending()
	o.result = append(o.result, tok)
}

func (o *optimizer) flushPending() {
	o.result = append(o.result, o.pending...)
	o.pending = o.pending[:0]
}

func (o *optimizer) closeAccumulators() {
	o.selector = -1
	o.value = -1
}

func isStopToken(tok Token) bool {
	return tok.Is("{") || tok.Is("}") || tok.Is(";") || tok.Is(":")
}
