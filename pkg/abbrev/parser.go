package abbrev

import (
	"regexp"
	"strconv"
	"strings"
)

//nolint:gochecknoglobals // Compiled patterns are read-only.
var (
	reValidName  = regexp.MustCompile(`(?i)^[\w\-$:@!]+\+?$`)
	reMultiplier = regexp.MustCompile(`\*(\d+)?$`)
	reWord       = regexp.MustCompile(`^[\w\-:$]+`)
	reQuoted     = regexp.MustCompile(`^(?:"((?:[^"\\]|\\.)*)"|'((?:[^'\\]|\\.)*)')`)
)

// maxAttributes bounds the attribute extraction loop so malformed input always
// terminates.
const maxAttributes = 100

// parser holds the scan state for one abbreviation.
type parser struct {
	src     string
	root    *Node
	context *Node
	groups  []*Node
	token   strings.Builder

	textLevel int
	attrLevel int
}

// Parse builds an optimized tree from abbr. The returned root node is an
// empty container whose children are the top-level abbreviation nodes.
//
// Operators inside {...} and [...] are literal. Unbalanced closing brackets
// are ignored rather than reported.
func Parse(abbr string) (*Node, error) {
	root := NewNode()
	p := &parser{
		src:    abbr,
		root:   root,
		groups: []*Node{root},
	}
	p.context = root.AddChild(nil)

	for i := 0; i < len(abbr); i++ {
		ch := abbr[i]
		var prev byte
		if i > 0 {
			prev = abbr[i-1]
		}

		var err error
		switch ch {
		case '{':
			if p.attrLevel == 0 {
				p.textLevel++
			}
			p.token.WriteByte(ch)
		case '}':
			if p.attrLevel == 0 && p.textLevel > 0 {
				p.textLevel--
			}
			p.token.WriteByte(ch)
		case '[':
			if p.textLevel == 0 {
				p.attrLevel++
			}
			p.token.WriteByte(ch)
		case ']':
			if p.textLevel == 0 && p.attrLevel > 0 {
				p.attrLevel--
			}
			p.token.WriteByte(ch)
		case '(':
			err = p.openGroup(prev)
		case ')':
			i, err = p.closeGroup(i)
		case '+':
			// A trailing '+' belongs to the token: "ul+" is an expando.
			if p.literal() || i == len(abbr)-1 {
				p.token.WriteByte(ch)
				break
			}
			if err = p.flush(); err == nil {
				p.context = p.context.Parent.AddChild(nil)
			}
		case '>':
			if p.literal() {
				p.token.WriteByte(ch)
				break
			}
			if err = p.flush(); err == nil {
				p.context = p.context.AddChild(nil)
			}
		default:
			p.token.WriteByte(ch)
		}

		if err != nil {
			return nil, err
		}
	}

	if err := p.flush(); err != nil {
		return nil, err
	}

	return Optimize(root), nil
}

func (p *parser) literal() bool {
	return p.textLevel > 0 || p.attrLevel > 0
}

func (p *parser) flush() error {
	if p.token.Len() == 0 {
		return nil
	}
	token := p.token.String()
	p.token.Reset()
	return p.context.SetAbbreviation(token)
}

func (p *parser) openGroup(prev byte) error {
	if p.literal() {
		p.token.WriteByte('(')
		return nil
	}

	if err := p.flush(); err != nil {
		return err
	}

	if prev != '+' && prev != '>' {
		p.context = p.context.Parent.AddChild(nil)
	}

	p.groups = append(p.groups, p.context)
	p.context = p.context.AddChild(nil)
	return nil
}

// closeGroup ends the current group and applies a following "*N". It returns
// the index of the last consumed byte.
func (p *parser) closeGroup(i int) (int, error) {
	if p.literal() {
		p.token.WriteByte(')')
		return i, nil
	}

	if err := p.flush(); err != nil {
		return i, err
	}

	if len(p.groups) <= 1 {
		return i, nil
	}

	p.context = p.groups[len(p.groups)-1]
	p.groups = p.groups[:len(p.groups)-1]

	if i+1 >= len(p.src) || p.src[i+1] != '*' {
		return i, nil
	}

	j := i + 2
	for j < len(p.src) && isDigit(p.src[j]) {
		j++
	}

	count := 1
	if digits := p.src[i+2 : j]; digits != "" {
		count, _ = strconv.Atoi(digits)
	}

	group := p.context
	for range count - 1 {
		group.Parent.AddChild(group.Clone())
	}

	return j - 1, nil
}

// SetAbbreviation assigns token to the node, extracting the multiplier, name,
// attributes and text from it.
func (n *Node) SetAbbreviation(token string) error {
	n.Abbreviation = token
	expr := token

	if m := reMultiplier.FindStringSubmatchIndex(expr); m != nil {
		n.Count = 1
		if m[2] >= 0 {
			n.Count, _ = strconv.Atoi(expr[m[2]:m[3]])
		} else {
			n.IsRepeating = true
		}
		expr = expr[:m[0]]
	}

	if expr != "" {
		name, text, hasText := splitExpression(expr)
		if hasText {
			n.Text = text
			n.HasText = true
		}

		if name != "" {
			tagName, attrs := parseAttributes(name)
			n.Name = tagName
			n.HasImplicitName = tagName == ""
			if n.HasImplicitName {
				n.Name = ImplicitName
			}
			n.Attributes = attrs
		}
	}

	if n.Name != "" && !reValidName.MatchString(n.Name) {
		return &InvalidAbbreviationError{Token: token, Name: n.Name}
	}

	return nil
}

// splitExpression separates the first top-level {...} segment from expr.
// Anything after the closing brace is dropped.
func splitExpression(expr string) (name, text string, ok bool) {
	if !strings.Contains(expr, "{") {
		return expr, "", false
	}

	var (
		attrLevel  int
		textLevel  int
		braceStack []int
	)

	for i := range len(expr) {
		switch expr[i] {
		case '[':
			if textLevel == 0 {
				attrLevel++
			}
		case ']':
			if textLevel == 0 {
				attrLevel--
			}
		case '{':
			if attrLevel == 0 {
				textLevel++
				braceStack = append(braceStack, i)
			}
		case '}':
			if attrLevel == 0 && len(braceStack) > 0 {
				textLevel--
				start := braceStack[len(braceStack)-1]
				braceStack = braceStack[:len(braceStack)-1]
				if textLevel == 0 {
					return expr[:start], expr[start+1 : i], true
				}
			}
		}
	}

	return expr, "", false
}

// parseAttributes splits "name#id.class[attr=value]" into its name and the
// attribute list. Repeated classes are joined into one class attribute.
func parseAttributes(str string) (string, []Attribute) {
	var (
		name        strings.Builder
		attrs       []Attribute
		classIndex  = -1
		collectName = true
	)

	for i := 0; i < len(str); {
		switch ch := str[i]; ch {
		case '#':
			val := reWord.FindString(str[i+1:])
			attrs = append(attrs, Attribute{Name: "id", Value: val})
			i += len(val) + 1
			collectName = false
		case '.':
			val := reWord.FindString(str[i+1:])
			if classIndex < 0 {
				attrs = append(attrs, Attribute{Name: "class"})
				classIndex = len(attrs) - 1
			}
			if attrs[classIndex].Value != "" && val != "" {
				attrs[classIndex].Value += " "
			}
			attrs[classIndex].Value += val
			i += len(val) + 1
			collectName = false
		case '[':
			end := strings.IndexByte(str[i:], ']')
			if end < 0 {
				return name.String(), attrs
			}
			attrs = append(attrs, extractAttributes(str[i+1:i+end])...)
			i += end + 1
			collectName = false
		default:
			if collectName {
				name.WriteByte(ch)
			}
			i++
		}
	}

	return name.String(), attrs
}

// extractAttributes parses the inside of an [...] attribute set.
func extractAttributes(set string) []Attribute {
	set = strings.TrimSpace(set)
	var result []Attribute

	for loops := 0; set != "" && loops < maxAttributes; loops++ {
		attrName := reWord.FindString(set)
		if attrName == "" {
			break
		}

		attr := Attribute{Name: attrName}
		rest := set[len(attrName):]

		switch {
		case strings.HasPrefix(rest, "="):
			rest = rest[1:]
			if rest != "" && (rest[0] == '"' || rest[0] == '\'') {
				m := reQuoted.FindStringSubmatch(rest)
				if m == nil {
					set = ""
					break
				}
				attr.Value = m[1] + m[2]
				set = strings.TrimSpace(rest[len(m[0]):])
			} else {
				end := strings.IndexFunc(rest, isSpaceRune)
				if end < 0 {
					end = len(rest)
				}
				attr.Value = rest[:end]
				set = strings.TrimSpace(rest[end:])
			}
		default:
			set = strings.TrimSpace(rest)
		}

		result = append(result, attr)
	}

	return result
}

// Optimize removes grouping nodes by splicing their children into the parent
// at the same position, repeating until none remain.
func Optimize(node *Node) *Node {
	for node.hasEmptyChildren() {
		squash(node)
	}
	for _, child := range node.Children {
		Optimize(child)
	}
	return node
}

func squash(node *Node) {
	children := make([]*Node, 0, len(node.Children))
	for _, child := range node.Children {
		if !child.IsEmpty() {
			children = append(children, child)
			continue
		}
		for _, grandchild := range child.Children {
			grandchild.Parent = node
			children = append(children, grandchild)
		}
	}
	node.Children = children
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
