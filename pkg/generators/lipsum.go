package generators

import (
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/gozen/pkg/abbrev"
	"github.com/yaklabco/gozen/pkg/elements"
	"github.com/yaklabco/gozen/pkg/transform"
)

const defaultLipsumWords = 30

var reLipsum = regexp.MustCompile(`(?i)^lipsum(\d*)([a-z]*)$`) //nolint:gochecknoglobals // compiled once

//nolint:gochecknoglobals // read-only word lists
var (
	commonWords = []string{"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipisicing", "elit"}

	loremWords = []string{
		"exercitationem", "perferendis", "perspiciatis", "laborum", "eveniet",
		"sunt", "iure", "nam", "nobis", "eum", "cum", "officiis", "excepturi",
		"odio", "consectetur", "quasi", "aut", "quisquam", "vel", "eligendi",
		"itaque", "non", "odit", "tempore", "quaerat", "dignissimos", "facilis",
		"neque", "nihil", "expedita", "vitae", "vero", "ipsum", "nisi", "animi",
		"cumque", "pariatur", "velit", "modi", "natus", "iusto", "eaque", "sequi",
		"illo", "sed", "ex", "et", "voluptatibus", "tempora", "veritatis",
		"ratione", "assumenda", "incidunt", "nostrum", "placeat", "aliquid", "fuga",
		"provident", "praesentium", "rem", "necessitatibus", "suscipit", "adipisci",
		"quidem", "possimus", "voluptas", "debitis", "sint", "accusantium", "unde",
		"sapiente", "voluptate", "qui", "aspernatur", "laudantium", "soluta",
		"amet", "quo", "aliquam", "saepe", "culpa", "libero", "ipsa", "dicta",
		"reiciendis", "nesciunt", "doloribus", "autem", "impedit", "minima",
		"maiores", "repudiandae", "ipsam", "obcaecati", "ullam", "enim", "totam",
		"delectus", "ducimus", "quis", "voluptates", "dolores", "molestiae",
		"harum", "dolorem", "quia", "voluptatem", "molestias", "magni",
		"distinctio", "omnis", "illum", "dolorum", "voluptatum", "ea", "quas",
		"quam", "corporis", "quae", "blanditiis", "atque", "deserunt", "laboriosam",
		"earum", "consequuntur", "hic", "cupiditate", "quibusdam", "accusamus",
		"ut", "rerum", "error", "minus", "eius", "ab", "ad", "nemo", "fugit",
		"officia", "at", "in", "id", "quos", "reprehenderit", "numquam", "iste",
		"fugiat", "sit", "inventore", "beatae", "repellendus", "magnam",
		"recusandae", "quod", "explicabo", "doloremque", "aperiam", "consequatur",
		"asperiores", "commodi", "optio", "dolor", "labore", "temporibus",
		"repellat", "veniam", "architecto", "est", "esse", "mollitia", "nulla", "a",
		"similique", "eos", "alias", "dolore", "tenetur", "deleniti", "porro",
		"facere", "maxime", "corrupti",
	}
)

// LipsumOption configures the lorem ipsum generator.
type LipsumOption func(*lipsum)

// WithRand sets the random source, mostly for reproducible output in tests.
func WithRand(r *rand.Rand) LipsumOption {
	return func(l *lipsum) {
		l.rand = r
	}
}

type lipsum struct {
	rand *rand.Rand
}

// Lipsum generates placeholder text for "lipsum[words][element]", for
// example "lipsum", "lipsum10" or "ol>lipsum5*3". Multiplied output without
// an element name is wrapped in "li" inside lists and "p" elsewhere.
func Lipsum(t *transform.Transformer, opts ...LipsumOption) Func {
	l := &lipsum{}
	for _, opt := range opts {
		opt(l)
	}
	if l.rand == nil {
		l.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // placeholder text
	}

	return func(match []string, node *abbrev.Node, syntax string) (elements.Result, error) {
		wordCount := defaultLipsumWords
		if match[1] != "" {
			wordCount, _ = strconv.Atoi(match[1])
		}
		elemName := match[2]
		outputCount := max(node.Count, 1)

		if elemName == "" && node.Parent != nil {
			switch strings.ToLower(node.Parent.Name) {
			case "ul", "ol":
				elemName = "li"
			}
		}
		if elemName == "" && outputCount > 1 {
			elemName = "p"
		}

		items := make([]elements.Resource, 0, outputCount)
		for i := range outputCount {
			text := elemName + "{" + l.paragraph(wordCount, i == 0) + "}"
			tree, err := t.CreateParsedTreeFromString(text, syntax, node.Parent)
			if err != nil {
				return elements.None(), err
			}
			for _, child := range tree.Children {
				child.Parent = nil
				items = append(items, child)
			}
		}
		return elements.List(items...), nil
	}
}

// paragraph returns wordCount words split into sentences. The first
// paragraph opens with the classic "Lorem ipsum" sentence.
func (l *lipsum) paragraph(wordCount int, startWithCommon bool) string {
	var (
		result []string
		total  int
	)

	if startWithCommon {
		words := append([]string(nil), commonWords[:min(wordCount, len(commonWords))]...)
		if len(words) > 5 {
			words[4] += ","
		}
		total += len(words)
		result = append(result, sentence(words, "."))
	}

	for total < wordCount {
		words := l.sample(min(l.between(3, 12)*l.between(1, 5), wordCount-total))
		total += len(words)
		l.insertCommas(words)
		result = append(result, sentence(words, l.ending()))
	}

	return strings.Join(result, " ")
}

func (l *lipsum) between(from, to int) int {
	return from + l.rand.IntN(to-from+1)
}

// sample picks count distinct words.
func (l *lipsum) sample(count int) []string {
	count = min(count, len(loremWords))
	words := make([]string, 0, count)
	for _, ix := range l.rand.Perm(len(loremWords))[:count] {
		words = append(words, loremWords[ix])
	}
	return words
}

// ending favours full stops over question and exclamation marks.
func (l *lipsum) ending() string {
	endings := "?!..."
	i := l.rand.IntN(len(endings))
	return endings[i : i+1]
}

func (l *lipsum) insertCommas(words []string) {
	n := len(words)
	var commas int
	switch {
	case n <= 3:
		return
	case n <= 6:
		commas = l.between(0, 1)
	case n <= 12:
		commas = l.between(0, 2)
	default:
		commas = l.between(1, 4)
	}

	// Never after the last word: it takes the sentence ending.
	for _, ix := range l.rand.Perm(n - 1)[:min(commas, n-1)] {
		words[ix] += ","
	}
}

func sentence(words []string, end string) string {
	if len(words) > 0 && words[0] != "" {
		words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	}
	return strings.Join(words, " ") + end
}
