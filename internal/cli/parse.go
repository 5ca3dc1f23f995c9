package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gozen/pkg/abbrev"
	"github.com/yaklabco/gozen/pkg/config"
	"github.com/yaklabco/gozen/pkg/elements"
)

type parseFlags struct {
	transform bool
	dump      bool
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse <abbreviation>",
		Short: "Show the tree an abbreviation parses into",
		Long: `Parse an abbreviation and print its node tree, one node per line,
indented by depth.

With --transform the tree is resolved against the vocabulary and rolled
out, so repeated elements appear once per copy and implicit names are
filled in. With --dump the Go structures are printed in full.`,
		Example: `  gozen parse 'div>(ul>li*2)+p'
  gozen parse --transform 'ul>.item*2'
  gozen parse -f json 'a[href=#]{go}'`,
		Annotations: map[string]string{annotationOperators: ""},
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.transform, "transform", false, "show the rolled-out output tree")
	cmd.Flags().BoolVar(&flags.dump, "dump", false, "dump the Go structures")

	return cmd
}

func runParse(cmd *cobra.Command, abbr string, flags *parseFlags) error {
	a, err := loadApp(cmd, nil)
	if err != nil {
		return err
	}

	var tree any
	if flags.transform {
		out, err := a.engine.Transformer().TransformString(abbr, a.cfg.Syntax, nil)
		if err != nil {
			return err
		}
		tree = out
	} else {
		node, err := abbrev.Parse(abbr)
		if err != nil {
			return err
		}
		tree = node
	}

	if flags.dump {
		dumper := spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		}
		dumper.Fdump(a.out, tree)
		return nil
	}

	if a.format() == config.FormatJSON {
		switch t := tree.(type) {
		case *abbrev.Node:
			return writeJSON(a.out, jsonNode(t))
		case *elements.OutputNode:
			return writeJSON(a.out, jsonOutputNode(t))
		}
	}

	switch t := tree.(type) {
	case *abbrev.Node:
		_, err = io.WriteString(a.out, t.String())
	case *elements.OutputNode:
		var b strings.Builder
		outline(&b, t, 0)
		_, err = io.WriteString(a.out, b.String())
	}
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

type treeNode struct {
	Name       string               `json:"name,omitempty"`
	Attributes []elements.Attribute `json:"attributes,omitempty"`
	Text       string               `json:"text,omitempty"`
	Count      int                  `json:"count,omitempty"`
	Repeating  bool                 `json:"repeating,omitempty"`
	Snippet    bool                 `json:"snippet,omitempty"`
	Children   []treeNode           `json:"children,omitempty"`
}

func jsonNode(n *abbrev.Node) treeNode {
	out := treeNode{Name: n.Name, Text: n.Text, Count: n.Count, Repeating: n.IsRepeating}
	for _, attr := range n.Attributes {
		out.Attributes = append(out.Attributes, elements.Attribute{Name: attr.Name, Value: attr.Value})
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, jsonNode(child))
	}
	return out
}

func jsonOutputNode(n *elements.OutputNode) treeNode {
	out := treeNode{
		Name:       n.Name,
		Attributes: n.Attributes,
		Text:       n.Content,
		Count:      n.Counter,
		Repeating:  n.IsRepeating,
		Snippet:    n.Type == elements.NodeSnippet,
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, jsonOutputNode(child))
	}
	return out
}

// outline writes one line per output node: name, attributes, then content.
func outline(b *strings.Builder, n *elements.OutputNode, depth int) {
	if n.Parent != nil {
		b.WriteString(strings.Repeat("  ", depth-1))

		name := n.Name
		if n.Type == elements.NodeSnippet {
			name = "(snippet " + n.Name + ")"
		}
		b.WriteString(name)
		for _, attr := range n.Attributes {
			fmt.Fprintf(b, " %s=%q", attr.Name, attr.Value)
		}
		if n.Content != "" {
			fmt.Fprintf(b, " %q", n.Content)
		}
		if n.IsRepeating {
			fmt.Fprintf(b, " #%d", n.Counter)
		}
		b.WriteByte('\n')
	}

	for _, child := range n.Children {
		outline(b, child, depth+1)
	}
}
