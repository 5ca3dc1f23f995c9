package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gozen/pkg/abbrev"
	"github.com/yaklabco/gozen/pkg/fsutil"
	"github.com/yaklabco/gozen/pkg/zen"
)

func TestEditDocument(t *testing.T) {
	t.Parallel()

	const css = "body { margin: 0 }\n.nav a { color: red; }"
	const xml = "<p>x</p>\n<img src=\"a.png\" alt=\"\">"

	tests := []struct {
		name    string
		target  string
		content string
		pos     int
		ops     edits
		want    string
		rule    string
		items   []editElement
	}{
		{
			name:    "css listing",
			target:  editCSS,
			content: css,
			pos:     8,
			want:    css,
			rule:    "body",
			items:   []editElement{{Name: "margin", Value: "0"}},
		},
		{
			name:    "css set and remove",
			target:  editCSS,
			content: css,
			pos:     strings.Index(css, "red"),
			ops:     edits{set: []string{"color=blue"}, rename: ".nav b"},
			want:    "body { margin: 0 }\n.nav b { color: blue; }",
			rule:    ".nav b",
			items:   []editElement{{Name: "color", Value: "blue"}},
		},
		{
			name:    "xml set keeps neighbours",
			target:  editXML,
			content: xml,
			pos:     strings.Index(xml, "src"),
			ops:     edits{set: []string{"alt=logo"}, remove: []string{"src"}},
			want:    "<p>x</p>\n<img alt=\"logo\">",
			rule:    "img",
			items:   []editElement{{Name: "alt", Value: "logo"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, res, err := editDocument(tt.target, tt.content, tt.pos, tt.ops)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rule, res.Name)
			assert.Equal(t, tt.items, res.Elements)
			assert.Equal(t, tt.content[res.Start:res.End], res.Before)
		})
	}
}

func TestEditDocumentErrors(t *testing.T) {
	t.Parallel()

	_, _, err := editDocument(editCSS, "no rules here", 3, edits{})
	require.ErrorIs(t, err, ErrNothingAtPosition)

	_, _, err = editDocument(editCSS, "a { color: red }", 5, edits{set: []string{"color"}})
	require.ErrorIs(t, err, ErrInvalidEdit)

	_, _, err = editDocument("json", "{}", 0, edits{})
	require.Error(t, err)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{err: nil, want: ExitSuccess},
		{err: fmt.Errorf("%w: bad", ErrConfig), want: ExitConfigError},
		{err: fmt.Errorf("read: %w", fsutil.ErrNotFound), want: ExitIOError},
		{err: fsutil.ErrModified, want: ExitIOError},
		{err: ErrNoInput, want: ExitInvalidUsage},
		{err: fmt.Errorf("%w: at 3", abbrev.ErrInvalidAbbreviation), want: ExitInvalidUsage},
		{err: zen.ErrCancelled, want: ExitCancelled},
		{err: errors.New("boom"), want: ExitFailure},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err), "%v", tt.err)
	}
}
