package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gozen/pkg/langdetect"
)

func TestByFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		want     string
	}{
		{filename: "index.html", want: langdetect.SyntaxHTML},
		{filename: "site.css", want: langdetect.SyntaxCSS},
		{filename: "theme.scss", want: langdetect.SyntaxSCSS},
		{filename: "page.haml", want: langdetect.SyntaxHaml},
		{filename: "transform.xslt", want: langdetect.SyntaxXSL},
		{filename: "main.go", want: ""},
		{filename: "README", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, langdetect.ByFilename(tt.filename))
		})
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		content  string
		want     string
	}{
		{
			name:    "doctype",
			content: "<!DOCTYPE html>\n<html><body></body></html>",
			want:    langdetect.SyntaxHTML,
		},
		{
			name:    "xml prolog",
			content: "<?xml version=\"1.0\"?>\n<feed></feed>",
			want:    langdetect.SyntaxXML,
		},
		{
			name:    "stylesheet",
			content: "<?xml version=\"1.0\"?>\n<xsl:stylesheet version=\"1.0\"></xsl:stylesheet>",
			want:    langdetect.SyntaxXSL,
		},
		{
			name:    "css rule",
			content: "body {\n  margin: 0;\n}\n",
			want:    langdetect.SyntaxCSS,
		},
		{
			name:    "haml",
			content: "%div\n  %p hello",
			want:    langdetect.SyntaxHaml,
		},
		{
			name:     "file name wins",
			filename: "x.css",
			content:  "<!doctype html>",
			want:     langdetect.SyntaxCSS,
		},
		{
			name:    "prose",
			content: "just words, nothing to expand",
			want:    "",
		},
		{
			name:    "empty",
			content: "  \n",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, langdetect.Detect(tt.filename, []byte(tt.content)))
		})
	}
}
