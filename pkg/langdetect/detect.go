// Package langdetect guesses which abbreviation syntax suits a document. It
// uses go-enry to classify files by name and content and maps the result onto
// the syntax names known to the resource store.
package langdetect

import (
	"bytes"
	"regexp"

	"github.com/go-enry/go-enry/v2"
)

// Syntax names returned by Detect.
const (
	SyntaxHTML   = "html"
	SyntaxXML    = "xml"
	SyntaxXSL    = "xsl"
	SyntaxCSS    = "css"
	SyntaxSCSS   = "scss"
	SyntaxSass   = "sass"
	SyntaxLess   = "less"
	SyntaxStylus = "stylus"
	SyntaxHaml   = "haml"
)

// enryLanguages maps go-enry language names to syntaxes.
//
//nolint:gochecknoglobals // Read-only lookup table.
var enryLanguages = map[string]string{
	"HTML":     SyntaxHTML,
	"HTML+ERB": SyntaxHTML,
	"HTML+PHP": SyntaxHTML,
	"Vue":      SyntaxHTML,
	"XML":      SyntaxXML,
	"SVG":      SyntaxXML,
	"XSLT":     SyntaxXSL,
	"CSS":      SyntaxCSS,
	"SCSS":     SyntaxSCSS,
	"Sass":     SyntaxSass,
	"Less":     SyntaxLess,
	"Stylus":   SyntaxStylus,
	"Haml":     SyntaxHaml,
}

// classifierCandidates limits the content classifier to languages with a syntax.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{"HTML", "XML", "XSLT", "CSS", "SCSS", "Less", "Haml"}

//nolint:gochecknoglobals // Compiled once.
var (
	xslPattern  = regexp.MustCompile(`(?i)<xsl:(stylesheet|transform)\b`)
	htmlPattern = regexp.MustCompile(`(?i)<!doctype html|<html[\s>]|<head>|<body[\s>]`)
	cssPattern  = regexp.MustCompile(`(?m)^\s*[^\s<>{}][^<>{}]*\{\s*[\w-]+\s*:[^;{}]+;`)
)

// Detect returns the syntax for a document, or "" when nothing fits. The
// file name is consulted first, then obvious content markers, then the
// go-enry classifier.
func Detect(filename string, content []byte) string {
	if filename != "" {
		if syntax := ByFilename(filename); syntax != "" {
			return syntax
		}
	}

	if syntax := byPattern(content); syntax != "" {
		return syntax
	}

	if !bytes.ContainsAny(content, "<{") {
		return ""
	}
	// The classifier ranks every candidate, so its first pick is only
	// trusted for content that has markup or rule braces at all.
	lang, _ := enry.GetLanguageByClassifier(content, classifierCandidates)
	return enryLanguages[lang]
}

// ByFilename maps a file extension to a syntax.
func ByFilename(filename string) string {
	for _, lang := range enry.GetLanguagesByExtension(filename, nil, nil) {
		if syntax, ok := enryLanguages[lang]; ok {
			return syntax
		}
	}
	return ""
}

func byPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)

	switch {
	case xslPattern.Match(trimmed):
		return SyntaxXSL
	case htmlPattern.Match(trimmed):
		return SyntaxHTML
	case bytes.HasPrefix(trimmed, []byte("<?xml")):
		return SyntaxXML
	case bytes.HasPrefix(trimmed, []byte("%")) && bytes.Contains(trimmed, []byte("\n")):
		return SyntaxHaml
	case cssPattern.Match(trimmed):
		return SyntaxCSS
	default:
		return ""
	}
}
