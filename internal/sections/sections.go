// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sections splits a free-text script response into its named parts.
//
// The splitter is a best-effort, single-pass heuristic that depends on the
// model marking section headers with Markdown bold (**) or heading (#)
// markers. It does not handle nested headers, out-of-order sections, or
// unmarked headers. A section whose header never appears is reported as not
// found rather than as an error.
package sections

import (
	"strings"

	"github.com/pdiddy/scriptgen/pkg/types"
)

// boundaryKeywords end a section when they appear on a marked line. MAIN and
// CALL are matched alone so loosely worded headers still terminate.
var boundaryKeywords = []string{"HOOK", "INTRODUCTION", "MAIN", "CALL", "OUTRO"}

// Result is the outcome of extracting one section.
type Result struct {
	Name types.SectionName

	// Text is the trimmed body between the header and the next marked
	// section header. It may be empty even when Found is true.
	Text string

	// Found reports whether a header line for Name was seen.
	Found bool
}

// Value returns Text, or types.SectionNotFound when no header was seen.
func (r Result) Value() string {
	if !r.Found {
		return types.SectionNotFound
	}
	return r.Text
}

// Extract scans text line by line for the section called name.
//
// A line containing name (case-insensitive) and a markup marker opens the
// section; the header line itself is dropped. Subsequent lines are collected
// until a marked line mentions any section keyword.
func Extract(text string, name types.SectionName) Result {
	target := strings.ToUpper(string(name))
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	res := Result{Name: name}
	var body []string
	inSection := false

	for _, line := range lines {
		upper := strings.ToUpper(line)
		marked := hasMarker(line)

		switch {
		case marked && strings.Contains(upper, target):
			inSection = true
			res.Found = true
		case inSection && marked && containsKeyword(upper):
			res.Text = strings.TrimSpace(strings.Join(body, "\n"))
			return res
		case inSection:
			body = append(body, line)
		}
	}

	res.Text = strings.TrimSpace(strings.Join(body, "\n"))
	return res
}

// ExtractAll extracts every script section in types.ScriptSections order.
func ExtractAll(text string) []Result {
	results := make([]Result, 0, len(types.ScriptSections))
	for _, name := range types.ScriptSections {
		results = append(results, Extract(text, name))
	}
	return results
}

// hasMarker reports whether line carries a bold or heading marker.
func hasMarker(line string) bool {
	return strings.Contains(line, "**") || strings.Contains(line, "#")
}

func containsKeyword(upper string) bool {
	for _, kw := range boundaryKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}
