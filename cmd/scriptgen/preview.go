// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	previewRunes = 400
	ruleWidth    = 60
)

var (
	previewTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	previewRuleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	previewHintStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
)

// previewText returns the first previewRunes characters of script, with an
// ellipsis when it was cut.
func previewText(script string) string {
	r := []rune(script)
	if len(r) <= previewRunes {
		return script
	}
	return string(r[:previewRunes]) + "..."
}

// renderPreview frames the preview of a saved script for the terminal.
func renderPreview(script, filename string) string {
	rule := previewRuleStyle.Render(strings.Repeat("=", ruleWidth))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(rule + "\n")
	b.WriteString(previewTitleStyle.Render("SCRIPT PREVIEW:") + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(previewText(script) + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(previewHintStyle.Render("Full script saved to "+filename))
	return b.String()
}
