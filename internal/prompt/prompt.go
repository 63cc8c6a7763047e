// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt renders the instruction text sent to the text-generation API
// for a five-section video script.
package prompt

import (
	"strings"
	"text/template"

	"github.com/pdiddy/scriptgen/pkg/types"
)

// SystemMessage is the fixed system role sent with every request.
const SystemMessage = "You are a professional YouTube script writer who creates engaging, well-structured video scripts."

// Defaults applied by the CLI when a flag is not given.
const (
	DefaultLength   = "5-10 minutes"
	DefaultStyle    = "educational"
	DefaultAudience = "general"
)

// scriptPromptTmpl embeds every request field verbatim. Empty fields are
// rendered as-is and simply leave the prompt underspecified.
var scriptPromptTmpl = template.Must(template.New("script").Parse(`
Create a YouTube video script with the following specifications:

**Topic**: {{.Topic}}
**Video Length**: {{.Length}}
**Style**: {{.Style}}
**Target Audience**: {{.Audience}}
**Additional Requirements**: {{.Requirements}}

Please structure the script with the following sections:

1. **HOOK** (First 15 seconds - grab attention)
2. **INTRODUCTION** (Introduce yourself and the topic)
3. **MAIN CONTENT** (Core content broken into clear sections)
4. **CALL TO ACTION** (Subscribe, like, comment prompts)
5. **OUTRO** (Wrap up and next video tease)

For each section, provide:
- The actual script text
- [Stage directions/notes in brackets]
- Estimated timing

Make the script engaging, conversational, and optimized for YouTube retention. Include natural pauses and emphasis points.
`))

// Build renders the script prompt for req. It performs no validation.
func Build(req types.ScriptRequest) string {
	var b strings.Builder
	// Field access on a struct of strings into a Builder cannot fail.
	_ = scriptPromptTmpl.Execute(&b, req)
	return b.String()
}
