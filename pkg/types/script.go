// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SectionName identifies one of the five parts of a video script.
type SectionName string

const (
	SectionHook         SectionName = "HOOK"
	SectionIntroduction SectionName = "INTRODUCTION"
	SectionMainContent  SectionName = "MAIN CONTENT"
	SectionCallToAction SectionName = "CALL TO ACTION"
	SectionOutro        SectionName = "OUTRO"
)

// ScriptSections lists the sections in the order they appear in a script.
var ScriptSections = []SectionName{
	SectionHook,
	SectionIntroduction,
	SectionMainContent,
	SectionCallToAction,
	SectionOutro,
}

// SectionNotFound is stored in a record field when the response had no
// header for that section.
const SectionNotFound = "Section not found"

// ScriptRequest holds the user-supplied parameters for one generation.
type ScriptRequest struct {
	// Topic is the subject of the video.
	Topic string `json:"topic" yaml:"topic"`

	// Length is the expected video length (e.g. "5-10 minutes").
	Length string `json:"length" yaml:"length"`

	// Style is the tone of the video (e.g. "educational").
	Style string `json:"style" yaml:"style"`

	// Audience describes who the video is for.
	Audience string `json:"audience" yaml:"audience"`

	// Requirements carries any extra free-text instructions.
	Requirements string `json:"requirements,omitempty" yaml:"requirements,omitempty"`
}

// ScriptRecord is the structured result of one successful generation call.
// FullScript is authoritative; the five section fields are a best-effort
// split of it and may hold SectionNotFound.
type ScriptRecord struct {
	Topic        string    `json:"topic" yaml:"topic"`
	GeneratedAt  time.Time `json:"generated_at" yaml:"generated_at"`
	FullScript   string    `json:"full_script" yaml:"full_script"`
	Hook         string    `json:"hook" yaml:"hook"`
	Introduction string    `json:"introduction" yaml:"introduction"`
	MainContent  string    `json:"main_content" yaml:"main_content"`
	CallToAction string    `json:"call_to_action" yaml:"call_to_action"`
	Outro        string    `json:"outro" yaml:"outro"`

	// Variation is the 1-based index within a batch; zero for single runs.
	Variation int `json:"variation,omitempty" yaml:"variation,omitempty"`
}
