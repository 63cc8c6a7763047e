// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output writes script records to disk as a structured file (JSON or
// YAML) plus a human-readable text file with the same basename.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scriptgen/pkg/types"
)

const (
	filenamePrefix  = "script_"
	timestampLayout = "20060102_150405"
	textExt         = ".txt"
	separatorWidth  = 50
)

// Writer saves records according to an OutputConfig.
type Writer struct {
	dir    string
	format types.RecordFormat
}

// NewWriter returns a Writer. An empty Dir means the working directory and
// an empty Format means JSON.
func NewWriter(cfg types.OutputConfig) *Writer {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	format := cfg.Format
	if format == "" {
		format = types.FormatJSON
	}
	return &Writer{dir: dir, format: format}
}

// Save writes rec to filename and its text companion, returning the
// structured filename. When filename is empty a name is derived from the
// topic and rec.GeneratedAt inside the writer's directory; batch records
// also get a _v<N> marker. Files are overwritten without locking.
func (w *Writer) Save(rec types.ScriptRecord, filename string) (string, error) {
	format := w.format
	if filename == "" {
		filename = filepath.Join(w.dir, DeriveFilename(rec.Topic, rec.GeneratedAt, format))
		if rec.Variation > 0 {
			filename = VariationFilename(filename, rec.Variation)
		}
	} else {
		format = formatFor(filename, format)
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
	}

	data, err := marshal(rec, format)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", filename, err)
	}

	textName := TextFilename(filename)
	if err := os.WriteFile(textName, []byte(RenderText(rec)), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", textName, err)
	}

	return filename, nil
}

// SafeTopic keeps letters, digits, spaces, hyphens and underscores from
// topic, trims trailing spaces, and replaces spaces with underscores.
func SafeTopic(topic string) string {
	var b strings.Builder
	for _, r := range topic {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimRight(b.String(), " "), " ", "_")
}

// DeriveFilename returns script_<safe topic>_<YYYYMMDD_HHMMSS><ext>.
func DeriveFilename(topic string, at time.Time, format types.RecordFormat) string {
	return filenamePrefix + SafeTopic(topic) + "_" + at.Format(timestampLayout) + format.Ext()
}

// VariationFilename inserts _v<n> before the extension of name, or appends
// it when name has no extension.
func VariationFilename(name string, n int) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + fmt.Sprintf("_v%d", n) + ext
}

// TextFilename returns the companion text filename for a structured file.
func TextFilename(name string) string {
	ext := filepath.Ext(name)
	if ext == textExt {
		return name + textExt
	}
	return strings.TrimSuffix(name, ext) + textExt
}

// RenderText formats the human-readable file: a title line, the generation
// timestamp, a separator, then the full script.
func RenderText(rec types.ScriptRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "YouTube Video Script: %s\n", rec.Topic)
	fmt.Fprintf(&b, "Generated: %s\n", rec.GeneratedAt.Format(time.RFC3339Nano))
	b.WriteString(strings.Repeat("=", separatorWidth))
	b.WriteString("\n\n")
	b.WriteString(rec.FullScript)
	return b.String()
}

// formatFor picks YAML for .yaml/.yml names and fallback otherwise.
func formatFor(name string, fallback types.RecordFormat) types.RecordFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return types.FormatYAML
	case ".json":
		return types.FormatJSON
	}
	return fallback
}

func marshal(rec types.ScriptRecord, format types.RecordFormat) ([]byte, error) {
	if format == types.FormatYAML {
		data, err := yaml.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("marshaling record: %w", err)
		}
		return data, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("marshaling record: %w", err)
	}
	return buf.Bytes(), nil
}
