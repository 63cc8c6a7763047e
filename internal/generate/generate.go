// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate turns script requests into ScriptRecords by calling a
// text-generation backend and splitting the response into sections.
package generate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/scriptgen/internal/prompt"
	"github.com/pdiddy/scriptgen/internal/sections"
	"github.com/pdiddy/scriptgen/pkg/types"
)

// ConfigError reports a setting that prevents a Generator from being built.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

// GenerationError wraps a failed or unusable response from the backend.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "error generating script: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error { return e.Err }

// BatchSummary holds counts from a variation run.
type BatchSummary struct {
	Generated int
	Failed    int
}

// Total returns the number of variations attempted.
func (s BatchSummary) Total() int {
	return s.Generated + s.Failed
}

// HasFailures reports whether any variation failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// Generator produces script records. It holds no state between calls other
// than its configuration.
type Generator struct {
	backend Backend
	log     logrus.FieldLogger

	// Now returns the timestamp stamped on each record. Tests replace it.
	Now func() time.Time
}

// New validates cfg and returns a Generator. A nil backend selects the
// Claude backend built from cfg; a nil log selects the logrus standard
// logger. A missing API key yields a *ConfigError.
func New(cfg types.AIConfig, backend Backend, log logrus.FieldLogger) (*Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &ConfigError{
			Msg: "Anthropic API key is required: set ANTHROPIC_API_KEY or api_key in the config file",
		}
	}
	if backend == nil {
		backend = NewClaudeBackend(cfg)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Generator{backend: backend, log: log, Now: time.Now}, nil
}

// Generate builds the prompt for req, calls the backend once, and assembles
// the record.
func (g *Generator) Generate(ctx context.Context, req types.ScriptRequest) (types.ScriptRecord, error) {
	text, err := g.backend.Complete(ctx, prompt.SystemMessage, prompt.Build(req))
	if err != nil {
		return types.ScriptRecord{}, &GenerationError{Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return types.ScriptRecord{}, &GenerationError{Err: fmt.Errorf("empty response")}
	}

	g.log.WithFields(logrus.Fields{
		"topic": req.Topic,
		"chars": len(text),
	}).Debug("script generated")

	return Assemble(req.Topic, text, g.Now()), nil
}

// GenerateVariations runs Generate count times in sequence. A failed
// variation is logged and left out; the batch itself never fails. Each
// returned record carries its 1-based variation index. A cancelled context
// stops the batch before the next call.
func (g *Generator) GenerateVariations(ctx context.Context, req types.ScriptRequest, count int) ([]types.ScriptRecord, BatchSummary) {
	var (
		records []types.ScriptRecord
		summary BatchSummary
	)

	for i := 1; i <= count; i++ {
		if err := ctx.Err(); err != nil {
			g.log.WithError(err).Warnf("stopping after %d of %d variations", i-1, count)
			break
		}

		rec, err := g.Generate(ctx, req)
		if err != nil {
			g.log.WithError(err).WithField("variation", i).Errorf("error generating variation %d", i)
			summary.Failed++
			continue
		}

		rec.Variation = i
		records = append(records, rec)
		summary.Generated++
	}

	return records, summary
}

// Assemble builds a ScriptRecord from a raw response. Sections whose header
// is missing hold types.SectionNotFound.
func Assemble(topic, response string, at time.Time) types.ScriptRecord {
	rec := types.ScriptRecord{
		Topic:       topic,
		GeneratedAt: at,
		FullScript:  response,
	}

	for _, res := range sections.ExtractAll(response) {
		switch res.Name {
		case types.SectionHook:
			rec.Hook = res.Value()
		case types.SectionIntroduction:
			rec.Introduction = res.Value()
		case types.SectionMainContent:
			rec.MainContent = res.Value()
		case types.SectionCallToAction:
			rec.CallToAction = res.Value()
		case types.SectionOutro:
			rec.Outro = res.Value()
		}
	}

	return rec
}
