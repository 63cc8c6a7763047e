// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scriptgen/internal/prompt"
	"github.com/pdiddy/scriptgen/pkg/types"
)

// --- fake backend ---

type fakeBackend struct {
	responses []string // returned in order; cycles the last one
	failOn    map[int]error
	calls     int
	system    string
	prompt    string
}

func (f *fakeBackend) Complete(_ context.Context, system, p string) (string, error) {
	f.calls++
	f.system = system
	f.prompt = p
	if err, ok := f.failOn[f.calls]; ok {
		return "", err
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	idx := f.calls - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return f.responses[idx], nil
}

const sampleResponse = "**HOOK**\nWait for it.\n**INTRODUCTION**\nHello.\n**MAIN CONTENT**\nBody.\n**CALL TO ACTION**\nSubscribe.\n**OUTRO**\nBye."

var fixedTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func testRequest() types.ScriptRequest {
	return types.ScriptRequest{
		Topic:    "Go Generics",
		Length:   prompt.DefaultLength,
		Style:    prompt.DefaultStyle,
		Audience: prompt.DefaultAudience,
	}
}

func newTestGenerator(t *testing.T, b Backend) (*Generator, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	g, err := New(types.AIConfig{APIKey: "test-key"}, b, logger)
	require.NoError(t, err)
	g.Now = func() time.Time { return fixedTime }
	return g, hook
}

// --- New ---

func TestNew_MissingAPIKey(t *testing.T) {
	for _, key := range []string{"", "   "} {
		g, err := New(types.AIConfig{APIKey: key}, &fakeBackend{}, nil)
		require.Error(t, err)
		assert.Nil(t, g)

		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Contains(t, err.Error(), "API key")
	}
}

func TestNew_DefaultsBackendAndLogger(t *testing.T) {
	g, err := New(types.AIConfig{APIKey: "k"}, nil, nil)
	require.NoError(t, err)

	_, ok := g.backend.(*ClaudeBackend)
	assert.True(t, ok)
	assert.Equal(t, logrus.StandardLogger(), g.log)
}

// --- Generate ---

func TestGenerate_AssemblesRecord(t *testing.T) {
	b := &fakeBackend{responses: []string{sampleResponse}}
	g, _ := newTestGenerator(t, b)

	rec, err := g.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, prompt.SystemMessage, b.system)
	assert.Contains(t, b.prompt, "Go Generics")

	assert.Equal(t, "Go Generics", rec.Topic)
	assert.Equal(t, fixedTime, rec.GeneratedAt)
	assert.Equal(t, sampleResponse, rec.FullScript)
	assert.Equal(t, "Wait for it.", rec.Hook)
	assert.Equal(t, "Hello.", rec.Introduction)
	assert.Equal(t, "Body.", rec.MainContent)
	assert.Equal(t, "Subscribe.", rec.CallToAction)
	assert.Equal(t, "Bye.", rec.Outro)
	assert.Zero(t, rec.Variation)
}

func TestGenerate_BackendErrorIsGenerationError(t *testing.T) {
	cause := fmt.Errorf("quota exceeded")
	b := &fakeBackend{failOn: map[int]error{1: cause}}
	g, _ := newTestGenerator(t, b)

	_, err := g.Generate(context.Background(), testRequest())
	require.Error(t, err)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "error generating script: quota exceeded", err.Error())
}

func TestGenerate_EmptyResponse(t *testing.T) {
	b := &fakeBackend{responses: []string{"  \n"}}
	g, _ := newTestGenerator(t, b)

	_, err := g.Generate(context.Background(), testRequest())

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Contains(t, err.Error(), "empty response")
}

// --- GenerateVariations ---

func TestGenerateVariations_AllSucceed(t *testing.T) {
	b := &fakeBackend{responses: []string{sampleResponse}}
	g, hook := newTestGenerator(t, b)

	records, summary := g.GenerateVariations(context.Background(), testRequest(), 3)

	require.Len(t, records, 3)
	for i, rec := range records {
		assert.Equal(t, i+1, rec.Variation)
	}
	assert.Equal(t, BatchSummary{Generated: 3}, summary)
	assert.False(t, summary.HasFailures())
	assert.Equal(t, 3, b.calls)
	assert.Empty(t, hook.AllEntries())
}

func TestGenerateVariations_OneFailureIsSkipped(t *testing.T) {
	b := &fakeBackend{
		responses: []string{sampleResponse},
		failOn:    map[int]error{2: fmt.Errorf("connection reset")},
	}
	g, hook := newTestGenerator(t, b)

	records, summary := g.GenerateVariations(context.Background(), testRequest(), 3)

	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Variation)
	assert.Equal(t, 3, records[1].Variation)
	assert.Equal(t, 3, summary.Total())
	assert.True(t, summary.HasFailures())

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "error generating variation 2", entry.Message)
	assert.Equal(t, 2, entry.Data["variation"])
}

func TestGenerateVariations_AllFail(t *testing.T) {
	boom := fmt.Errorf("boom")
	b := &fakeBackend{failOn: map[int]error{1: boom, 2: boom}}
	g, hook := newTestGenerator(t, b)

	records, summary := g.GenerateVariations(context.Background(), testRequest(), 2)

	assert.Empty(t, records)
	assert.Equal(t, BatchSummary{Failed: 2}, summary)
	assert.Len(t, hook.AllEntries(), 2)
}

func TestGenerateVariations_CancelledContextStops(t *testing.T) {
	b := &fakeBackend{responses: []string{sampleResponse}}
	g, hook := newTestGenerator(t, b)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, summary := g.GenerateVariations(ctx, testRequest(), 3)

	assert.Empty(t, records)
	assert.Zero(t, summary.Total())
	assert.Zero(t, b.calls)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

// --- Assemble ---

func TestAssemble_UnmarkedResponseUsesSentinel(t *testing.T) {
	rec := Assemble("Topic", "just some prose without headers", fixedTime)

	assert.Equal(t, "just some prose without headers", rec.FullScript)
	for _, v := range []string{rec.Hook, rec.Introduction, rec.MainContent, rec.CallToAction, rec.Outro} {
		assert.Equal(t, types.SectionNotFound, v)
	}
}
