// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scriptgen/pkg/types"
)

func TestNew_Defaults(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(types.LogConfig{}, &buf)
	require.NoError(t, err)

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	log.Debug("hidden")
	log.WithField("variation", 2).Error("error generating variation 2")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "error generating variation 2")
	assert.Contains(t, buf.String(), "variation=2")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(types.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	log.WithField("topic", "x").Debug("script generated")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "script generated", entry["msg"])
	assert.Equal(t, "x", entry["topic"])
}

func TestNew_InvalidSettings(t *testing.T) {
	_, err := New(types.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "parsing log level")

	_, err = New(types.LogConfig{Format: "xml"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown log format")
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "scriptgen.log")
	var buf bytes.Buffer
	log, err := New(types.LogConfig{File: path}, &buf)
	require.NoError(t, err)

	log.Warn("library unavailable")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "library unavailable")
	assert.Contains(t, buf.String(), "library unavailable")
}

func TestRotatingFile_Defaults(t *testing.T) {
	lj := RotatingFile(types.LogConfig{File: "x.log"})
	assert.Equal(t, defaultMaxSizeMB, lj.MaxSize)
	assert.Equal(t, defaultMaxBackups, lj.MaxBackups)
}
