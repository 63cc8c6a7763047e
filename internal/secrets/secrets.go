// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets locates the API key for the text-generation service.
// Keys may come from explicit configuration, the environment (optionally
// populated from a .env file), or a directory of plain-text files where the
// filename is the key name and the trimmed contents are the value.
//
// Supported key files: anthropic-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// AnthropicKeyEnv is the environment variable holding the API key.
	AnthropicKeyEnv = "ANTHROPIC_API_KEY"

	// AnthropicKeyFile is the secrets-directory filename holding the API key.
	AnthropicKeyFile = "anthropic-api-key"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadDotEnv loads variables from the named .env files into the process
// environment. Variables already set are left alone and missing files are
// skipped.
func LoadDotEnv(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("loading %v: %w", existing, err)
	}
	return nil
}

// ResolveAPIKey returns the first non-empty key from, in order: explicit,
// getenv(AnthropicKeyEnv), and the AnthropicKeyFile entry of loaded. It
// returns "" when none is set; the caller decides whether that is an error.
func ResolveAPIKey(explicit string, getenv func(string) string, loaded map[string]string) string {
	if v := strings.TrimSpace(explicit); v != "" {
		return v
	}
	if getenv != nil {
		if v := strings.TrimSpace(getenv(AnthropicKeyEnv)); v != "" {
			return v
		}
	}
	return loaded[AnthropicKeyFile]
}
