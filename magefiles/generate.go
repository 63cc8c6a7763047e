//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Script builds the CLI and generates one script for topic into scripts/.
func Script(topic string) error {
	mg.Deps(Init, Build)
	fmt.Printf("[generate] %s\n", topic)
	return sh.RunV(filepath.Join(binDir, binName), topic, "--output-dir", "scripts")
}

// Variations builds the CLI and generates three variations for topic.
func Variations(topic string) error {
	mg.Deps(Init, Build)
	fmt.Printf("[generate] %s (3 variations)\n", topic)
	return sh.RunV(filepath.Join(binDir, binName), topic, "--variations", "3", "--output-dir", "scripts")
}
