// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scriptgen CLI, which turns a topic
// into a five-section YouTube video script using the Anthropic API.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scriptgen/internal/logging"
	"github.com/pdiddy/scriptgen/internal/secrets"
	"github.com/pdiddy/scriptgen/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	secretsDir = ".secrets/"
	dotEnvFile = ".env"
)

var (
	// loadedSecrets holds API keys loaded from .secrets/ at startup.
	loadedSecrets map[string]string

	// cfg is the resolved configuration for the running command.
	cfg types.Config

	// logger receives diagnostics; user-facing output goes to stdout.
	logger = logrus.StandardLogger()
)

// rootCmd generates scripts; history and version are subcommands.
var rootCmd = &cobra.Command{
	Use:   "scriptgen <topic>",
	Short: "Generate YouTube video scripts with Claude",
	Long: `scriptgen builds a prompt from a topic and a few style parameters, asks
Claude for a five-section video script (hook, introduction, main content,
call to action, outro), and saves the result as a structured record plus a
readable text file.

Use --variations to generate several independent scripts for one topic. A
failed variation is reported and skipped.`,
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: setup,
	RunE:              runGenerate,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./scriptgen.yaml or $XDG_CONFIG_HOME/scriptgen/scriptgen.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-file", "", "also write logs to this file (rotated)")

	mustBind("log.level", pf.Lookup("log-level"))
	mustBind("log.file", pf.Lookup("log-file"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	configureViper(viper.GetViper(), cfgFile, filepath.Join(xdg.ConfigHome, "scriptgen"))

	if err := viper.ReadInConfig(); err == nil {
		logger.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}
}

// setup loads credentials sources and builds the logger before any command.
func setup(cmd *cobra.Command, args []string) error {
	if err := secrets.LoadDotEnv(dotEnvFile); err != nil {
		return err
	}

	s, err := secrets.Load(secretsDir)
	if err != nil {
		return err
	}
	loadedSecrets = s

	cfg, err = loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger = log

	if len(s) > 0 {
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		logger.WithField("keys", keys).Debug("loaded secrets")
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
