// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/scriptgen/internal/generate"
	"github.com/pdiddy/scriptgen/internal/library"
	"github.com/pdiddy/scriptgen/internal/output"
	"github.com/pdiddy/scriptgen/internal/prompt"
	"github.com/pdiddy/scriptgen/internal/secrets"
	"github.com/pdiddy/scriptgen/pkg/types"
)

// generateOptions are the per-run parameters collected from flags.
type generateOptions struct {
	Topic        string `validate:"required"`
	Length       string
	Style        string
	Audience     string
	Requirements string

	Variations int                `validate:"min=1"`
	Format     types.RecordFormat `validate:"oneof=json yaml"`
	Output     string
	NoHistory  bool
}

func (o generateOptions) request() types.ScriptRequest {
	return types.ScriptRequest{
		Topic:        o.Topic,
		Length:       o.Length,
		Style:        o.Style,
		Audience:     o.Audience,
		Requirements: o.Requirements,
	}
}

var validate = validator.New()

func init() {
	f := rootCmd.Flags()
	f.String("length", prompt.DefaultLength, "expected video length")
	f.String("style", prompt.DefaultStyle, "video style")
	f.String("audience", prompt.DefaultAudience, "target audience")
	f.String("requirements", "", "additional requirements for the script")
	f.Int("variations", 1, "number of script variations to generate")
	f.String("output", "", "output filename; variations insert _v<N> before the extension")
	f.String("output-dir", "", "directory for derived filenames (default \".\")")
	f.String("format", "", "structured file format: json or yaml (default json)")
	f.String("model", "", "AI model identifier")
	f.Bool("no-history", false, "do not record saved scripts in the library")

	mustBind("output.dir", f.Lookup("output-dir"))
	mustBind("output.format", f.Lookup("format"))
	mustBind("ai.model", f.Lookup("model"))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts := optionsFromFlags(cmd, args)
	if err := validateOptions(opts); err != nil {
		return err
	}

	aiCfg := cfg.AI
	aiCfg.APIKey = secrets.ResolveAPIKey(cfg.AI.APIKey, os.Getenv, loadedSecrets)

	gen, err := generate.New(aiCfg, nil, logger)
	if err != nil {
		return err
	}

	var lib *library.Store
	if cfg.Library.Enabled && !opts.NoHistory {
		lib, err = library.Open(cfg.Library)
		if err != nil {
			logger.WithError(err).Warn("script library unavailable; continuing without history")
			lib = nil
		} else {
			defer lib.Close()
		}
	}

	p := &pipeline{
		gen:    gen,
		writer: output.NewWriter(types.OutputConfig{Dir: cfg.Output.Dir, Format: opts.Format}),
		lib:    lib,
		log:    logger,
		out:    cmd.OutOrStdout(),
	}

	return p.run(cmd.Context(), opts)
}

func optionsFromFlags(cmd *cobra.Command, args []string) generateOptions {
	length, _ := cmd.Flags().GetString("length")
	style, _ := cmd.Flags().GetString("style")
	audience, _ := cmd.Flags().GetString("audience")
	requirements, _ := cmd.Flags().GetString("requirements")
	variations, _ := cmd.Flags().GetInt("variations")
	out, _ := cmd.Flags().GetString("output")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	topic := ""
	if len(args) > 0 {
		topic = args[0]
	}

	return generateOptions{
		Topic:        topic,
		Length:       length,
		Style:        style,
		Audience:     audience,
		Requirements: requirements,
		Variations:   variations,
		Format:       types.RecordFormat(strings.ToLower(string(cfg.Output.Format))),
		Output:       out,
		NoHistory:    noHistory,
	}
}

// validateOptions checks flag values and reports the first problem in
// flag terms.
func validateOptions(opts generateOptions) error {
	err := validate.Struct(opts)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	switch fe := verrs[0]; fe.Field() {
	case "Topic":
		return fmt.Errorf("topic must not be empty")
	case "Variations":
		return fmt.Errorf("--variations must be at least 1, got %v", fe.Value())
	case "Format":
		return fmt.Errorf("--format must be json or yaml, got %q", fe.Value())
	default:
		return fmt.Errorf("invalid %s: %s", fe.Field(), fe.Tag())
	}
}

// pipeline runs generation, persistence, and history for one invocation.
type pipeline struct {
	gen    *generate.Generator
	writer *output.Writer
	lib    *library.Store
	log    logrus.FieldLogger
	out    io.Writer
}

func (p *pipeline) run(ctx context.Context, opts generateOptions) error {
	fmt.Fprintf(p.out, "Generating script(s) for: %s\n", opts.Topic)
	fmt.Fprintf(p.out, "Length: %s\n", opts.Length)
	fmt.Fprintf(p.out, "Style: %s\n", opts.Style)
	fmt.Fprintf(p.out, "Audience: %s\n", opts.Audience)

	if opts.Variations > 1 {
		return p.runVariations(ctx, opts)
	}

	rec, err := p.gen.Generate(ctx, opts.request())
	if err != nil {
		return err
	}

	filename, err := p.save(ctx, rec, opts.Output)
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "Script saved to: %s\n", filename)

	fmt.Fprintln(p.out, renderPreview(rec.FullScript, filename))
	return nil
}

func (p *pipeline) runVariations(ctx context.Context, opts generateOptions) error {
	fmt.Fprintf(p.out, "Creating %d variations...\n", opts.Variations)

	records, summary := p.gen.GenerateVariations(ctx, opts.request(), opts.Variations)

	saved := 0
	for _, rec := range records {
		name := ""
		if opts.Output != "" {
			name = output.VariationFilename(opts.Output, rec.Variation)
		}
		filename, err := p.save(ctx, rec, name)
		if err != nil {
			p.log.WithError(err).WithField("variation", rec.Variation).Errorf("error saving variation %d", rec.Variation)
			continue
		}
		saved++
		fmt.Fprintf(p.out, "Variation %d saved to: %s\n", rec.Variation, filename)
	}

	fmt.Fprintf(p.out, "%d of %d variations generated\n", summary.Generated, opts.Variations)
	if summary.Generated > saved {
		fmt.Fprintf(p.out, "%d of %d generated variations saved\n", saved, summary.Generated)
	}
	if saved == 0 {
		return fmt.Errorf("all %d variations failed", opts.Variations)
	}
	return nil
}

// save writes rec and records it in the library when one is open. Library
// failures are logged, never returned.
func (p *pipeline) save(ctx context.Context, rec types.ScriptRecord, name string) (string, error) {
	filename, err := p.writer.Save(rec, name)
	if err != nil {
		return "", err
	}

	if p.lib != nil {
		if _, err := p.lib.Add(ctx, rec, filename, output.TextFilename(filename)); err != nil {
			p.log.WithError(err).Warn("could not record script in library")
		}
	}
	return filename, nil
}

// reportError prints err and, for credential problems, remediation steps.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if needsKeyHelp(err) {
		fmt.Fprintln(w, apiKeyHelp)
	}
}

// needsKeyHelp reports whether err comes from a missing or rejected API key.
func needsKeyHelp(err error) bool {
	var cfgErr *generate.ConfigError
	if errors.As(err, &cfgErr) {
		return true
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		return true
	}
	return strings.Contains(err.Error(), "API key")
}

const apiKeyHelp = `
To fix this:
1. Get an Anthropic API key from https://console.anthropic.com/settings/keys
2. Set it as an environment variable:
   export ANTHROPIC_API_KEY='your-key-here'
3. Or add ANTHROPIC_API_KEY=your-key-here to a .env file,
   or save the key in .secrets/anthropic-api-key`
