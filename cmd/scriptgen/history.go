// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scriptgen/internal/library"
)

var historyCmd = &cobra.Command{
	Use:   "history [query]",
	Short: "List previously generated scripts",
	Long: `History lists scripts recorded in the local library, newest first. An
optional query filters by a case-insensitive substring of the topic or the
script text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum number of entries (default from library.max_results)")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if !cfg.Library.Enabled {
		fmt.Fprintln(cmd.OutOrStdout(), "Script history is disabled (library.enabled is false).")
		return nil
	}

	store, err := library.Open(cfg.Library)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := library.ListOptions{Limit: limit}
	if len(args) > 0 {
		opts.Query = args[0]
	}

	entries, err := store.List(cmd.Context(), opts)
	if err != nil {
		return err
	}
	return formatHistory(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatHistory(w io.Writer, entries []library.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []library.Entry{}
		}
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No scripts found.")
		return nil
	}

	fmt.Fprintf(w, "%-19s  %-3s  %-40s  %s\n", "Generated", "Var", "Topic", "File")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, e := range entries {
		topic := e.Topic
		if len([]rune(topic)) > 40 {
			topic = string([]rune(topic)[:37]) + "..."
		}
		variation := "-"
		if e.Variation > 0 {
			variation = fmt.Sprintf("%d", e.Variation)
		}
		fmt.Fprintf(w, "%-19s  %-3s  %-40s  %s\n",
			e.GeneratedAt.Local().Format(time.DateTime), variation, topic, e.Path)
	}
	return nil
}
