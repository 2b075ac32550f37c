package main

import (
	"encoding/json"

	"github.com/fbkclanna/baseliner/internal/ui"
	"github.com/fbkclanna/baseliner/internal/updater"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the projects update would visit, in order",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type listEntry struct {
	ScanRoot string `json:"scan_root"`
	Name     string `json:"name"`
	Path     string `json:"path"`
}

func runList(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	u := updater.New(nil, nil)
	u.Logger = e.logger
	u.Exclude = e.layout.Exclude
	targets, err := u.Plan(e.layout)
	if err != nil {
		return err
	}

	entries := make([]listEntry, 0, len(targets))
	for _, t := range targets {
		entries = append(entries, listEntry{ScanRoot: t.ScanRoot, Name: t.Label(), Path: t.Path})
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	tbl := ui.NewTable(out, "SCAN ROOT", "NAME", "PATH")
	for _, en := range entries {
		tbl.Row(en.ScanRoot, en.Name, en.Path)
	}
	return tbl.Flush()
}
