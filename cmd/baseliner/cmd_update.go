package main

import (
	"fmt"
	"time"

	"github.com/fbkclanna/baseliner/internal/report"
	"github.com/fbkclanna/baseliner/internal/ui"
	"github.com/fbkclanna/baseliner/internal/updater"
	"github.com/fbkclanna/baseliner/internal/vcpkg"
	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Run vcpkg x-update-baseline in every manifest project",
		Args:  cobra.NoArgs,
		RunE:  runUpdate,
	}
	addUpdateFlags(cmd)
	return cmd
}

func addUpdateFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "Print the projects that would be updated without running vcpkg")
	cmd.Flags().Bool("add-initial-baseline", false, "Pass --add-initial-baseline to vcpkg")
	cmd.Flags().Bool("vcpkg-dry-run", false, "Pass --dry-run to vcpkg")
	cmd.Flags().Bool("confirm", false, "Ask for confirmation before updating")
	cmd.Flags().String("report", "", "Write a YAML run report to this path")
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	addInitial, _ := cmd.Flags().GetBool("add-initial-baseline")
	vcpkgDryRun, _ := cmd.Flags().GetBool("vcpkg-dry-run")
	confirm, _ := cmd.Flags().GetBool("confirm")
	reportPath, _ := cmd.Flags().GetString("report")

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	runner := e.runner(cmd)
	u := updater.New(runner, ui.NewPrinter(cmd.OutOrStdout()))
	u.Logger = e.logger
	u.Exclude = e.layout.Exclude
	u.DryRun = dryRun
	u.Opts = vcpkg.UpdateOpts{AddInitialBaseline: addInitial, DryRun: vcpkgDryRun}

	if confirm {
		proceed, err := confirmUpdate(cmd, u, e)
		if err != nil {
			return err
		}
		if !proceed {
			return nil
		}
	}

	var rec *report.File
	if reportPath != "" {
		rec = newReport(e, runner.Bin)
		u.OnProject = func(t updater.Target, err error) {
			rec.Projects = append(rec.Projects, reportProject(t, err, dryRun))
		}
	}

	runErr := u.Run(cmd.Context(), e.layout)

	if rec != nil {
		rec.FinishedAt = time.Now().Format(time.RFC3339)
		rec.Status = report.StatusOK
		if runErr != nil {
			rec.Status = report.StatusFailed
			rec.Error = runErr.Error()
		}
		if err := report.Save(reportPath, rec); err != nil {
			e.logger.Error("writing report", "path", reportPath, "err", err)
			if runErr == nil {
				return err
			}
		}
	}
	return runErr
}

func confirmUpdate(cmd *cobra.Command, u *updater.Updater, e *env) (bool, error) {
	targets, err := u.Plan(e.layout)
	if err != nil {
		return false, err
	}
	out := cmd.OutOrStdout()
	if len(targets) == 0 {
		_, _ = fmt.Fprintln(out, "No vcpkg projects found.")
		return false, nil
	}
	in := cmd.InOrStdin()
	if !ui.IsTerminal(in) {
		return false, fmt.Errorf("--confirm requires an interactive terminal")
	}
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.Label()
	}
	ok, err := ui.ConfirmUpdate(in, cmd.ErrOrStderr(), names)
	if err != nil {
		return false, err
	}
	if !ok {
		_, _ = fmt.Fprintln(out, "Aborted.")
	}
	return ok, nil
}

func newReport(e *env, bin string) *report.File {
	return &report.File{
		Version:     1,
		Anchor:      e.layout.Anchor,
		StartedAt:   time.Now().Format(time.RFC3339),
		ToolVersion: version,
		Vcpkg:       bin,
	}
}

func reportProject(t updater.Target, err error, dryRun bool) report.Project {
	p := report.Project{
		ScanRoot: t.ScanRoot,
		Name:     t.Label(),
		Path:     t.Path,
		Status:   report.StatusUpdated,
	}
	if dryRun {
		p.Status = report.StatusPlanned
	}
	if err != nil {
		p.Status = report.StatusFailed
		p.ExitCode = exitCode(err)
	}
	return p
}
