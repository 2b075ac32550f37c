package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fbkclanna/baseliner/internal/config"
	"github.com/fbkclanna/baseliner/internal/vcpkg"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseliner",
		Short: "Update vcpkg baselines for every manifest project in the repository",
		Long: `baseliner runs "vcpkg x-update-baseline" in the repository root and in every
directory below projects/ and bitloop/examples/ that contains a vcpkg.json.
Projects are updated one at a time in sorted path order; the first failure
stops the run. Running baseliner without a subcommand is the same as
"baseliner update".`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runUpdate,
	}

	cmd.PersistentFlags().String(config.KeyRoot, "", "Repository root (default: nearest ancestor with .git)")
	cmd.PersistentFlags().String(config.KeyVcpkg, "", "vcpkg binary (default: $VCPKG_ROOT/vcpkg, then PATH)")
	cmd.PersistentFlags().String(config.KeyConfig, "", "Layout file (default: <root>/"+config.FileName+")")
	cmd.PersistentFlags().String(config.KeyLogLevel, "warn", "Log level: debug, info, warn, error")
	addUpdateFlags(cmd)

	cmd.AddCommand(
		newUpdateCmd(),
		newListCmd(),
		newDoctorCmd(),
	)

	return cmd
}

// env holds what every subcommand needs once flags and config are resolved.
type env struct {
	settings config.Settings
	file     *config.File
	layout   config.Layout
	logger   *log.Logger
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	v := config.NewViper()
	for _, key := range []string{config.KeyRoot, config.KeyVcpkg, config.KeyConfig, config.KeyLogLevel} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(key)); err != nil {
			return nil, fmt.Errorf("binding --%s: %w", key, err)
		}
	}
	s := config.Resolve(v)

	logger, err := newLogger(cmd, s.LogLevel)
	if err != nil {
		return nil, err
	}

	anchor, err := s.Anchor()
	if err != nil {
		return nil, fmt.Errorf("resolving repository root: %w", err)
	}

	cfgPath := s.ConfigPath(anchor)
	if s.Config != "" {
		if _, err := os.Stat(cfgPath); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
	}
	f, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved layout", "anchor", anchor, "config", cfgPath)

	return &env{settings: s, file: f, layout: f.Layout(anchor), logger: logger}, nil
}

// runner returns a vcpkg runner streaming to the command's output.
func (e *env) runner(cmd *cobra.Command) *vcpkg.Runner {
	bin := e.settings.Vcpkg
	if bin == "" {
		bin = e.file.Vcpkg
	}
	r := vcpkg.NewRunner(bin)
	r.Stdout = cmd.OutOrStdout()
	r.Stderr = cmd.ErrOrStderr()
	return r
}

func newLogger(cmd *cobra.Command, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	return log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "baseliner",
		Level:  lvl,
	}), nil
}
