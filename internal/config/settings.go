package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BASELINER_ROOT.
const EnvPrefix = "BASELINER"

// Setting keys, shared with the CLI flag names.
const (
	KeyRoot     = "root"
	KeyVcpkg    = "vcpkg"
	KeyConfig   = "config"
	KeyLogLevel = "log-level"
)

// Settings are the values resolved from flags, environment and defaults.
type Settings struct {
	Root     string
	Vcpkg    string
	Config   string
	LogLevel string
}

// NewViper returns a viper instance reading BASELINER_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyLogLevel, "warn")
	return v
}

// Resolve reads Settings out of v.
func Resolve(v *viper.Viper) Settings {
	return Settings{
		Root:     v.GetString(KeyRoot),
		Vcpkg:    v.GetString(KeyVcpkg),
		Config:   v.GetString(KeyConfig),
		LogLevel: v.GetString(KeyLogLevel),
	}
}

// Anchor returns the directory scan roots are relative to: Root when set,
// otherwise the nearest ancestor of the working directory holding .git,
// otherwise the working directory.
func (s Settings) Anchor() (string, error) {
	if s.Root != "" {
		return s.Root, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindAnchor(wd), nil
}

// ConfigPath returns the layout file path for anchor.
func (s Settings) ConfigPath(anchor string) string {
	if s.Config != "" {
		return s.Config
	}
	return filepath.Join(anchor, FileName)
}

// FindAnchor walks up from start to the first directory containing .git
// (a directory, or a file for worktrees and submodules). It returns start
// when none is found.
func FindAnchor(start string) string {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}
