package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/icarus-vfx/icshared/pkg/platform"
)

// EnvPrefix is the prefix of every environment variable read into Settings.
const EnvPrefix = "IC_"

// AppDirName is the directory name used under the XDG base directories.
const AppDirName = "icshared"

// Verbosity bounds. 0 prints nothing, 5 prints debugging output.
const (
	MinVerbosity = 0
	MaxVerbosity = 5
)

// Settings holds the process-wide parameters. It is built once at startup
// and treated as read-only afterwards.
type Settings struct {
	OS                   platform.OS   `koanf:"os"`
	Globals              string        `koanf:"globals"`
	Shell                string        `koanf:"shell"`
	Verbosity            int           `koanf:"verbosity"`
	NumRecentFiles       int           `koanf:"numrecentfiles"`
	Notifications        bool          `koanf:"notifications"`
	NotificationsTimeout time.Duration `koanf:"notifications_timeout"`
	Env                  string        `koanf:"env"`
	Name                 string        `koanf:"name"`
	AppIcon              string        `koanf:"appicon"`
	FrameRange           string        `koanf:"framerange"`
	RecentFile           string        `koanf:"recent"`
}

// Standalone reports whether the tools run in a plain terminal rather than
// inside a host application, which is when ANSI styling is wanted.
func (s *Settings) Standalone() bool {
	return strings.EqualFold(s.Env, "standalone")
}

// Load builds Settings from the embedded defaults and IC_* environment
// variables.
func Load() (*Settings, error) {
	return LoadWithOverrides(nil)
}

// LoadWithOverrides is Load with a final layer of explicit values, keyed like
// the koanf tags of Settings. The CLI uses it to apply command-line flags.
func LoadWithOverrides(overrides map[string]interface{}) (*Settings, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := loadInto(k, &rawBytesProvider{bytes: defaultConfig}, toml.Parser(), "defaults"); err != nil {
		return nil, err
	}

	// 2. Environment
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := loadInto(k, envProvider, nil, "environment"); err != nil {
		return nil, err
	}

	// 3. Explicit overrides
	if len(overrides) > 0 {
		if err := loadInto(k, confmap.Provider(overrides, "."), nil, "overrides"); err != nil {
			return nil, err
		}
	}

	var s Settings
	if err := unmarshal(k, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	postProcess(&s)
	return &s, nil
}

// Default returns Settings for the given OS without consulting the
// environment. It is mostly useful in tests.
func Default(target platform.OS) *Settings {
	s := &Settings{
		OS:                   target,
		Verbosity:            3,
		NumRecentFiles:       10,
		Notifications:        true,
		NotificationsTimeout: 5 * time.Second,
		Name:                 AppDirName,
		FrameRange:           "1001-1125",
	}
	postProcess(s)
	return s
}

func postProcess(s *Settings) {
	if s.OS == "" {
		s.OS = platform.Host()
	}
	if s.Verbosity < MinVerbosity {
		s.Verbosity = MinVerbosity
	}
	if s.Verbosity > MaxVerbosity {
		s.Verbosity = MaxVerbosity
	}
	if s.NumRecentFiles < 1 {
		s.NumRecentFiles = 1
	}
	if s.Shell == "" {
		s.Shell = os.Getenv("SHELL")
		if s.Shell == "" || s.OS.IsWindows() {
			s.Shell = s.OS.DefaultShell()
		}
	}
	if s.Globals == "" {
		s.Globals = filepath.Join(xdg.ConfigHome, AppDirName, "globals.json")
	}
	if s.RecentFile == "" {
		s.RecentFile = filepath.Join(xdg.StateHome, AppDirName, "recent.json")
	}
}
