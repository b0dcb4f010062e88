// Package config loads upnote settings from ~/.upnote/config.yaml, .env files
// and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/valksor/go-upnote/internal/version"
)

const configFileName = "config.yaml"

// Environment variables that override file settings.
const (
	EnvLang            = "UPNOTE_LANG"
	EnvVersionOverride = "UPNOTE_VERSION_OVERRIDE"
	EnvStateDir        = "UPNOTE_STATE_DIR"
	EnvNoImage         = "UPNOTE_NO_IMAGE"
)

// DefaultStateDir returns ~/.upnote.
func DefaultStateDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, AppDir)
}

// DefaultConfigPath returns ~/.upnote/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(DefaultStateDir(), configFileName)
}

// Load reads configuration: defaults, then the YAML file at path (missing is
// fine), then environment overrides. An empty path means DefaultConfigPath.
func Load(path string) (*Config, error) {
	cfg := NewDefault()

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults only
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLang); v != "" {
		c.Language = v
	}
	if v := os.Getenv(EnvVersionOverride); v != "" {
		c.VersionOverride = v
	}
	if v := os.Getenv(EnvStateDir); v != "" {
		c.StateDir = v
	}
	if v := os.Getenv(EnvNoImage); v != "" && v != "0" && !strings.EqualFold(v, "false") {
		c.Image.Enabled = false
	}

	if c.Feed.Token == "" {
		c.Feed.Token = ResolveToken(c.Feed.Provider)
	}
}

// ResolveToken finds an API token for the feed provider.
// Priority order:
//  1. UPNOTE_<PROVIDER>_TOKEN env var
//  2. <PROVIDER>_TOKEN env var
func ResolveToken(provider string) string {
	if provider == "" {
		provider = "github"
	}
	name := strings.ToUpper(provider) + "_TOKEN"

	if token := os.Getenv("UPNOTE_" + name); token != "" {
		return token
	}

	return os.Getenv(name)
}

// ResolveLanguage returns the configured language, or the locale from
// LC_ALL, LC_MESSAGES or LANG. The result is a raw code such as "zh_CN.UTF-8".
func (c *Config) ResolveLanguage() string {
	if c.Language != "" {
		return c.Language
	}

	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}

	return ""
}

// Validate performs validation beyond YAML decoding.
func (c *Config) Validate() error {
	switch c.Feed.Provider {
	case "github":
		if c.Feed.Owner == "" || c.Feed.Repo == "" {
			return fmt.Errorf("invalid feed: github provider needs owner and repo")
		}
	case "gitlab":
		if c.Feed.Project == "" {
			return fmt.Errorf("invalid feed: gitlab provider needs project")
		}
	default:
		return fmt.Errorf("invalid feed provider: %s (must be github or gitlab)", c.Feed.Provider)
	}

	if c.Feed.Limit < 1 || c.Feed.Limit > 100 {
		return fmt.Errorf("invalid feed limit: %d (must be 1-100)", c.Feed.Limit)
	}

	if c.Tool.Package == "" {
		return fmt.Errorf("invalid tool: package is required")
	}

	if c.VersionOverride != "" {
		if !version.Valid(c.VersionOverride) {
			return fmt.Errorf("invalid version override: %q (must be major.minor.patch)", c.VersionOverride)
		}
	} else if c.Tool.Command == "" {
		return fmt.Errorf("invalid tool: command is required without a version override")
	}

	if c.Image.Timeout < 0 {
		return fmt.Errorf("invalid image timeout: %s", c.Image.Timeout)
	}

	if c.StateDir == "" {
		return fmt.Errorf("invalid state_dir: must not be empty")
	}

	return nil
}
