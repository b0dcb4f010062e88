package config

import "time"

// Config holds all application configuration.
type Config struct {
	Tool  ToolConfig  `yaml:"tool"`
	Feed  FeedConfig  `yaml:"feed"`
	Image ImageConfig `yaml:"image"`

	// StateDir holds pending.json, prepared.json and releases.json.
	StateDir string `yaml:"state_dir"`

	// Language for the summary; empty means the LANG locale.
	Language string `yaml:"language"`

	// VersionOverride replaces the installed-version probe (test scenarios).
	VersionOverride string `yaml:"version_override,omitempty"`
}

// ToolConfig describes the watched tool.
type ToolConfig struct {
	Name     string   `yaml:"name"`     // Display name
	Command  string   `yaml:"command"`  // Binary that reports the installed version
	Args     []string `yaml:"args"`     // Arguments for Command
	Package  string   `yaml:"package"`  // Registry package name
	Cask     string   `yaml:"cask"`     // Homebrew cask name
	Registry string   `yaml:"registry"` // Registry base URL
}

// FeedConfig selects the release feed.
type FeedConfig struct {
	Provider string `yaml:"provider"` // github or gitlab
	Owner    string `yaml:"owner"`
	Repo     string `yaml:"repo"`
	Project  string `yaml:"project"`
	Host     string `yaml:"host"`
	Token    string `yaml:"token,omitempty"`
	Limit    int    `yaml:"limit"`
}

// ImageConfig controls the optional release card.
type ImageConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Interpreter string        `yaml:"interpreter"`
	Script      string        `yaml:"script"`
	Module      string        `yaml:"module"`
	Timeout     time.Duration `yaml:"timeout"`
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Tool: ToolConfig{
			Name:     "Claude Code",
			Command:  "claude",
			Args:     []string{"--version"},
			Package:  "@anthropic-ai/claude-code",
			Cask:     "claude-code",
			Registry: "https://registry.npmjs.org",
		},
		Feed: FeedConfig{
			Provider: "github",
			Owner:    "anthropics",
			Repo:     "claude-code",
			Limit:    20,
		},
		Image: ImageConfig{
			Enabled:     true,
			Interpreter: "python3",
			Module:      "PIL",
			Timeout:     30 * time.Second,
		},
		StateDir: DefaultStateDir(),
	}
}
