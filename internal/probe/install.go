package probe

import (
	"context"
	"os/exec"
)

// InstallMethod names how the watched tool was installed.
type InstallMethod string

const (
	InstallHomebrew InstallMethod = "homebrew"
	InstallNPM      InstallMethod = "npm"
	InstallNative   InstallMethod = "native"
)

// InstallDetector works out the install method by asking package managers.
type InstallDetector struct {
	BrewCask   string // e.g., "claude-code"
	NPMPackage string // e.g., "@anthropic-ai/claude-code"
	Command    string // Native binary, used for the native upgrade hint

	// run executes a command and reports whether it succeeded.
	run func(ctx context.Context, name string, args ...string) bool
}

// NewInstallDetector creates a detector that shells out to brew and npm.
func NewInstallDetector(brewCask, npmPackage, command string) *InstallDetector {
	return &InstallDetector{
		BrewCask:   brewCask,
		NPMPackage: npmPackage,
		Command:    command,
		run:        succeeds,
	}
}

// Detect checks Homebrew, then a global npm install, and falls back to native.
func (d *InstallDetector) Detect(ctx context.Context) InstallMethod {
	if d.BrewCask != "" && d.run(ctx, "brew", "list", "--cask", d.BrewCask) {
		return InstallHomebrew
	}

	if d.NPMPackage != "" && d.run(ctx, "npm", "list", "-g", d.NPMPackage) {
		return InstallNPM
	}

	return InstallNative
}

// UpgradeCommand returns the shell command that upgrades the tool for method.
func (d *InstallDetector) UpgradeCommand(method InstallMethod) string {
	switch method {
	case InstallHomebrew:
		return "brew upgrade --cask " + d.BrewCask
	case InstallNPM:
		return "npm install -g " + d.NPMPackage + "@latest"
	default:
		return d.Command + " update"
	}
}

func succeeds(ctx context.Context, name string, args ...string) bool {
	if _, err := exec.LookPath(name); err != nil {
		return false
	}

	return exec.CommandContext(ctx, name, args...).Run() == nil
}
