// Package probe reports the installed and the latest published version of the
// watched tool.
package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"strings"

	"github.com/valksor/go-upnote/internal/httpclient"
	"github.com/valksor/go-upnote/internal/version"
)

// DefaultRegistryURL is the public npm registry.
const DefaultRegistryURL = "https://registry.npmjs.org"

// ErrUnavailable is returned when a version cannot be determined.
var ErrUnavailable = errors.New("probe: version unavailable")

// Prober reports a version string.
type Prober interface {
	Version(ctx context.Context) (string, error)
}

// Installed runs the tool and reads its version from the output.
type Installed struct {
	Command string   // e.g., "claude"
	Args    []string // e.g., ["--version"]
}

// NewInstalled creates an installed-version probe.
func NewInstalled(command string, args ...string) *Installed {
	return &Installed{Command: command, Args: args}
}

// Version runs the command and returns the first dotted triple in its output.
func (p *Installed) Version(ctx context.Context) (string, error) {
	path, err := exec.LookPath(p.Command)
	if err != nil {
		return "", fmt.Errorf("%w: %s not found: %w", ErrUnavailable, p.Command, err)
	}

	out, err := exec.CommandContext(ctx, path, p.Args...).Output()
	if err != nil {
		return "", fmt.Errorf("%w: %s %s: %w", ErrUnavailable, p.Command, strings.Join(p.Args, " "), err)
	}

	v, ok := version.Extract(string(out))
	if !ok {
		return "", fmt.Errorf("%w: no version in %q", ErrUnavailable, strings.TrimSpace(string(out)))
	}

	return v, nil
}

// Registry queries an npm-compatible registry for the latest published version.
type Registry struct {
	BaseURL string
	Package string // e.g., "@anthropic-ai/claude-code"
	Client  *http.Client
	Retry   httpclient.RetryConfig
}

// NewRegistry creates a registry probe. baseURL may be empty for the public npm registry.
func NewRegistry(baseURL, pkg string) *Registry {
	if baseURL == "" {
		baseURL = DefaultRegistryURL
	}

	return &Registry{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Package: pkg,
		Client:  httpclient.NewHTTPClient(),
		Retry:   httpclient.DefaultRetryConfig(),
	}
}

type registryManifest struct {
	Version string `json:"version"`
}

// Version returns the version tagged "latest" in the registry.
func (r *Registry) Version(ctx context.Context) (string, error) {
	var manifest registryManifest

	url := r.BaseURL + "/" + r.Package + "/latest"
	if err := httpclient.GetJSON(ctx, r.Client, url, r.Retry, &manifest); err != nil {
		return "", fmt.Errorf("%w: registry %s: %w", ErrUnavailable, r.Package, err)
	}

	v := version.Normalize(manifest.Version)
	if !version.Valid(v) {
		return "", fmt.Errorf("%w: registry %s: unexpected version %q", ErrUnavailable, r.Package, manifest.Version)
	}

	return v, nil
}

// Static always reports the same version. Used for the version override.
type Static string

// Version returns the static version.
func (s Static) Version(context.Context) (string, error) {
	if s == "" {
		return "", ErrUnavailable
	}

	return string(s), nil
}
