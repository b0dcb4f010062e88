package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/valksor/go-upnote/internal/config"
	"github.com/valksor/go-upnote/internal/display"
)

// TestContext isolates global flags, environment and state for one command test.
type TestContext struct {
	T         *testing.T
	StdoutBuf *bytes.Buffer
	StateDir  string
	TmpDir    string
}

// NewTestContext points every global flag at a temporary directory.
func NewTestContext(t *testing.T) *TestContext {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	for _, key := range []string{
		config.EnvLang, config.EnvVersionOverride, config.EnvStateDir, config.EnvNoImage,
		"UPNOTE_GITHUB_TOKEN", "GITHUB_TOKEN", "LC_ALL", "LC_MESSAGES", "LANG",
	} {
		t.Setenv(key, "")
	}

	origConfig, origState, origLang := configPath, stateDir, langFlag
	t.Cleanup(func() {
		configPath, stateDir, langFlag = origConfig, origState, origLang
	})

	tc := &TestContext{
		T:         t,
		StdoutBuf: &bytes.Buffer{},
		StateDir:  filepath.Join(tmpDir, "state"),
		TmpDir:    tmpDir,
	}
	configPath = filepath.Join(tmpDir, "config.yaml")
	stateDir = tc.StateDir
	langFlag = ""

	display.SetColorsEnabled(false)
	t.Cleanup(func() { display.SetColorsEnabled(true) })

	return tc
}

// WriteConfig writes the config file used by loadConfig.
func (tc *TestContext) WriteConfig(content string) {
	tc.T.Helper()

	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		tc.T.Fatal(err)
	}
}

// Command returns a bare command wired to the output buffer.
func (tc *TestContext) Command() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(tc.StdoutBuf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetContext(context.Background())

	return cmd
}

// registryServer fakes the npm registry's latest-version endpoint.
func registryServer(t *testing.T, latest string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"version": latest})
	}))
	t.Cleanup(srv.Close)

	return srv
}

// githubServer fakes the GitHub releases endpoint for anthropics/claude-code.
func githubServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/anthropics/claude-code/releases" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"tag_name": "v2.0.75", "body": "- Added support for custom hooks\n- Fixed memory leak in parser"},
			{"tag_name": "v2.0.74", "body": "- Improved startup time"},
			{"tag_name": "v2.0.70", "body": "- Added command palette"},
		})
	}))
	t.Cleanup(srv.Close)

	return srv
}
