package probe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/valksor/go-upnote/internal/httpclient"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}

	path := filepath.Join(t.TempDir(), "tool")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestInstalled_Version(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		want    string
		wantErr bool
	}{
		{"plain output", `echo "2.0.72 (Claude Code)"`, "2.0.72", false},
		{"prefixed output", `echo "tool version v1.4.0"`, "1.4.0", false},
		{"no version", `echo "unknown"`, "", true},
		{"non-zero exit", `echo "2.0.72"; exit 3`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewInstalled(writeScript(t, tt.script), "--version")

			got, err := p.Version(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Version() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnavailable) {
				t.Errorf("Version() error = %v, want ErrUnavailable", err)
			}
			if got != tt.want {
				t.Errorf("Version() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInstalled_MissingBinary(t *testing.T) {
	p := NewInstalled("upnote-definitely-not-installed", "--version")

	if _, err := p.Version(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Version() error = %v, want ErrUnavailable", err)
	}
}

func TestRegistry_Version(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/@anthropic-ai/claude-code/latest":
			_, _ = w.Write([]byte(`{"name":"@anthropic-ai/claude-code","version":"2.0.75"}`))
		case "/prerelease/latest":
			_, _ = w.Write([]byte(`{"version":"3.0.0-beta.1"}`))
		case "/empty/latest":
			_, _ = w.Write([]byte(`{}`))
		case "/broken/latest":
			_, _ = w.Write([]byte(`<html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tests := []struct {
		pkg     string
		want    string
		wantErr bool
	}{
		{"@anthropic-ai/claude-code", "2.0.75", false},
		{"prerelease", "", true},
		{"empty", "", true},
		{"broken", "", true},
		{"missing", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			r := NewRegistry(srv.URL+"/", tt.pkg)
			r.Retry = httpclient.NoRetry()

			got, err := r.Version(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Version() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnavailable) {
				t.Errorf("Version() error = %v, want ErrUnavailable", err)
			}
			if got != tt.want {
				t.Errorf("Version() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewRegistry_Defaults(t *testing.T) {
	r := NewRegistry("", "pkg")
	if r.BaseURL != DefaultRegistryURL {
		t.Errorf("BaseURL = %q, want %q", r.BaseURL, DefaultRegistryURL)
	}
}

func TestStatic(t *testing.T) {
	if v, err := Static("2.0.72").Version(context.Background()); err != nil || v != "2.0.72" {
		t.Errorf("Static.Version() = %q, %v", v, err)
	}
	if _, err := Static("").Version(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Static(\"\").Version() error = %v, want ErrUnavailable", err)
	}
}
