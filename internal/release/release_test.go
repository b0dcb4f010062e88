package release

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/valksor/go-upnote/internal/version"
)

func releasesOf(versions ...string) []Release {
	out := make([]Release, 0, len(versions))
	for _, v := range versions {
		out = append(out, Release{Version: v, Changelog: "- Fixed " + v})
	}

	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		target   string
		releases []Release
		want     []string
	}{
		{
			name:     "delta sorted descending",
			current:  "2.0.72",
			target:   "2.0.75",
			releases: releasesOf("2.0.73", "2.0.74", "2.0.75", "2.0.70"),
			want:     []string{"2.0.75", "2.0.74", "2.0.73"},
		},
		{
			name:     "excludes current and newer than target",
			current:  "1.0.0",
			target:   "1.2.0",
			releases: releasesOf("1.0.0", "1.1.0", "1.2.0", "1.3.0"),
			want:     []string{"1.2.0", "1.1.0"},
		},
		{
			name:     "numeric ordering",
			current:  "1.0.8",
			target:   "1.0.11",
			releases: releasesOf("1.0.9", "1.0.11", "1.0.10"),
			want:     []string{"1.0.11", "1.0.10", "1.0.9"},
		},
		{
			name:     "no qualifying releases",
			current:  "2.0.0",
			target:   "2.0.1",
			releases: releasesOf("1.9.0", "2.0.0"),
			want:     []string{},
		},
		{
			name:     "empty input",
			current:  "2.0.0",
			target:   "2.0.1",
			releases: nil,
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.current, tt.target, tt.releases)
			if got == nil {
				t.Fatal("Filter() returned nil, want empty slice")
			}
			if versions := Versions(got); !reflect.DeepEqual(versions, tt.want) {
				t.Errorf("Filter() = %v, want %v", versions, tt.want)
			}
		})
	}
}

func TestFilterBoundsAndOrder(t *testing.T) {
	all := releasesOf("0.9.9", "1.0.0", "1.0.1", "1.0.2", "1.1.0", "1.1.5", "2.0.0", "2.0.1", "3.0.0")

	for _, current := range Versions(all) {
		for _, target := range Versions(all) {
			got := Filter(current, target, all)
			for i, r := range got {
				if version.Compare(r.Version, current) <= 0 || version.Compare(r.Version, target) > 0 {
					t.Errorf("Filter(%s, %s) kept out-of-range %s", current, target, r.Version)
				}
				if i > 0 && version.Compare(got[i-1].Version, r.Version) <= 0 {
					t.Errorf("Filter(%s, %s) not strictly descending at %d: %v", current, target, i, Versions(got))
				}
			}
		}
	}
}

func TestCount(t *testing.T) {
	if got := Count(nil); got != 1 {
		t.Errorf("Count(nil) = %d, want 1", got)
	}
	if got := Count(releasesOf("1.0.1", "1.0.2")); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
}

func TestGitHubSource_Releases(t *testing.T) {
	var gotPerPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/anthropics/claude-code/releases" {
			http.NotFound(w, r)
			return
		}
		gotPerPage = r.URL.Query().Get("per_page")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"tag_name": "v2.0.75", "body": "- Added support for hooks", "html_url": "https://example.com/2.0.75", "published_at": "2025-12-01T10:00:00Z"},
			{"tag_name": "v2.0.74", "draft": true, "body": "draft"},
			{"tag_name": "2.0.73", "body": ""},
		})
	}))
	defer srv.Close()

	src, err := NewGitHubSource("", "anthropics", "claude-code", srv.URL)
	if err != nil {
		t.Fatalf("NewGitHubSource() error = %v", err)
	}

	got, err := src.Releases(context.Background(), 0)
	if err != nil {
		t.Fatalf("Releases() error = %v", err)
	}

	if gotPerPage != "20" {
		t.Errorf("per_page = %q, want %q", gotPerPage, "20")
	}
	if len(got) != 2 {
		t.Fatalf("Releases() returned %d releases, want 2 (draft skipped)", len(got))
	}
	if got[0].Version != "2.0.75" || got[0].URL != "https://example.com/2.0.75" || got[0].PublishedAt.IsZero() {
		t.Errorf("Releases()[0] = %+v", got[0])
	}
	if got[1].Version != "2.0.73" || got[1].Changelog != NoChangelog {
		t.Errorf("Releases()[1] = %+v, want empty body replaced", got[1])
	}
	if src.Name() != "github" {
		t.Errorf("Name() = %q", src.Name())
	}
}

func TestGitHubSource_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	src, err := NewGitHubSource("token", "o", "r", srv.URL)
	if err != nil {
		t.Fatalf("NewGitHubSource() error = %v", err)
	}

	_, err = src.Releases(context.Background(), 5)
	if !errors.Is(err, ErrFeedUnavailable) {
		t.Errorf("Releases() error = %v, want ErrFeedUnavailable", err)
	}
}

func TestGitLabSource_Releases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/releases") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"tag_name": "v1.4.0", "description": "- Fixed crash", "released_at": "2025-11-02T00:00:00Z"},
			{"tag_name": "v1.3.0", "description": ""}
		]`))
	}))
	defer srv.Close()

	src, err := NewGitLabSource("", srv.URL, "group/project")
	if err != nil {
		t.Fatalf("NewGitLabSource() error = %v", err)
	}

	got, err := src.Releases(context.Background(), 20)
	if err != nil {
		t.Fatalf("Releases() error = %v", err)
	}

	if want := []string{"1.4.0", "1.3.0"}; !reflect.DeepEqual(Versions(got), want) {
		t.Errorf("Releases() versions = %v, want %v", Versions(got), want)
	}
	if got[0].PublishedAt.IsZero() {
		t.Error("Releases()[0].PublishedAt should be set")
	}
	if got[1].Changelog != NoChangelog {
		t.Errorf("Releases()[1].Changelog = %q, want %q", got[1].Changelog, NoChangelog)
	}
}

func TestGitLabSource_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"404 Project Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	src, err := NewGitLabSource("", srv.URL, "missing/project")
	if err != nil {
		t.Fatalf("NewGitLabSource() error = %v", err)
	}

	if _, err := src.Releases(context.Background(), 20); !errors.Is(err, ErrFeedUnavailable) {
		t.Errorf("Releases() error = %v, want ErrFeedUnavailable", err)
	}
}

func TestNewSource(t *testing.T) {
	tests := []struct {
		name     string
		opts     SourceOptions
		wantName string
		wantErr  bool
	}{
		{"default is github", SourceOptions{Owner: "o", Repo: "r"}, "github", false},
		{"explicit github", SourceOptions{Provider: ProviderGitHub, Owner: "o", Repo: "r"}, "github", false},
		{"gitlab", SourceOptions{Provider: ProviderGitLab, Project: "g/p"}, "gitlab", false},
		{"unknown", SourceOptions{Provider: "bitbucket"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewSource(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewSource() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && src.Name() != tt.wantName {
				t.Errorf("NewSource().Name() = %q, want %q", src.Name(), tt.wantName)
			}
		})
	}
}
