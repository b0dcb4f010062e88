package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestVersionCommand(t *testing.T) {
	origVersion, origCommit, origBuildTime := Version, Commit, BuildTime
	defer func() {
		Version, Commit, BuildTime = origVersion, origCommit, origBuildTime
	}()

	tests := []struct {
		name         string
		version      string
		commit       string
		buildTime    string
		wantInOutput []string
	}{
		{
			name:      "release build",
			version:   "1.2.3",
			commit:    "abc123",
			buildTime: "2025-12-15T10:30:00Z",
			wantInOutput: []string{
				"upnote 1.2.3",
				"Commit: abc123",
				"Built:  2025-12-15T10:30:00Z",
				"go1.",
			},
		},
		{
			name:      "default values",
			version:   "dev",
			commit:    "none",
			buildTime: "unknown",
			wantInOutput: []string{
				"upnote dev",
				"Commit: none",
				"Built:  unknown",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, BuildTime = tt.version, tt.commit, tt.buildTime

			stdout := &bytes.Buffer{}
			root := &cobra.Command{Use: "upnote"}
			root.SetOut(stdout)
			root.AddCommand(versionCmd)
			root.SetArgs([]string{"version"})

			if err := root.Execute(); err != nil {
				t.Fatalf("Execute: %v", err)
			}

			output := stdout.String()
			for _, want := range tt.wantInOutput {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q\nGot:\n%s", want, output)
				}
			}
		})
	}
}
