package release

import (
	"context"
	"fmt"
	"strings"
	"time"

	gitlab "gitlab.com/gitlab-org/api/client-go"
)

// GitLabSource lists releases from the GitLab REST API.
type GitLabSource struct {
	gl      *gitlab.Client
	project string // Project path (e.g., "group/project") or numeric ID
}

// NewGitLabSource creates a GitLab release source. host may be empty for gitlab.com.
func NewGitLabSource(token, host, project string) (*GitLabSource, error) {
	var options []gitlab.ClientOptionFunc

	// For self-hosted GitLab, set the base URL
	if host != "" && host != "https://gitlab.com" && host != "gitlab.com" {
		if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
			host = "https://" + host
		}
		options = append(options, gitlab.WithBaseURL(strings.TrimSuffix(host, "/")+"/api/v4"))
	}

	client, err := gitlab.NewClient(token, options...)
	if err != nil {
		return nil, fmt.Errorf("create gitlab client: %w", err)
	}

	return &GitLabSource{gl: client, project: project}, nil
}

// Name returns the source identifier.
func (s *GitLabSource) Name() string {
	return "gitlab"
}

// Releases lists the most recent releases of the project.
func (s *GitLabSource) Releases(ctx context.Context, limit int) ([]Release, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	opts := &gitlab.ListReleasesOptions{}
	opts.PerPage = limit

	releases, _, err := s.gl.Releases.ListReleases(s.project, opts, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: gitlab %s: %w", ErrFeedUnavailable, s.project, err)
	}

	out := make([]Release, 0, len(releases))
	for _, r := range releases {
		var releasedAt time.Time
		if r.ReleasedAt != nil {
			releasedAt = *r.ReleasedAt
		}
		out = append(out, newRelease(r.TagName, r.Description, releasedAt, ""))
	}

	return out, nil
}
