package release

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v67/github"
	"golang.org/x/oauth2"
)

// GitHubSource lists releases from the GitHub REST API.
type GitHubSource struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGitHubSource creates a GitHub release source.
// If token is empty, the client will make unauthenticated requests (subject to rate limits).
// baseURL overrides the API endpoint (GitHub Enterprise or tests); empty means api.github.com.
func NewGitHubSource(token, owner, repo, baseURL string) (*GitHubSource, error) {
	var client *github.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		client = github.NewClient(oauth2.NewClient(context.Background(), ts))
	} else {
		client = github.NewClient(nil)
	}

	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse github base url: %w", err)
		}
		client.BaseURL = u
	}

	return &GitHubSource{client: client, owner: owner, repo: repo}, nil
}

// Name returns the source identifier.
func (s *GitHubSource) Name() string {
	return "github"
}

// Releases lists the most recent releases, skipping drafts.
func (s *GitHubSource) Releases(ctx context.Context, limit int) ([]Release, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	releases, _, err := s.client.Repositories.ListReleases(ctx, s.owner, s.repo, &github.ListOptions{
		PerPage: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: github %s/%s: %w", ErrFeedUnavailable, s.owner, s.repo, err)
	}

	out := make([]Release, 0, len(releases))
	for _, r := range releases {
		if r.GetDraft() {
			continue
		}
		out = append(out, fromGitHub(r))
	}

	return out, nil
}

func fromGitHub(r *github.RepositoryRelease) Release {
	var publishedAt time.Time
	if r.PublishedAt != nil {
		publishedAt = r.PublishedAt.Time
	}

	return newRelease(r.GetTagName(), r.GetBody(), publishedAt, r.GetHTMLURL())
}
