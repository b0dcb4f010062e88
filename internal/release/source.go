package release

import "fmt"

// Provider names accepted by NewSource.
const (
	ProviderGitHub = "github"
	ProviderGitLab = "gitlab"
)

// SourceOptions selects and configures a release source.
type SourceOptions struct {
	Provider string // "github" (default) or "gitlab"
	Owner    string // GitHub owner
	Repo     string // GitHub repository
	Project  string // GitLab project path or ID
	Host     string // API base URL (GitHub) or instance host (GitLab); empty for the public service
	Token    string // Optional access token
}

// NewSource builds the release source named by opts.Provider.
func NewSource(opts SourceOptions) (Source, error) {
	switch opts.Provider {
	case "", ProviderGitHub:
		return NewGitHubSource(opts.Token, opts.Owner, opts.Repo, opts.Host)
	case ProviderGitLab:
		return NewGitLabSource(opts.Token, opts.Host, opts.Project)
	default:
		return nil, fmt.Errorf("unknown release provider %q", opts.Provider)
	}
}
