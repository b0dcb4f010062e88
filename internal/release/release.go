// Package release models published releases of the watched tool and narrows
// a release feed down to the versions between the installed and latest one.
package release

import (
	"context"
	"errors"
	"slices"
	"time"

	uslices "github.com/valksor/go-upnote/internal/slices"
	"github.com/valksor/go-upnote/internal/version"
)

// DefaultLimit is how many of the most recent releases a feed returns.
const DefaultLimit = 20

// NoChangelog is used when a release carries no body.
const NoChangelog = "No changelog available"

// ErrFeedUnavailable wraps any failure to fetch or decode the release feed.
var ErrFeedUnavailable = errors.New("release: feed unavailable")

// Release is one published version plus its free-text changelog body.
type Release struct {
	Version     string    `json:"version"`               // e.g., "2.0.75", never "v"-prefixed
	Changelog   string    `json:"changelog"`             // Release notes
	PublishedAt time.Time `json:"published_at,omitzero"` // When the release was published
	URL         string    `json:"url,omitempty"`         // Release page
}

// Source lists recent releases from a code hosting API.
type Source interface {
	Name() string
	// Releases returns up to limit releases, newest first as reported by the host.
	Releases(ctx context.Context, limit int) ([]Release, error)
}

// Filter returns the releases strictly newer than current and at or below
// target, sorted newest first. The result is never nil.
func Filter(current, target string, releases []Release) []Release {
	out := uslices.Filter(releases, func(r Release) bool {
		return version.Compare(r.Version, current) > 0 && version.Compare(r.Version, target) <= 0
	})

	slices.SortStableFunc(out, func(a, b Release) int {
		return version.Compare(b.Version, a.Version)
	})

	return out
}

// Count returns how many versions an upgrade spans. An upgrade always crosses
// at least one version boundary, so an empty list counts as one.
func Count(releases []Release) int {
	return max(1, len(releases))
}

// Versions returns the version strings of releases in order.
func Versions(releases []Release) []string {
	return uslices.Map(releases, func(r Release) string { return r.Version })
}

func newRelease(tag, body string, publishedAt time.Time, url string) Release {
	if body == "" {
		body = NoChangelog
	}

	return Release{
		Version:     version.Normalize(tag),
		Changelog:   body,
		PublishedAt: publishedAt,
		URL:         url,
	}
}
