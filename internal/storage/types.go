package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/valksor/go-upnote/internal/release"
)

// State tags a stored plan's position in the single-display lifecycle.
// A plan moves pending -> prepared -> (displayed and removed).
type State string

const (
	StatePending  State = "pending"
	StatePrepared State = "prepared"
)

// Plan is the durable record describing a detected update (pending.json, prepared.json).
type Plan struct {
	ID              string            `json:"id"`
	State           State             `json:"state"`
	Tool            string            `json:"tool,omitempty"`
	PreviousVersion string            `json:"previous_version"`
	LatestVersion   string            `json:"latest_version"`
	Releases        []release.Release `json:"releases"`             // Newest first, within (previous, latest]
	Summary         string            `json:"summary,omitempty"`    // Tokenized text, see display.Expand
	ImagePath       string            `json:"image_path,omitempty"` // Optional release card
	Language        string            `json:"language,omitempty"`
	DetectedAt      time.Time         `json:"detected_at"`
	PreparedAt      time.Time         `json:"prepared_at,omitzero"`
	Ready           bool              `json:"ready"`
}

// NewPlan creates a pending plan for an upgrade from previous to latest.
func NewPlan(tool, previous, latest string, releases []release.Release, detectedAt time.Time) *Plan {
	if releases == nil {
		releases = []release.Release{}
	}

	return &Plan{
		ID:              uuid.NewString(),
		State:           StatePending,
		Tool:            tool,
		PreviousVersion: previous,
		LatestVersion:   latest,
		Releases:        releases,
		DetectedAt:      detectedAt,
	}
}

// Prepare fills in the rendered output and marks the plan ready for display.
func (p *Plan) Prepare(summary, imagePath, lang string, preparedAt time.Time) {
	p.State = StatePrepared
	p.Summary = summary
	p.ImagePath = imagePath
	p.Language = lang
	p.PreparedAt = preparedAt
	p.Ready = true
}

// Snapshot is the last fetched release feed (releases.json).
type Snapshot struct {
	Source    string            `json:"source"`
	FetchedAt time.Time         `json:"fetched_at"`
	Releases  []release.Release `json:"releases"`
}
