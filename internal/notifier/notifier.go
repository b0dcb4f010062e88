// Package notifier decides, once per tool start, whether to announce an
// available upgrade and what to show.
//
// A run either displays a previously prepared summary (and deletes it), or
// detects a new version, prepares its summary for the next start and returns
// a short banner. Every failure along the way degrades to a smaller result.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/valksor/go-upnote/internal/display"
	"github.com/valksor/go-upnote/internal/log"
	"github.com/valksor/go-upnote/internal/probe"
	"github.com/valksor/go-upnote/internal/release"
	"github.com/valksor/go-upnote/internal/storage"
	"github.com/valksor/go-upnote/internal/summary"
	"github.com/valksor/go-upnote/internal/version"
)

// ErrNoStore is returned by Run when the notifier was built without a store.
var ErrNoStore = errors.New("notifier: no store configured")

// Notification is the payload printed for the host tool's startup hook.
// The zero value marshals to {} and means "nothing to show".
type Notification struct {
	Message string `json:"systemMessage,omitempty"`
	Context string `json:"additionalContext,omitempty"`
}

// Empty reports whether there is nothing to display.
func (n Notification) Empty() bool {
	return n.Message == ""
}

// ImageGenerator renders a release card from the pending plan file.
type ImageGenerator interface {
	Generate(ctx context.Context, pendingPath, lang, outPath string) (string, error)
}

// Config carries the settings for one notifier.
type Config struct {
	Tool     string // Display name, e.g. "Claude Code"
	Limit    int    // Releases to fetch; zero means release.DefaultLimit
	Language string // Raw language or locale code; empty means English

	// VersionOverride replaces the installed-version probe when set.
	VersionOverride string

	// ImageDir receives release cards; empty means <state dir>/infographics.
	ImageDir string
}

// Notifier runs the detect, prepare and display cycle.
type Notifier struct {
	cfg       Config
	installed probe.Prober
	latest    probe.Prober
	source    release.Source
	images    ImageGenerator
	upgrade   func(ctx context.Context) string
	store     *storage.Store
	now       func() time.Time
}

// Option configures optional collaborators.
type Option func(*Notifier)

// WithImageGenerator enables release card generation.
func WithImageGenerator(g ImageGenerator) Option {
	return func(n *Notifier) {
		n.images = g
	}
}

// WithUpgradeCommand supplies the shell command that upgrades the tool. It is
// called only when an upgrade is announced; an empty result adds no hint.
func WithUpgradeCommand(f func(ctx context.Context) string) Option {
	return func(n *Notifier) {
		n.upgrade = f
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) {
		n.now = now
	}
}

// New creates a notifier. source may be nil, in which case no changelog is fetched.
func New(cfg Config, installed, latest probe.Prober, source release.Source, store *storage.Store, opts ...Option) *Notifier {
	if cfg.VersionOverride != "" {
		installed = probe.Static(cfg.VersionOverride)
	}
	if cfg.Limit <= 0 {
		cfg.Limit = release.DefaultLimit
	}

	n := &Notifier{
		cfg:       cfg,
		installed: installed,
		latest:    latest,
		source:    source,
		store:     store,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Run executes one cycle. Only a missing store or a failed state write is
// reported as an error; everything else yields a smaller or empty Notification.
func (n *Notifier) Run(ctx context.Context) (Notification, error) {
	if n.store == nil {
		return Notification{}, ErrNoStore
	}

	if note, ok := n.showPrepared(); ok {
		return note, nil
	}

	current, latest, ok := n.resolveVersions(ctx)
	if !ok {
		return Notification{}, nil
	}
	log.Info("upgrade available", log.Upgrade(current, latest))

	releases := n.fetchReleases(ctx, current, latest)

	plan := storage.NewPlan(n.cfg.Tool, current, latest, releases, n.now())
	if err := n.store.SavePending(plan); err != nil {
		return Notification{}, fmt.Errorf("persist pending plan: %w", err)
	}

	lang := summary.ResolveLanguage(n.cfg.Language)
	text := summary.Render(summary.Input{
		Tool:     n.cfg.Tool,
		From:     current,
		To:       latest,
		Releases: releases,
	}, lang)

	image := n.generateImage(ctx, lang, current, latest)

	plan.Prepare(text, image, lang, n.now())
	if err := n.store.SavePrepared(plan); err != nil {
		return Notification{}, fmt.Errorf("persist prepared plan: %w", err)
	}
	log.Debug("plan prepared", log.PlanID(plan.ID), "image", image != "")

	return n.readyNotice(ctx, current, latest, release.Count(releases), lang), nil
}

// showPrepared displays and deletes a prepared plan. A corrupt record is
// removed and treated as absent.
func (n *Notifier) showPrepared() (Notification, bool) {
	plan, err := n.store.LoadPrepared()
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNoPlan):
		return Notification{}, false
	case errors.Is(err, storage.ErrCorrupt):
		log.Warn("discarding unreadable prepared plan", log.Err(err))
		if err := n.store.ClearPrepared(); err != nil {
			log.Warn("failed to remove prepared plan", log.Err(err))
		}

		return Notification{}, false
	default:
		log.Warn("failed to load prepared plan", log.Err(err))

		return Notification{}, false
	}

	text := plan.Summary
	if text == "" {
		text = summary.Render(summary.Input{
			Tool:     plan.Tool,
			From:     plan.PreviousVersion,
			To:       plan.LatestVersion,
			Releases: plan.Releases,
		}, plan.Language)
	}

	image := ""
	if plan.ImagePath != "" {
		if _, err := os.Stat(plan.ImagePath); err == nil {
			image = plan.ImagePath
			text += summary.ImageBlock(image, plan.Language)
		}
	}

	// Delete before returning so the summary is shown once
	if err := n.store.ClearPrepared(); err != nil {
		log.Warn("failed to remove displayed plan", log.PlanID(plan.ID), log.Err(err))
	}
	if err := n.store.ClearPending(); err != nil {
		log.Warn("failed to remove pending plan", log.PlanID(plan.ID), log.Err(err))
	}
	log.Debug("displayed prepared plan", log.PlanID(plan.ID))

	tool := plan.Tool
	if tool == "" {
		tool = n.cfg.Tool
	}

	ctxMsg := fmt.Sprintf("%s upgrade summary from v%s to v%s has been displayed.",
		tool, plan.PreviousVersion, plan.LatestVersion)
	if image != "" {
		ctxMsg += " Release card available at: " + image + "."
	}

	return Notification{
		Message: "\n" + display.Expand(text),
		Context: ctxMsg,
	}, true
}

// resolveVersions returns the installed and latest versions when an upgrade exists.
func (n *Notifier) resolveVersions(ctx context.Context) (string, string, bool) {
	if n.installed == nil || n.latest == nil {
		log.Debug("version probes not configured")
		return "", "", false
	}

	current, err := n.installed.Version(ctx)
	if err != nil {
		log.Debug("installed version unavailable", log.Err(err))
		return "", "", false
	}

	latest, err := n.latest.Version(ctx)
	if err != nil {
		log.Debug("latest version unavailable", log.Err(err))
		return "", "", false
	}

	current, latest = version.Normalize(current), version.Normalize(latest)
	if !version.Valid(current) || !version.Valid(latest) {
		log.Debug("ignoring malformed version", log.Upgrade(current, latest))
		return "", "", false
	}

	if version.Compare(current, latest) >= 0 {
		log.Debug("up to date", "version", current)
		return "", "", false
	}

	return current, latest, true
}

// fetchReleases returns the feed entries in (current, latest], newest first.
// Any failure yields an empty list.
func (n *Notifier) fetchReleases(ctx context.Context, current, latest string) []release.Release {
	if n.source == nil {
		return []release.Release{}
	}

	all, err := n.source.Releases(ctx, n.cfg.Limit)
	if err != nil {
		log.Warn("release feed unavailable", "source", n.source.Name(), log.Err(err))
		return []release.Release{}
	}

	snap := &storage.Snapshot{Source: n.source.Name(), FetchedAt: n.now(), Releases: all}
	if err := n.store.SaveSnapshot(snap); err != nil {
		log.Warn("failed to save release snapshot", log.Err(err))
	}

	filtered := release.Filter(current, latest, all)
	log.Debug("releases filtered", "fetched", len(all), "kept", len(filtered))

	return filtered
}

// generateImage returns the release card path, or "" when none was produced.
func (n *Notifier) generateImage(ctx context.Context, lang, current, latest string) string {
	if n.images == nil {
		return ""
	}

	dir := n.cfg.ImageDir
	if dir == "" {
		dir = filepath.Join(n.store.Dir(), "infographics")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("failed to create image directory", log.Err(err))
		return ""
	}

	out := filepath.Join(dir, fmt.Sprintf("changelog-%s-to-%s.png", current, latest))
	path, err := n.images.Generate(ctx, n.store.PendingPath(), lang, out)
	if err != nil {
		log.Debug("release card skipped", log.Err(err))
		return ""
	}

	return path
}

func (n *Notifier) readyNotice(ctx context.Context, current, latest string, count int, lang string) Notification {
	text := display.TokenBold + display.TokenBlue + summary.Ready(n.cfg.Tool, current, latest, count, lang) + display.TokenReset
	ctxMsg := fmt.Sprintf("A new version v%s of %s is available (%d version(s) to upgrade). "+
		"The current version is v%s. A summary has been prepared and will be shown on the next start.",
		latest, n.cfg.Tool, count, current)

	if n.upgrade != nil {
		if command := n.upgrade(ctx); command != "" {
			text += "\n" + display.TokenYellow + summary.UpgradeHint(command, lang) + display.TokenReset
			ctxMsg += " To upgrade, run: " + command
		}
	}

	return Notification{
		Message: "\n" + display.Expand(text),
		Context: ctxMsg,
	}
}
