// Package summary renders the upgrade digest shown to the user.
//
// Output carries display style tokens rather than ANSI codes; callers expand
// them with display.Expand when printing.
package summary

import (
	"fmt"
	"strings"

	"github.com/valksor/go-upnote/internal/changelog"
	"github.com/valksor/go-upnote/internal/display"
	"github.com/valksor/go-upnote/internal/release"
	uslices "github.com/valksor/go-upnote/internal/slices"
)

// MaxEntries caps the features and the improvements sections.
const MaxEntries = 5

const (
	featureMarker     = "✦"
	improvementMarker = "•"
	bannerWidth       = 48
)

// Input describes one upgrade.
type Input struct {
	Tool     string
	From     string
	To       string
	Releases []release.Release // Newest first
}

// Collect parses every release changelog and concatenates the bullets in release order.
func Collect(releases []release.Release) changelog.Parsed {
	var all changelog.Parsed
	for _, r := range releases {
		all.Append(changelog.Parse(r.Changelog))
	}

	return all
}

// Render produces the tokenized summary text for in, localized to lang.
func Render(in Input, lang string) string {
	s := For(lang)
	parsed := Collect(in.Releases)

	lines := []string{
		display.TokenCyan + strings.Repeat("━", bannerWidth) + display.TokenReset,
		display.TokenBold + fmt.Sprintf(s.Welcome, in.Tool, in.To) + display.TokenReset,
		"",
		display.TokenBold + display.TokenCyan + s.Header + display.TokenReset,
		display.TokenDim + fmt.Sprintf(s.Changes, in.From, in.To) + display.TokenReset,
	}

	if len(parsed.Features) > 0 {
		lines = append(lines, "", display.TokenGreen+s.Features+display.TokenReset)
		for _, f := range uslices.Head(parsed.Features, MaxEntries) {
			lines = append(lines, fmt.Sprintf("  %s%s%s %s", display.TokenGreen, featureMarker, display.TokenReset, f.Description))
		}
	}

	if len(parsed.Improvements) > 0 {
		lines = append(lines, "", display.TokenYellow+s.Improvements+display.TokenReset)
		for _, imp := range uslices.Head(parsed.Improvements, MaxEntries) {
			lines = append(lines, fmt.Sprintf("  %s%s%s %s", display.TokenYellow, improvementMarker, display.TokenReset, imp))
		}
	}

	return strings.Join(lines, "\n") + "\n"
}

// Ready is the short live notice emitted when a summary has been prepared.
func Ready(tool, from, to string, count int, lang string) string {
	s := For(lang)

	var msg string
	if count <= 1 {
		msg = fmt.Sprintf(s.ReadyOne, tool, to)
	} else {
		msg = fmt.Sprintf(s.Ready, tool, to, count)
	}

	return strings.Join([]string{msg, fmt.Sprintf(s.Versions, from, to), s.Restart}, "\n")
}

// UpgradeHint tells the user which command upgrades the tool.
func UpgradeHint(command, lang string) string {
	return fmt.Sprintf(For(lang).Upgrade, command)
}

// ImageBlock is appended to a displayed summary when its release card exists.
func ImageBlock(path, lang string) string {
	return "\n" + display.TokenMagenta + fmt.Sprintf(For(lang).Image, path) + display.TokenReset + "\n"
}
