// Package version compares dotted major.minor.patch version strings.
package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrInvalid is returned by Parse when the input is not a plain numeric triple.
var ErrInvalid = errors.New("version: invalid version")

// triplePattern matches the first dotted numeric triple in free text.
var triplePattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// Version is a numeric major.minor.patch triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse parses s (an optional leading "v" is allowed) into a Version.
func Parse(s string) (Version, error) {
	if !Valid(s) {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}

	parts, _ := components(s)

	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

// String returns the version without a "v" prefix.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or 1 depending on whether v is older, equal or newer than o.
func (v Version) Compare(o Version) int {
	a := [3]int{v.Major, v.Minor, v.Patch}
	b := [3]int{o.Major, o.Minor, o.Patch}
	for i := range a {
		if c := compareInt(a[i], b[i]); c != 0 {
			return c
		}
	}

	return 0
}

// Compare compares two version strings component by component and returns
// -1, 0 or 1. The first unequal component decides.
//
// Inputs are expected to hold exactly three non-negative integers. A missing
// or non-numeric component on either side is not comparable and is skipped,
// so Compare("2.x.1", "2.5.1") is 0 while Compare("2.x.1", "2.5.2") is -1.
// Use Valid first when the distinction matters.
func Compare(a, b string) int {
	pa, oka := components(a)
	pb, okb := components(b)

	for i := range pa {
		if !oka[i] || !okb[i] {
			continue
		}
		if c := compareInt(pa[i], pb[i]); c != 0 {
			return c
		}
	}

	return 0
}

// Newer reports whether a is strictly newer than b.
func Newer(a, b string) bool {
	return Compare(a, b) > 0
}

// Valid reports whether s is exactly three dot-separated non-negative
// integers, optionally prefixed with "v". Pre-release and build suffixes are rejected.
func Valid(s string) bool {
	v := "v" + Normalize(s)
	if !semver.IsValid(v) {
		return false
	}
	// semver accepts "v1" and "v1.2" as shorthands; only full triples round-trip.
	if semver.Canonical(v) != v {
		return false
	}

	return semver.Prerelease(v) == "" && semver.Build(v) == ""
}

// Normalize trims whitespace and a leading "v".
func Normalize(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "v")
}

// Extract returns the first dotted numeric triple found in text, e.g.
// "2.0.72 (Claude Code)" yields "2.0.72".
func Extract(text string) (string, bool) {
	m := triplePattern.FindString(text)
	if m == "" {
		return "", false
	}

	return m, true
}

// components splits s into its numeric parts; ok marks the parts that parsed.
func components(s string) (parts [3]int, ok [3]bool) {
	for i, p := range strings.SplitN(Normalize(s), ".", 3) {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			continue
		}
		parts[i], ok[i] = n, true
	}

	return parts, ok
}

func compareInt(a, b int) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}

	return 0
}
