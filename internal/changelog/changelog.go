// Package changelog extracts feature and improvement bullets from free-text
// release notes.
//
// Classification is a line-oriented heuristic. It can misclassify: a line like
// "- Fixed support for X" is claimed by the feature rule because the feature
// check runs first and the first match wins.
package changelog

import (
	"regexp"
	"strings"
)

// nameTokens is how many leading tokens form a feature name.
const nameTokens = 4

// bullet is the only list marker recognized.
const bullet = "- "

var (
	featureKeywords = regexp.MustCompile(`(?i)^- .*(support|tool|command|feature)`)
	featurePrefix   = regexp.MustCompile(`^(Added |feat: )`)
	improvementTag  = regexp.MustCompile(`^(Fixed |Improved |fix: |perf: )`)
)

// improvementPrefixes are matched exactly and case-sensitively.
var improvementPrefixes = []string{"- Fixed", "- Improved", "- fix:", "- perf:"}

// Feature is a changelog bullet describing new functionality.
type Feature struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Parsed holds the bullets extracted from one or more changelogs, in input order.
type Parsed struct {
	Features     []Feature `json:"features"`
	Improvements []string  `json:"improvements"`
}

// Append adds other's bullets after the ones already collected.
func (p *Parsed) Append(other Parsed) {
	p.Features = append(p.Features, other.Features...)
	p.Improvements = append(p.Improvements, other.Improvements...)
}

// Empty reports whether nothing was extracted.
func (p Parsed) Empty() bool {
	return len(p.Features) == 0 && len(p.Improvements) == 0
}

// Parse classifies each line of text as a feature, an improvement or neither.
// A line is classified at most once.
func Parse(text string) Parsed {
	var out Parsed

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if f, ok := parseFeature(line); ok {
			out.Features = append(out.Features, f)
			continue
		}

		if imp, ok := parseImprovement(line); ok {
			out.Improvements = append(out.Improvements, imp)
		}
	}

	return out
}

func isFeature(line string) bool {
	return strings.HasPrefix(line, "- Added") || featureKeywords.MatchString(line)
}

func parseFeature(line string) (Feature, bool) {
	if !isFeature(line) {
		return Feature{}, false
	}

	// The tag is optional; a bare "- Added" keeps "Added" as its text
	body := strings.TrimPrefix(line, bullet)
	desc := featurePrefix.ReplaceAllString(body, "")

	tokens := strings.Split(body, " ")
	if len(tokens) > nameTokens {
		tokens = tokens[:nameTokens]
	}
	name := featurePrefix.ReplaceAllString(strings.Join(tokens, " "), "")

	return Feature{Name: name, Description: desc}, true
}

func parseImprovement(line string) (string, bool) {
	for _, prefix := range improvementPrefixes {
		if strings.HasPrefix(line, prefix) {
			return improvementTag.ReplaceAllString(strings.TrimPrefix(line, bullet), ""), true
		}
	}

	return "", false
}
