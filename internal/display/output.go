package display

import (
	"fmt"
	"strings"
)

// PlanInfo holds upgrade plan information for consistent display.
type PlanInfo struct {
	ID       string
	State    string
	From     string
	To       string
	Releases int
	Language string
	Image    string
	Detected string
}

// FormatPlanInfo formats a stored upgrade plan for the status command.
func FormatPlanInfo(header string, info PlanInfo) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s: %s\n", header, Bold(info.ID)))

	// Key-value pairs with consistent 10-char alignment
	if info.State != "" {
		sb.WriteString(fmt.Sprintf("  %-10s%s\n", "State:", ColorState(info.State)))
	}

	if info.From != "" || info.To != "" {
		sb.WriteString(fmt.Sprintf("  %-10s%s → %s\n", "Upgrade:", Muted(info.From), Success(info.To)))
	}

	if info.Releases > 0 {
		sb.WriteString(fmt.Sprintf("  %-10s%d\n", "Releases:", info.Releases))
	}

	if info.Language != "" {
		sb.WriteString(fmt.Sprintf("  %-10s%s\n", "Language:", info.Language))
	}

	if info.Image != "" {
		sb.WriteString(fmt.Sprintf("  %-10s%s\n", "Image:", info.Image))
	}

	if info.Detected != "" {
		sb.WriteString(fmt.Sprintf("  %-10s%s\n", "Detected:", info.Detected))
	}

	return sb.String()
}

// ColorState returns a colored plan state.
func ColorState(state string) string {
	switch state {
	case "pending":
		return Warning(state)
	case "prepared":
		return Success(state)
	default:
		return state
	}
}

// NextStep represents a single next step suggestion.
type NextStep struct {
	Command     string
	Description string
}

// FormatNextSteps formats the "Next steps:" section consistently.
func FormatNextSteps(steps []NextStep) string {
	if len(steps) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(Muted("Next steps:"))
	sb.WriteString("\n")

	// Find the longest command for alignment
	maxLen := 0
	for _, s := range steps {
		if len(s.Command) > maxLen {
			maxLen = len(s.Command)
		}
	}

	for _, s := range steps {
		sb.WriteString(fmt.Sprintf("  %-*s  %s\n",
			maxLen,
			Cyan(s.Command),
			Muted("- "+s.Description),
		))
	}

	return sb.String()
}
