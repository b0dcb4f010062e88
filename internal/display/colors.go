// Package display renders notices for the terminal: ANSI colors that honor
// --no-color and NO_COLOR, and expansion of stored style tokens.
package display

import (
	"fmt"
	"os"
	"sync"
)

// ANSI escape codes, one per style token.
const (
	reset   = "\033[0m"
	bold    = "\033[1m"
	dim     = "\033[2m"
	red     = "\033[31m"
	green   = "\033[32m"
	yellow  = "\033[33m"
	blue    = "\033[34m"
	magenta = "\033[35m"
	cyan    = "\033[36m"
	gray    = "\033[90m"
)

// colorSetting holds the process-wide color decision. The first reader
// resolves it from the environment unless InitColors or SetColorsEnabled ran
// before; once has fired either way, so later readers only take the read lock.
type colorSetting struct {
	once    sync.Once
	mu      sync.RWMutex
	enabled bool
}

var colors colorSetting

func (c *colorSetting) store(enabled bool) {
	c.once.Do(func() {})

	c.mu.Lock()
	c.enabled = enabled
	c.mu.Unlock()
}

func (c *colorSetting) load() bool {
	c.once.Do(func() {
		c.mu.Lock()
		c.enabled = colorsAllowed(false)
		c.mu.Unlock()
	})

	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.enabled
}

// colorsAllowed reports whether output may carry ANSI codes given the
// --no-color flag and NO_COLOR (https://no-color.org/).
func colorsAllowed(noColor bool) bool {
	if noColor {
		return false
	}
	_, set := os.LookupEnv("NO_COLOR")

	return !set
}

// InitColors decides color output from the --no-color flag and NO_COLOR.
// Call it once during startup; without it the first ColorsEnabled call
// consults NO_COLOR alone.
func InitColors(noColor bool) {
	colors.store(colorsAllowed(noColor))
}

// ColorsEnabled reports whether ANSI codes are written. Safe for concurrent use.
func ColorsEnabled() bool {
	return colors.load()
}

// SetColorsEnabled forces color output on or off. Tests use it to get plain text.
func SetColorsEnabled(enabled bool) {
	colors.store(enabled)
}

func paint(text, code string) string {
	if !ColorsEnabled() {
		return text
	}

	return code + text + reset
}

// Success paints text green.
func Success(text string) string { return paint(text, green) }

// Error paints text red.
func Error(text string) string { return paint(text, red) }

// Warning paints text yellow.
func Warning(text string) string { return paint(text, yellow) }

// Muted paints text gray.
func Muted(text string) string { return paint(text, gray) }

// Bold renders text bold.
func Bold(text string) string { return paint(text, bold) }

// Cyan paints text cyan; used for commands.
func Cyan(text string) string { return paint(text, cyan) }

// SuccessMsg prefixes a formatted message with a green check mark.
func SuccessMsg(format string, args ...any) string {
	return Success("✓") + " " + fmt.Sprintf(format, args...)
}

// ErrorMsg formats a red message behind a red cross.
func ErrorMsg(format string, args ...any) string {
	return Error("✗") + " " + Error(fmt.Sprintf(format, args...))
}
