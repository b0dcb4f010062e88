package display

import "strings"

// Style tokens are embedded in generated text instead of raw ANSI codes so the
// text can be stored as data and rendered later, once for a file and once for
// a live terminal, without double escaping.
const (
	TokenReset   = "{{reset}}"
	TokenBold    = "{{bold}}"
	TokenDim     = "{{dim}}"
	TokenRed     = "{{red}}"
	TokenGreen   = "{{green}}"
	TokenYellow  = "{{yellow}}"
	TokenBlue    = "{{blue}}"
	TokenMagenta = "{{magenta}}"
	TokenCyan    = "{{cyan}}"
	TokenGray    = "{{gray}}"
)

var tokenCodes = []string{
	TokenReset, reset,
	TokenBold, bold,
	TokenDim, dim,
	TokenRed, red,
	TokenGreen, green,
	TokenYellow, yellow,
	TokenBlue, blue,
	TokenMagenta, magenta,
	TokenCyan, cyan,
	TokenGray, gray,
}

var (
	expander = strings.NewReplacer(tokenCodes...)
	stripper = strings.NewReplacer(stripPairs()...)
)

func stripPairs() []string {
	pairs := make([]string, 0, len(tokenCodes))
	for i := 0; i < len(tokenCodes); i += 2 {
		pairs = append(pairs, tokenCodes[i], "")
	}

	return pairs
}

// Expand converts style tokens to ANSI escape codes, or removes them when
// colors are disabled.
func Expand(text string) string {
	if !ColorsEnabled() {
		return Strip(text)
	}

	return ExpandANSI(text)
}

// ExpandANSI converts style tokens to ANSI escape codes regardless of the
// color setting. Used for files meant to be viewed with `cat` or `less -R`.
func ExpandANSI(text string) string {
	return expander.Replace(text)
}

// Strip removes all style tokens.
func Strip(text string) string {
	return stripper.Replace(text)
}
