// Package imagegen delegates release-card rendering to an external script.
//
// The script is called as `<interpreter> <script> <pending.json> <lang> <output>`.
// Success is signaled only by the output file existing afterwards.
package imagegen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single generation run.
const DefaultTimeout = 30 * time.Second

var (
	// ErrUnavailable is returned when the interpreter, script or imaging library is missing.
	ErrUnavailable = errors.New("imagegen: prerequisites unavailable")

	// ErrFailed is returned when the script ran but produced no image.
	ErrFailed = errors.New("imagegen: generation failed")
)

// Generator runs the image script.
type Generator struct {
	Interpreter string        // e.g., "python3"
	Script      string        // Path to the rendering script
	Module      string        // Library the interpreter must import (e.g., "PIL"); empty skips the check
	Timeout     time.Duration // Zero means DefaultTimeout
}

// Available reports whether generation can be attempted.
func (g *Generator) Available(ctx context.Context) error {
	if g.Script == "" {
		return fmt.Errorf("%w: no script configured", ErrUnavailable)
	}
	if _, err := os.Stat(g.Script); err != nil {
		return fmt.Errorf("%w: script: %w", ErrUnavailable, err)
	}

	interpreter, err := exec.LookPath(g.Interpreter)
	if err != nil {
		return fmt.Errorf("%w: interpreter %q: %w", ErrUnavailable, g.Interpreter, err)
	}

	if g.Module != "" {
		checkCtx, cancel := context.WithTimeout(ctx, g.timeout())
		defer cancel()

		if err := exec.CommandContext(checkCtx, interpreter, "-c", "import "+g.Module).Run(); err != nil {
			return fmt.Errorf("%w: module %s: %w", ErrUnavailable, g.Module, err)
		}
	}

	return nil
}

// Generate renders an image for the plan stored at pendingPath and returns outPath.
func (g *Generator) Generate(ctx context.Context, pendingPath, lang, outPath string) (string, error) {
	if err := g.Available(ctx); err != nil {
		return "", err
	}

	// A leftover image from an earlier run must not count as success
	if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("%w: remove stale output: %w", ErrFailed, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, g.timeout())
	defer cancel()

	cmd := exec.CommandContext(runCtx, g.Interpreter, g.Script, pendingPath, lang, outPath)
	cmd.WaitDelay = time.Second
	output, runErr := cmd.CombinedOutput()

	if _, err := os.Stat(outPath); err == nil {
		return outPath, nil
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("%w: timed out after %s", ErrFailed, g.timeout())
	}
	if runErr != nil {
		return "", fmt.Errorf("%w: %w: %s", ErrFailed, runErr, strings.TrimSpace(string(output)))
	}

	return "", fmt.Errorf("%w: %s was not created", ErrFailed, outPath)
}

func (g *Generator) timeout() time.Duration {
	if g.Timeout <= 0 {
		return DefaultTimeout
	}

	return g.Timeout
}
