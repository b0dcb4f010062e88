package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/valksor/go-upnote/internal/config"
	"github.com/valksor/go-upnote/internal/display"
	"github.com/valksor/go-upnote/internal/probe"
	"github.com/valksor/go-upnote/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show stored upgrade plans",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

// detectInstall is replaced in tests to avoid shelling out to brew and npm.
var detectInstall = func(ctx context.Context, d *probe.InstallDetector) probe.InstallMethod {
	return d.Detect(ctx)
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	out := cmd.OutOrStdout()
	store := storage.NewStore(cfg.StateDir)

	_, _ = fmt.Fprintf(out, "State directory: %s\n\n", store.Dir())

	pending, err := showPlan(out, "Pending plan", store.LoadPending)
	if err != nil {
		return err
	}
	prepared, err := showPlan(out, "Prepared plan", store.LoadPrepared)
	if err != nil {
		return err
	}

	if snap, err := store.LoadSnapshot(); err == nil {
		_, _ = fmt.Fprintf(out, "Feed snapshot: %d releases from %s at %s\n",
			len(snap.Releases), snap.Source, snap.FetchedAt.Local().Format(time.DateTime))
	}

	plan := prepared
	if plan == nil {
		plan = pending
	}
	if plan == nil {
		return nil
	}

	_, _ = fmt.Fprint(out, display.FormatNextSteps(nextSteps(cmd, cfg, plan)))

	return nil
}

// showPlan prints one stored plan. A missing or corrupt record is reported, not returned.
func showPlan(out io.Writer, header string, load func() (*storage.Plan, error)) (*storage.Plan, error) {
	plan, err := load()
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNoPlan):
		_, _ = fmt.Fprintf(out, "%s: %s\n\n", header, display.Muted("none"))
		return nil, nil
	case errors.Is(err, storage.ErrCorrupt):
		_, _ = fmt.Fprintf(out, "%s: %s\n\n", header, display.Warning("unreadable (run upnote reset)"))
		return nil, nil
	default:
		return nil, fmt.Errorf("load %s: %w", header, err)
	}

	info := display.PlanInfo{
		ID:       plan.ID,
		State:    string(plan.State),
		From:     plan.PreviousVersion,
		To:       plan.LatestVersion,
		Releases: len(plan.Releases),
		Language: plan.Language,
		Image:    plan.ImagePath,
		Detected: plan.DetectedAt.Local().Format(time.DateTime),
	}
	_, _ = fmt.Fprintln(out, display.FormatPlanInfo(header, info))

	return plan, nil
}

func nextSteps(cmd *cobra.Command, cfg *config.Config, plan *storage.Plan) []display.NextStep {
	detector := probe.NewInstallDetector(cfg.Tool.Cask, cfg.Tool.Package, cfg.Tool.Command)
	method := detectInstall(cmd.Context(), detector)

	return []display.NextStep{
		{
			Command:     detector.UpgradeCommand(method),
			Description: fmt.Sprintf("upgrade to v%s (%s install)", plan.LatestVersion, method),
		},
		{
			Command:     fmt.Sprintf("upnote preview --from %s --to %s", plan.PreviousVersion, plan.LatestVersion),
			Description: "show the summary now",
		},
		{
			Command:     "upnote reset",
			Description: "discard stored plans",
		},
	}
}
