package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valksor/go-upnote/internal/display"
	"github.com/valksor/go-upnote/internal/log"
	"github.com/valksor/go-upnote/internal/release"
	"github.com/valksor/go-upnote/internal/summary"
	"github.com/valksor/go-upnote/internal/version"
)

var (
	previewFrom string
	previewTo   string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the upgrade summary for a version range",
	Long: `Fetch the release feed and print the summary for an upgrade from --from
to --to, exactly as it would be shown after an upgrade. Nothing is saved.`,
	Example: `  upnote preview --from 2.0.72 --to 2.0.75
  upnote preview --from 2.0.72 --to 2.0.75 --lang ja`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&previewFrom, "from", "", "Installed version (required)")
	previewCmd.Flags().StringVar(&previewTo, "to", "", "Target version (required)")
	_ = previewCmd.MarkFlagRequired("from")
	_ = previewCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	from, to := version.Normalize(previewFrom), version.Normalize(previewTo)
	if !version.Valid(from) {
		return fmt.Errorf("invalid --from version %q (want major.minor.patch)", previewFrom)
	}
	if !version.Valid(to) {
		return fmt.Errorf("invalid --to version %q (want major.minor.patch)", previewTo)
	}
	if version.Compare(from, to) >= 0 {
		return fmt.Errorf("--from %s must be older than --to %s", from, to)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	releases := []release.Release{}
	if src := openSource(cfg); src != nil {
		all, err := src.Releases(cmd.Context(), cfg.Feed.Limit)
		if err != nil {
			log.Warn("release feed unavailable", "source", src.Name(), log.Err(err))
		} else {
			releases = release.Filter(from, to, all)
		}
	}

	text := summary.Render(summary.Input{
		Tool:     cfg.Tool.Name,
		From:     from,
		To:       to,
		Releases: releases,
	}, summary.ResolveLanguage(cfg.ResolveLanguage()))

	_, err = fmt.Fprint(cmd.OutOrStdout(), display.Expand(text))

	return err
}
