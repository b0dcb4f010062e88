package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/valksor/go-upnote/internal/display"
	"github.com/valksor/go-upnote/internal/storage"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove stored upgrade plans and release cards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		store := storage.NewStore(cfg.StateDir)
		if err := store.Reset(); err != nil {
			return fmt.Errorf("reset state: %w", err)
		}
		if err := os.RemoveAll(filepath.Join(store.Dir(), "infographics")); err != nil {
			return fmt.Errorf("remove release cards: %w", err)
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), display.SuccessMsg("Cleared upgrade state in %s", store.Dir()))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
