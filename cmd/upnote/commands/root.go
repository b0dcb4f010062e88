package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/valksor/go-upnote/internal/config"
	"github.com/valksor/go-upnote/internal/display"
	"github.com/valksor/go-upnote/internal/imagegen"
	"github.com/valksor/go-upnote/internal/log"
	"github.com/valksor/go-upnote/internal/notifier"
	"github.com/valksor/go-upnote/internal/probe"
	"github.com/valksor/go-upnote/internal/release"
	"github.com/valksor/go-upnote/internal/storage"
)

// Global flags.
var (
	verbose    bool
	noColor    bool
	configPath string
	stateDir   string
	langFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "upnote",
	Short: "Upgrade notices for your CLI tools",
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	Long: `upnote checks whether a newer release of a CLI tool is available and
prepares a short, localized summary of what changed.

Run it from the tool's session-start hook. The first run after a release
prints a one-line notice and prepares the summary; the next run shows the
summary once and removes it. Output is a JSON payload on stdout:

  {"systemMessage": "...", "additionalContext": "..."}

or {} when there is nothing to show.

Other commands:
  upnote preview --from 2.0.72 --to 2.0.75   Render a summary without saving
  upnote status                              Show stored upgrade plans
  upnote reset                               Remove all stored state`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env first so it can feed tokens and overrides
		if err := config.LoadDotEnvDefaults(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load %s/%s: %v\n", config.AppDir, config.EnvFileName, err)
		}

		log.Configure(log.Options{
			Verbose: verbose,
			Level:   log.LevelWarn,
		})

		// Initialize color output from CLI flag (also respects NO_COLOR env)
		display.InitColors(noColor)

		log.Debug("initialized", "verbose", verbose, "command", cmd.Name())
	},
	RunE: runCheck,
}

// Execute runs the root command with signal handling.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable color output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.upnote/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "Directory for stored plans (default ~/.upnote)")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "Summary language (en, zh, ja, es); default from LANG")
}

// runCheck is the hook entry point. It always prints a payload and never fails.
func runCheck(cmd *cobra.Command, _ []string) error {
	return writeNotification(cmd.OutOrStdout(), check(cmd.Context()))
}

func check(ctx context.Context) notifier.Notification {
	cfg, err := loadConfig()
	if err != nil {
		log.Warn("configuration error", log.Err(err))
		return notifier.Notification{}
	}

	note, err := buildNotifier(cfg).Run(ctx)
	if err != nil {
		log.Warn("upgrade check failed", log.Err(err))
		return notifier.Notification{}
	}

	return note
}

func writeNotification(w io.Writer, note notifier.Notification) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(note); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}

	return nil
}

// loadConfig loads the config file and applies global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if stateDir != "" {
		cfg.StateDir = stateDir
	}
	if langFlag != "" {
		cfg.Language = langFlag
	}

	return cfg, nil
}

func buildNotifier(cfg *config.Config) *notifier.Notifier {
	installed := probe.NewInstalled(cfg.Tool.Command, cfg.Tool.Args...)
	latest := probe.NewRegistry(cfg.Tool.Registry, cfg.Tool.Package)

	detector := probe.NewInstallDetector(cfg.Tool.Cask, cfg.Tool.Package, cfg.Tool.Command)
	opts := []notifier.Option{
		notifier.WithUpgradeCommand(func(ctx context.Context) string {
			return detector.UpgradeCommand(detectInstall(ctx, detector))
		}),
	}
	if cfg.Image.Enabled && cfg.Image.Script != "" {
		opts = append(opts, notifier.WithImageGenerator(&imagegen.Generator{
			Interpreter: cfg.Image.Interpreter,
			Script:      cfg.Image.Script,
			Module:      cfg.Image.Module,
			Timeout:     cfg.Image.Timeout,
		}))
	}

	return notifier.New(notifier.Config{
		Tool:            cfg.Tool.Name,
		Limit:           cfg.Feed.Limit,
		Language:        cfg.ResolveLanguage(),
		VersionOverride: cfg.VersionOverride,
	}, installed, latest, openSource(cfg), storage.NewStore(cfg.StateDir), opts...)
}

// openSource returns the configured release feed, or nil when it cannot be built.
func openSource(cfg *config.Config) release.Source {
	src, err := release.NewSource(release.SourceOptions{
		Provider: cfg.Feed.Provider,
		Owner:    cfg.Feed.Owner,
		Repo:     cfg.Feed.Repo,
		Project:  cfg.Feed.Project,
		Host:     cfg.Feed.Host,
		Token:    cfg.Feed.Token,
	})
	if err != nil {
		log.Warn("release feed disabled", log.Err(err))
		return nil
	}

	return src
}
