package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/zhubert/sidepanel/internal/agent"
	"github.com/zhubert/sidepanel/internal/app"
	"github.com/zhubert/sidepanel/internal/config"
	"github.com/zhubert/sidepanel/internal/logger"
	"github.com/zhubert/sidepanel/internal/store"
	"github.com/zhubert/sidepanel/internal/telemetry"
)

var (
	debugMode             bool
	quietMode             bool
	themeFlag             string
	storeFlag             string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "sidepanel",
	Short: "Conversational side panel for the terminal",
	Long: `sidepanel is a chat panel for a task assistant. Messages are grouped by the
actor that produced them, and past chats are kept in a local history.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Path to the history database (\":memory:\" keeps nothing)")
	rootCmd.Flags().StringVar(&themeFlag, "theme", "", "Color theme: auto, dark or light")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("sidepanel %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("sidepanel %s\n", version)
}

// loadConfig reads .env files and the config file, then applies flags.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if themeFlag != "" {
		if err := cfg.SetTheme(themeFlag); err != nil {
			return nil, err
		}
	}
	if storeFlag != "" {
		cfg.SetStorePath(storeFlag)
	}
	return cfg, nil
}

func logPath(cfg *config.Config) string {
	if p := cfg.GetLogPath(); p != "" {
		return p
	}
	return logger.DefaultLogPath()
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := logPath(cfg)
	if err := logger.Init(path); err != nil {
		return fmt.Errorf("error opening log: %w", err)
	}
	defer logger.Close()
	log := logger.WithComponent("cmd")
	log.Info("starting", "version", version)

	ctx := context.Background()
	rec, err := telemetry.Init(ctx, filepath.Join(filepath.Dir(path), "sidepanel-telemetry"))
	if err != nil {
		log.Warn("telemetry disabled", "error", err)
		rec = telemetry.Noop()
	}

	st, err := store.Open(cfg.GetStorePath())
	if err != nil {
		return err
	}
	defer st.Close()

	opts := []app.Option{app.WithTelemetry(rec)}
	if storePath := cfg.GetStorePath(); storePath != store.MemoryPath {
		w, err := store.Watch(storePath, store.DefaultWatchDebounce)
		if err != nil {
			log.Warn("not watching store", "path", storePath, "error", err)
		} else {
			opts = append(opts, app.WithWatcher(w))
		}
	}

	m := app.New(cfg, st, agent.NewScriptedRunner(), opts...)
	defer m.Close()
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
