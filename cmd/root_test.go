package cmd

import (
	"path/filepath"
	"testing"

	"github.com/zhubert/sidepanel/internal/config"
)

func TestDebugFlagDefaultFalse(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("debug")
	if flag == nil {
		t.Fatal("--debug flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--debug default = %q, want %q", flag.DefValue, "false")
	}
}

func TestQuietFlagExists(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("quiet")
	if flag == nil {
		t.Fatal("--quiet flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--quiet default = %q, want %q", flag.DefValue, "false")
	}
	if flag.Shorthand != "q" {
		t.Errorf("--quiet shorthand = %q, want %q", flag.Shorthand, "q")
	}
}

func TestInitConfig_DebugEnabled(t *testing.T) {
	// Save and restore package state
	origDebug, origQuiet := debugMode, quietMode
	defer func() { debugMode, quietMode = origDebug, origQuiet }()

	debugMode = true
	quietMode = false

	// Should not panic
	initConfig()
}

func TestInitConfig_QuietOverridesDebug(t *testing.T) {
	origDebug, origQuiet := debugMode, quietMode
	defer func() { debugMode, quietMode = origDebug, origQuiet }()

	debugMode = true
	quietMode = true

	// Should not panic - quiet should take precedence
	initConfig()
}

func TestVersionTemplate(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer SetVersionInfo(origV, origC, origD)

	SetVersionInfo("1.2.3", "none", "unknown")
	if got := versionTemplate(); got != "sidepanel 1.2.3\n" {
		t.Errorf("versionTemplate() = %q", got)
	}
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	if got := versionTemplate(); got != "sidepanel 1.2.3\n  commit: abc123\n  built:  2026-01-01\n" {
		t.Errorf("versionTemplate() = %q", got)
	}
}

// isolate points the config, store and log at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(config.EnvStorePath, filepath.Join(dir, "history.db"))
	t.Setenv(config.EnvLogPath, filepath.Join(dir, "sidepanel.log"))
	t.Setenv(config.EnvTheme, "")

	origTheme, origStore := themeFlag, storeFlag
	t.Cleanup(func() { themeFlag, storeFlag = origTheme, origStore })
	themeFlag, storeFlag = "", ""
	return dir
}

func TestLoadConfig_Flags(t *testing.T) {
	dir := isolate(t)
	themeFlag = config.ThemeLight
	storeFlag = filepath.Join(dir, "other.db")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.GetTheme() != config.ThemeLight {
		t.Errorf("theme = %q, want light", cfg.GetTheme())
	}
	if cfg.GetStorePath() != storeFlag {
		t.Errorf("store = %q, want %q", cfg.GetStorePath(), storeFlag)
	}
	if logPath(cfg) != filepath.Join(dir, "sidepanel.log") {
		t.Errorf("logPath() = %q", logPath(cfg))
	}
}

func TestLoadConfig_InvalidTheme(t *testing.T) {
	isolate(t)
	themeFlag = "neon"
	if _, err := loadConfig(); err == nil {
		t.Error("loadConfig() should reject an unknown theme")
	}
}
