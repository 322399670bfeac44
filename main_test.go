package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gridedit/config"
)

type launchCall struct {
	cfg   *config.Config
	path  string
	sheet string
}

func runCLI(t *testing.T, args ...string) (launchCall, error) {
	t.Helper()
	var got launchCall
	cmd := newRootCmd(func(cfg *config.Config, path, sheet string) error {
		got = launchCall{cfg: cfg, path: path, sheet: sheet}
		return nil
	})
	cmd.SetArgs(args)
	cmd.SetOut(os.Stderr)
	cmd.SetErr(os.Stderr)
	err := cmd.Execute()
	return got, err
}

func TestRootCommandDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	got, err := runCLI(t)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.path != "" || got.cfg == nil || got.cfg.MinColumns != 10 || got.cfg.MinRows != 21 {
		t.Fatalf("unexpected launch %+v", got)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(cfgPath, []byte("min_columns = 4\nmin_rows = 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := runCLI(t, "--config", cfgPath, "--min-rows", "50", "--sheet", "Q2", "book.xlsx")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.cfg.MinColumns != 4 || got.cfg.MinRows != 50 {
		t.Fatalf("expected 4 columns from file and 50 rows from flag, got %d x %d", got.cfg.MinColumns, got.cfg.MinRows)
	}
	if got.path != "book.xlsx" || got.sheet != "Q2" {
		t.Fatalf("unexpected path/sheet %q %q", got.path, got.sheet)
	}
}

func TestLocalSettingsApplyToFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".gridedit.toml"), []byte("theme = \"nord\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := runCLI(t, filepath.Join(dir, "data.csv"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.cfg.Theme != "nord" {
		t.Fatalf("expected local theme nord, got %q", got.cfg.Theme)
	}
}

func TestInvalidFlagValueRejected(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := runCLI(t, "--min-cols", "0")
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestTooManyArgs(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := runCLI(t, "a.csv", "b.csv"); err == nil {
		t.Fatal("expected an error for two files")
	}
}

func TestSetupLoggingWritesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := setupLogging(true); err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	defer setupLogging(false)
	if _, err := os.Stat(filepath.Join(home, ".local", "share", "gridedit", "logs", "gridedit.log")); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}
