package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gridedit/config"
	"gridedit/editor"

	"github.com/spf13/cobra"
)

type cliOptions struct {
	minCols    int
	minRows    int
	configPath string
	sheet      string
	debug      bool
}

// launchFunc starts the editor; tests replace it.
type launchFunc func(cfg *config.Config, path, sheet string) error

func main() {
	if err := newRootCmd(launch).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(run launchFunc) *cobra.Command {
	var opts cliOptions
	cmd := &cobra.Command{
		Use:   "gridedit [file]",
		Short: "Edit spreadsheet grids in the terminal",
		Long: `gridedit opens an .xlsx, .csv or .tsv file as an editable grid.
Without a file it starts with a sample table that can be saved under a new name.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if err := setupLogging(opts.debug); err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, opts, path)
			if err != nil {
				return err
			}
			return run(cfg, path, opts.sheet)
		},
	}

	cmd.Flags().IntVar(&opts.minCols, "min-cols", 0, "Minimum number of columns shown (default from config)")
	cmd.Flags().IntVar(&opts.minRows, "min-rows", 0, "Minimum number of rows shown (default from config)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Settings file (.json or .toml)")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "Workbook sheet to open (default: first sheet)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Write a debug log under ~/.local/share/gridedit/logs")
	return cmd
}

// loadConfig layers the settings file, the closest local override for path
// and then explicit flags.
func loadConfig(cmd *cobra.Command, opts cliOptions, path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	} else {
		cfg, err = config.Load()
		if err != nil {
			log.Printf("config: %v, using defaults", err)
			cfg = config.Default()
		}
	}

	if path != "" {
		local, localPath, err := cfg.WithLocal(path)
		if err != nil {
			return nil, fmt.Errorf("load local settings %s: %w", localPath, err)
		}
		if localPath != "" {
			log.Printf("using local settings %s", localPath)
		}
		cfg = local
	}

	if cmd.Flags().Changed("min-cols") {
		cfg.MinColumns = opts.minCols
	}
	if cmd.Flags().Changed("min-rows") {
		cfg.MinRows = opts.minRows
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func launch(cfg *config.Config, path, sheet string) error {
	e := editor.New(cfg)
	if path != "" {
		if err := e.Open(path, sheet); err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
	}
	return e.Run()
}

// setupLogging sends the standard logger to a file when debugging; the
// terminal belongs to the screen otherwise.
func setupLogging(debug bool) error {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("locate log dir: %w", err)
	}
	dir := filepath.Join(home, ".local", "share", "gridedit", "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "gridedit.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return nil
}
