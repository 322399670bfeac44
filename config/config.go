package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	MinColumns      int    `json:"min_columns" toml:"min_columns"`
	MinRows         int    `json:"min_rows" toml:"min_rows"`
	MinCellWidth    int    `json:"min_cell_width" toml:"min_cell_width"`
	CellHeight      int    `json:"cell_height" toml:"cell_height"`
	Width           int    `json:"width" toml:"width"`   // 0 = whole screen
	Height          int    `json:"height" toml:"height"` // 0 = whole screen
	Theme           string `json:"theme" toml:"theme"`
	ClipboardEscape bool   `json:"clipboard_escape" toml:"clipboard_escape"`
	AutoBackup      bool   `json:"auto_backup" toml:"auto_backup"`
	WatchFile       bool   `json:"watch_file" toml:"watch_file"`
}

type ColorScheme struct {
	Name            string
	Background      tcell.Color
	Foreground      tcell.Color
	Selection       tcell.Color // range background
	Anchor          tcell.Color // anchor cell background
	FillTarget      tcell.Color
	HeaderBg        tcell.Color
	HeaderFg        tcell.Color
	HeaderActiveBg  tcell.Color
	GridLine        tcell.Color
	StatusBarBg     tcell.Color
	StatusBarFg     tcell.Color
	StatusBarModeBg tcell.Color
	DialogBg        tcell.Color
	DialogFg        tcell.Color
	DialogInputBg   tcell.Color
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:            "Dark",
		Background:      tcell.ColorBlack,
		Foreground:      tcell.ColorWhite,
		Selection:       tcell.ColorDarkBlue,
		Anchor:          tcell.ColorBlue,
		FillTarget:      tcell.ColorDarkGreen,
		HeaderBg:        tcell.ColorDimGray,
		HeaderFg:        tcell.ColorWhite,
		HeaderActiveBg:  tcell.ColorDarkBlue,
		GridLine:        tcell.ColorGray,
		StatusBarBg:     tcell.ColorDarkBlue,
		StatusBarFg:     tcell.ColorWhite,
		StatusBarModeBg: tcell.ColorBlue,
		DialogBg:        tcell.ColorBlack,
		DialogFg:        tcell.ColorWhite,
		DialogInputBg:   tcell.ColorDarkBlue,
	},
	"light": {
		Name:            "Light",
		Background:      tcell.ColorWhite,
		Foreground:      tcell.ColorBlack,
		Selection:       tcell.ColorLightBlue,
		Anchor:          tcell.ColorLightSkyBlue,
		FillTarget:      tcell.ColorLightGreen,
		HeaderBg:        tcell.ColorLightGray,
		HeaderFg:        tcell.ColorBlack,
		HeaderActiveBg:  tcell.ColorLightBlue,
		GridLine:        tcell.ColorGray,
		StatusBarBg:     tcell.ColorLightBlue,
		StatusBarFg:     tcell.ColorBlack,
		StatusBarModeBg: tcell.ColorBlue,
		DialogBg:        tcell.ColorWhite,
		DialogFg:        tcell.ColorBlack,
		DialogInputBg:   tcell.ColorLightGray,
	},
	"monokai": {
		Name:            "Monokai",
		Background:      tcell.NewRGBColor(39, 40, 34),
		Foreground:      tcell.NewRGBColor(248, 248, 242),
		Selection:       tcell.NewRGBColor(73, 72, 62),
		Anchor:          tcell.NewRGBColor(102, 96, 80),
		FillTarget:      tcell.NewRGBColor(76, 96, 40),
		HeaderBg:        tcell.NewRGBColor(52, 53, 46),
		HeaderFg:        tcell.NewRGBColor(144, 144, 128),
		HeaderActiveBg:  tcell.NewRGBColor(73, 72, 62),
		GridLine:        tcell.NewRGBColor(70, 71, 60),
		StatusBarBg:     tcell.NewRGBColor(73, 72, 62),
		StatusBarFg:     tcell.NewRGBColor(248, 248, 242),
		StatusBarModeBg: tcell.NewRGBColor(102, 217, 239),
		DialogBg:        tcell.NewRGBColor(39, 40, 34),
		DialogFg:        tcell.NewRGBColor(248, 248, 242),
		DialogInputBg:   tcell.NewRGBColor(73, 72, 62),
	},
	"nord": {
		Name:            "Nord",
		Background:      tcell.NewRGBColor(46, 52, 64),
		Foreground:      tcell.NewRGBColor(236, 239, 244),
		Selection:       tcell.NewRGBColor(67, 76, 94),
		Anchor:          tcell.NewRGBColor(94, 129, 172),
		FillTarget:      tcell.NewRGBColor(163, 190, 140),
		HeaderBg:        tcell.NewRGBColor(59, 66, 82),
		HeaderFg:        tcell.NewRGBColor(136, 192, 208),
		HeaderActiveBg:  tcell.NewRGBColor(67, 76, 94),
		GridLine:        tcell.NewRGBColor(76, 86, 106),
		StatusBarBg:     tcell.NewRGBColor(67, 76, 94),
		StatusBarFg:     tcell.NewRGBColor(236, 239, 244),
		StatusBarModeBg: tcell.NewRGBColor(136, 192, 208),
		DialogBg:        tcell.NewRGBColor(46, 52, 64),
		DialogFg:        tcell.NewRGBColor(236, 239, 244),
		DialogInputBg:   tcell.NewRGBColor(67, 76, 94),
	},
}

func Default() *Config {
	return &Config{
		MinColumns:      10,
		MinRows:         21,
		MinCellWidth:    10,
		CellHeight:      1,
		Theme:           "monokai",
		ClipboardEscape: true,
		AutoBackup:      true,
		WatchFile:       true,
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["monokai"]
	}
	return theme
}

// Validate reports the first out-of-range setting, wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.MinColumns < 1:
		return fmt.Errorf("min_columns must be at least 1, got %d: %w", c.MinColumns, ErrInvalidConfig)
	case c.MinRows < 1:
		return fmt.Errorf("min_rows must be at least 1, got %d: %w", c.MinRows, ErrInvalidConfig)
	case c.MinCellWidth < 3:
		return fmt.Errorf("min_cell_width must be at least 3, got %d: %w", c.MinCellWidth, ErrInvalidConfig)
	case c.CellHeight < 1:
		return fmt.Errorf("cell_height must be at least 1, got %d: %w", c.CellHeight, ErrInvalidConfig)
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("width and height must not be negative: %w", ErrInvalidConfig)
	}
	if _, ok := Themes[c.Theme]; !ok {
		return fmt.Errorf("unknown theme %q: %w", c.Theme, ErrInvalidConfig)
	}
	return nil
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gridedit")
}

func ConfigPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "settings.json")
}

func TOMLPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "settings.toml")
}

// Load reads settings.json, falling back to settings.toml, then to defaults
// when neither exists.
func Load() (*Config, error) {
	for _, path := range []string{ConfigPath(), TOMLPath()} {
		if path == "" {
			continue
		}
		cfg, err := LoadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	return Default(), nil
}

// LoadFile reads a JSON or TOML config file chosen by extension. Fields the
// file leaves out keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := decode(path, data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%s: unsupported config format: %w", path, ErrInvalidConfig)
	}
	return nil
}

func (c *Config) Save() error {
	return c.SaveFile(ConfigPath())
}

func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		data, err = toml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
