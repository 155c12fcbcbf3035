// Package config loads the planline TOML configuration file. Every field
// is optional; file values overlay the built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mwhitford/planline/internal/domain"
	"github.com/mwhitford/planline/internal/timeline"
)

// EnvConfigPath overrides the default config file location when set.
const EnvConfigPath = "PLANLINE_CONFIG"

// Config holds the user-tunable settings. Zero values mean "use default".
type Config struct {
	Timeline TimelineConfig     `toml:"timeline"`
	Calendar CalendarConfig     `toml:"calendar"`
	Zoom     map[string]ZoomRow `toml:"zoom"`
}

// TimelineConfig tunes rendering.
type TimelineConfig struct {
	MinBarWidth float64 `toml:"min_bar_width"`
}

// CalendarConfig lists non-working and marked dates, ISO "YYYY-MM-DD".
type CalendarConfig struct {
	Holidays      []string `toml:"holidays"`
	CompanyEvents []string `toml:"company_events"`
}

// ZoomRow overlays one zoom level's window and cell width. Zero fields
// keep the default.
type ZoomRow struct {
	DaysBefore int `toml:"days_before"`
	DaysAfter  int `toml:"days_after"`
	CellWidth  int `toml:"cell_width"`
}

// DefaultPath returns ~/.planline/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".planline", "config.toml"), nil
}

// Load reads the config file from PLANLINE_CONFIG or the default path. A
// missing file is not an error: defaults apply.
func Load() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return LoadFile(path)
}

// LoadFile reads and validates one config file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for name := range c.Zoom {
		if !domain.ValidZoomLevels[name] {
			return fmt.Errorf("unknown zoom level %q in config", name)
		}
	}
	for _, d := range c.Calendar.Holidays {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("invalid holiday date %q: %w", d, err)
		}
	}
	for _, d := range c.Calendar.CompanyEvents {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("invalid company event date %q: %w", d, err)
		}
	}
	if c.Timeline.MinBarWidth < 0 {
		return fmt.Errorf("min_bar_width must not be negative")
	}
	return nil
}

// Windows returns the default window table with config overlays applied.
func (c *Config) Windows() map[domain.ZoomLevel]timeline.Window {
	out := make(map[domain.ZoomLevel]timeline.Window, len(timeline.DefaultWindows))
	for zoom, w := range timeline.DefaultWindows {
		out[zoom] = w
	}
	for name, row := range c.Zoom {
		zoom := domain.ZoomLevel(name)
		w := out[zoom]
		if row.DaysBefore > 0 {
			w.DaysBefore = row.DaysBefore
		}
		if row.DaysAfter > 0 {
			w.DaysAfter = row.DaysAfter
		}
		out[zoom] = w
	}
	return out
}

// CellWidths returns the default cell width table with config overlays applied.
func (c *Config) CellWidths() map[domain.ZoomLevel]int {
	out := make(map[domain.ZoomLevel]int, len(timeline.DefaultCellWidths))
	for zoom, w := range timeline.DefaultCellWidths {
		out[zoom] = w
	}
	for name, row := range c.Zoom {
		if row.CellWidth > 0 {
			out[domain.ZoomLevel(name)] = row.CellWidth
		}
	}
	return out
}

// HolidaySet returns the configured holidays as a lookup set.
func (c *Config) HolidaySet() map[string]bool {
	return dateSet(c.Calendar.Holidays)
}

// CompanyEventSet returns the configured company events as a lookup set.
func (c *Config) CompanyEventSet() map[string]bool {
	return dateSet(c.Calendar.CompanyEvents)
}

func dateSet(dates []string) map[string]bool {
	if len(dates) == 0 {
		return nil
	}
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set
}
