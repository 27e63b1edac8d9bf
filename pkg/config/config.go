//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package config provides configuration types and defaults for jed.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	jed "github.com/timburks/jed/pkg/types"
)

// Config holds all configuration options for jed.
type Config struct {
	Autosave AutosaveConfig `mapstructure:"autosave"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Theme    ThemeConfig    `mapstructure:"theme"`
	Search   SearchConfig   `mapstructure:"search"`
	Log      LogConfig      `mapstructure:"log"`
	Store    StoreConfig    `mapstructure:"store"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Editor   EditorConfig   `mapstructure:"editor"`
}

type AutosaveConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// BackupConfig controls the .bak files written after each autosave.
// Count is the number of generations kept: file.bak, file.bak.1, ...
type BackupConfig struct {
	Count int `mapstructure:"count"`
}

// ThemeConfig names colors by terminal color name ("red") or by
// 256-color palette index ("196").
type ThemeConfig struct {
	Keyword string `mapstructure:"keyword"`
	Normal  string `mapstructure:"normal"`
	MatchBg string `mapstructure:"match_bg"`
}

type SearchConfig struct {
	Regex    bool          `mapstructure:"regex"` // false searches for the literal text
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Debug bool   `mapstructure:"debug"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"` // empty disables recent files
}

type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

type EditorConfig struct {
	TabWidth int `mapstructure:"tab_width"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Autosave: AutosaveConfig{Enabled: true, Interval: 3 * time.Second},
		Backup:   BackupConfig{Count: 1},
		Theme:    ThemeConfig{Keyword: "red", Normal: "white", MatchBg: "blue"},
		Search:   SearchConfig{Regex: false, CacheTTL: 5 * time.Minute},
		Log:      LogConfig{File: homePath(".jedlog")},
		Store:    StoreConfig{Path: homePath(".config", "jed", "recent.db")},
		Watch:    WatchConfig{Enabled: true, Debounce: 100 * time.Millisecond},
		Editor:   EditorConfig{TabWidth: 8},
	}
}

func homePath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home}, elem...)...)
}

// SetDefaults registers every default with v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("autosave.enabled", d.Autosave.Enabled)
	v.SetDefault("autosave.interval", d.Autosave.Interval)
	v.SetDefault("backup.count", d.Backup.Count)
	v.SetDefault("theme.keyword", d.Theme.Keyword)
	v.SetDefault("theme.normal", d.Theme.Normal)
	v.SetDefault("theme.match_bg", d.Theme.MatchBg)
	v.SetDefault("search.regex", d.Search.Regex)
	v.SetDefault("search.cache_ttl", d.Search.CacheTTL)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("watch.enabled", d.Watch.Enabled)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("editor.tab_width", d.Editor.TabWidth)
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Autosave.Interval <= 0 {
		errs = append(errs, fmt.Errorf("autosave.interval must be positive, got %s", c.Autosave.Interval))
	}
	if c.Backup.Count < 0 {
		errs = append(errs, fmt.Errorf("backup.count must not be negative, got %d", c.Backup.Count))
	}
	if c.Search.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("search.cache_ttl must be positive, got %s", c.Search.CacheTTL))
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce))
	}
	if c.Editor.TabWidth < 1 {
		errs = append(errs, fmt.Errorf("editor.tab_width must be at least 1, got %d", c.Editor.TabWidth))
	}
	for key, name := range map[string]string{
		"theme.keyword":  c.Theme.Keyword,
		"theme.normal":   c.Theme.Normal,
		"theme.match_bg": c.Theme.MatchBg,
	} {
		if _, err := ParseColor(name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// Palette returns the foreground colors for each style.
func (c Config) Palette() jed.Palette {
	return jed.Palette{
		jed.Normal:  mustColor(c.Theme.Normal, jed.ColorWhite),
		jed.Keyword: mustColor(c.Theme.Keyword, jed.ColorRed),
	}
}

// MatchBackground returns the background color of search matches.
func (c Config) MatchBackground() jed.Color {
	return mustColor(c.Theme.MatchBg, jed.ColorBlue)
}

func mustColor(name string, fallback jed.Color) jed.Color {
	color, err := ParseColor(name)
	if err != nil {
		return fallback
	}
	return color
}

var namedColors = map[string]jed.Color{
	"black":   jed.ColorBlack,
	"red":     jed.ColorRed,
	"green":   jed.ColorGreen,
	"yellow":  jed.ColorYellow,
	"blue":    jed.ColorBlue,
	"magenta": jed.ColorMagenta,
	"cyan":    jed.ColorCyan,
	"white":   jed.ColorWhite,
	"gray":    jed.ColorGray,
	"grey":    jed.ColorGray,
}

// ParseColor accepts a color name or a 256-color palette index.
func ParseColor(s string) (jed.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return 0, fmt.Errorf("unknown color %q", s)
	}
	// palette index 0 is attribute 1
	return jed.Color(n + 1), nil
}
