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

// Package cmd holds the jed command line.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/timburks/jed/pkg/autosave"
	"github.com/timburks/jed/pkg/commander"
	"github.com/timburks/jed/pkg/config"
	"github.com/timburks/jed/pkg/editor"
	"github.com/timburks/jed/pkg/logger"
	"github.com/timburks/jed/pkg/loop"
	"github.com/timburks/jed/pkg/screen"
	"github.com/timburks/jed/pkg/store"
	jed "github.com/timburks/jed/pkg/types"
	"github.com/timburks/jed/pkg/watcher"
)

var (
	version = "dev"
	cfgFile string

	// JED_AUTOSAVE_INTERVAL sets autosave.interval
	envKeyReplacer = strings.NewReplacer(".", "_")
)

var rootCmd = &cobra.Command{
	Use:          "jed [files...]",
	Short:        "A small editor that highlights Java keywords as you type",
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.RunE = runApp
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/jed/config.yaml)")
	rootCmd.Flags().Bool("debug", false, "write debug messages to the log")
	rootCmd.Flags().String("eval", "", "run a lisp script on the files and exit")
	rootCmd.Flags().Bool("no-autosave", false, "disable autosave and backups")
}

func loadConfig(fs afero.Fs) (config.Config, error) {
	v := viper.GetViper()
	v.SetFs(fs)
	config.SetDefaults(v)
	v.SetEnvPrefix("jed")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	if err := v.BindPFlag("log.debug", rootCmd.Flags().Lookup("debug")); err != nil {
		return config.Config{}, fmt.Errorf("binding --debug: %w", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(home, ".config", "jed"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// a missing config file just means defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return config.Config{}, fmt.Errorf("reading config: %w", err)
		}
	}
	return config.Load(v)
}

func runApp(cmd *cobra.Command, args []string) error {
	fs := afero.NewOsFs()
	cfg, err := loadConfig(fs)
	if err != nil {
		return err
	}
	if noAutosave, _ := cmd.Flags().GetBool("no-autosave"); noAutosave {
		cfg.Autosave.Enabled = false
	}

	logPath := cfg.Log.File
	if logPath == "" {
		logPath = logger.DefaultPath()
	}
	log, err := logger.New(logPath, cfg.Log.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// The loop runs deferred work, such as applying highlight styles,
	// on the goroutine that draws the screen.
	lp := loop.New()

	opts := editor.Options{
		Fs:              fs,
		Scheduler:       lp,
		Logger:          log,
		Palette:         cfg.Palette(),
		MatchBackground: cfg.MatchBackground(),
		TabWidth:        cfg.Editor.TabWidth,
		Regex:           cfg.Search.Regex,
		CacheTTL:        cfg.Search.CacheTTL,
	}

	if cfg.Store.Path != "" {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			log.Warn("file history unavailable", zap.Error(err))
		} else {
			defer st.Close()
			opts.History = st
		}
	}

	var changes <-chan string
	script, _ := cmd.Flags().GetString("eval")
	if cfg.Watch.Enabled && script == "" {
		wcfg := watcher.DefaultConfig()
		if cfg.Watch.Debounce > 0 {
			wcfg.DebounceDur = cfg.Watch.Debounce
		}
		wcfg.Logger = log
		w, err := watcher.New(wcfg)
		if err != nil {
			log.Warn("file watching unavailable", zap.Error(err))
		} else {
			defer func() { _ = w.Stop() }()
			changes = w.Start()
			opts.Watcher = w
		}
	}

	// The editor manages all text manipulation.
	e := editor.NewEditor(opts)
	for _, path := range args {
		if err := e.ReadFile(path); err != nil {
			return err
		}
	}
	if len(args) == 0 {
		e.CreateBuffer()
	}

	// The commander converts user inputs into commands for the editor.
	c := commander.NewCommander(e, log)

	if script != "" {
		// Run a script and exit.
		src, err := afero.ReadFile(fs, script)
		if err != nil {
			return fmt.Errorf("reading script: %w", err)
		}
		result := c.EvalScript(string(src))
		lp.RunPending()
		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	}

	var ticks <-chan time.Time
	if cfg.Autosave.Enabled {
		ticker := time.NewTicker(cfg.Autosave.Interval)
		defer ticker.Stop()
		ticks = ticker.C
	}
	saver := autosave.New(fs, e, cfg.Backup.Count, log)

	s, err := screen.NewScreen()
	if err != nil {
		return err
	}
	defer s.Close()

	events := make(chan *jed.Event)
	go s.PollEvents(events)
	defer s.Interrupt()

	log.Info("started", zap.Strings("files", args), zap.String("version", version))

	// Run the main event loop.
	for c.IsRunning() {
		lp.RunPending()
		s.Render(e, c)
		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}
			c.ProcessEvent(event)
		case <-lp.Wake():
		case <-ticks:
			if err := saver.Tick(); err != nil {
				c.SetMessage(fmt.Sprintf("autosave: %v", err))
			}
		case path := <-changes:
			changed, err := e.ExternalChange(path)
			if err != nil {
				log.Warn("checking changed file", zap.String("file", path), zap.Error(err))
			} else if changed {
				c.SetMessage(fmt.Sprintf("%s changed on disk (:e! reloads)", path))
			}
		}
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
