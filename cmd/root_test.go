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

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetConfig(t *testing.T, file string) {
	viper.Reset()
	cfgFile = file
	t.Cleanup(func() {
		viper.Reset()
		cfgFile = ""
	})
}

func TestLoadConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/jed.yaml", []byte("autosave:\n  interval: 1m\n"), 0o644))
	resetConfig(t, "/jed.yaml")
	t.Setenv("JED_BACKUP_COUNT", "4")

	cfg, err := loadConfig(fs)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.Autosave.Interval)
	assert.Equal(t, 4, cfg.Backup.Count)
	assert.Equal(t, 8, cfg.Editor.TabWidth)
}

func TestLoadConfigDebugFlag(t *testing.T) {
	resetConfig(t, "")
	debug := rootCmd.Flags().Lookup("debug")
	require.NoError(t, debug.Value.Set("true"))
	debug.Changed = true
	t.Cleanup(func() {
		_ = debug.Value.Set("false")
		debug.Changed = false
	})

	cfg, err := loadConfig(afero.NewMemMapFs())
	require.NoError(t, err)
	assert.True(t, cfg.Log.Debug)
}

func TestLoadConfigErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	resetConfig(t, "/missing.yaml")
	_, err := loadConfig(fs)
	assert.Error(t, err, "an explicit config file must exist")

	require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte("editor:\n  tab_width: 0\n"), 0o644))
	resetConfig(t, "/bad.yaml")
	_, err = loadConfig(fs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tab_width")
}

func TestEvalScript(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Main.java")
	script := filepath.Join(dir, "fix.lisp")
	conf := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(src, []byte("klass Main {}"), 0o644))
	require.NoError(t, os.WriteFile(script, []byte(`(buffer-replace-all "klass" "class") (buffer-save)`), 0o644))
	require.NoError(t, os.WriteFile(conf, []byte("log:\n  file: "+filepath.Join(dir, "jed.log")+"\nstore:\n  path: \"\"\n"), 0o644))
	resetConfig(t, "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", conf, "--eval", script, src})
	require.NoError(t, rootCmd.Execute())

	b, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "class Main {}", string(b))
	assert.Contains(t, out.String(), "Main.java")
}
