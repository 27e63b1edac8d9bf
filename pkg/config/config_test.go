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

package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jed "github.com/timburks/jed/pkg/types"
)

func TestDefaultsAreValid(t *testing.T) {
	d := Defaults()
	require.NoError(t, d.Validate())
	assert.True(t, d.Autosave.Enabled)
	assert.Equal(t, 3*time.Second, d.Autosave.Interval)
	assert.Equal(t, 1, d.Backup.Count)
	assert.False(t, d.Search.Regex)
	assert.Equal(t, 8, d.Editor.TabWidth)
}

func TestLoadFromFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/jed/config.yaml", []byte(`
autosave:
  interval: 10s
backup:
  count: 3
theme:
  keyword: "196"
search:
  regex: true
`), 0o644))

	v := viper.New()
	v.SetFs(fs)
	SetDefaults(v)
	v.SetConfigFile("/etc/jed/config.yaml")
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Autosave.Interval)
	assert.True(t, cfg.Autosave.Enabled, "unset keys keep their defaults")
	assert.Equal(t, 3, cfg.Backup.Count)
	assert.True(t, cfg.Search.Regex)
	assert.Equal(t, jed.Color(197), cfg.Palette()[jed.Keyword])
	assert.Equal(t, jed.ColorWhite, cfg.Palette()[jed.Normal])
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Autosave.Interval = 0
	cfg.Editor.TabWidth = 0
	cfg.Theme.Keyword = "chartreuse"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "autosave.interval")
	assert.Contains(t, err.Error(), "editor.tab_width")
	assert.Contains(t, err.Error(), "theme.keyword")
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    jed.Color
		wantErr bool
	}{
		{in: "red", want: jed.ColorRed},
		{in: " White ", want: jed.ColorWhite},
		{in: "grey", want: jed.ColorGray},
		{in: "0", want: jed.ColorBlack},
		{in: "255", want: 256},
		{in: "256", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchBackgroundFallsBack(t *testing.T) {
	cfg := Defaults()
	cfg.Theme.MatchBg = "nope"
	assert.Equal(t, jed.ColorBlue, cfg.MatchBackground())
}
