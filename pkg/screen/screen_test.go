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

package screen

import (
	"testing"

	"github.com/nsf/termbox-go"
	"github.com/stretchr/testify/assert"

	jed "github.com/timburks/jed/pkg/types"
)

func TestTranslateKeys(t *testing.T) {
	tests := []struct {
		name  string
		event termbox.Event
		want  jed.Event
	}{
		{
			name:  "character",
			event: termbox.Event{Type: termbox.EventKey, Ch: 'x'},
			want:  jed.Event{Type: jed.EventKey, Key: jed.KeyNone, Ch: 'x'},
		},
		{
			name:  "backspace",
			event: termbox.Event{Type: termbox.EventKey, Key: termbox.KeyBackspace2},
			want:  jed.Event{Type: jed.EventKey, Key: jed.KeyBackspace},
		},
		{
			name:  "ctrl-x",
			event: termbox.Event{Type: termbox.EventKey, Key: termbox.KeyCtrlX},
			want:  jed.Event{Type: jed.EventKey, Key: jed.KeyCtrlX},
		},
		{
			name:  "unsupported",
			event: termbox.Event{Type: termbox.EventKey, Key: termbox.KeyF1},
			want:  jed.Event{Type: jed.EventKey, Key: jed.KeyUnsupported},
		},
		{
			name:  "resize",
			event: termbox.Event{Type: termbox.EventResize, Width: 80, Height: 24},
			want:  jed.Event{Type: jed.EventResize},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, *translate(tt.event))
		})
	}
}
