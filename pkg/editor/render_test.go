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

package editor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jed "github.com/timburks/jed/pkg/types"
)

type cell struct {
	c      rune
	fg, bg jed.Color
}

type fakeDisplay struct {
	cells  map[jed.Point]cell
	cursor jed.Point
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{cells: make(map[jed.Point]cell)}
}

func (d *fakeDisplay) SetCell(col, row int, c rune, fg, bg jed.Color) {
	d.cells[jed.Point{Row: row, Col: col}] = cell{c: c, fg: fg, bg: bg}
}

func (d *fakeDisplay) SetCursor(p jed.Point) {
	d.cursor = p
}

func (d *fakeDisplay) row(row, cols int) string {
	var b strings.Builder
	for col := 0; col < cols; col++ {
		c, ok := d.cells[jed.Point{Row: row, Col: col}]
		if !ok {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.c)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestRenderColorsKeywords(t *testing.T) {
	f := newFixture(t)
	e := f.editor
	e.SetSize(jed.Size{Rows: 4, Cols: 40})
	e.CreateBuffer()
	require.NoError(t, e.InsertText("int x;\n\treturn x;"))
	f.loop.RunPending()

	d := newFakeDisplay()
	e.Render(d)
	assert.Equal(t, "int x;", d.row(0, 40))
	assert.Equal(t, "    return x;", d.row(1, 40), "tabs expand to the tab width")
	assert.Equal(t, "~", d.row(2, 40))
	assert.True(t, strings.HasPrefix(d.row(3, 40), "1> *scratch* (modified) ..."))
	assert.True(t, strings.HasSuffix(d.row(3, 40), " 2/2"))

	assert.Equal(t, jed.ColorRed, d.cells[jed.Point{Row: 0, Col: 0}].fg)
	assert.Equal(t, jed.ColorWhite, d.cells[jed.Point{Row: 0, Col: 4}].fg)
	assert.Equal(t, jed.ColorRed, d.cells[jed.Point{Row: 1, Col: 4}].fg)
	assert.Equal(t, jed.Point{Row: 1, Col: 13}, d.cursor)
}

func TestRenderHighlightsMatches(t *testing.T) {
	f := newFixture(t)
	e := f.editor
	e.SetSize(jed.Size{Rows: 3, Cols: 20})
	e.CreateBuffer()
	require.NoError(t, e.InsertText("ab ab"))
	_, err := e.Find("ab")
	require.NoError(t, err)

	d := newFakeDisplay()
	e.Render(d)
	assert.Equal(t, jed.ColorBlue, d.cells[jed.Point{Row: 0, Col: 0}].bg)
	assert.Equal(t, jed.ColorBlue, d.cells[jed.Point{Row: 0, Col: 1}].bg)
	assert.Equal(t, jed.ColorBlack, d.cells[jed.Point{Row: 0, Col: 2}].bg)
	assert.Equal(t, jed.ColorBlue, d.cells[jed.Point{Row: 0, Col: 3}].bg)
}

func TestRenderScrolls(t *testing.T) {
	f := newFixture(t)
	e := f.editor
	e.SetSize(jed.Size{Rows: 3, Cols: 5})
	e.CreateBuffer()
	require.NoError(t, e.InsertText("one\ntwo\nthree\nfour-long"))

	d := newFakeDisplay()
	e.Render(d)
	assert.Equal(t, "", d.row(0, 5))
	assert.Equal(t, "long", d.row(1, 5))
	assert.Equal(t, jed.Point{Row: 1, Col: 4}, d.cursor)
}

func TestRenderWideRunes(t *testing.T) {
	f := newFixture(t)
	e := f.editor
	e.SetSize(jed.Size{Rows: 2, Cols: 10})
	e.CreateBuffer()
	require.NoError(t, e.InsertText("日本x"))

	d := newFakeDisplay()
	e.Render(d)
	assert.Equal(t, 'x', d.cells[jed.Point{Row: 0, Col: 4}].c)
	assert.Equal(t, jed.Point{Row: 0, Col: 5}, d.cursor)
}
