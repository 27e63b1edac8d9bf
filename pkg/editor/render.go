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
	"fmt"

	"github.com/mattn/go-runewidth"

	jed "github.com/timburks/jed/pkg/types"
)

// runeWidth returns the number of cells c occupies when it starts at
// display column col.
func (e *Editor) runeWidth(c rune, col int) int {
	if c == '\t' {
		return e.tabWidth - col%e.tabWidth
	}
	if w := runewidth.RuneWidth(c); w > 0 {
		return w
	}
	return 1
}

// displayColumn converts a rune column in line into a display column.
func (e *Editor) displayColumn(line []rune, col int) int {
	x := 0
	for i := 0; i < col && i < len(line); i++ {
		x += e.runeWidth(line[i], x)
	}
	return x
}

// Compute the text to display on the info bar.
func (e *Editor) computeInfoBarText(length int) string {
	b := e.focused
	finalText := fmt.Sprintf(" %d/%d ", b.cursor.Row+1, b.doc.LineCount())
	text := fmt.Sprintf("%d> %s ", b.number, b.Name())
	if b.readOnly {
		text += "(read-only) "
	}
	if b.Modified() {
		text += "(modified) "
	}
	if b.stale {
		text += "(changed on disk, :e! reloads) "
	}
	for runewidth.StringWidth(text) <= length-len(finalText)-1 {
		text += "."
	}
	text += finalText
	return text
}

// Recompute the display offset to keep the cursor onscreen.
func (e *Editor) adjustDisplayOffsetForScrolling() {
	b := e.focused
	if b.cursor.Row < b.offset.Rows {
		// scroll up
		b.offset.Rows = b.cursor.Row
	}
	// reserve the last row for the info bar
	textRows := e.size.Rows - 1
	if b.cursor.Row-b.offset.Rows >= textRows {
		// scroll down
		b.offset.Rows = b.cursor.Row - textRows + 1
	}
	line, _ := b.doc.Line(b.cursor.Row)
	x := e.displayColumn(line, b.cursor.Col)
	if x < b.offset.Cols {
		// scroll left
		b.offset.Cols = x
	}
	if x-b.offset.Cols >= e.size.Cols {
		// scroll right
		b.offset.Cols = x - e.size.Cols + 1
	}
}

// Render draws the focused buffer and its info bar, then places the cursor.
func (e *Editor) Render(display jed.Display) {
	if e.size.Rows < 1 || e.size.Cols < 1 {
		return
	}
	e.adjustDisplayOffsetForScrolling()

	b := e.focused
	for i := 0; i < e.size.Rows-1; i++ {
		row := i + b.offset.Rows
		if row >= b.doc.LineCount() {
			display.SetCell(0, i, '~', jed.ColorGray, jed.ColorBlack)
			continue
		}
		e.renderLine(display, b, row, i)
	}

	// Draw the info bar as a single line at the bottom of the buffer area.
	infoRow := e.size.Rows - 1
	x := 0
	for _, ch := range e.computeInfoBarText(e.size.Cols) {
		if x >= e.size.Cols {
			break
		}
		display.SetCell(x, infoRow, ch, jed.ColorBlack, jed.ColorWhite)
		x += e.runeWidth(ch, x)
	}

	line, _ := b.doc.Line(b.cursor.Row)
	display.SetCursor(jed.Point{
		Col: e.displayColumn(line, b.cursor.Col) - b.offset.Cols,
		Row: b.cursor.Row - b.offset.Rows,
	})
}

func (e *Editor) renderLine(display jed.Display, b *Buffer, row, screenRow int) {
	line, styles := b.doc.Line(row)
	start := b.doc.Offset(jed.Point{Row: row})
	x := 0
	for j, c := range line {
		w := e.runeWidth(c, x)
		col := x - b.offset.Cols
		x += w
		if col < 0 {
			continue
		}
		if col+w > e.size.Cols {
			break
		}
		fg := e.palette.Color(styles[j])
		bg := jed.ColorBlack
		if b.inMatch(start + j) {
			bg = e.matchBg
		}
		if c == '\t' {
			for k := 0; k < w; k++ {
				display.SetCell(col+k, screenRow, ' ', fg, bg)
			}
			continue
		}
		display.SetCell(col, screenRow, c, fg, bg)
	}
}

func (b *Buffer) inMatch(offset int) bool {
	for _, m := range b.matches {
		if offset < m.Offset {
			return false
		}
		if offset < m.Offset+m.Length {
			return true
		}
	}
	return false
}
