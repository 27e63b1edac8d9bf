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

package text

import (
	"errors"
	"fmt"
	"sort"

	jed "github.com/timburks/jed/pkg/types"
)

var (
	// ErrBadLocation is returned for offsets outside the document.
	ErrBadLocation = errors.New("bad location")
	// ErrNotifying is returned when a listener tries to change the
	// document while a notification is being dispatched.
	ErrNotifying = errors.New("document is dispatching a notification")
)

// Terminator is the rune read at the end-of-text position.
const Terminator = '\n'

// A Document holds text and one style tag per rune.
type Document struct {
	text       []rune
	styles     []jed.StyleTag
	listeners  []Listener
	notifying  int   // depth of notification dispatch
	lineStarts []int // offsets of line starts, nil when stale
	modified   bool
}

func NewDocument() *Document {
	return &Document{}
}

// NewDocumentWithText creates an unmodified document containing s.
// No notifications are sent.
func NewDocumentWithText(s string) *Document {
	d := &Document{}
	d.text = []rune(s)
	d.styles = make([]jed.StyleTag, len(d.text))
	return d
}

func (d *Document) AddListener(l Listener) {
	d.listeners = append(d.listeners, l)
}

func (d *Document) RemoveListener(l Listener) {
	for i, other := range d.listeners {
		if other == l {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

func (d *Document) Length() int {
	return len(d.text)
}

// CharAt returns the rune at pos. The position just past the last rune
// is valid and reads as Terminator.
func (d *Document) CharAt(pos int) (rune, error) {
	if pos < 0 || pos > len(d.text) {
		return 0, fmt.Errorf("char at %d of %d: %w", pos, len(d.text), ErrBadLocation)
	}
	if pos == len(d.text) {
		return Terminator, nil
	}
	return d.text[pos], nil
}

func (d *Document) Substring(start, end int) (string, error) {
	if start < 0 || end > len(d.text) || start > end {
		return "", fmt.Errorf("substring [%d,%d) of %d: %w", start, end, len(d.text), ErrBadLocation)
	}
	return string(d.text[start:end]), nil
}

func (d *Document) Text() string {
	return string(d.text)
}

func (d *Document) Bytes() []byte {
	return []byte(string(d.text))
}

// StyleAt returns the style of the rune at pos, Normal when out of range.
func (d *Document) StyleAt(pos int) jed.StyleTag {
	if pos < 0 || pos >= len(d.styles) {
		return jed.Normal
	}
	return d.styles[pos]
}

func (d *Document) Modified() bool {
	return d.modified
}

func (d *Document) SetModified(modified bool) {
	d.modified = modified
}

// Insert adds s at offset. Inserted runes are styled Normal.
func (d *Document) Insert(offset int, s string) error {
	if d.notifying > 0 {
		return ErrNotifying
	}
	if offset < 0 || offset > len(d.text) {
		return fmt.Errorf("insert at %d of %d: %w", offset, len(d.text), ErrBadLocation)
	}
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}
	text := make([]rune, 0, len(d.text)+len(runes))
	text = append(text, d.text[:offset]...)
	text = append(text, runes...)
	d.text = append(text, d.text[offset:]...)

	styles := make([]jed.StyleTag, 0, len(d.styles)+len(runes))
	styles = append(styles, d.styles[:offset]...)
	styles = append(styles, make([]jed.StyleTag, len(runes))...)
	d.styles = append(styles, d.styles[offset:]...)

	d.lineStarts = nil
	d.modified = true
	d.dispatch(Event{Kind: Inserted, Offset: offset, Length: len(runes)})
	return nil
}

// Remove deletes count runes at offset and returns them.
func (d *Document) Remove(offset, count int) (string, error) {
	if d.notifying > 0 {
		return "", ErrNotifying
	}
	if offset < 0 || count < 0 || offset+count > len(d.text) {
		return "", fmt.Errorf("remove [%d,%d) of %d: %w", offset, offset+count, len(d.text), ErrBadLocation)
	}
	if count == 0 {
		return "", nil
	}
	removed := string(d.text[offset : offset+count])
	d.text = append(d.text[:offset], d.text[offset+count:]...)
	d.styles = append(d.styles[:offset], d.styles[offset+count:]...)
	d.lineStarts = nil
	d.modified = true
	d.dispatch(Event{Kind: Removed, Offset: offset, Length: count})
	return removed, nil
}

// Replace removes count runes at offset and inserts s in their place.
// Listeners see a removal followed by an insertion.
func (d *Document) Replace(offset, count int, s string) error {
	if _, err := d.Remove(offset, count); err != nil {
		return err
	}
	return d.Insert(offset, s)
}

// SetText replaces the whole content of the document.
func (d *Document) SetText(s string) error {
	return d.Replace(0, len(d.text), s)
}

// SetStyle sets the style of length runes starting at offset.
// It fails with ErrNotifying when called from inside a listener.
func (d *Document) SetStyle(offset, length int, tag jed.StyleTag) error {
	if d.notifying > 0 {
		return ErrNotifying
	}
	if offset < 0 || length < 0 || offset+length > len(d.styles) {
		return fmt.Errorf("style [%d,%d) of %d: %w", offset, offset+length, len(d.styles), ErrBadLocation)
	}
	for i := offset; i < offset+length; i++ {
		d.styles[i] = tag
	}
	d.dispatch(Event{Kind: Changed, Offset: offset, Length: length})
	return nil
}

func (d *Document) dispatch(e Event) {
	d.notifying++
	defer func() { d.notifying-- }()
	for _, l := range d.listeners {
		switch e.Kind {
		case Inserted:
			l.InsertUpdate(d, e)
		case Removed:
			l.RemoveUpdate(d, e)
		case Changed:
			l.ChangedUpdate(d, e)
		}
	}
}

func (d *Document) indexLines() []int {
	if d.lineStarts != nil {
		return d.lineStarts
	}
	starts := []int{0}
	for i, c := range d.text {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	d.lineStarts = starts
	return starts
}

// LineCount returns the number of lines; an empty document has one.
func (d *Document) LineCount() int {
	return len(d.indexLines())
}

// Line returns the runes and styles of a line, without its newline.
func (d *Document) Line(row int) ([]rune, []jed.StyleTag) {
	starts := d.indexLines()
	if row < 0 || row >= len(starts) {
		return nil, nil
	}
	start := starts[row]
	end := len(d.text)
	if row+1 < len(starts) {
		end = starts[row+1] - 1
	}
	return d.text[start:end], d.styles[start:end]
}

// LineLength returns the number of runes in a line, without its newline.
func (d *Document) LineLength(row int) int {
	text, _ := d.Line(row)
	return len(text)
}

// Position converts an offset into a row and column.
func (d *Document) Position(offset int) jed.Point {
	starts := d.indexLines()
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.text) {
		offset = len(d.text)
	}
	row := sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
	return jed.Point{Row: row, Col: offset - starts[row]}
}

// Offset converts a row and column into an offset, clipping both to the text.
func (d *Document) Offset(p jed.Point) int {
	starts := d.indexLines()
	row := clipToRange(p.Row, 0, len(starts)-1)
	col := clipToRange(p.Col, 0, d.LineLength(row))
	return starts[row] + col
}

func clipToRange(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
