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
	"go.uber.org/zap"

	"github.com/timburks/jed/pkg/highlight"
	"github.com/timburks/jed/pkg/text"
	jed "github.com/timburks/jed/pkg/types"
)

// A Buffer is a document being edited, with its cursor and file.
type Buffer struct {
	number      int
	name        string
	fileName    string
	readOnly    bool
	doc         *text.Document
	highlighter *highlight.Highlighter
	cursor      jed.Point // cursor position
	offset      jed.Size  // display offset
	saved       []byte    // contents as last read or written
	stale       bool      // the file changed on disk after it was read
	matches     []Match   // search matches, cleared by any edit
}

func newBuffer(number int, keywords *highlight.Keywords, scheduler highlight.Scheduler, logger *zap.Logger) *Buffer {
	b := &Buffer{number: number, doc: text.NewDocument()}
	b.highlighter = highlight.Attach(b.doc, keywords, scheduler, logger.With(zap.Int("buffer", number)))
	b.doc.AddListener(b)
	return b
}

func (b *Buffer) Number() int {
	return b.number
}

// Name returns the file name, or the buffer's name when it has no file.
func (b *Buffer) Name() string {
	if b.fileName != "" {
		return b.fileName
	}
	if b.name != "" {
		return b.name
	}
	return "*scratch*"
}

func (b *Buffer) FileName() string {
	return b.fileName
}

func (b *Buffer) ReadOnly() bool {
	return b.readOnly
}

func (b *Buffer) Document() *text.Document {
	return b.doc
}

func (b *Buffer) Highlighter() *highlight.Highlighter {
	return b.highlighter
}

func (b *Buffer) Cursor() jed.Point {
	return b.cursor
}

func (b *Buffer) Text() string {
	return b.doc.Text()
}

func (b *Buffer) Modified() bool {
	return b.doc.Modified()
}

// ChangedOnDisk reports whether another program changed the file
// since it was last read or written.
func (b *Buffer) ChangedOnDisk() bool {
	return b.stale
}

func (b *Buffer) Matches() []Match {
	return b.matches
}

// load replaces the contents of the buffer without marking it modified.
func (b *Buffer) load(s string) error {
	if err := b.doc.SetText(s); err != nil {
		return err
	}
	b.doc.SetModified(false)
	b.cursor = b.doc.Position(b.doc.Offset(b.cursor))
	return nil
}

func (b *Buffer) cursorOffset() int {
	return b.doc.Offset(b.cursor)
}

func (b *Buffer) setCursorOffset(offset int) {
	b.cursor = b.doc.Position(offset)
}

func (b *Buffer) InsertUpdate(doc *text.Document, e text.Event) {
	b.matches = nil
}

func (b *Buffer) RemoveUpdate(doc *text.Document, e text.Event) {
	b.matches = nil
}

func (b *Buffer) ChangedUpdate(doc *text.Document, e text.Event) {
}
