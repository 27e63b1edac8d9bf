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
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/timburks/jed/pkg/highlight"
	"github.com/timburks/jed/pkg/store"
	jed "github.com/timburks/jed/pkg/types"
)

var (
	// ErrReadOnly is returned when editing or saving a read-only buffer.
	ErrReadOnly = errors.New("buffer is read-only")
	// ErrNoFileName is returned when saving a buffer that has no file.
	ErrNoFileName = errors.New("no file name")
)

// History records opened files.
type History interface {
	AddFile(path string) error
	Files() ([]store.File, error)
}

// Watcher is told which files to watch for changes by other programs.
type Watcher interface {
	Add(path string) error
	Remove(path string) error
}

// Options configure an Editor. Scheduler is required.
type Options struct {
	Fs              afero.Fs
	Scheduler       highlight.Scheduler
	Keywords        *highlight.Keywords
	Logger          *zap.Logger
	History         History
	Watcher         Watcher
	Palette         jed.Palette
	MatchBackground jed.Color
	TabWidth        int
	Regex           bool
	CacheTTL        time.Duration
}

// The Editor manages text editing in numbered buffers.
// There is typically only one editor in a jed instance.
type Editor struct {
	fs        afero.Fs
	scheduler highlight.Scheduler
	keywords  *highlight.Keywords
	logger    *zap.Logger
	history   History
	watcher   Watcher
	search    *Searcher
	buffers   []*Buffer
	focused   *Buffer
	size      jed.Size  // size of editing area
	palette   jed.Palette
	matchBg   jed.Color
	tabWidth  int
}

func NewEditor(opts Options) *Editor {
	e := &Editor{
		fs:        opts.Fs,
		scheduler: opts.Scheduler,
		keywords:  opts.Keywords,
		logger:    opts.Logger,
		history:   opts.History,
		watcher:   opts.Watcher,
		palette:   opts.Palette,
		matchBg:   opts.MatchBackground,
		tabWidth:  opts.TabWidth,
	}
	if e.fs == nil {
		e.fs = afero.NewOsFs()
	}
	if e.keywords == nil {
		e.keywords = highlight.DefaultKeywords()
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.palette == nil {
		e.palette = jed.Palette{jed.Normal: jed.ColorWhite, jed.Keyword: jed.ColorRed}
	}
	if e.matchBg == jed.ColorDefault {
		e.matchBg = jed.ColorBlue
	}
	if e.tabWidth < 1 {
		e.tabWidth = 8
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	e.search = NewSearcher(opts.Regex, ttl)

	output := e.CreateBuffer()
	output.name = "*output*"
	output.readOnly = true
	return e
}

// CreateBuffer adds an empty buffer and gives it focus.
func (e *Editor) CreateBuffer() *Buffer {
	b := newBuffer(len(e.buffers), e.keywords, e.scheduler, e.logger)
	e.buffers = append(e.buffers, b)
	e.focused = b
	return b
}

func (e *Editor) Buffer() *Buffer {
	return e.focused
}

func (e *Editor) Buffers() []*Buffer {
	return e.buffers
}

func (e *Editor) Searcher() *Searcher {
	return e.search
}

func (e *Editor) Keywords() *highlight.Keywords {
	return e.keywords
}

func (e *Editor) SelectBuffer(number int) error {
	if number < 0 || number >= len(e.buffers) {
		return fmt.Errorf("no buffer exists for identifier %d", number)
	}
	e.focused = e.buffers[number]
	return nil
}

// ListBuffers shows the buffer list in the output buffer.
func (e *Editor) ListBuffers() {
	var lines []string
	for _, b := range e.buffers {
		flags := ""
		if b.Modified() {
			flags += " +"
		}
		if b.stale {
			flags += " !"
		}
		lines = append(lines, fmt.Sprintf(" [%d] %s%s", b.number, b.Name(), flags))
	}
	e.ShowOutput(strings.Join(lines, "\n"))
}

// ListRecent shows the file history in the output buffer.
func (e *Editor) ListRecent() error {
	if e.history == nil {
		return errors.New("file history is disabled")
	}
	files, err := e.history.Files()
	if err != nil {
		return err
	}
	var lines []string
	for _, f := range files {
		lines = append(lines, fmt.Sprintf("%8.2f %s", f.Score, f.Path))
	}
	e.ShowOutput(strings.Join(lines, "\n"))
	return nil
}

// ShowOutput replaces the contents of the output buffer and focuses it.
func (e *Editor) ShowOutput(s string) {
	output := e.buffers[0]
	output.cursor = jed.Point{}
	output.offset = jed.Size{}
	if err := output.load(s); err != nil {
		e.logger.Error("writing output", zap.Error(err))
	}
	e.focused = output
}

func (e *Editor) findBuffer(path string) *Buffer {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for _, b := range e.buffers {
		if b.fileName == "" {
			continue
		}
		if babs, err := filepath.Abs(b.fileName); err == nil && babs == abs {
			return b
		}
	}
	return nil
}

// ReadFile opens path in a buffer, reusing a buffer that already holds
// it. A missing file opens an empty buffer that will create it on save.
func (e *Editor) ReadFile(path string) error {
	if b := e.findBuffer(path); b != nil {
		e.focused = b
		return nil
	}
	data, err := afero.ReadFile(e.fs, path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("open %s: %w", path, err)
	}
	b := e.CreateBuffer()
	b.fileName = path
	if err := b.load(string(data)); err != nil {
		return err
	}
	b.saved = data
	e.logger.Info("opened file", zap.String("file", path), zap.Int("bytes", len(data)))
	if e.history != nil {
		if err := e.history.AddFile(path); err != nil {
			e.logger.Warn("recording file history", zap.String("file", path), zap.Error(err))
		}
	}
	if e.watcher != nil {
		if err := e.watcher.Add(path); err != nil {
			e.logger.Warn("watching file", zap.String("file", path), zap.Error(err))
		}
	}
	return nil
}

// WriteFile writes the focused buffer to path. A buffer without a file
// takes path as its file.
func (e *Editor) WriteFile(path string) error {
	b := e.focused
	if b.readOnly {
		return ErrReadOnly
	}
	if path == "" {
		path = b.fileName
	}
	if path == "" {
		return ErrNoFileName
	}
	if err := e.write(b, path); err != nil {
		return err
	}
	if b.fileName == "" {
		b.fileName = path
		if e.watcher != nil {
			if err := e.watcher.Add(path); err != nil {
				e.logger.Warn("watching file", zap.String("file", path), zap.Error(err))
			}
		}
	}
	return nil
}

func (e *Editor) write(b *Buffer, path string) error {
	data := b.doc.Bytes()
	if err := afero.WriteFile(e.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if path == b.fileName || b.fileName == "" {
		b.saved = data
		b.stale = false
		b.doc.SetModified(false)
	}
	e.logger.Debug("saved file", zap.String("file", path), zap.Int("bytes", len(data)))
	return nil
}

// Save writes the focused buffer to its file.
func (e *Editor) Save() error {
	return e.WriteFile("")
}

// SaveAll writes every modified buffer that has a file and returns the
// paths written. Buffers whose files were changed by another program
// are left alone.
func (e *Editor) SaveAll() ([]string, error) {
	var saved []string
	var errs []error
	for _, b := range e.buffers {
		if b.readOnly || b.fileName == "" || b.stale || !b.Modified() {
			continue
		}
		if err := e.write(b, b.fileName); err != nil {
			errs = append(errs, err)
			continue
		}
		saved = append(saved, b.fileName)
	}
	return saved, errors.Join(errs...)
}

// Modified reports whether any buffer has unsaved changes.
func (e *Editor) Modified() bool {
	for _, b := range e.buffers {
		if !b.readOnly && b.Modified() {
			return true
		}
	}
	return false
}

// ExternalChange handles a notification that path changed on disk.
// It returns true when the buffer holding path no longer matches the
// file; the buffer is then flagged until it is reloaded or saved.
func (e *Editor) ExternalChange(path string) (bool, error) {
	b := e.findBuffer(path)
	if b == nil {
		return false, nil
	}
	data, err := afero.ReadFile(e.fs, b.fileName)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", b.fileName, err)
	}
	if bytes.Equal(data, b.saved) {
		return false, nil
	}
	b.stale = true
	e.logger.Info("file changed on disk", zap.String("file", b.fileName))
	return true, nil
}

// Reload replaces the focused buffer with the contents of its file.
func (e *Editor) Reload() error {
	b := e.focused
	if b.fileName == "" {
		return ErrNoFileName
	}
	data, err := afero.ReadFile(e.fs, b.fileName)
	if err != nil {
		return fmt.Errorf("reload %s: %w", b.fileName, err)
	}
	if err := b.load(string(data)); err != nil {
		return err
	}
	b.saved = data
	b.stale = false
	return nil
}

// Diff shows the changes between the focused buffer's file and the
// buffer in the output buffer.
func (e *Editor) Diff() (string, error) {
	b := e.focused
	if b.fileName == "" {
		return "", ErrNoFileName
	}
	data, err := afero.ReadFile(e.fs, b.fileName)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("diff %s: %w", b.fileName, err)
	}
	d := UnifiedDiff(b.fileName, string(data), b.Text())
	if d == "" {
		d = "no changes"
	}
	e.ShowOutput(d)
	return d, nil
}

func (e *Editor) editable() (*Buffer, error) {
	if e.focused.readOnly {
		return nil, ErrReadOnly
	}
	return e.focused, nil
}

// These editor primitives edit the focused buffer at its cursor.

func (e *Editor) InsertChar(c rune) error {
	return e.InsertText(string(c))
}

func (e *Editor) InsertText(s string) error {
	b, err := e.editable()
	if err != nil {
		return err
	}
	offset := b.cursorOffset()
	if err := b.doc.Insert(offset, s); err != nil {
		return err
	}
	b.setCursorOffset(offset + len([]rune(s)))
	return nil
}

// InsertTab inserts spaces up to the next tab stop.
func (e *Editor) InsertTab() error {
	n := e.tabWidth - e.focused.cursor.Col%e.tabWidth
	return e.InsertText(strings.Repeat(" ", n))
}

// BackspaceChar deletes the rune before the cursor, joining lines at
// the start of a line.
func (e *Editor) BackspaceChar() error {
	b, err := e.editable()
	if err != nil {
		return err
	}
	offset := b.cursorOffset()
	if offset == 0 {
		return nil
	}
	if _, err := b.doc.Remove(offset-1, 1); err != nil {
		return err
	}
	b.setCursorOffset(offset - 1)
	return nil
}

// DeleteChar deletes the rune under the cursor.
func (e *Editor) DeleteChar() error {
	b, err := e.editable()
	if err != nil {
		return err
	}
	offset := b.cursorOffset()
	if offset >= b.doc.Length() {
		return nil
	}
	_, err = b.doc.Remove(offset, 1)
	return err
}

func (e *Editor) GetCursor() jed.Point {
	return e.focused.cursor
}

// SetCursor moves the cursor, clipping it to the text.
func (e *Editor) SetCursor(p jed.Point) {
	b := e.focused
	b.setCursorOffset(b.doc.Offset(p))
}

func (e *Editor) MoveCursor(direction int, multiplier int) {
	b := e.focused
	for i := 0; i < multiplier; i++ {
		switch direction {
		case jed.MoveLeft:
			if offset := b.cursorOffset(); offset > 0 {
				b.setCursorOffset(offset - 1)
			}
		case jed.MoveRight:
			if offset := b.cursorOffset(); offset < b.doc.Length() {
				b.setCursorOffset(offset + 1)
			}
		case jed.MoveUp:
			if b.cursor.Row > 0 {
				b.cursor.Row--
			}
		case jed.MoveDown:
			if b.cursor.Row < b.doc.LineCount()-1 {
				b.cursor.Row++
			}
		}
		// don't go past the end of the current line
		if n := b.doc.LineLength(b.cursor.Row); b.cursor.Col > n {
			b.cursor.Col = n
		}
	}
}

func (e *Editor) MoveToBeginningOfLine() {
	e.focused.cursor.Col = 0
}

func (e *Editor) MoveToEndOfLine() {
	b := e.focused
	b.cursor.Col = b.doc.LineLength(b.cursor.Row)
}

// MoveCursorToLine moves to the start of a 1-based line, clipped to the text.
func (e *Editor) MoveCursorToLine(line int) {
	e.SetCursor(jed.Point{Row: line - 1})
}

func (e *Editor) pageRows() int {
	rows := e.size.Rows - 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (e *Editor) PageUp(multiplier int) {
	e.MoveCursor(jed.MoveUp, e.pageRows()*multiplier)
}

func (e *Editor) PageDown(multiplier int) {
	e.MoveCursor(jed.MoveDown, e.pageRows()*multiplier)
}

func (e *Editor) SetSize(s jed.Size) {
	e.size = s
}

func (e *Editor) GetFileName() string {
	return e.focused.fileName
}
