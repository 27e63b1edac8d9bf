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

package commander

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/timburks/jed/pkg/editor"
	jed "github.com/timburks/jed/pkg/types"
)

// The Commander converts user input into commands to the editor.
type Commander struct {
	editor      *editor.Editor
	logger      *zap.Logger
	mode        int    // editor mode
	debug       bool   // debug mode displays information about events (key codes, etc)
	input       string // prompt text as it is being typed
	findText    string // last search pattern
	replaceText string // pattern of a replacement waiting for its replacement text
	message     string // status message
	quitArmed   bool   // Ctrl-Q was pressed once with unsaved changes
}

func NewCommander(e *editor.Editor, logger *zap.Logger) *Commander {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Commander{editor: e, logger: logger, mode: jed.ModeInsert}
	current = c
	return c
}

func (c *Commander) GetMode() int {
	return c.mode
}

func (c *Commander) getModeName() string {
	switch c.mode {
	case jed.ModeInsert:
		return "insert"
	case jed.ModeCommand:
		return "command"
	case jed.ModeFind:
		return "find"
	case jed.ModeReplace:
		return "replace"
	case jed.ModeWith:
		return "with"
	case jed.ModeOpen:
		return "open"
	case jed.ModeQuit:
		return "quit"
	default:
		return "unknown"
	}
}

func (c *Commander) IsRunning() bool {
	return c.mode != jed.ModeQuit
}

func (c *Commander) GetMessage() string {
	return c.message
}

func (c *Commander) SetMessage(m string) {
	c.message = m
}

func (c *Commander) ProcessEvent(event *jed.Event) {
	if c.debug {
		c.message = fmt.Sprintf("mode=%s event=%+v", c.getModeName(), *event)
	}
	switch event.Type {
	case jed.EventKey:
		c.processKey(event)
	case jed.EventError:
		c.message = "terminal error"
	}
}

func (c *Commander) processKey(event *jed.Event) {
	if event.Key != jed.KeyCtrlQ {
		c.quitArmed = false
	}
	switch c.mode {
	case jed.ModeInsert:
		c.processKeyInsertMode(event)
	case jed.ModeCommand, jed.ModeFind, jed.ModeReplace, jed.ModeWith, jed.ModeOpen:
		c.processKeyPromptMode(event)
	}
}

func (c *Commander) processKeyInsertMode(event *jed.Event) {
	e := c.editor

	var err error
	switch event.Key {
	case jed.KeyNone:
		if event.Ch != 0 {
			err = e.InsertChar(event.Ch)
		}
	case jed.KeyEsc:
		c.message = ""
	case jed.KeyCtrlX:
		c.prompt(jed.ModeCommand)
	case jed.KeyCtrlF:
		c.prompt(jed.ModeFind)
	case jed.KeyCtrlR:
		c.prompt(jed.ModeReplace)
	case jed.KeyCtrlO:
		c.prompt(jed.ModeOpen)
	case jed.KeyCtrlN:
		c.findNext()
	case jed.KeyCtrlS:
		c.save("")
	case jed.KeyCtrlQ:
		c.quit()
	case jed.KeyArrowUp:
		e.MoveCursor(jed.MoveUp, 1)
	case jed.KeyArrowDown:
		e.MoveCursor(jed.MoveDown, 1)
	case jed.KeyArrowLeft:
		e.MoveCursor(jed.MoveLeft, 1)
	case jed.KeyArrowRight:
		e.MoveCursor(jed.MoveRight, 1)
	case jed.KeyCtrlA, jed.KeyHome:
		e.MoveToBeginningOfLine()
	case jed.KeyCtrlE, jed.KeyEnd:
		e.MoveToEndOfLine()
	case jed.KeyCtrlB, jed.KeyPgup:
		e.PageUp(1)
	case jed.KeyPgdn:
		e.PageDown(1)
	case jed.KeyBackspace:
		err = e.BackspaceChar()
	case jed.KeyCtrlD, jed.KeyDelete:
		err = e.DeleteChar()
	case jed.KeyEnter:
		err = e.InsertChar('\n')
	case jed.KeySpace:
		err = e.InsertChar(' ')
	case jed.KeyTab:
		err = e.InsertTab()
	}
	if err != nil {
		c.message = err.Error()
	}
}

func (c *Commander) prompt(mode int) {
	c.mode = mode
	c.input = ""
}

func (c *Commander) processKeyPromptMode(event *jed.Event) {
	switch event.Key {
	case jed.KeyNone:
		if event.Ch != 0 {
			c.input += string(event.Ch)
		}
	case jed.KeyEsc:
		c.mode = jed.ModeInsert
		c.input = ""
	case jed.KeyEnter:
		c.submit()
	case jed.KeyBackspace:
		if r := []rune(c.input); len(r) > 0 {
			c.input = string(r[:len(r)-1])
		}
	case jed.KeySpace:
		c.input += " "
	case jed.KeyTab:
		c.input += "\t"
	}
}

func (c *Commander) submit() {
	input := c.input
	mode := c.mode
	c.input = ""
	c.mode = jed.ModeInsert
	switch mode {
	case jed.ModeCommand:
		c.performCommand(input)
	case jed.ModeFind:
		c.find(input)
	case jed.ModeReplace:
		c.replaceText = input
		c.prompt(jed.ModeWith)
	case jed.ModeWith:
		c.replaceAll(c.replaceText, input)
	case jed.ModeOpen:
		c.open(input)
	}
}

func (c *Commander) find(pattern string) {
	c.findText = pattern
	n, err := c.editor.Find(pattern)
	switch {
	case err != nil:
		c.message = err.Error()
	case n == 0:
		c.message = fmt.Sprintf("not found: %s", pattern)
	default:
		c.message = fmt.Sprintf("%d matches", n)
	}
}

func (c *Commander) findNext() {
	if c.editor.FindNext() {
		return
	}
	if c.findText == "" {
		c.message = "nothing to find"
		return
	}
	c.find(c.findText)
}

func (c *Commander) replaceAll(pattern, replacement string) {
	n, err := c.editor.ReplaceAll(pattern, replacement)
	switch {
	case err != nil:
		c.message = err.Error()
	case n == 0:
		c.message = fmt.Sprintf("not found: %s", pattern)
	default:
		c.message = fmt.Sprintf("replaced %d", n)
	}
}

func (c *Commander) open(path string) {
	if path == "" {
		return
	}
	if err := c.editor.ReadFile(path); err != nil {
		c.message = err.Error()
		return
	}
	c.message = ""
}

func (c *Commander) save(path string) bool {
	if err := c.editor.WriteFile(path); err != nil {
		if errors.Is(err, editor.ErrNoFileName) {
			c.message = "no file name (use w <file>)"
		} else {
			c.message = err.Error()
		}
		return false
	}
	c.message = fmt.Sprintf("saved %s", c.editor.GetFileName())
	return true
}

func (c *Commander) quit() {
	if c.editor.Modified() && !c.quitArmed {
		c.quitArmed = true
		c.message = "unsaved changes; Ctrl-Q again to quit"
		return
	}
	c.mode = jed.ModeQuit
}

func (c *Commander) performCommand(command string) {
	e := c.editor

	command = strings.TrimSpace(command)
	if strings.HasPrefix(command, "(") {
		c.message = c.parseEval(command)
		return
	}
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return
	}
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}

	if i, err := strconv.Atoi(parts[0]); err == nil {
		e.MoveCursorToLine(i)
		return
	}
	c.message = ""
	switch parts[0] {
	case "q", "quit":
		if e.Modified() {
			c.message = "unsaved changes (q! discards, wq saves)"
			return
		}
		c.mode = jed.ModeQuit
	case "q!":
		c.mode = jed.ModeQuit
	case "w":
		c.save(arg)
	case "wq":
		if c.save(arg) {
			c.mode = jed.ModeQuit
		}
	case "e":
		if arg == "" {
			c.message = "usage: e <file>"
			return
		}
		c.open(arg)
	case "e!":
		if err := e.Reload(); err != nil {
			c.message = err.Error()
		}
	case "$":
		e.MoveCursorToLine(1e9)
	case "cursor":
		cursor := e.GetCursor()
		c.message = fmt.Sprintf("%d,%d", cursor.Row+1, cursor.Col+1)
	case "buffer":
		number, err := strconv.Atoi(arg)
		if err == nil {
			err = e.SelectBuffer(number)
		}
		if err != nil {
			c.message = err.Error()
		}
	case "buffers":
		e.ListBuffers()
	case "diff":
		if _, err := e.Diff(); err != nil {
			c.message = err.Error()
		}
	case "recent":
		if err := e.ListRecent(); err != nil {
			c.message = err.Error()
		}
	case "regex":
		switch arg {
		case "on":
			e.Searcher().SetRegex(true)
		case "off":
			e.Searcher().SetRegex(false)
		}
		c.message = fmt.Sprintf("regex %v", e.Searcher().Regex())
	case "debug":
		switch arg {
		case "on":
			c.debug = true
		case "off":
			c.debug = false
		}
	default:
		c.message = fmt.Sprintf("unknown command: %s", parts[0])
	}
}

// GetMessageBarText returns the prompt being typed or the status message.
func (c *Commander) GetMessageBarText(length int) string {
	var line string
	switch c.mode {
	case jed.ModeCommand:
		line = ":" + c.input
	case jed.ModeFind:
		line = "find: " + c.input
	case jed.ModeReplace:
		line = "replace: " + c.input
	case jed.ModeWith:
		line = fmt.Sprintf("replace %s with: %s", c.replaceText, c.input)
	case jed.ModeOpen:
		line = "open: " + c.input
	default:
		line = c.message
	}
	if r := []rune(line); len(r) > length {
		line = string(r[:length])
	}
	return line
}
