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

// Package screen draws jed on a terminal and reads its keys.
package screen

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	jed "github.com/timburks/jed/pkg/types"
)

// Editor is the part of the editor that the screen draws.
type Editor interface {
	SetSize(s jed.Size)
	Render(d jed.Display)
}

// MessageBar supplies the text of the bottom line.
type MessageBar interface {
	GetMessageBarText(length int) string
}

// The Screen draws the state of an Editor.
type Screen struct {
	size jed.Size // screen size
}

func NewScreen() (*Screen, error) {
	// Open the terminal.
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	termbox.SetOutputMode(termbox.Output256)
	return &Screen{}, nil
}

func (s *Screen) Close() {
	termbox.Close()
}

func (s *Screen) Render(e Editor, m MessageBar) {
	termbox.Clear(termbox.ColorWhite, termbox.ColorBlack)
	s.size.Cols, s.size.Rows = termbox.Size()

	// the bottom row is the message bar
	editSize := s.size
	editSize.Rows--
	e.SetSize(editSize)
	e.Render(s)
	s.RenderMessageBar(m)
	termbox.Flush()
}

func (s *Screen) SetCell(col int, row int, c rune, fg jed.Color, bg jed.Color) {
	termbox.SetCell(col, row, c, termbox.Attribute(fg), termbox.Attribute(bg))
}

func (s *Screen) SetCursor(p jed.Point) {
	termbox.SetCursor(p.Col, p.Row)
}

func (s *Screen) RenderMessageBar(m MessageBar) {
	x := 0
	for _, ch := range m.GetMessageBarText(s.size.Cols) {
		termbox.SetCell(x, s.size.Rows-1, ch, termbox.Attribute(jed.ColorWhite), termbox.Attribute(jed.ColorBlack))
		x += runewidth.RuneWidth(ch)
	}
}

// PollEvents sends terminal events to ch until Close interrupts it.
// It must run on its own goroutine.
func (s *Screen) PollEvents(ch chan<- *jed.Event) {
	for {
		event := termbox.PollEvent()
		if event.Type == termbox.EventInterrupt {
			close(ch)
			return
		}
		ch <- translate(event)
	}
}

// Interrupt stops PollEvents.
func (s *Screen) Interrupt() {
	termbox.Interrupt()
}

func translate(event termbox.Event) *jed.Event {
	switch event.Type {
	case termbox.EventKey:
		return &jed.Event{Type: jed.EventKey, Key: key(event.Key, event.Ch), Ch: event.Ch}
	case termbox.EventResize:
		return &jed.Event{Type: jed.EventResize}
	case termbox.EventError:
		return &jed.Event{Type: jed.EventError}
	default:
		return &jed.Event{Type: jed.EventKey, Key: jed.KeyUnsupported}
	}
}

func key(k termbox.Key, ch rune) jed.Key {
	if ch != 0 {
		return jed.KeyNone
	}
	switch k {
	case termbox.KeyArrowDown:
		return jed.KeyArrowDown
	case termbox.KeyArrowLeft:
		return jed.KeyArrowLeft
	case termbox.KeyArrowRight:
		return jed.KeyArrowRight
	case termbox.KeyArrowUp:
		return jed.KeyArrowUp
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		return jed.KeyBackspace
	case termbox.KeyDelete:
		return jed.KeyDelete
	case termbox.KeyCtrlA:
		return jed.KeyCtrlA
	case termbox.KeyCtrlB:
		return jed.KeyCtrlB
	case termbox.KeyCtrlD:
		return jed.KeyCtrlD
	case termbox.KeyCtrlE:
		return jed.KeyCtrlE
	case termbox.KeyCtrlF:
		return jed.KeyCtrlF
	case termbox.KeyCtrlN:
		return jed.KeyCtrlN
	case termbox.KeyCtrlO:
		return jed.KeyCtrlO
	case termbox.KeyCtrlQ:
		return jed.KeyCtrlQ
	case termbox.KeyCtrlR:
		return jed.KeyCtrlR
	case termbox.KeyCtrlS:
		return jed.KeyCtrlS
	case termbox.KeyCtrlX:
		return jed.KeyCtrlX
	case termbox.KeyEnd:
		return jed.KeyEnd
	case termbox.KeyEnter:
		return jed.KeyEnter
	case termbox.KeyEsc:
		return jed.KeyEsc
	case termbox.KeyHome:
		return jed.KeyHome
	case termbox.KeyPgdn:
		return jed.KeyPgdn
	case termbox.KeyPgup:
		return jed.KeyPgup
	case termbox.KeySpace:
		return jed.KeySpace
	case termbox.KeyTab:
		return jed.KeyTab
	default:
		return jed.KeyUnsupported
	}
}
