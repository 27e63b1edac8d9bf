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

// Package types holds the small values shared by the jed packages.
package types

// Editor modes
const (
	ModeInsert  = 0
	ModeCommand = 1
	ModeFind    = 2
	ModeReplace = 3
	ModeWith    = 4
	ModeOpen    = 5
	ModeQuit    = 9999
)

// Move directions
const (
	MoveUp    = 0
	MoveDown  = 1
	MoveRight = 2
	MoveLeft  = 3
)

type Point struct {
	Row int
	Col int
}

type Size struct {
	Rows int
	Cols int
}

type Rect struct {
	Origin Point
	Size   Size
}

// Color is a 256-color terminal palette index.
type Color uint16

const (
	ColorDefault Color = 0x00
	ColorBlack   Color = 0x01
	ColorRed     Color = 0x02
	ColorGreen   Color = 0x03
	ColorYellow  Color = 0x04
	ColorBlue    Color = 0x05
	ColorMagenta Color = 0x06
	ColorCyan    Color = 0x07
	ColorWhite   Color = 0x08
	ColorGray    Color = 0xf0
)

// A StyleTag classifies a run of text for display.
type StyleTag int

const (
	Normal StyleTag = iota
	Keyword
)

func (s StyleTag) String() string {
	switch s {
	case Normal:
		return "normal"
	case Keyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// Palette maps style tags to foreground colors.
type Palette map[StyleTag]Color

// Color returns the foreground color for a tag, falling back to Normal.
func (p Palette) Color(s StyleTag) Color {
	if c, ok := p[s]; ok {
		return c
	}
	if c, ok := p[Normal]; ok {
		return c
	}
	return ColorWhite
}

// Display is implemented by anything that can show a grid of colored cells.
type Display interface {
	SetCell(col int, row int, c rune, fg Color, bg Color)
	SetCursor(p Point)
}

// Event types
const (
	EventKey    = 0
	EventResize = 1
	EventError  = 2
)

type Key int

// Keys reported by the screen
const (
	KeyUnsupported Key = iota - 1
	KeyNone
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyBackspace
	KeyDelete
	KeyEnd
	KeyEnter
	KeyEsc
	KeyHome
	KeyPgdn
	KeyPgup
	KeySpace
	KeyTab
	KeyCtrlA
	KeyCtrlB
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlN
	KeyCtrlO
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlX
)

type Event struct {
	Type int
	Key  Key
	Ch   rune
}
