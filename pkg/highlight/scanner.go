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

package highlight

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrOutOfRange is returned when a scan reads outside the text.
var ErrOutOfRange = errors.New("offset out of range")

// Text is the read-only view of a document used while scanning.
type Text interface {
	Length() int
	CharAt(pos int) (rune, error)
	Substring(start, end int) (string, error)
}

func isAlphaNumeric(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

func checkRange(t Text, pos int) error {
	if pos < 0 || pos > t.Length() {
		return fmt.Errorf("%w: %d not in [0,%d]", ErrOutOfRange, pos, t.Length())
	}
	return nil
}

// IsWordChar reports whether the rune at pos is a letter, digit or
// underscore. pos may equal the text length; the end of text is not a
// word character.
func IsWordChar(t Text, pos int) (bool, error) {
	if err := checkRange(t, pos); err != nil {
		return false, err
	}
	if pos == t.Length() {
		return false, nil
	}
	c, err := t.CharAt(pos)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	return isAlphaNumeric(c), nil
}

// WordStart returns the start of the word that ends at or covers pos.
// At a word boundary it returns pos.
func WordStart(t Text, pos int) (int, error) {
	if err := checkRange(t, pos); err != nil {
		return 0, err
	}
	for pos > 0 {
		ok, err := IsWordChar(t, pos-1)
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		pos--
	}
	return pos, nil
}

// WordEnd returns the offset just past the word that starts at or covers
// pos. If the rune at pos is not a word character it returns pos.
func WordEnd(t Text, pos int) (int, error) {
	if err := checkRange(t, pos); err != nil {
		return 0, err
	}
	for pos < t.Length() {
		ok, err := IsWordChar(t, pos)
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		pos++
	}
	return pos, nil
}
