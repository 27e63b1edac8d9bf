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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/patrickmn/go-cache"
)

// ErrEmptyPattern is returned when searching for nothing.
var ErrEmptyPattern = errors.New("empty search pattern")

// A Match is a run of Length runes at Offset that matched a search.
type Match struct {
	Offset int
	Length int
}

// A Searcher finds and replaces patterns, either as literal text or as
// regular expressions. Compiled patterns are cached.
type Searcher struct {
	regex    bool
	patterns *cache.Cache
}

func NewSearcher(regex bool, ttl time.Duration) *Searcher {
	return &Searcher{regex: regex, patterns: cache.New(ttl, 2*ttl)}
}

func (s *Searcher) Regex() bool {
	return s.regex
}

func (s *Searcher) SetRegex(regex bool) {
	s.regex = regex
}

func (s *Searcher) compile(pattern string) (*regexp2.Regexp, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	key := "l:" + pattern
	expr := regexp2.Escape(pattern)
	if s.regex {
		key = "r:" + pattern
		expr = pattern
	}
	if re, ok := s.patterns.Get(key); ok {
		return re.(*regexp2.Regexp), nil
	}
	re, err := regexp2.Compile(expr, regexp2.Multiline)
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	re.MatchTimeout = time.Second
	s.patterns.Set(key, re, cache.DefaultExpiration)
	return re, nil
}

// FindAll returns every non-empty match of pattern in text, in order.
// Offsets count runes.
func (s *Searcher) FindAll(text, pattern string) ([]Match, error) {
	re, err := s.compile(pattern)
	if err != nil {
		return nil, err
	}
	var matches []Match
	m, err := re.FindStringMatch(text)
	for m != nil && err == nil {
		if m.Length > 0 {
			matches = append(matches, Match{Offset: m.Index, Length: m.Length})
		}
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("searching for %q: %w", pattern, err)
	}
	return matches, nil
}

// ReplaceAll replaces every match of pattern in text and returns the
// new text and the number of matches. Regex replacements may refer to
// groups as $1 or ${name}; literal replacements are inserted verbatim.
func (s *Searcher) ReplaceAll(text, pattern, replacement string) (string, int, error) {
	matches, err := s.FindAll(text, pattern)
	if err != nil || len(matches) == 0 {
		return text, 0, err
	}
	re, err := s.compile(pattern)
	if err != nil {
		return text, 0, err
	}
	if !s.regex {
		replacement = strings.ReplaceAll(replacement, "$", "$$")
	}
	out, err := re.Replace(text, replacement, -1, -1)
	if err != nil {
		return text, 0, fmt.Errorf("replacing %q: %w", pattern, err)
	}
	return out, len(matches), nil
}

// Find highlights every match of pattern in the focused buffer and
// moves the cursor to the first match at or after it, wrapping to the
// top. It returns the number of matches.
func (e *Editor) Find(pattern string) (int, error) {
	b := e.focused
	matches, err := e.search.FindAll(b.Text(), pattern)
	if err != nil {
		return 0, err
	}
	b.matches = matches
	e.moveToMatch(b, b.cursorOffset())
	return len(matches), nil
}

// FindNext moves the cursor to the match after it, wrapping to the top.
func (e *Editor) FindNext() bool {
	b := e.focused
	return e.moveToMatch(b, b.cursorOffset()+1)
}

func (e *Editor) moveToMatch(b *Buffer, from int) bool {
	if len(b.matches) == 0 {
		return false
	}
	for _, m := range b.matches {
		if m.Offset >= from {
			b.setCursorOffset(m.Offset)
			return true
		}
	}
	b.setCursorOffset(b.matches[0].Offset)
	return true
}

// ReplaceAll replaces every match of pattern in the focused buffer and
// returns the number of replacements.
func (e *Editor) ReplaceAll(pattern, replacement string) (int, error) {
	b, err := e.editable()
	if err != nil {
		return 0, err
	}
	out, n, err := e.search.ReplaceAll(b.Text(), pattern, replacement)
	if err != nil || n == 0 {
		return 0, err
	}
	cursor := b.cursor
	if err := b.doc.SetText(out); err != nil {
		return 0, err
	}
	e.SetCursor(cursor)
	return n, nil
}
