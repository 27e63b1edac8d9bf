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
	jed "github.com/timburks/jed/pkg/types"
)

// Keywords is an immutable set of reserved words.
type Keywords struct {
	words map[string]struct{}
}

// javaKeywords are the reserved words of Java plus its three literals.
var javaKeywords = []string{
	"abstract", "assert", "boolean", "break", "byte", "case", "catch",
	"char", "class", "const", "continue", "default", "do", "double",
	"else", "enum", "extends", "final", "finally", "float", "for", "if",
	"implements", "import", "instanceof", "int", "interface", "long",
	"native", "new", "package", "private", "protected", "public",
	"return", "short", "static", "strictfp", "super", "switch",
	"synchronized", "this", "throw", "throws", "transient", "try", "void",
	"volatile", "while", "true", "false", "null",
}

var defaultKeywords = NewKeywords(javaKeywords...)

// DefaultKeywords returns the shared Java keyword set.
func DefaultKeywords() *Keywords {
	return defaultKeywords
}

func NewKeywords(words ...string) *Keywords {
	k := &Keywords{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		k.words[w] = struct{}{}
	}
	return k
}

// Contains reports whether word is in the set. Matching is case-sensitive.
func (k *Keywords) Contains(word string) bool {
	_, ok := k.words[word]
	return ok
}

// Classify returns Keyword for members of the set and Normal otherwise.
func (k *Keywords) Classify(word string) jed.StyleTag {
	if k.Contains(word) {
		return jed.Keyword
	}
	return jed.Normal
}

func (k *Keywords) Len() int {
	return len(k.words)
}
