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
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	jed "github.com/timburks/jed/pkg/types"
)

func TestDefaultKeywordSetSize(t *testing.T) {
	assert.Equal(t, 52, DefaultKeywords().Len())
}

func TestClassify(t *testing.T) {
	k := DefaultKeywords()
	assert.Equal(t, jed.Keyword, k.Classify("class"))
	assert.Equal(t, jed.Normal, k.Classify("Class"))
	assert.Equal(t, jed.Normal, k.Classify("classify"))
	assert.Equal(t, jed.Normal, k.Classify(""))
	assert.Equal(t, jed.Keyword, k.Classify("null"))
	assert.Equal(t, jed.Normal, k.Classify("goto"))
	for _, w := range javaKeywords {
		assert.Equal(t, jed.Keyword, k.Classify(w), w)
	}
}

func TestClassifyMatchesMembership(t *testing.T) {
	k := DefaultKeywords()
	rapid.Check(t, func(rt *rapid.T) {
		word := rapid.OneOf(
			rapid.SampledFrom(javaKeywords),
			rapid.StringMatching(`[a-zA-Z_]{1,12}`),
		).Draw(rt, "word")
		member := false
		for _, w := range javaKeywords {
			if w == word {
				member = true
			}
		}
		if member != (k.Classify(word) == jed.Keyword) {
			rt.Fatalf("Classify(%q) = %s, member = %v", word, k.Classify(word), member)
		}
	})
}

func TestCustomKeywords(t *testing.T) {
	k := NewKeywords("func", "go")
	assert.Equal(t, 2, k.Len())
	assert.True(t, k.Contains("go"))
	assert.False(t, k.Contains("class"))
}
