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
	"fmt"

	jed "github.com/timburks/jed/pkg/types"
)

// A StyleRequest asks for Length runes at Offset to be given Style.
type StyleRequest struct {
	Offset int
	Length int
	Style  jed.StyleTag
}

func (r StyleRequest) String() string {
	return fmt.Sprintf("{%d,%d,%s}", r.Offset, r.Length, r.Style)
}

// A Region is the half-open range [Start, End) that needs recoloring.
type Region struct {
	Start int
	End   int
}

// DamageRegion widens an edit to word boundaries. length is the number
// of runes inserted at offset, or zero after a removal.
func DamageRegion(t Text, offset, length int) (Region, error) {
	start, err := WordStart(t, offset)
	if err != nil {
		return Region{}, err
	}
	end, err := WordEnd(t, offset+length)
	if err != nil {
		return Region{}, err
	}
	return Region{Start: start, End: end}, nil
}

// Resolve computes the style requests that recolor the damage region of
// an edit, in left to right order.
func Resolve(t Text, k *Keywords, offset, length int) ([]StyleRequest, error) {
	r, err := DamageRegion(t, offset, length)
	if err != nil {
		return nil, err
	}
	return ResolveRegion(t, k, r)
}

// ResolveRegion walks a region word by word. Each word gets one request
// classified by k; each other rune gets a Normal request of length one.
func ResolveRegion(t Text, k *Keywords, r Region) ([]StyleRequest, error) {
	var requests []StyleRequest
	pos := r.Start
	for pos < r.End {
		ok, err := IsWordChar(t, pos)
		if err != nil {
			return nil, err
		}
		if !ok {
			requests = append(requests, StyleRequest{Offset: pos, Length: 1, Style: jed.Normal})
			pos++
			continue
		}
		end, err := WordEnd(t, pos)
		if err != nil {
			return nil, err
		}
		word, err := t.Substring(pos, end)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOutOfRange, err)
		}
		requests = append(requests, StyleRequest{Offset: pos, Length: end - pos, Style: k.Classify(word)})
		pos = end
	}
	return requests, nil
}
