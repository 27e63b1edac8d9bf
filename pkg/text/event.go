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

package text

// EventKind distinguishes the three document notifications.
type EventKind int

const (
	Inserted EventKind = iota
	Removed
	Changed
)

func (k EventKind) String() string {
	switch k {
	case Inserted:
		return "insert"
	case Removed:
		return "remove"
	case Changed:
		return "change"
	default:
		return "unknown"
	}
}

// An Event describes one completed mutation.
// For Inserted, Length runes now start at Offset.
// For Removed, Length runes that started at Offset are gone.
// For Changed, the styles of Length runes at Offset were set.
type Event struct {
	Kind   EventKind
	Offset int
	Length int
}

// A Listener receives document notifications. The three methods mirror
// the three event kinds; they are called on the goroutine that made the
// change, after the change is complete.
type Listener interface {
	InsertUpdate(doc *Document, e Event)
	RemoveUpdate(doc *Document, e Event)
	ChangedUpdate(doc *Document, e Event)
}
