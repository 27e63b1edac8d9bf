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
	"go.uber.org/zap"

	"github.com/timburks/jed/pkg/text"
)

// State is the listener state.
type State int

const (
	Idle State = iota
	Scanning
)

// A Highlighter is a document listener that keeps keyword coloring
// current. Create one per document.
type Highlighter struct {
	keywords *Keywords
	queue    *Queue
	logger   *zap.Logger
	state    State
}

func New(keywords *Keywords, queue *Queue, logger *zap.Logger) *Highlighter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Highlighter{keywords: keywords, queue: queue, logger: logger}
}

// Attach creates a highlighter for doc and registers it as a listener.
// Styles are applied by tasks posted to scheduler.
func Attach(doc *text.Document, keywords *Keywords, scheduler Scheduler, logger *zap.Logger) *Highlighter {
	h := New(keywords, NewQueue(doc, scheduler, logger), logger)
	doc.AddListener(h)
	return h
}

func (h *Highlighter) Queue() *Queue {
	return h.queue
}

func (h *Highlighter) State() State {
	return h.state
}

func (h *Highlighter) InsertUpdate(doc *text.Document, e text.Event) {
	h.colour(doc, e, e.Offset, e.Length)
}

// RemoveUpdate rescans only the word at the seam of the removal; any
// words the removal joined meet there.
func (h *Highlighter) RemoveUpdate(doc *text.Document, e text.Event) {
	h.colour(doc, e, e.Offset, 0)
}

// ChangedUpdate ignores style changes, including the ones it causes.
func (h *Highlighter) ChangedUpdate(doc *text.Document, e text.Event) {
}

func (h *Highlighter) colour(t Text, e text.Event, offset, length int) {
	h.state = Scanning
	defer func() { h.state = Idle }()

	h.queue.Adjust(e)
	requests, err := Resolve(t, h.keywords, offset, length)
	if err != nil {
		h.logger.DPanic("resolving damage region",
			zap.Stringer("kind", e.Kind),
			zap.Int("offset", offset),
			zap.Int("length", length),
			zap.Error(err))
		return
	}
	for _, r := range requests {
		h.queue.Enqueue(r)
	}
}
