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

	"go.uber.org/zap"

	"github.com/timburks/jed/pkg/text"
	jed "github.com/timburks/jed/pkg/types"
)

// ErrStale marks a request whose coordinates no longer match the document.
var ErrStale = errors.New("stale style request")

// Styler applies styles to a document.
type Styler interface {
	SetStyle(offset, length int, tag jed.StyleTag) error
}

// Scheduler runs a function later on the UI goroutine.
type Scheduler interface {
	InvokeLater(fn func())
}

type pendingRequest struct {
	StyleRequest
	stale bool
}

// A Queue holds style requests until a later task applies them.
// All methods must be called from the UI goroutine.
type Queue struct {
	styler    Styler
	scheduler Scheduler
	logger    *zap.Logger
	pending   []pendingRequest
	scheduled bool // a drain task is queued on the scheduler
	applied   int
	skipped   int
}

func NewQueue(styler Styler, scheduler Scheduler, logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{styler: styler, scheduler: scheduler, logger: logger}
}

// Enqueue adds a request and makes sure a drain is scheduled.
// It never touches the styler.
func (q *Queue) Enqueue(req StyleRequest) {
	q.pending = append(q.pending, pendingRequest{StyleRequest: req})
	if !q.scheduled {
		q.scheduled = true
		q.scheduler.InvokeLater(q.drainLater)
	}
}

// Len returns the number of requests waiting to be applied.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Stats returns how many requests were applied and skipped as stale.
func (q *Queue) Stats() (applied, skipped int) {
	return q.applied, q.skipped
}

// Adjust moves pending requests across an edit made after they were
// queued. Requests after the edit shift with it; requests the edit cuts
// into are marked stale, since the edit's own scan recolors that text.
func (q *Queue) Adjust(e text.Event) {
	for i := range q.pending {
		p := &q.pending[i]
		if p.stale {
			continue
		}
		end := p.Offset + p.Length
		switch e.Kind {
		case text.Inserted:
			if e.Offset <= p.Offset {
				p.Offset += e.Length
			} else if e.Offset < end {
				p.stale = true
			}
		case text.Removed:
			if e.Offset+e.Length <= p.Offset {
				p.Offset -= e.Length
			} else if e.Offset < end {
				p.stale = true
			}
		}
	}
}

// Drain applies every pending request in the order it was queued.
// Stale requests are skipped; any other failure is returned.
func (q *Queue) Drain() error {
	batch := q.pending
	q.pending = nil
	q.scheduled = false

	var errs []error
	for _, p := range batch {
		if p.stale {
			q.skip(p.StyleRequest, ErrStale)
			continue
		}
		err := q.apply(p.StyleRequest)
		switch {
		case err == nil:
			q.applied++
		case errors.Is(err, ErrStale):
			q.skip(p.StyleRequest, err)
		default:
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (q *Queue) apply(req StyleRequest) error {
	err := q.styler.SetStyle(req.Offset, req.Length, req.Style)
	if errors.Is(err, text.ErrBadLocation) {
		return fmt.Errorf("%w: %v", ErrStale, err)
	}
	if err != nil {
		return fmt.Errorf("apply %s: %w", req, err)
	}
	return nil
}

func (q *Queue) skip(req StyleRequest, err error) {
	q.skipped++
	q.logger.Debug("skipping style request", zap.Stringer("request", req), zap.Error(err))
}

func (q *Queue) drainLater() {
	if err := q.Drain(); err != nil {
		q.logger.Error("applying styles", zap.Error(err))
	}
}
