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

// Package loop provides the task queue of jed's UI goroutine.
// Tasks posted with InvokeLater run in posting order, one at a time,
// on whichever goroutine calls RunPending. Nothing here starts a goroutine.
package loop

import (
	"sync"
)

// A Loop is a FIFO of deferred tasks.
type Loop struct {
	mu    sync.Mutex
	tasks []func()
	wake  chan struct{}
}

func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// InvokeLater queues fn to run after everything already queued.
// It may be called from any goroutine, including from inside a task.
func (l *Loop) InvokeLater(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Wake returns a channel that receives after tasks have been queued.
func (l *Loop) Wake() <-chan struct{} {
	return l.wake
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// RunPending runs queued tasks until the queue is empty, including tasks
// queued by the tasks it runs. It returns the number of tasks run.
func (l *Loop) RunPending() int {
	count := 0
	for {
		l.mu.Lock()
		if len(l.tasks) == 0 {
			l.mu.Unlock()
			return count
		}
		task := l.tasks[0]
		l.tasks[0] = nil
		l.tasks = l.tasks[1:]
		l.mu.Unlock()
		task()
		count++
	}
}
