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

package loop

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPendingKeepsOrder(t *testing.T) {
	l := New()
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		l.InvokeLater(func() { got = append(got, i) })
	}
	assert.Equal(t, 5, l.Pending())
	assert.Equal(t, 5, l.RunPending())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
	assert.Equal(t, 0, l.RunPending())
}

func TestTasksQueuedByTasksRunAfterwards(t *testing.T) {
	l := New()
	var got []string
	l.InvokeLater(func() {
		got = append(got, "a")
		l.InvokeLater(func() { got = append(got, "c") })
	})
	l.InvokeLater(func() { got = append(got, "b") })
	assert.Equal(t, 3, l.RunPending())
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestWakeAfterPostFromAnotherGoroutine(t *testing.T) {
	l := New()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		l.InvokeLater(func() {})
	}()
	select {
	case <-l.Wake():
	case <-time.After(time.Second):
		t.Fatal("expected wake signal")
	}
	wg.Wait()
	require.Equal(t, 1, l.RunPending())
}
