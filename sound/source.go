// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package sound

import (
	"sync/atomic"

	"github.com/jetsetilly/vcsaudio/audio/queue"
)

// fragmentSource supplies fragments from the queue to the resampler. It is
// only used by the device callback, with the exception of the atomic values.
//
// Fragments are not supplied until the queue holds the prebuffer count of
// fragments. If the queue is empty while streaming, the source returns to
// the priming state and the underrun is counted.
type fragmentSource struct {
	queue     *queue.Queue
	prebuffer int

	// the fragment most recently given to the resampler. it is returned to
	// the queue with the next successful dequeue
	fragment []float32

	streaming atomic.Bool
	underruns atomic.Int64
}

func newFragmentSource(q *queue.Queue, prebuffer int) *fragmentSource {
	return &fragmentSource{
		queue:     q,
		prebuffer: max(1, prebuffer),
	}
}

// NextFragment implements the resampler.FragmentSource interface.
func (src *fragmentSource) NextFragment() []float32 {
	if !src.streaming.Load() {
		if src.queue.Size() < src.prebuffer {
			return nil
		}
		src.streaming.Store(true)
	}

	next := src.queue.Dequeue(src.fragment)
	if next == nil {
		src.streaming.Store(false)
		src.underruns.Add(1)
		return nil
	}

	src.fragment = next
	return next
}

// inherit the fragment owned by a previous source for the same queue. the
// queue only supplies the consumer's first buffer once.
func (src *fragmentSource) inherit(prev *fragmentSource) {
	if prev != nil && prev.queue == src.queue {
		src.fragment = prev.fragment
	}
}
