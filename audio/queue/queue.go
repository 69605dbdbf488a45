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

package queue

import (
	"sync"

	"github.com/jetsetilly/vcsaudio/curated"
	"github.com/jetsetilly/vcsaudio/logger"
)

const logTag = "audio queue"

// Queue is a bounded ring of audio fragments. It is safe for use by one
// producer goroutine and one consumer goroutine.
type Queue struct {
	// the critical section covers pointer exchanges only. neither end of the
	// queue ever waits for the other end to do any work
	crit sync.Mutex

	fragmentSize int
	stereo       bool

	fragments [][]float32
	size      int
	next      int

	// the spare buffers for the first call to Enqueue() and Dequeue()
	firstForEnqueue []float32
	firstForDequeue []float32

	ignoreOverflows bool
	overflows       int
}

// NewQueue is the preferred method of initialisation for the Queue type. The
// fragment size is the number of frames in each fragment. The length of each
// fragment is the fragment size multiplied by the number of channels.
func NewQueue(fragmentSize int, capacity int, stereo bool) (*Queue, error) {
	if fragmentSize <= 0 {
		return nil, curated.Errorf("audio queue: invalid fragment size (%d)", fragmentSize)
	}
	if capacity <= 0 {
		return nil, curated.Errorf("audio queue: invalid capacity (%d)", capacity)
	}

	q := &Queue{
		fragmentSize: fragmentSize,
		stereo:       stereo,
		fragments:    make([][]float32, capacity),
	}

	// allocate all buffers at once so that all fragments are contiguous. this
	// also means there is only one allocation for the lifetime of the queue
	n := fragmentSize
	if stereo {
		n *= 2
	}
	all := make([]float32, n*(capacity+2))

	for i := range q.fragments {
		q.fragments[i] = all[i*n : (i+1)*n : (i+1)*n]
	}
	q.firstForEnqueue = all[capacity*n : (capacity+1)*n : (capacity+1)*n]
	q.firstForDequeue = all[(capacity+1)*n:]

	return q, nil
}

// Capacity returns the maximum number of fragments that can be queued.
func (q *Queue) Capacity() int {
	return len(q.fragments)
}

// Size returns the number of filled fragments waiting to be dequeued.
func (q *Queue) Size() int {
	q.crit.Lock()
	defer q.crit.Unlock()
	return q.size
}

// FragmentSize returns the number of frames in each fragment.
func (q *Queue) FragmentSize() int {
	return q.fragmentSize
}

// IsStereo returns true if fragments contain interleaved stereo samples.
func (q *Queue) IsStereo() bool {
	return q.stereo
}

// FragmentLength returns the number of float32 values in each fragment.
func (q *Queue) FragmentLength() int {
	if q.stereo {
		return q.fragmentSize * 2
	}
	return q.fragmentSize
}

// IgnoreOverflows controls whether overflows are logged and counted. It does
// not change the overflow policy: the oldest fragment is always dropped.
func (q *Queue) IgnoreOverflows(ignore bool) {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.ignoreOverflows = ignore
}

// Overflows returns the number of overflows since the queue was created.
// Overflows that happened while overflows were ignored are not counted.
func (q *Queue) Overflows() int {
	q.crit.Lock()
	defer q.crit.Unlock()
	return q.overflows
}

// Enqueue a filled fragment and return the buffer that the producer should
// fill next.
//
// The first call should be with a nil fragment. This returns the producer's
// initial buffer. Calling with nil a second time returns nil.
//
// If the queue is already full the oldest fragment is dropped and its buffer
// is returned.
func (q *Queue) Enqueue(fragment []float32) []float32 {
	q.crit.Lock()
	defer q.crit.Unlock()

	if fragment == nil {
		f := q.firstForEnqueue
		q.firstForEnqueue = nil
		return f
	}

	capacity := len(q.fragments)
	idx := (q.next + q.size) % capacity

	// when the queue is full, idx is the same as q.next. in other words, the
	// oldest fragment
	newFragment := q.fragments[idx]
	q.fragments[idx] = fragment

	if q.size < capacity {
		q.size++
	} else {
		q.next = (q.next + 1) % capacity
		if !q.ignoreOverflows {
			q.overflows++
			logger.Log(logger.Allow, logTag, "overflow")
		}
	}

	return newFragment
}

// Dequeue returns the next filled fragment. The fragment argument is the
// buffer the consumer has finished with and is returned to the queue.
//
// The first call should be with a nil fragment, in which case the consumer's
// initial spare buffer is returned to the queue instead.
//
// Returns nil if there are no filled fragments. In that case the fragment
// argument has not been taken and is still owned by the consumer.
func (q *Queue) Dequeue(fragment []float32) []float32 {
	q.crit.Lock()
	defer q.crit.Unlock()

	if q.size == 0 {
		return nil
	}

	if fragment == nil {
		if q.firstForDequeue == nil {
			return nil
		}
		fragment = q.firstForDequeue
		q.firstForDequeue = nil
	}

	next := q.fragments[q.next]
	q.fragments[q.next] = fragment
	q.size--
	q.next = (q.next + 1) % len(q.fragments)

	return next
}

// CloseSink returns the buffer the producer was filling. The buffer becomes
// the producer's initial buffer again and can be retrieved with Enqueue(nil).
func (q *Queue) CloseSink(fragment []float32) {
	if fragment == nil {
		return
	}

	q.crit.Lock()
	defer q.crit.Unlock()

	q.firstForEnqueue = fragment
}
