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

package queue_test

import (
	"sync"
	"testing"

	"github.com/jetsetilly/vcsaudio/audio/queue"
	"github.com/jetsetilly/vcsaudio/test"
)

// fill every sample of the fragment with the same value
func fill(fragment []float32, v float32) {
	for i := range fragment {
		fragment[i] = v
	}
}

// check that every sample of the fragment has the same value
func uniform(fragment []float32, v float32) bool {
	for i := range fragment {
		if fragment[i] != v {
			return false
		}
	}
	return true
}

func TestInvalidQueue(t *testing.T) {
	_, err := queue.NewQueue(0, 5, true)
	test.ExpectFailure(t, err)
	_, err = queue.NewQueue(512, 0, true)
	test.ExpectFailure(t, err)
	_, err = queue.NewQueue(512, 5, true)
	test.ExpectSuccess(t, err)
}

func TestFragmentLength(t *testing.T) {
	q, err := queue.NewQueue(512, 5, true)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.FragmentLength(), 1024)
	test.ExpectEquality(t, len(q.Enqueue(nil)), 1024)

	q, err = queue.NewQueue(512, 5, false)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.FragmentLength(), 512)
	test.ExpectEquality(t, len(q.Enqueue(nil)), 512)
}

func TestUnderrun(t *testing.T) {
	q, err := queue.NewQueue(512, 5, true)
	test.DemandSuccess(t, err)

	// nothing has been queued
	test.ExpectEquality(t, q.Size(), 0)
	test.ExpectSuccess(t, q.Dequeue(nil) == nil)

	f := q.Enqueue(nil)
	fill(f, 1)
	f = q.Enqueue(f)
	test.ExpectSuccess(t, f != nil)
	test.ExpectEquality(t, q.Size(), 1)

	d := q.Dequeue(nil)
	test.ExpectSuccess(t, uniform(d, 1))
	test.ExpectEquality(t, q.Size(), 0)

	// queue is empty again. the consumer keeps the fragment it offered
	test.ExpectSuccess(t, q.Dequeue(d) == nil)
	test.ExpectSuccess(t, uniform(d, 1))
}

// a full queue drops the oldest fragment and the size never exceeds capacity
func TestOverflowDropsOldest(t *testing.T) {
	q, err := queue.NewQueue(512, 5, true)
	test.DemandSuccess(t, err)

	f := q.Enqueue(nil)
	for i := 0; i < 5; i++ {
		fill(f, float32(i))
		f = q.Enqueue(f)
	}
	test.ExpectEquality(t, q.Size(), 5)
	test.ExpectEquality(t, q.Overflows(), 0)

	// sixth fragment
	fill(f, 5)
	f = q.Enqueue(f)
	test.ExpectEquality(t, q.Size(), 5)
	test.ExpectEquality(t, q.Overflows(), 1)

	// the buffer returned to the producer is the dropped fragment
	test.ExpectSuccess(t, uniform(f, 0))

	// fragment 0 has gone. fragments 1 to 5 remain in order
	var d []float32
	for i := 1; i <= 5; i++ {
		d = q.Dequeue(d)
		test.DemandSuccess(t, d != nil, i)
		test.ExpectSuccess(t, uniform(d, float32(i)), i)
	}
	test.ExpectEquality(t, q.Size(), 0)
}

func TestIgnoreOverflows(t *testing.T) {
	q, err := queue.NewQueue(16, 2, false)
	test.DemandSuccess(t, err)

	q.IgnoreOverflows(true)

	f := q.Enqueue(nil)
	for i := 0; i < 10; i++ {
		fill(f, float32(i))
		f = q.Enqueue(f)
	}

	// policy is unchanged but overflows are not counted
	test.ExpectEquality(t, q.Size(), 2)
	test.ExpectEquality(t, q.Overflows(), 0)

	d := q.Dequeue(nil)
	test.ExpectSuccess(t, uniform(d, 8))
	d = q.Dequeue(d)
	test.ExpectSuccess(t, uniform(d, 9))
}

// the number of distinct buffers in circulation is capacity plus two
func TestBufferCirculation(t *testing.T) {
	const capacity = 3
	q, err := queue.NewQueue(8, capacity, false)
	test.DemandSuccess(t, err)

	seen := make(map[*float32]bool)

	f := q.Enqueue(nil)
	var d []float32
	for _i := 0; _i < 100; _i++ {
		seen[&f[0]] = true
		f = q.Enqueue(f)
		seen[&f[0]] = true
		d = q.Dequeue(d)
		if d != nil {
			seen[&d[0]] = true
		}
	}

	test.ExpectEquality(t, len(seen), capacity+2)

	// producer and consumer never hold the same buffer
	test.ExpectInequality(t, &f[0], &d[0])
}

func TestCloseSink(t *testing.T) {
	q, err := queue.NewQueue(8, 2, false)
	test.DemandSuccess(t, err)

	f := q.Enqueue(nil)
	test.ExpectSuccess(t, f != nil)
	test.ExpectSuccess(t, q.Enqueue(nil) == nil)

	q.CloseSink(f)
	g := q.Enqueue(nil)
	test.ExpectEquality(t, &g[0], &f[0])
}

// one producer and one consumer working concurrently. each fragment is filled
// with a sequence number. a fragment being written by the producer while the
// consumer reads it would show up as a non-uniform fragment. a race detector
// run of this test will also catch shared buffers
func TestConcurrentProducerConsumer(t *testing.T) {
	const fragments = 20000

	q, err := queue.NewQueue(64, 4, true)
	test.DemandSuccess(t, err)
	q.IgnoreOverflows(true)

	var wg sync.WaitGroup
	wg.Add(2)

	done := make(chan bool)

	go func() {
		defer wg.Done()
		defer close(done)
		f := q.Enqueue(nil)
		for i := 1; i <= fragments; i++ {
			fill(f, float32(i))
			f = q.Enqueue(f)
		}
		q.CloseSink(f)
	}()

	var failures int
	var last float32

	go func() {
		defer wg.Done()
		var d []float32
		for {
			n := q.Dequeue(d)
			if n == nil {
				select {
				case <-done:
					if q.Size() == 0 {
						return
					}
				default:
				}
				continue
			}
			d = n

			v := d[0]
			if !uniform(d, v) || v <= last {
				failures++
			}
			last = v
		}
	}()

	wg.Wait()

	test.ExpectEquality(t, failures, 0)
	test.ExpectEquality(t, last, float32(fragments))
}
