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

package generator

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/vcsaudio/audio/queue"
	"github.com/jetsetilly/vcsaudio/curated"
)

// Producer fills fragments from a Source and pushes them into the queue.
//
// A Producer is not safe for concurrent use. Step() and Run() must be called
// from the same goroutine.
type Producer struct {
	queue  *queue.Queue
	source Source

	// the fragment currently owned by the producer
	fragment []float32

	produced atomic.Int64
}

// NewProducer is the preferred method of initialisation for the Producer type.
// The queue must not have been used by another producer.
func NewProducer(q *queue.Queue, src Source) (*Producer, error) {
	if q == nil {
		return nil, curated.Errorf("producer: no queue")
	}
	if src == nil {
		return nil, curated.Errorf("producer: no source")
	}

	p := &Producer{
		queue:    q,
		source:   src,
		fragment: q.Enqueue(nil),
	}

	if p.fragment == nil {
		return nil, curated.Errorf("producer: queue already has a producer")
	}

	return p, nil
}

// Produced returns the number of fragments that have been enqueued.
func (p *Producer) Produced() int {
	return int(p.produced.Load())
}

// Step fills one fragment and pushes it into the queue. Does nothing if Run()
// has returned.
func (p *Producer) Step() {
	if p.fragment == nil {
		return
	}
	p.source.Generate(p.fragment, p.queue.IsStereo())
	p.fragment = p.queue.Enqueue(p.fragment)
	p.produced.Add(1)
}

// Run calls Step() until the context is cancelled. A fragment is produced
// every pace period. If pace is zero fragments are produced as quickly as
// possible.
//
// On return the producer's buffer is given back to the queue and the Producer
// can no longer be used.
func (p *Producer) Run(ctx context.Context, pace time.Duration) error {
	if p.fragment == nil {
		return curated.Errorf("producer: already closed")
	}

	defer func() {
		p.queue.CloseSink(p.fragment)
		p.fragment = nil
	}()

	if pace <= 0 {
		for {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			p.Step()
		}
	}

	tick := time.NewTicker(pace)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			p.Step()
		}
	}
}
