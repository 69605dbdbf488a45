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

// Package queue implements the fragment queue that sits between the emulation
// and the audio device.
//
// The emulation (the producer) fills fixed size fragments of interleaved
// float32 samples and the audio device callback (the consumer) drains them.
// Fragments are never copied and never allocated after the queue has been
// created. Instead, buffers are exchanged: Enqueue() takes a filled fragment
// and returns the buffer the producer should fill next; Dequeue() takes the
// fragment the consumer has finished with and returns the next fragment to
// drain.
//
// The queue holds Capacity() fragments. Two additional buffers exist, one
// initially owned by the producer and one by the consumer, so at any moment a
// buffer is owned by exactly one of producer, consumer or queue.
//
// When the queue is full, Enqueue() drops the oldest fragment. Its buffer
// becomes the producer's next buffer. The emulation is never blocked.
//
// When the queue is empty, Dequeue() returns nil. The consumer should treat
// this as an underrun.
package queue
