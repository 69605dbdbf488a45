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

import "sync/atomic"

// PCM plays back a sequence of samples. When the samples are exhausted the
// output is silence.
type PCM struct {
	samples []float32
	stereo  bool

	// position in samples[] of the next frame. read by Remaining() from a
	// different goroutine
	cursor atomic.Int64
}

// NewPCM is the preferred method of initialisation for the PCM type. The
// stereo argument describes the layout of the samples slice.
func NewPCM(samples []float32, stereo bool) *PCM {
	return &PCM{
		samples: samples,
		stereo:  stereo,
	}
}

func (p *PCM) channels() int {
	if p.stereo {
		return 2
	}
	return 1
}

// Frames returns the total number of frames in the PCM data.
func (p *PCM) Frames() int {
	return len(p.samples) / p.channels()
}

// Remaining returns the number of frames that have not yet been generated.
func (p *PCM) Remaining() int {
	return p.Frames() - int(p.cursor.Load())
}

// Done returns true when all frames have been generated.
func (p *PCM) Done() bool {
	return p.Remaining() <= 0
}

// Generate implements the Source interface. Mono samples are duplicated for a
// stereo fragment and stereo samples are averaged for a mono fragment.
func (p *PCM) Generate(fragment []float32, stereo bool) {
	frames := p.Frames()
	cursor := int(p.cursor.Load())

	out := 1
	if stereo {
		out = 2
	}

	n := len(fragment) / out
	for i := 0; i < n; i++ {
		var l, r float32
		if cursor < frames {
			if p.stereo {
				l = p.samples[cursor*2]
				r = p.samples[cursor*2+1]
			} else {
				l = p.samples[cursor]
				r = l
			}
			cursor++
		}
		if stereo {
			fragment[2*i] = l
			fragment[2*i+1] = r
		} else {
			fragment[i] = (l + r) / 2
		}
	}
	if n*out < len(fragment) {
		fragment[len(fragment)-1] = 0
	}

	p.cursor.Store(int64(cursor))
}
