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

package resampler

// simple is the nearest neighbour resampler.
type simple struct {
	from Format
	to   Format
	src  FragmentSource

	fragment      []float32
	fragmentIndex int

	// time in units of 1/(from.SampleRate * to.SampleRate) seconds. always
	// less than to.SampleRate
	timeIndex int

	underrun bool
	consumed int
}

func newSimple(from Format, to Format, src FragmentSource) *simple {
	return &simple{
		from:     from,
		to:       to,
		src:      src,
		underrun: true,
	}
}

// Cursor implements the Resampler interface.
func (r *simple) Cursor() float64 {
	return float64(r.consumed) + float64(r.timeIndex)/float64(r.to.SampleRate)
}

// FillFragment implements the Resampler interface.
func (r *simple) FillFragment(fragment []float32, length int) {
	fragment = fragment[:length]

	if r.underrun {
		if next := r.src.NextFragment(); next != nil {
			r.fragment = next
			r.fragmentIndex = 0
			r.underrun = false
		}
	}

	if r.fragment == nil {
		clear(fragment)
		return
	}

	frames := length / r.to.Channels()

	for i := 0; i < frames; i++ {
		if r.from.Stereo {
			l := r.fragment[2*r.fragmentIndex]
			rt := r.fragment[2*r.fragmentIndex+1]
			if r.to.Stereo {
				fragment[2*i] = l
				fragment[2*i+1] = rt
			} else {
				fragment[i] = (l + rt) / 2
			}
		} else {
			s := r.fragment[r.fragmentIndex]
			if r.to.Stereo {
				fragment[2*i] = s
				fragment[2*i+1] = s
			} else {
				fragment[i] = s
			}
		}

		r.timeIndex += r.from.SampleRate
		n := r.timeIndex / r.to.SampleRate
		r.timeIndex %= r.to.SampleRate

		r.fragmentIndex += n
		r.consumed += n

		for r.fragmentIndex >= r.from.FragmentSize {
			r.fragmentIndex -= r.from.FragmentSize
			if next := r.src.NextFragment(); next != nil {
				r.fragment = next
				r.underrun = false
			} else {
				r.underrun = true
			}
		}
	}

	// an odd length for a stereo destination leaves one value unwritten
	if frames*r.to.Channels() < length {
		fragment[length-1] = 0
	}
}
