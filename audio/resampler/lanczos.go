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

import (
	"math"
)

// convolutionBuffer is the rolling history of the most recent source samples
// for one channel.
type convolutionBuffer struct {
	data []float32

	// index of the oldest sample
	first int
}

func newConvolutionBuffer(size int) *convolutionBuffer {
	return &convolutionBuffer{
		data: make([]float32, size),
	}
}

// shift a new sample into the buffer, discarding the oldest sample.
func (b *convolutionBuffer) shift(v float32) {
	b.data[b.first] = v
	b.first++
	if b.first >= len(b.data) {
		b.first = 0
	}
}

// fill the entire history with the same value.
func (b *convolutionBuffer) fill(v float32) {
	for i := range b.data {
		b.data[i] = v
	}
}

// convolute the buffer with the kernel. the first kernel value is applied to
// the oldest sample.
func (b *convolutionBuffer) convolute(kernel []float32) float32 {
	var r float32
	n := len(b.data)
	for i := range kernel {
		j := b.first + i
		if j >= n {
			j -= n
		}
		r += kernel[i] * b.data[j]
	}
	return r
}

// lanczosKernel returns the value of the Lanczos kernel for x. the kernel is
// zero outside of the range -a < x < a.
func lanczosKernel(x float64, a int) float64 {
	if x == 0 {
		return 1
	}
	if math.Abs(x) >= float64(a) {
		return 0
	}
	return sinc(x) * sinc(x/float64(a))
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// lanczos is the windowed sinc resampler.
type lanczos struct {
	from Format
	to   Format
	src  FragmentSource

	// kernel half-width. the number of taps is twice this value
	a          int
	kernelSize int

	// one kernel for every value the time index can take. the time index is
	// always a multiple of step so the kernel for a time index is at
	// position (timeIndex / step) * kernelSize
	kernels []float32
	step    int

	// mono sources use bufferL only
	bufferL *convolutionBuffer
	bufferR *convolutionBuffer

	fragment      []float32
	fragmentIndex int

	// time in units of 1/(from.SampleRate * to.SampleRate) seconds. always
	// less than to.SampleRate
	timeIndex int

	underrun bool
	consumed int
}

func newLanczos(from Format, to Format, src FragmentSource, a int) *lanczos {
	r := &lanczos{
		from:       from,
		to:         to,
		src:        src,
		a:          a,
		kernelSize: 2 * a,
		step:       gcd(from.SampleRate, to.SampleRate),
		underrun:   true,
	}

	r.bufferL = newConvolutionBuffer(r.kernelSize)
	if from.Stereo {
		r.bufferR = newConvolutionBuffer(r.kernelSize)
	}

	r.precomputeKernels()

	return r
}

// precompute the kernels for every phase the time index can take. each kernel
// is normalised so that the sum of its taps is one. a constant input will
// therefore produce the same constant output.
func (r *lanczos) precomputeKernels() {
	count := r.to.SampleRate / r.step
	r.kernels = make([]float32, count*r.kernelSize)

	for i := 0; i < count; i++ {
		kernel := r.kernels[i*r.kernelSize : (i+1)*r.kernelSize]

		// the fractional position between history samples a-1 and a
		center := float64(i*r.step) / float64(r.to.SampleRate)

		var sum float64
		w := make([]float64, r.kernelSize)
		for j := range w {
			w[j] = lanczosKernel(center-float64(j)+float64(r.a)-1, r.a)
			sum += w[j]
		}
		for j := range w {
			kernel[j] = float32(w[j] / sum)
		}
	}
}

// Cursor implements the Resampler interface.
func (r *lanczos) Cursor() float64 {
	return float64(r.consumed) + float64(r.timeIndex)/float64(r.to.SampleRate)
}

// FillFragment implements the Resampler interface.
func (r *lanczos) FillFragment(fragment []float32, length int) {
	fragment = fragment[:length]

	if r.underrun {
		if next := r.src.NextFragment(); next != nil {
			// the very first fragment primes the history with its first
			// sample. starting from a zeroed history would produce a click
			if r.fragment == nil {
				if r.from.Stereo {
					r.bufferL.fill(next[0])
					r.bufferR.fill(next[1])
				} else {
					r.bufferL.fill(next[0])
				}
			}
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
		kernel := r.kernels[(r.timeIndex/r.step)*r.kernelSize:][:r.kernelSize]

		if r.from.Stereo {
			l := r.bufferL.convolute(kernel)
			rt := r.bufferR.convolute(kernel)
			if r.to.Stereo {
				fragment[2*i] = l
				fragment[2*i+1] = rt
			} else {
				fragment[i] = (l + rt) / 2
			}
		} else {
			s := r.bufferL.convolute(kernel)
			if r.to.Stereo {
				fragment[2*i] = s
				fragment[2*i+1] = s
			} else {
				fragment[i] = s
			}
		}

		r.timeIndex += r.from.SampleRate
		n := r.timeIndex / r.to.SampleRate
		if n == 0 {
			continue
		}
		r.timeIndex %= r.to.SampleRate
		r.shiftSamples(n)
	}

	if frames*r.to.Channels() < length {
		fragment[length-1] = 0
	}
}

// shift n samples from the current fragment into the history, pulling new
// fragments from the source as required.
func (r *lanczos) shiftSamples(n int) {
	for _i := 0; _i < n; _i++ {
		if r.from.Stereo {
			r.bufferL.shift(r.fragment[2*r.fragmentIndex])
			r.bufferR.shift(r.fragment[2*r.fragmentIndex+1])
		} else {
			r.bufferL.shift(r.fragment[r.fragmentIndex])
		}

		r.consumed++
		r.fragmentIndex++

		if r.fragmentIndex >= r.from.FragmentSize {
			r.fragmentIndex = 0
			if next := r.src.NextFragment(); next != nil {
				r.fragment = next
				r.underrun = false
			} else {
				r.underrun = true
			}
		}
	}
}
