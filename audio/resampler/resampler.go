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
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/vcsaudio/curated"
)

// Format describes the sample rate, fragment size and channel count of a
// stream of audio fragments.
type Format struct {
	SampleRate   int
	FragmentSize int
	Stereo       bool
}

func (f Format) String() string {
	ch := "mono"
	if f.Stereo {
		ch = "stereo"
	}
	return fmt.Sprintf("%dHz %d frames %s", f.SampleRate, f.FragmentSize, ch)
}

// Channels returns the number of interleaved channels in the stream.
func (f Format) Channels() int {
	if f.Stereo {
		return 2
	}
	return 1
}

func (f Format) validate() error {
	if f.SampleRate <= 0 {
		return curated.Errorf("resampler: invalid sample rate (%d)", f.SampleRate)
	}
	if f.FragmentSize <= 0 {
		return curated.Errorf("resampler: invalid fragment size (%d)", f.FragmentSize)
	}
	return nil
}

// FragmentSource is implemented by whatever owns the consumer end of the
// audio queue.
type FragmentSource interface {
	// NextFragment returns the next source fragment or nil if no fragment is
	// available. The resampler owns the returned fragment until it next calls
	// NextFragment() and receives a non-nil result.
	NextFragment() []float32
}

// Resampler implementations produce audio in the destination format.
type Resampler interface {
	// FillFragment writes exactly length samples to the fragment. The length
	// is the number of float32 values, not frames.
	FillFragment(fragment []float32, length int)

	// Cursor returns the number of source frames that have been consumed since
	// the resampler was created. The value is fractional.
	Cursor() float64
}

// Quality of resampling.
type Quality int

// List of valid Quality values.
const (
	NearestNeighbour Quality = iota + 1
	Lanczos2
	Lanczos3
)

func (q Quality) String() string {
	switch q {
	case NearestNeighbour:
		return "nearest"
	case Lanczos2:
		return "lanczos2"
	case Lanczos3:
		return "lanczos3"
	}
	return fmt.Sprintf("unknown quality (%d)", int(q))
}

// Description returns a longer description of the resampling quality.
func (q Quality) Description() string {
	switch q {
	case NearestNeighbour:
		return "Quality 1, nearest neighbour"
	case Lanczos2:
		return "Quality 2, Lanczos (a = 2)"
	case Lanczos3:
		return "Quality 3, Lanczos (a = 3)"
	}
	return q.String()
}

// Valid returns true if the Quality value is one of the defined values.
func (q Quality) Valid() bool {
	return q >= NearestNeighbour && q <= Lanczos3
}

// ParseQuality converts a string to a Quality value. The string can be the
// name of the quality or its number.
func ParseQuality(s string) (Quality, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if n, err := strconv.Atoi(s); err == nil {
		q := Quality(n)
		if q.Valid() {
			return q, nil
		}
		return 0, curated.Errorf(InvalidQuality, n)
	}

	for _, q := range []Quality{NearestNeighbour, Lanczos2, Lanczos3} {
		if s == q.String() {
			return q, nil
		}
	}

	return 0, curated.Errorf("resampler: unrecognised quality (%s)", s)
}

// InvalidQuality is returned by NewResampler() when the Quality value is not
// recognised.
const InvalidQuality = "resampler: invalid resampling quality (%d)"

// NewResampler creates a new Resampler for the quality, formats and source.
//
// An invalid quality is an error and there is no fallback. Callers should
// treat the error as fatal.
func NewResampler(q Quality, from Format, to Format, src FragmentSource) (Resampler, error) {
	if err := from.validate(); err != nil {
		return nil, err
	}
	if err := to.validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, curated.Errorf("resampler: no fragment source")
	}

	switch q {
	case NearestNeighbour:
		return newSimple(from, to, src), nil
	case Lanczos2:
		return newLanczos(from, to, src, 2), nil
	case Lanczos3:
		return newLanczos(from, to, src, 3), nil
	}

	return nil, curated.Errorf(InvalidQuality, int(q))
}
