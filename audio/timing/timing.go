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

package timing

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jetsetilly/vcsaudio/audio/settings"
	"github.com/jetsetilly/vcsaudio/curated"
)

// UnknownSpec is returned by NewTiming() for an unrecognised television
// specification.
const UnknownSpec = "timing: unknown television specification (%s)"

// Spec describes the television specification.
type Spec struct {
	ID             string
	ScanlinesTotal int
	FramesPerSec   int
}

// List of supported specifications.
var (
	SpecNTSC = Spec{ID: "NTSC", ScanlinesTotal: 262, FramesPerSec: 60}
	SpecPAL  = Spec{ID: "PAL", ScanlinesTotal: 312, FramesPerSec: 50}
)

// SpecList is the list of specification IDs in the order they should be
// presented.
var SpecList = []string{SpecNTSC.ID, SpecPAL.ID}

// the number of audio samples produced by the emulation per scanline.
const samplesPerScanline = 2

// Timing relates the emulation to the audio output.
type Timing struct {
	spec   Spec
	config settings.Config
}

func (t *Timing) String() string {
	return fmt.Sprintf("%s %dHz, %d frames per fragment, %d fragments prebuffered, capacity %d",
		t.spec.ID, t.AudioSampleRate(), t.AudioFragmentSize(),
		t.PrebufferFragmentCount(), t.AudioQueueCapacity())
}

// NewTiming is the preferred method of initialisation for the Timing type. The
// effective settings at the time of the call are used for the lifetime of
// the Timing instance.
func NewTiming(spec string, s *settings.Settings) (*Timing, error) {
	if s == nil {
		return nil, curated.Errorf("timing: no settings")
	}
	return NewTimingFromConfig(spec, s.Effective())
}

// NewTimingFromConfig is like NewTiming() but uses an explicit configuration.
func NewTimingFromConfig(spec string, c settings.Config) (*Timing, error) {
	t := &Timing{config: c}

	switch strings.ToUpper(strings.TrimSpace(spec)) {
	case SpecNTSC.ID:
		t.spec = SpecNTSC
	case SpecPAL.ID:
		t.spec = SpecPAL
	default:
		return nil, curated.Errorf(UnknownSpec, spec)
	}

	if c.SampleRate <= 0 {
		return nil, curated.Errorf("timing: invalid sample rate (%d)", c.SampleRate)
	}
	if c.FragmentSize <= 0 {
		return nil, curated.Errorf("timing: invalid fragment size (%d)", c.FragmentSize)
	}

	return t, nil
}

// Spec returns the television specification.
func (t *Timing) Spec() Spec {
	return t.spec
}

// Config returns the settings used by the timing.
func (t *Timing) Config() settings.Config {
	return t.config
}

// AudioSampleRate is the rate at which the emulation produces audio samples.
func (t *Timing) AudioSampleRate() int {
	return t.spec.ScanlinesTotal * t.spec.FramesPerSec * samplesPerScanline
}

// AudioFragmentSize is the number of emulation frames that cover the same
// period as one device fragment. The value is never less than one.
func (t *Timing) AudioFragmentSize() int {
	n := math.Round(float64(t.AudioSampleRate()) * float64(t.config.FragmentSize) / float64(t.config.SampleRate))
	return max(1, int(n))
}

// PrebufferFragmentCount is the number of fragments that should be queued
// before output starts.
func (t *Timing) PrebufferFragmentCount() int {
	return t.config.Headroom + 1
}

// AudioQueueCapacity is the number of fragments the queue should hold.
func (t *Timing) AudioQueueCapacity() int {
	return t.PrebufferFragmentCount() + t.config.BufferSize + 1
}

// FragmentDuration is the playing time of one emulation fragment.
func (t *Timing) FragmentDuration() time.Duration {
	return time.Duration(float64(t.AudioFragmentSize()) / float64(t.AudioSampleRate()) * float64(time.Second))
}
