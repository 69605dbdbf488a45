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

package settings

import (
	"github.com/jetsetilly/vcsaudio/audio/resampler"
)

// Preset names.
const (
	Custom                 = "custom"
	LowQualityMediumLag    = "lowQualityMediumLag"
	HighQualityMediumLag   = "highQualityMediumLag"
	HighQualityLowLag      = "highQualityLowLag"
	UltraQualityMinimalLag = "ultraQualityMinimalLag"
)

// Config is the set of values that governs the audio output.
type Config struct {
	SampleRate   int
	FragmentSize int
	BufferSize   int
	Headroom     int
	Quality      resampler.Quality
}

var presets = map[string]Config{
	LowQualityMediumLag: {
		SampleRate:   44100,
		FragmentSize: 1024,
		BufferSize:   6,
		Headroom:     5,
		Quality:      resampler.NearestNeighbour,
	},
	HighQualityMediumLag: {
		SampleRate:   44100,
		FragmentSize: 1024,
		BufferSize:   6,
		Headroom:     5,
		Quality:      resampler.Lanczos2,
	},
	HighQualityLowLag: {
		SampleRate:   48000,
		FragmentSize: 512,
		BufferSize:   3,
		Headroom:     2,
		Quality:      resampler.Lanczos2,
	},
	UltraQualityMinimalLag: {
		SampleRate:   96000,
		FragmentSize: 128,
		BufferSize:   0,
		Headroom:     0,
		Quality:      resampler.Lanczos3,
	},
}

// Presets lists the preset names in order of increasing quality. The custom
// preset is the last entry.
var Presets = []string{
	LowQualityMediumLag,
	HighQualityMediumLag,
	HighQualityLowLag,
	UltraQualityMinimalLag,
	Custom,
}

// LookupPreset returns the values for the named preset. The custom preset has
// no values of its own.
func LookupPreset(name string) (Config, bool) {
	c, ok := presets[name]
	return c, ok
}

func validPreset(name string) bool {
	if name == Custom {
		return true
	}
	_, ok := presets[name]
	return ok
}
