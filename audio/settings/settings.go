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
	"fmt"
	"strings"

	"github.com/jetsetilly/vcsaudio/audio/resampler"
	"github.com/jetsetilly/vcsaudio/curated"
	"github.com/jetsetilly/vcsaudio/paths"
	"github.com/jetsetilly/vcsaudio/prefs"
)

// Default values.
const (
	DefaultVolume  = 80
	DefaultPreset  = HighQualityMediumLag
	DefaultDevice  = 0
	DefaultEnabled = true
	DefaultStereo  = true
)

// Settings are the audio preferences.
type Settings struct {
	dsk *prefs.Disk

	Enabled prefs.Bool

	// volume in the range 0 to 100
	Volume prefs.Int

	// index of output device. zero is the system default device
	Device prefs.Int

	Preset prefs.String

	// the following values are only used when the preset is "custom"
	SampleRate        prefs.Int
	FragmentSize      prefs.Int
	BufferSize        prefs.Int
	Headroom          prefs.Int
	ResamplingQuality prefs.String

	Stereo prefs.Bool
}

func (s *Settings) String() string {
	return s.dsk.String()
}

// NewSettings is the preferred method of initialisation for the Settings
// type. If path is empty the default preferences file in the resource
// directory is used. A missing preferences file is not an error.
func NewSettings(path string) (*Settings, error) {
	s := &Settings{}
	s.setDefaults()

	if path == "" {
		var err error
		path, err = paths.ResourcePath("", prefs.DefaultPrefsFile)
		if err != nil {
			return nil, curated.Errorf("settings: %v", err)
		}
	}

	var err error
	s.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, curated.Errorf("settings: %v", err)
	}

	s.Volume.SetHookPre(func(v prefs.Value) error {
		if n := v.(int); n < 0 || n > 100 {
			return fmt.Errorf("volume out of range (%d)", n)
		}
		return nil
	})
	s.Device.SetHookPre(nonNegative("device"))
	s.SampleRate.SetHookPre(positive("sample rate"))
	s.FragmentSize.SetHookPre(positive("fragment size"))
	s.BufferSize.SetHookPre(nonNegative("buffer size"))
	s.Headroom.SetHookPre(nonNegative("headroom"))
	s.Preset.SetHookPre(func(v prefs.Value) error {
		if !validPreset(v.(string)) {
			return fmt.Errorf("unknown preset (%s)", v)
		}
		return nil
	})
	s.ResamplingQuality.SetHookPre(func(v prefs.Value) error {
		_, err := resampler.ParseQuality(v.(string))
		return err
	})

	for _, p := range []struct {
		key string
		val value
	}{
		{"audio.enabled", &s.Enabled},
		{"audio.volume", &s.Volume},
		{"audio.device", &s.Device},
		{"audio.preset", &s.Preset},
		{"audio.sampleRate", &s.SampleRate},
		{"audio.fragmentSize", &s.FragmentSize},
		{"audio.bufferSize", &s.BufferSize},
		{"audio.headroom", &s.Headroom},
		{"audio.quality", &s.ResamplingQuality},
		{"audio.stereo", &s.Stereo},
	} {
		err = s.dsk.Add(p.key, p.val)
		if err != nil {
			return nil, curated.Errorf("settings: %v", err)
		}
	}

	err = s.Load()
	if err != nil {
		return nil, err
	}

	return s, nil
}

// the methods required by prefs.Disk.Add()
type value interface {
	String() string
	Set(prefs.Value) error
	Get() prefs.Value
	Reset() error
}

func positive(name string) func(prefs.Value) error {
	return func(v prefs.Value) error {
		if n := v.(int); n <= 0 {
			return fmt.Errorf("%s must be positive (%d)", name, n)
		}
		return nil
	}
}

func nonNegative(name string) func(prefs.Value) error {
	return func(v prefs.Value) error {
		if n := v.(int); n < 0 {
			return fmt.Errorf("%s must not be negative (%d)", name, n)
		}
		return nil
	}
}

func (s *Settings) setDefaults() {
	c := presets[DefaultPreset]
	_ = s.Enabled.Set(DefaultEnabled)
	_ = s.Volume.Set(DefaultVolume)
	_ = s.Device.Set(DefaultDevice)
	_ = s.Preset.Set(DefaultPreset)
	_ = s.SampleRate.Set(c.SampleRate)
	_ = s.FragmentSize.Set(c.FragmentSize)
	_ = s.BufferSize.Set(c.BufferSize)
	_ = s.Headroom.Set(c.Headroom)
	_ = s.ResamplingQuality.Set(c.Quality.String())
	_ = s.Stereo.Set(DefaultStereo)
}

// SetDefaults reverts all settings to the default values.
func (s *Settings) SetDefaults() {
	s.setDefaults()
}

// Load settings from disk. A missing file is not an error.
func (s *Settings) Load() error {
	err := s.dsk.Load(false)
	if err != nil && !curated.Is(err, prefs.NoPrefsFile) {
		return curated.Errorf("settings: %v", err)
	}
	return nil
}

// Save settings to disk.
func (s *Settings) Save() error {
	err := s.dsk.Save()
	if err != nil {
		return curated.Errorf("settings: %v", err)
	}
	return nil
}

// Path returns the location of the file used to store the settings.
func (s *Settings) Path() string {
	return s.dsk.Path()
}

// Effective returns the values that should be used for audio output. The
// preset values are used unless the preset is "custom".
func (s *Settings) Effective() Config {
	if c, ok := presets[s.Preset.String()]; ok {
		return c
	}

	// the hook on ResamplingQuality makes sure the stored value always parses
	q, _ := resampler.ParseQuality(s.ResamplingQuality.String())

	return Config{
		SampleRate:   s.SampleRate.Get().(int),
		FragmentSize: s.FragmentSize.Get().(int),
		BufferSize:   s.BufferSize.Get().(int),
		Headroom:     s.Headroom.Get().(int),
		Quality:      q,
	}
}

// IsCustom returns true if the individual output values are in use.
func (s *Settings) IsCustom() bool {
	return strings.EqualFold(s.Preset.String(), Custom)
}
