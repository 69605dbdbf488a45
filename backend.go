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


package main

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/vcsaudio/audio/settings"
	"github.com/jetsetilly/vcsaudio/gui/otoaudio"
	"github.com/jetsetilly/vcsaudio/gui/sdlaudio"
	"github.com/jetsetilly/vcsaudio/paths"
	"github.com/jetsetilly/vcsaudio/prefs"
	"github.com/jetsetilly/vcsaudio/sound"
	"github.com/jetsetilly/vcsaudio/version"
	"github.com/jetsetilly/vcsaudio/wavwriter"
)

// renderer is implemented by devices that have no clock of their own. the
// Render() function must be called for audio to be produced.
type renderer interface {
	Render(fragments int) int
}

// newDevice creates the device for the named backend. the filename is only
// used by the wav backend. a unique filename is created if it is empty.
func newDevice(backend string, filename string) (sound.Device, error) {
	switch strings.ToLower(backend) {
	case "sdl":
		aud, err := sdlaudio.NewAudio()
		if err != nil {
			return nil, err
		}
		return aud, nil
	case "oto":
		return otoaudio.NewAudio(), nil
	case "wav":
		if filename == "" {
			filename = paths.UniqueFilename(version.ApplicationName, "", "wav")
		}
		aw, err := wavwriter.New(filename)
		if err != nil {
			return nil, err
		}
		return aw, nil
	}
	return nil, fmt.Errorf("unknown backend (%s)", backend)
}

// newSettings loads the audio settings. command line preferences and any
// additional preferences are applied on top of the values in the file.
// additional preferences take priority.
func (opts *options) newSettings(additional ...string) (*settings.Settings, error) {
	cl := append([]string{opts.prefs}, additional...)
	prefs.PushCommandLineStack(strings.Join(cl, ";"))
	defer prefs.PopCommandLineStack()
	return settings.NewSettings(opts.prefsFile)
}
