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

	"github.com/jetsetilly/vcsaudio/audio/settings"
	"github.com/jetsetilly/vcsaudio/modalflag"
)

func devices(md *modalflag.Modes, opts *options) error {
	md.NewMode()

	out := md.AddString("out", "", "output file for the wav backend (default is a unique filename)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	dev, err := newDevice(opts.backend, *out)
	if err != nil {
		return err
	}
	defer dev.Close()

	s, err := opts.newSettings()
	if err != nil {
		return err
	}
	selected := s.Device.Get().(int)

	fmt.Fprintf(opts.output, "%s devices\n", dev.Name())
	for i, d := range dev.Devices() {
		line := fmt.Sprintf("%2d  %s", i, d)
		if i == selected {
			fmt.Fprintln(opts.output, opts.styles.active.Render(line+" *"))
		} else {
			fmt.Fprintln(opts.output, opts.styles.device.Render(line))
		}
	}

	fmt.Fprintln(opts.output)
	fmt.Fprintln(opts.output, "presets")
	for _, name := range settings.Presets {
		c, ok := settings.LookupPreset(name)
		line := name
		if ok {
			line = fmt.Sprintf("%-24s %dHz %d frames buffer %d headroom %d %s", name,
				c.SampleRate, c.FragmentSize, c.BufferSize, c.Headroom, c.Quality)
		}
		if name == s.Preset.String() {
			fmt.Fprintln(opts.output, opts.styles.active.Render(line+" *"))
		} else {
			fmt.Fprintln(opts.output, opts.styles.device.Render(line))
		}
	}

	return nil
}
