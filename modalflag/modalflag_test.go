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

package modalflag_test

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/vcsaudio/modalflag"
	"github.com/jetsetilly/vcsaudio/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{Output: io.Discard}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, md.Path(), "")
}

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{Output: io.Discard}
	md.NewArgs([]string{"-stereo", "1", "2"})
	stereo := md.AddBool("stereo", false, "stereo output")

	test.ExpectEquality(t, *stereo, false)

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, *stereo, true)
	test.ExpectEquality(t, len(md.RemainingArgs()), 2)
	test.ExpectEquality(t, md.GetArg(1), "2")
}

func TestModes(t *testing.T) {
	md := modalflag.Modes{Output: io.Discard}
	md.NewArgs([]string{"-rate", "48000", "convert", "-duration", "2s", "in.wav", "out.wav"})
	md.AddSubModes("play", "oneshot", "convert")
	rate := md.AddInt("rate", 44100, "sample rate")

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, md.Mode(), "CONVERT")
	test.ExpectEquality(t, *rate, 48000)

	md.NewMode()
	duration := md.AddDuration("duration", 0, "length of output")

	p, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, *duration, 2*time.Second)
	test.ExpectEquality(t, strings.Join(md.RemainingArgs(), " "), "in.wav out.wav")
	test.ExpectEquality(t, md.Path(), "CONVERT")
}

func TestDefaultMode(t *testing.T) {
	md := modalflag.Modes{Output: io.Discard}
	md.NewArgs([]string{"tune.wav"})
	md.AddSubModes("play", "oneshot")

	_, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "PLAY")

	// the argument was not a mode name and so remains for the next parse
	md.NewMode()
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.GetArg(0), "tune.wav")
}

func TestChoice(t *testing.T) {
	md := modalflag.Modes{Output: io.Discard}
	md.NewArgs([]string{"-backend", "OTO"})
	backend := md.AddChoice("backend", "sdl", []string{"sdl", "oto", "wav"}, "audio device")

	_, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *backend, "oto")

	md.NewArgs([]string{"-backend", "alsa"})
	backend = md.AddChoice("backend", "sdl", []string{"sdl", "oto", "wav"}, "audio device")

	p, err := md.Parse()
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, p, modalflag.ParseError)
	test.ExpectEquality(t, *backend, "sdl")
}

func TestNoHelpAvailable(t *testing.T) {
	var w strings.Builder

	md := modalflag.Modes{Output: &w}
	md.NewArgs([]string{"-help"})

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectEquality(t, w.String(), "No help available\n")
}

func TestHelpFlags(t *testing.T) {
	var w strings.Builder

	md := modalflag.Modes{Output: &w}
	md.NewArgs([]string{"-help"})
	md.AddBool("stereo", true, "stereo output")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -stereo\n" +
		"    	stereo output (default true)\n"
	test.ExpectEquality(t, w.String(), expectedHelp)
}

func TestHelpModes(t *testing.T) {
	var w strings.Builder

	md := modalflag.Modes{Output: &w}
	md.NewArgs([]string{"-help"})
	md.AddSubModes("play", "oneshot", "convert")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  available modes: PLAY, ONESHOT, CONVERT\n" +
		"    default: PLAY\n"
	test.ExpectEquality(t, w.String(), expectedHelp)
}

func TestHelpFlagsAndModes(t *testing.T) {
	var w strings.Builder

	md := modalflag.Modes{Output: &w}
	md.NewArgs([]string{"-help"})
	md.AddBool("stereo", true, "stereo output")
	md.AddSubModes("play", "oneshot", "convert")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -stereo\n" +
		"    	stereo output (default true)\n" +
		"\n" +
		"  available modes: PLAY, ONESHOT, CONVERT\n" +
		"    default: PLAY\n"
	test.ExpectEquality(t, w.String(), expectedHelp)
}

func TestHelpBanner(t *testing.T) {
	var w strings.Builder

	md := modalflag.Modes{Output: &w}
	md.NewArgs([]string{"devices", "-help"})
	md.AddSubModes("play", "devices")

	_, err := md.Parse()
	test.ExpectSuccess(t, err)

	md.NewMode()
	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectEquality(t, w.String(), "No help available for DEVICES\n")
}

func TestUndefinedFlagSelectsDefaultMode(t *testing.T) {
	md := modalflag.Modes{Output: io.Discard}
	md.NewArgs([]string{"-volume", "50", "tune.wav"})
	md.AddSubModes("play", "oneshot")

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, md.Mode(), "PLAY")

	// the flag is parsed again in the default mode
	md.NewMode()
	volume := md.AddInt("volume", 100, "volume")
	p, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, *volume, 50)
	test.ExpectEquality(t, md.GetArg(0), "tune.wav")

	// a bad value for a defined flag is an error even if there are sub-modes
	md.NewArgs([]string{"-backend", "alsa"})
	md.AddSubModes("play", "oneshot")
	md.AddChoice("backend", "sdl", []string{"sdl", "oto"}, "audio device")
	p, err = md.Parse()
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, p, modalflag.ParseError)
}
