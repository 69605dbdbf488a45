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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/jetsetilly/vcsaudio/sound"
	"github.com/jetsetilly/vcsaudio/test"
	"github.com/jetsetilly/vcsaudio/wavwriter"
)

func TestDevice(t *testing.T) {
	var _ sound.Device = (*wavwriter.WavWriter)(nil)

	_, err := wavwriter.New("")
	test.ExpectFailure(t, err)
}

func TestRender(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "out.wav")
	aw, err := wavwriter.New(pth)
	test.DemandSuccess(t, err)

	// nothing is rendered before the device is opened
	test.ExpectEquality(t, aw.Render(1), 0)

	req := sound.DeviceSpec{SampleRate: 22050, FragmentSize: 100, Stereo: true}
	spec, err := aw.Open(req, func(stream []float32) {
		for i := 0; i < len(stream); i += 2 {
			stream[i] = 0.5
			stream[i+1] = -2.0
		}
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, spec, req)

	// the device starts paused
	test.ExpectEquality(t, aw.Render(3), 0)
	test.ExpectEquality(t, aw.Pause(false), true)
	test.ExpectEquality(t, aw.Render(3), 3)
	test.ExpectEquality(t, aw.Frames(), 300)

	test.DemandSuccess(t, aw.Close())

	f, err := os.Open(pth)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandEquality(t, dec.IsValidFile(), true)

	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, int(dec.SampleRate), 22050)
	test.ExpectEquality(t, int(dec.NumChans), 2)
	test.ExpectEquality(t, int(dec.BitDepth), 16)
	test.DemandEquality(t, len(buf.Data), 600)

	// values are clipped to the range -1.0 to 1.0
	test.ExpectEquality(t, buf.Data[0], 16384)
	test.ExpectEquality(t, buf.Data[1], -32767)

	// the file is only written once
	_, err = aw.Open(req, nil)
	test.ExpectFailure(t, err)
}

func TestFormatChange(t *testing.T) {
	aw, err := wavwriter.New(filepath.Join(t.TempDir(), "out.wav"))
	test.DemandSuccess(t, err)

	cb := func(stream []float32) {
		clear(stream)
	}

	_, err = aw.Open(sound.DeviceSpec{SampleRate: 44100, FragmentSize: 64}, cb)
	test.DemandSuccess(t, err)
	aw.Pause(false)
	aw.Render(2)
	test.ExpectEquality(t, aw.Frames(), 128)

	// same format keeps the collected audio
	_, err = aw.Open(sound.DeviceSpec{SampleRate: 44100, FragmentSize: 32}, cb)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, aw.Frames(), 128)

	_, err = aw.Open(sound.DeviceSpec{SampleRate: 48000, FragmentSize: 32}, cb)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, aw.Frames(), 0)
}
