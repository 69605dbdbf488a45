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

package wavhandler_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/vcsaudio/audio/wavhandler"
	"github.com/jetsetilly/vcsaudio/test"
)

type fixedVolume float32

func (v fixedVolume) Factor() float32 {
	return float32(v)
}

// write a 16 bit WAV file with every sample set to the value for each channel
func writeWAV(t *testing.T, rate int, frames int, values ...int) string {
	t.Helper()

	pth := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(pth)
	test.DemandSuccess(t, err)
	defer f.Close()

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: len(values),
			SampleRate:  rate,
		},
		SourceBitDepth: 16,
	}
	for _i := 0; _i < frames; _i++ {
		buf.Data = append(buf.Data, values...)
	}

	enc := wav.NewEncoder(f, rate, 16, len(values), 1)
	test.DemandSuccess(t, enc.Write(buf))
	test.DemandSuccess(t, enc.Close())

	return pth
}

func TestPlayFailure(t *testing.T) {
	h := wavhandler.NewHandler(nil)
	test.ExpectEquality(t, h.Play(filepath.Join(t.TempDir(), "missing.wav"), 0, 0), false)

	pth := filepath.Join(t.TempDir(), "test.ogg")
	test.DemandSuccess(t, os.WriteFile(pth, []byte("not audio"), 0o600))
	test.ExpectEquality(t, h.Play(pth, 0, 0), false)

	pth = filepath.Join(t.TempDir(), "bad.wav")
	test.DemandSuccess(t, os.WriteFile(pth, []byte("not audio"), 0o600))
	test.ExpectEquality(t, h.Play(pth, 0, 0), false)

	test.ExpectEquality(t, h.Size(), 0)
}

func TestPlayAndMix(t *testing.T) {
	pth := writeWAV(t, 44100, 1000, 16384)

	h := wavhandler.NewHandler(fixedVolume(0.5))
	h.SetFormat(44100, true)

	test.DemandEquality(t, h.Play(pth, 0, 0), true)
	test.ExpectEquality(t, h.Size(), 1000)

	stream := make([]float32, 200)
	h.Mix(stream)
	for i := range stream {
		test.DemandEquality(t, stream[i], 0.25, i)
	}
	test.ExpectEquality(t, h.Size(), 900)

	// playback is added to what is already in the stream
	for i := range stream {
		stream[i] = 0.5
	}
	h.Mix(stream)
	test.ExpectEquality(t, stream[0], 0.75)

	// position beyond the end of the file does not affect current playback
	test.ExpectEquality(t, h.Play(pth, 1000, 0), false)
	test.ExpectEquality(t, h.Size(), 800)

	h.Stop()
	test.ExpectEquality(t, h.Size(), 0)
}

func TestPlayToEnd(t *testing.T) {
	pth := writeWAV(t, 22050, 100, 16384)

	h := wavhandler.NewHandler(nil)
	h.SetFormat(22050, false)

	test.DemandEquality(t, h.Play(pth, 90, 0), true)
	test.ExpectEquality(t, h.Size(), 10)

	stream := make([]float32, 20)
	h.Mix(stream)
	for i := 0; i < 10; i++ {
		test.ExpectEquality(t, stream[i], 0.5, i)
	}
	for i := 10; i < 20; i++ {
		test.ExpectEquality(t, stream[i], 0.0, i)
	}
	test.ExpectEquality(t, h.Size(), 0)

	// nothing more is added once playback has finished
	clear(stream)
	h.Mix(stream)
	test.ExpectEquality(t, stream[0], 0.0)
}

func TestLength(t *testing.T) {
	pth := writeWAV(t, 22050, 100, 16384)

	h := wavhandler.NewHandler(nil)
	h.SetFormat(22050, false)

	test.DemandEquality(t, h.Play(pth, 10, 25), true)
	test.ExpectEquality(t, h.Size(), 25)

	// length beyond the end of the file plays to the end
	test.DemandEquality(t, h.Play(pth, 10, 1000), true)
	test.ExpectEquality(t, h.Size(), 90)
}

func TestSpeedAndRate(t *testing.T) {
	pth := writeWAV(t, 22050, 1000, 16384)

	h := wavhandler.NewHandler(nil)

	// the device rate is twice the file rate so each frame is used twice
	h.SetFormat(44100, false)
	test.DemandEquality(t, h.Play(pth, 0, 0), true)
	h.Mix(make([]float32, 100))
	test.ExpectEquality(t, h.Size(), 950)

	h.SetSpeed(2.0)
	test.ExpectEquality(t, h.Speed(), 2.0)
	h.Mix(make([]float32, 100))
	test.ExpectEquality(t, h.Size(), 850)

	// invalid speed is ignored
	h.SetSpeed(0)
	test.ExpectEquality(t, h.Speed(), 2.0)
}

func TestStereoToMono(t *testing.T) {
	pth := writeWAV(t, 44100, 100, 16384, -8192)

	h := wavhandler.NewHandler(nil)
	h.SetFormat(44100, false)
	test.DemandEquality(t, h.Play(pth, 0, 0), true)

	stream := make([]float32, 10)
	h.Mix(stream)
	test.ExpectApproximate(t, stream[0], 0.125, 1e-6)

	h.SetFormat(44100, true)
	test.DemandEquality(t, h.Play(pth, 0, 0), true)
	stream = make([]float32, 10)
	h.Mix(stream)
	test.ExpectApproximate(t, stream[0], 0.5, 1e-6)
	test.ExpectApproximate(t, stream[1], -0.25, 1e-6)
}

func TestLoad(t *testing.T) {
	pth := writeWAV(t, 31440, 500, 16384, -16384)

	rec, err := wavhandler.Load(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, rec.SampleRate, 31440)
	test.ExpectEquality(t, rec.Stereo, true)
	test.ExpectEquality(t, rec.Frames(), 500)
	test.ExpectApproximate(t, rec.Samples[0], 0.5, 0.001)
	test.ExpectApproximate(t, rec.Samples[1], -0.5, 0.001)

	_, err = wavhandler.Load(filepath.Join(t.TempDir(), "missing.wav"))
	test.ExpectFailure(t, err)
}
