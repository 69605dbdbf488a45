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

package otoaudio

import (
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/jetsetilly/vcsaudio/curated"
	"github.com/jetsetilly/vcsaudio/logger"
	"github.com/jetsetilly/vcsaudio/sound"
)

// the number of bytes in a float32
const sampleBytes = 4

// oto context singleton
var (
	otoCtx      *oto.Context
	otoSpec     sound.DeviceSpec
	otoInitOnce sync.Once
	otoInitErr  error
)

// ensureContext initialises the oto context on first use. the spec of the
// context is returned.
func ensureContext(req sound.DeviceSpec) (*oto.Context, sound.DeviceSpec, error) {
	otoInitOnce.Do(func() {
		channels := 1
		if req.Stereo {
			channels = 2
		}

		op := &oto.NewContextOptions{
			SampleRate:   req.SampleRate,
			ChannelCount: channels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   time.Duration(float64(req.FragmentSize) / float64(req.SampleRate) * float64(time.Second)),
		}

		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr != nil {
			return
		}
		<-ready

		otoSpec = sound.DeviceSpec{
			SampleRate:   req.SampleRate,
			FragmentSize: req.FragmentSize,
			Stereo:       req.Stereo,
		}
	})
	return otoCtx, otoSpec, otoInitErr
}

// Audio outputs sound using oto.
type Audio struct {
	player *oto.Player
	spec   sound.DeviceSpec

	// held while the callback is running. Pause() takes the lock to make sure
	// the callback has finished
	crit   sync.Mutex
	cb     sound.Callback
	paused bool

	// the callback writes to stream. allocated when the device is opened
	stream []float32
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	return &Audio{paused: true}
}

// Name implements the sound.Device interface.
func (aud *Audio) Name() string {
	return "oto"
}

// Devices implements the sound.Device interface. Oto only supports the
// default device.
func (aud *Audio) Devices() []string {
	return []string{"default"}
}

// Open implements the sound.Device interface.
func (aud *Audio) Open(req sound.DeviceSpec, cb sound.Callback) (sound.DeviceSpec, error) {
	if aud.player != nil {
		_ = aud.Close()
	}

	if req.SampleRate <= 0 || req.FragmentSize <= 0 {
		return sound.DeviceSpec{}, curated.Errorf("otoaudio: invalid format (%s)", req)
	}

	ctx, spec, err := ensureContext(req)
	if err != nil {
		return sound.DeviceSpec{}, curated.Errorf("otoaudio: %v", err)
	}

	// the fragment size can be different for every player
	spec.FragmentSize = req.FragmentSize

	aud.crit.Lock()
	aud.cb = cb
	aud.spec = spec
	aud.paused = true
	aud.stream = make([]float32, spec.FragmentSize*spec.Channels())
	aud.crit.Unlock()

	aud.player = ctx.NewPlayer(aud)
	aud.player.SetBufferSize(len(aud.stream) * sampleBytes)

	logger.Logf(logger.Allow, "otoaudio", "opened %s", spec)

	return spec, nil
}

// Read implements the io.Reader interface. It is called by the oto player.
func (aud *Audio) Read(p []byte) (int, error) {
	aud.crit.Lock()
	defer aud.crit.Unlock()

	frameBytes := sampleBytes * aud.spec.Channels()
	n := len(p) / frameBytes * frameBytes

	if aud.paused || aud.cb == nil {
		clear(p[:n])
		return n, nil
	}

	for written := 0; written < n; {
		stream := aud.stream[:min(len(aud.stream), (n-written)/sampleBytes)]
		aud.cb(stream)
		for _, v := range stream {
			binary.LittleEndian.PutUint32(p[written:], math.Float32bits(v))
			written += sampleBytes
		}
	}

	return n, nil
}

// Pause implements the sound.Device interface.
func (aud *Audio) Pause(pause bool) bool {
	aud.crit.Lock()
	prev := aud.paused
	aud.paused = pause
	aud.crit.Unlock()

	if aud.player != nil {
		if pause {
			aud.player.Pause()
		} else {
			aud.player.Play()
		}
	}

	return prev
}

// Close implements the sound.Device interface.
func (aud *Audio) Close() error {
	aud.Pause(true)

	aud.crit.Lock()
	aud.cb = nil
	aud.crit.Unlock()

	if aud.player == nil {
		return nil
	}

	err := aud.player.Close()
	aud.player = nil
	if err != nil {
		return curated.Errorf("otoaudio: %v", err)
	}

	return nil
}
