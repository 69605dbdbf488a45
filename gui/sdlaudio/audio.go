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

package sdlaudio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jetsetilly/vcsaudio/curated"
	"github.com/jetsetilly/vcsaudio/logger"
	"github.com/jetsetilly/vcsaudio/sound"
	"github.com/veandco/go-sdl2/sdl"
)

// the number of fragments to keep queued in SDL
const queuedFragments = 2

// the number of bytes in a float32
const sampleBytes = 4

// Audio outputs sound using SDL.
type Audio struct {
	id   sdl.AudioDeviceID
	spec sound.DeviceSpec

	// held while the callback is running. Pause() takes the lock to make sure
	// the callback has finished
	crit   sync.Mutex
	cb     sound.Callback
	paused bool

	// buffers are allocated when the device is opened. the callback writes to
	// stream and the result is converted to bytes in data
	stream []float32
	data   []uint8

	quit chan bool
	done chan bool
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() (*Audio, error) {
	err := sdl.InitSubSystem(sdl.INIT_AUDIO)
	if err != nil {
		return nil, curated.Errorf("sdlaudio: %v", err)
	}
	return &Audio{paused: true}, nil
}

// Name implements the sound.Device interface.
func (aud *Audio) Name() string {
	return "sdl"
}

// Devices implements the sound.Device interface.
func (aud *Audio) Devices() []string {
	devices := []string{"default"}
	n := sdl.GetNumAudioDevices(false)
	for i := 0; i < n; i++ {
		devices = append(devices, sdl.GetAudioDeviceName(i, false))
	}
	return devices
}

// Open implements the sound.Device interface.
func (aud *Audio) Open(req sound.DeviceSpec, cb sound.Callback) (sound.DeviceSpec, error) {
	if aud.id != 0 {
		_ = aud.Close()
	}

	if req.FragmentSize <= 0 || req.FragmentSize > math.MaxUint16 {
		return sound.DeviceSpec{}, curated.Errorf("sdlaudio: invalid fragment size (%d)", req.FragmentSize)
	}

	// the first entry returned by Devices() is the default device. SDL uses
	// the empty string for the default device
	var name string
	if req.Device > 0 {
		name = sdl.GetAudioDeviceName(req.Device-1, false)
	}

	channels := uint8(1)
	if req.Stereo {
		channels = 2
	}

	desired := &sdl.AudioSpec{
		Freq:     int32(req.SampleRate),
		Format:   sdl.AUDIO_F32SYS,
		Channels: channels,
		Samples:  uint16(req.FragmentSize),
	}

	var obtained sdl.AudioSpec

	id, err := sdl.OpenAudioDevice(name, false, desired, &obtained, sdl.AUDIO_ALLOW_FREQUENCY_CHANGE)
	if err != nil {
		return sound.DeviceSpec{}, curated.Errorf("sdlaudio: %v", err)
	}

	aud.id = id
	aud.cb = cb
	aud.paused = true
	aud.spec = sound.DeviceSpec{
		SampleRate:   int(obtained.Freq),
		FragmentSize: int(obtained.Samples),
		Stereo:       obtained.Channels == 2,
		Device:       req.Device,
	}

	aud.stream = make([]float32, aud.spec.FragmentSize*aud.spec.Channels())
	aud.data = make([]uint8, len(aud.stream)*sampleBytes)

	aud.quit = make(chan bool)
	aud.done = make(chan bool)
	go aud.pump(aud.quit, aud.done)

	logger.Logf(logger.Allow, "sdlaudio", "opened %s", aud.spec)

	return aud.spec, nil
}

// pump keeps the SDL queue filled. the queue is checked twice per fragment
func (aud *Audio) pump(quit chan bool, done chan bool) {
	defer close(done)

	period := time.Duration(float64(aud.spec.FragmentSize) / float64(aud.spec.SampleRate) * float64(time.Second) / 2)
	tck := time.NewTicker(max(period, time.Millisecond))
	defer tck.Stop()

	for {
		select {
		case <-quit:
			return
		case <-tck.C:
			aud.fill()
		}
	}
}

func (aud *Audio) fill() {
	aud.crit.Lock()
	defer aud.crit.Unlock()

	if aud.paused {
		return
	}

	for sdl.GetQueuedAudioSize(aud.id) < uint32(queuedFragments*len(aud.data)) {
		aud.cb(aud.stream)
		for i, v := range aud.stream {
			binary.NativeEndian.PutUint32(aud.data[i*sampleBytes:], math.Float32bits(v))
		}
		err := sdl.QueueAudio(aud.id, aud.data)
		if err != nil {
			logger.Log(logger.Allow, "sdlaudio", err)
			return
		}
	}
}

// Pause implements the sound.Device interface.
func (aud *Audio) Pause(pause bool) bool {
	aud.crit.Lock()
	defer aud.crit.Unlock()

	prev := aud.paused
	aud.paused = pause

	if aud.id != 0 {
		if pause {
			sdl.ClearQueuedAudio(aud.id)
		}
		sdl.PauseAudioDevice(aud.id, pause)
	}

	return prev
}

// Close implements the sound.Device interface.
func (aud *Audio) Close() error {
	if aud.id == 0 {
		return nil
	}

	close(aud.quit)
	<-aud.done

	aud.crit.Lock()
	defer aud.crit.Unlock()

	sdl.CloseAudioDevice(aud.id)
	aud.id = 0
	aud.cb = nil
	aud.paused = true

	return nil
}

func (aud *Audio) String() string {
	if aud.id == 0 {
		return "sdl: closed"
	}
	return fmt.Sprintf("sdl: %s", aud.spec)
}
