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

package wavwriter

import (
	"math"
	"os"
	"sync"

	"github.com/jetsetilly/vcsaudio/curated"
	"github.com/jetsetilly/vcsaudio/logger"
	"github.com/jetsetilly/vcsaudio/sound"
	"github.com/youpy/go-wav"
)

// WavWriter implements the sound.Device interface.
type WavWriter struct {
	filename string

	crit   sync.Mutex
	spec   sound.DeviceSpec
	cb     sound.Callback
	paused bool

	stream []float32
	buffer []wav.Sample

	// the file is written only once
	written bool
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string) (*WavWriter, error) {
	if filename == "" {
		return nil, curated.Errorf("wavwriter: no filename")
	}

	aw := &WavWriter{
		filename: filename,
		buffer:   make([]wav.Sample, 0),
		paused:   true,
	}

	return aw, nil
}

// Name implements the sound.Device interface.
func (aw *WavWriter) Name() string {
	return "wav"
}

// Devices implements the sound.Device interface.
func (aw *WavWriter) Devices() []string {
	return []string{aw.filename}
}

// Open implements the sound.Device interface. Any format is accepted. If the
// format changes after audio has been collected, the collected audio is
// discarded.
func (aw *WavWriter) Open(req sound.DeviceSpec, cb sound.Callback) (sound.DeviceSpec, error) {
	aw.crit.Lock()
	defer aw.crit.Unlock()

	if aw.written {
		return sound.DeviceSpec{}, curated.Errorf("wavwriter: %s already written", aw.filename)
	}

	if req.SampleRate <= 0 || req.FragmentSize <= 0 {
		return sound.DeviceSpec{}, curated.Errorf("wavwriter: invalid format (%s)", req)
	}

	if len(aw.buffer) > 0 && (req.SampleRate != aw.spec.SampleRate || req.Stereo != aw.spec.Stereo) {
		logger.Logf(logger.Allow, "wavwriter", "format changed. discarding %d frames", len(aw.buffer))
		aw.buffer = aw.buffer[:0]
	}

	// there is only one device
	req.Device = 0

	aw.spec = req
	aw.cb = cb
	aw.paused = true
	aw.stream = make([]float32, req.FragmentSize*req.Channels())

	return aw.spec, nil
}

// Render calls the callback for the number of fragments and collects the
// output. Returns the number of fragments rendered, which will be zero if the
// device is paused or not open.
func (aw *WavWriter) Render(fragments int) int {
	aw.crit.Lock()
	defer aw.crit.Unlock()

	for i := 0; i < fragments; i++ {
		if aw.paused || aw.cb == nil {
			return i
		}

		aw.cb(aw.stream)

		if aw.spec.Stereo {
			for j := 0; j+1 < len(aw.stream); j += 2 {
				w := wav.Sample{}
				w.Values[0] = toInt16(aw.stream[j])
				w.Values[1] = toInt16(aw.stream[j+1])
				aw.buffer = append(aw.buffer, w)
			}
		} else {
			for _, v := range aw.stream {
				w := wav.Sample{}
				w.Values[0] = toInt16(v)
				aw.buffer = append(aw.buffer, w)
			}
		}
	}

	return fragments
}

func toInt16(v float32) int {
	return int(math.Round(float64(max(-1, min(1, v))) * math.MaxInt16))
}

// Frames returns the number of frames collected so far.
func (aw *WavWriter) Frames() int {
	aw.crit.Lock()
	defer aw.crit.Unlock()
	return len(aw.buffer)
}

// Pause implements the sound.Device interface.
func (aw *WavWriter) Pause(pause bool) bool {
	aw.crit.Lock()
	defer aw.crit.Unlock()
	prev := aw.paused
	aw.paused = pause
	return prev
}

// Close implements the sound.Device interface. The collected audio is written
// to the file.
func (aw *WavWriter) Close() (rerr error) {
	aw.crit.Lock()
	defer aw.crit.Unlock()

	aw.cb = nil
	aw.paused = true

	if aw.written || aw.spec.SampleRate == 0 {
		return nil
	}
	aw.written = true

	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(aw.buffer)), uint16(aw.spec.Channels()), uint32(aw.spec.SampleRate), 16)
	if enc == nil {
		return curated.Errorf("wavwriter: %v", "bad parameters for wav encoding")
	}

	logger.Logf(logger.Allow, "wavwriter", "writing audio to %s", aw.filename)

	err = enc.WriteSamples(aw.buffer)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}
