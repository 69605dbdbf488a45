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

package wavhandler

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/jetsetilly/vcsaudio/logger"
)

// VolumeReader returns the volume to apply to the output. The value is
// normally in the range 0.0 to 1.0. Factor() is called from the audio device
// callback.
type VolumeReader interface {
	Factor() float32
}

// playback is the state of the file being played. only the device callback
// changes the cursor.
type playback struct {
	asset *asset

	// position of the next frame in the asset. fractional because the asset
	// sample rate is rarely the same as the device sample rate
	cursor float64

	// the frame after the last frame to play
	end int

	// number of frames yet to play. written by the callback and read by
	// Size()
	remaining atomic.Int64
}

// Handler plays WAV and MP3 files through Mix().
type Handler struct {
	volume VolumeReader

	// assets are only accessed from the control goroutine but the mutex makes
	// Play() safe to call from more than one goroutine
	crit   sync.Mutex
	assets map[string]*asset

	playing atomic.Pointer[playback]

	// the device format. the speed is the ratio of the emulation audio rate
	// to the nominal NTSC rate
	sampleRate atomic.Int64
	stereo     atomic.Bool
	speed      atomic.Uint64
}

// NewHandler is the preferred method of initialisation for the Handler type.
// The volume argument can be nil, in which case the output is not scaled.
func NewHandler(volume VolumeReader) *Handler {
	h := &Handler{
		volume: volume,
		assets: make(map[string]*asset),
	}
	h.sampleRate.Store(44100)
	h.stereo.Store(true)
	h.SetSpeed(1.0)
	return h
}

// SetFormat sets the format of the device that Mix() will write to.
func (h *Handler) SetFormat(sampleRate int, stereo bool) {
	if sampleRate <= 0 {
		return
	}
	h.sampleRate.Store(int64(sampleRate))
	h.stereo.Store(stereo)
}

// SetSpeed changes the playback speed. A speed of 1.0 plays the file at its
// natural rate.
func (h *Handler) SetSpeed(speed float64) {
	if speed <= 0 {
		return
	}
	h.speed.Store(math.Float64bits(speed))
}

// Speed returns the current playback speed.
func (h *Handler) Speed() float64 {
	return math.Float64frombits(h.speed.Load())
}

// Play the named file from the position for length frames. A length of zero
// plays the file to the end.
//
// Returns false if the file can't be played. The current playback is
// unaffected in that case.
func (h *Handler) Play(filename string, position int, length int) bool {
	if position < 0 || length < 0 {
		return false
	}

	a, err := h.load(filename)
	if err != nil {
		logger.Log(logger.Allow, "wavhandler", err)
		return false
	}

	frames := a.frames()
	if position >= frames {
		logger.Logf(logger.Allow, "wavhandler", "position (%d) beyond end of file (%d)", position, frames)
		return false
	}

	end := frames
	if length > 0 && position+length < frames {
		end = position + length
	}

	p := &playback{
		asset:  a,
		cursor: float64(position),
		end:    end,
	}
	p.remaining.Store(int64(end - position))

	h.playing.Store(p)

	return true
}

func (h *Handler) load(filename string) (*asset, error) {
	h.crit.Lock()
	defer h.crit.Unlock()

	if a, ok := h.assets[filename]; ok {
		return a, nil
	}

	a, err := loadAsset(filename)
	if err != nil {
		return nil, err
	}

	logAsset(filename, a)
	h.assets[filename] = a

	return a, nil
}

// Stop playback.
func (h *Handler) Stop() {
	h.playing.Store(nil)
}

// Size returns the number of frames that have yet to be played. Zero if
// nothing is playing.
func (h *Handler) Size() int {
	p := h.playing.Load()
	if p == nil {
		return 0
	}
	return int(p.remaining.Load())
}

// Mix adds the playing file to the stream. Called by the audio callback.
func (h *Handler) Mix(stream []float32) {
	p := h.playing.Load()
	if p == nil {
		return
	}

	vol := float32(1.0)
	if h.volume != nil {
		vol = h.volume.Factor()
	}

	step := float64(p.asset.sampleRate) / float64(h.sampleRate.Load()) * h.Speed()
	stereo := h.stereo.Load()

	channels := 1
	if stereo {
		channels = 2
	}

	for i := 0; i+channels <= len(stream); i += channels {
		idx := int(p.cursor)
		if idx >= p.end {
			break
		}

		l, r := p.asset.frame(idx)
		if stereo {
			stream[i] += l * vol
			stream[i+1] += r * vol
		} else {
			stream[i] += (l + r) / 2 * vol
		}

		p.cursor += step
	}

	remaining := p.end - int(p.cursor)
	if remaining <= 0 {
		p.remaining.Store(0)

		// Play() may have started a new playback since the pointer was loaded
		h.playing.CompareAndSwap(p, nil)
		return
	}
	p.remaining.Store(int64(remaining))
}
