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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/vcsaudio/curated"
	"github.com/jetsetilly/vcsaudio/logger"
)

// UnsupportedFile is returned by loadAsset() for files that are not WAV or MP3.
const UnsupportedFile = "wavhandler: unsupported file type (%s)"

// asset is a decoded file. samples are interleaved if there are two channels.
type asset struct {
	samples    []float32
	stereo     bool
	sampleRate int
}

func (a *asset) frames() int {
	if a.stereo {
		return len(a.samples) / 2
	}
	return len(a.samples)
}

// frame returns the left and right values for the frame. a mono asset returns
// the same value for both.
func (a *asset) frame(i int) (float32, float32) {
	if a.stereo {
		return a.samples[2*i], a.samples[2*i+1]
	}
	return a.samples[i], a.samples[i]
}

// Recording is the decoded content of a WAV or MP3 file.
type Recording struct {
	// interleaved if Stereo is true. values are in the range -1.0 to 1.0
	Samples    []float32
	Stereo     bool
	SampleRate int
}

// Frames returns the number of frames in the recording.
func (rec Recording) Frames() int {
	if rec.Stereo {
		return len(rec.Samples) / 2
	}
	return len(rec.Samples)
}

// Load decodes a WAV or MP3 file. The file is not added to the cache used by
// Handler.Play().
func Load(filename string) (Recording, error) {
	a, err := loadAsset(filename)
	if err != nil {
		return Recording{}, err
	}
	return Recording{
		Samples:    a.samples,
		Stereo:     a.stereo,
		SampleRate: a.sampleRate,
	}, nil
}

func loadAsset(filename string) (*asset, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf("wavhandler: %v", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return decodeWAV(f)
	case ".mp3":
		return decodeMP3(f)
	}

	return nil, curated.Errorf(UnsupportedFile, filepath.Ext(filename))
}

func decodeWAV(r io.ReadSeeker) (*asset, error) {
	dec := wav.NewDecoder(r)
	if dec == nil {
		return nil, curated.Errorf("wav: error decoding")
	}

	if !dec.IsValidFile() {
		return nil, curated.Errorf("wav: not a valid wav file")
	}

	// load all data at once
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, curated.Errorf("wav: %v", err)
	}

	chans := int(dec.NumChans)
	if chans < 1 {
		return nil, curated.Errorf("wav: no channels")
	}
	if dec.BitDepth < 8 || dec.BitDepth > 32 {
		return nil, curated.Errorf("wav: unsupported bit depth (%d)", dec.BitDepth)
	}

	// AsFloat32Buffer() scales the values by the source bit depth
	floatBuf := buf.AsFloat32Buffer()

	a := &asset{
		stereo:     chans > 1,
		sampleRate: int(dec.SampleRate),
	}

	// only the first two channels of a file with more than two channels are used
	if a.stereo {
		a.samples = make([]float32, 0, len(floatBuf.Data)/chans*2)
		for i := 0; i+1 < len(floatBuf.Data); i += chans {
			a.samples = append(a.samples, floatBuf.Data[i], floatBuf.Data[i+1])
		}
	} else {
		a.samples = make([]float32, len(floatBuf.Data))
		copy(a.samples, floatBuf.Data)
	}

	// 8 bit WAV data is unsigned. the scaled values are in the range 0.0 to 2.0
	if dec.BitDepth == 8 {
		for i := range a.samples {
			a.samples[i] -= 1.0
		}
	}

	if a.sampleRate <= 0 {
		return nil, curated.Errorf("wav: invalid sample rate (%d)", a.sampleRate)
	}

	return a, nil
}

func decodeMP3(r io.Reader) (*asset, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, curated.Errorf("mp3: %v", err)
	}

	// according to the go-mp3 docs:
	//
	// "The stream is always formatted as 16bit (little endian) 2 channels even if
	// the source is single channel MP3. Thus, a sample always consists of 4
	// bytes."
	a := &asset{
		stereo:     true,
		sampleRate: dec.SampleRate(),
	}

	if l := dec.Length(); l > 0 {
		a.samples = make([]float32, 0, int(l/2))
	}

	chunk := make([]byte, 4096)
	for {
		n, err := io.ReadFull(dec, chunk)
		for i := 0; i+1 < n; i += 2 {
			v := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
			a.samples = append(a.samples, float32(v)/32768)
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return nil, curated.Errorf("mp3: %v", err)
		}
	}

	// a partial frame at the end of the stream is discarded
	if len(a.samples)%2 == 1 {
		a.samples = a.samples[:len(a.samples)-1]
	}

	return a, nil
}

func logAsset(filename string, a *asset) {
	logger.Logf(logger.Allow, "wavhandler", "%s: %dHz, %d frames, stereo=%v",
		filepath.Base(filename), a.sampleRate, a.frames(), a.stereo)
}
