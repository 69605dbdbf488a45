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

package sound

import (
	"fmt"

	"github.com/jetsetilly/vcsaudio/logger"
)

// Stats is a summary of the state of the audio pipeline.
type Stats struct {
	// true if fragments are being taken from the queue. false if the queue is
	// being primed
	Streaming bool

	Underruns int
	Overflows int

	QueueSize     int
	QueueCapacity int

	// frames of one-shot sound still to play
	WavSize int
}

func (st Stats) String() string {
	state := "priming"
	if st.Streaming {
		state = "streaming"
	}
	return fmt.Sprintf("%s queue %d/%d underruns %d overflows %d",
		state, st.QueueSize, st.QueueCapacity, st.Underruns, st.Overflows)
}

// Stats returns the current state of the audio pipeline. Safe to call from
// any goroutine.
func (snd *Sound) Stats() Stats {
	st := Stats{
		WavSize: snd.wav.Size(),
	}

	p := snd.pipeline.Load()
	if p == nil {
		return st
	}

	st.Streaming = p.source.streaming.Load()
	st.Underruns = int(p.source.underruns.Load())
	st.Overflows = p.queue.Overflows()
	st.QueueSize = p.queue.Size()
	st.QueueCapacity = p.queue.Capacity()

	return st
}

// ReportUnderruns logs the number of underruns since the last call. Should be
// called periodically from the control goroutine. Returns the number of new
// underruns.
//
// Underruns are not logged by the callback because logging can block.
func (snd *Sound) ReportUnderruns() int {
	p := snd.pipeline.Load()
	if p == nil {
		return 0
	}

	n := p.source.underruns.Load()
	d := n - snd.reportedUnderruns
	snd.reportedUnderruns = n

	if d > 0 {
		logger.Logf(logger.Allow, logTag, "underrun (%d)", d)
	}

	return int(d)
}
