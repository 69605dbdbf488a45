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

package generator

import (
	"strings"
	"sync"

	"github.com/jetsetilly/vcsaudio/audio/mix"
	"github.com/jetsetilly/vcsaudio/curated"
)

// Tone models the two audio channels of the TIA. One sample is produced for
// every tick of the 30Khz audio clock.
type Tone struct {
	// the registers can be changed by a different goroutine to the one
	// calling Generate()
	crit     sync.Mutex
	channels [2]channel

	// counts to three. the channels using the 10Khz clock tick when the
	// counter is zero
	clock int
}

// NewTone is the preferred method of initialisation for the Tone type. Both
// channels are silent.
func NewTone() *Tone {
	return &Tone{}
}

func (t *Tone) String() string {
	t.crit.Lock()
	defer t.crit.Unlock()

	s := strings.Builder{}
	s.WriteString("ch0: ")
	s.WriteString(t.channels[0].String())
	s.WriteString("  ch1: ")
	s.WriteString(t.channels[1].String())
	return s.String()
}

// SetRegisters changes the registers of channel 0 or 1. Register values are
// masked to the number of bits used by the TIA.
func (t *Tone) SetRegisters(channel int, reg Registers) error {
	if channel < 0 || channel > 1 {
		return curated.Errorf("tone: no such channel (%d)", channel)
	}

	t.crit.Lock()
	defer t.crit.Unlock()

	t.channels[channel].setRegisters(reg)
	return nil
}

// Registers returns the current register values for channel 0 or 1.
func (t *Tone) Registers(channel int) Registers {
	t.crit.Lock()
	defer t.crit.Unlock()
	return t.channels[channel&0x01].registers
}

// Generate implements the Source interface.
func (t *Tone) Generate(fragment []float32, stereo bool) {
	t.crit.Lock()
	defer t.crit.Unlock()

	if stereo {
		for i := 0; i+1 < len(fragment); i += 2 {
			fragment[i], fragment[i+1] = mix.Stereo(t.step())
		}
		if len(fragment)%2 == 1 {
			fragment[len(fragment)-1] = 0
		}
	} else {
		for i := range fragment {
			fragment[i] = mix.Mono(t.step())
		}
	}
}

// advance both channels by one clock and return the volume of each.
func (t *Tone) step() (uint8, uint8) {
	tenKhz := t.clock == 0
	t.clock++
	if t.clock >= 3 {
		t.clock = 0
	}

	t.channels[0].tick(tenKhz)
	t.channels[1].tick(tenKhz)

	return t.channels[0].actualVol, t.channels[1].actualVol
}
