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

import "fmt"

// Registers are the three values that control a TIA audio channel.
type Registers struct {
	// the distortion (AUDCx). four bits
	Control uint8

	// the frequency divider (AUDFx). five bits
	Freq uint8

	// the volume (AUDVx). four bits
	Volume uint8
}

func (reg Registers) String() string {
	return fmt.Sprintf("%04b @ %05b ^ %04b", reg.Control, reg.Freq, reg.Volume)
}

func (reg Registers) masked() Registers {
	return Registers{
		Control: reg.Control & 0x0f,
		Freq:    reg.Freq & 0x1f,
		Volume:  reg.Volume & 0x0f,
	}
}

type channel struct {
	registers Registers

	// which bit of each polynomial counter to use next
	poly4ct int
	poly5ct int
	poly9ct int
	div3ct  uint8

	// the different notes are achieved with a frequency divider of the 30Khz
	// clock
	freqCt uint8

	// if bits 2 and 3 of control register are set (ie. mask 0x0c) then we use
	// a 10Khz clock rather than a 30Khz clock
	useTenKhz bool

	// the different tones are achieved by switching the volume between zero
	// and the value in the volume register. actualVol is the current value
	actualVol uint8
}

func (ch *channel) String() string {
	return ch.registers.String()
}

func (ch *channel) setRegisters(reg Registers) {
	ch.registers = reg.masked()
	ch.useTenKhz = ch.registers.Control&0x0c == 0x0c && ch.registers.Control != 0x0f

	if ch.volumeOnly() {
		ch.actualVol = ch.registers.Volume
	}

	if ch.freqCt > ch.registers.Freq {
		ch.freqCt = 0
	}
}

// control values of 0x00 and 0x0b output the volume directly.
func (ch *channel) volumeOnly() bool {
	return ch.registers.Control == 0x00 || ch.registers.Control == 0x0b
}

func (ch *channel) toggle() {
	if ch.actualVol != 0 {
		ch.actualVol = 0
	} else {
		ch.actualVol = ch.registers.Volume
	}
}

// tick the channel on the 30Khz clock. the tenKhz argument is true on every
// third tick.
func (ch *channel) tick(tenKhz bool) {
	if ch.useTenKhz && !tenKhz {
		return
	}

	if ch.volumeOnly() {
		return
	}

	// tick frequency clock and update output only when the counter reaches
	// the frequency value
	if ch.freqCt >= ch.registers.Freq {
		ch.freqCt = 0
	} else {
		ch.freqCt++
		return
	}

	// the 5-bit polynomial clock toggles volume on change of bit. note the
	// current bit so we can compare
	prevBit5 := poly5bit[ch.poly5ct]

	ch.poly5ct++
	if ch.poly5ct >= len(poly5bit) {
		ch.poly5ct = 0
	}

	ctrl := ch.registers.Control

	if (ctrl&0x02 == 0x0) ||
		((ctrl&0x01 == 0x0) && div31[ch.poly5ct] != 0) ||
		((ctrl&0x01 == 0x1) && poly5bit[ch.poly5ct] != 0) ||
		((ctrl&0x0f == 0xf) && poly5bit[ch.poly5ct] != prevBit5) {

		if ctrl&0x04 == 0x04 {
			// pure clock
			if ctrl&0x0f == 0x0f {
				// poly5/div3
				if poly5bit[ch.poly5ct] != prevBit5 {
					ch.div3ct++
					if ch.div3ct == 3 {
						ch.div3ct = 0
						ch.toggle()
					}
				}
			} else {
				ch.toggle()
			}
		} else if ctrl&0x08 == 0x08 {
			if ctrl == 0x08 {
				// poly9
				ch.poly9ct++
				if ch.poly9ct >= len(poly9bit) {
					ch.poly9ct = 0
				}
				if poly9bit[ch.poly9ct] != 0 {
					ch.actualVol = ch.registers.Volume
				} else {
					ch.actualVol = 0
				}
			} else if ctrl&0x02 != 0 {
				if ch.actualVol != 0 || ctrl&0x01 == 0x01 {
					ch.actualVol = 0
				} else {
					ch.actualVol = ch.registers.Volume
				}
			} else {
				// poly5. the counter has already been advanced
				if poly5bit[ch.poly5ct] == 1 {
					ch.actualVol = ch.registers.Volume
				} else {
					ch.actualVol = 0
				}
			}
		} else {
			// poly4
			ch.poly4ct++
			if ch.poly4ct >= len(poly4bit) {
				ch.poly4ct = 0
			}
			if poly4bit[ch.poly4ct] == 1 {
				ch.actualVol = ch.registers.Volume
			} else {
				ch.actualVol = 0
			}
		}
	}
}
