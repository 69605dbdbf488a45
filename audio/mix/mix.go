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

// Package mix combines the volume of the two TIA audio channels into either a
// mono or stereo signal.
//
// The mono mix is created according to the information in the document, "TIA
// Sounding Off In The Digital Domain", by Chris Brenner. Announcment link
// below:
//
// https://atariage.com/forums/topic/249865-tia-sounding-off-in-the-digital-domain/
//
// The values are in the range 0.0 to 1.0. The TIA cannot produce a negative
// output so silence is always zero.
package mix

// MaxVolume is the largest volume a single channel can have.
const MaxVolume = 0x0f

const maxCombined = MaxVolume * 2

var mono [maxCombined + 1]float32

func init() {
	for vol := 0; vol < len(mono); vol++ {
		mono[vol] = float32(vol) / float32(maxCombined) * (30 + float32(maxCombined)) / (30 + float32(vol))
	}
}

// Mono returns a single value for the two channel volumes.
func Mono(channel0 uint8, channel1 uint8) float32 {
	return mono[min(channel0&MaxVolume+channel1&MaxVolume, maxCombined)]
}

// Stereo returns a pair of values, one for each channel. Each channel is mixed
// as though it was the only channel producing sound.
func Stereo(channel0 uint8, channel1 uint8) (float32, float32) {
	return Mono(channel0, 0), Mono(0, channel1)
}
