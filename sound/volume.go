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
	"math"
	"sync/atomic"
)

// Volume is a scale factor in the range 0.0 to 1.0. It is written by the
// control goroutine and read by the device callback.
//
// The value is stored atomically but no ordering is implied with any other
// value. The callback might use a stale value for a fragment or two after a
// change, which is fine.
type Volume struct {
	bits atomic.Uint32
}

// Set the volume factor. The value is clamped to the range 0.0 to 1.0.
func (v *Volume) Set(f float32) {
	f = max(0, min(1, f))
	v.bits.Store(math.Float32bits(f))
}

// SetPercent sets the volume from a value in the range 0 to 100.
func (v *Volume) SetPercent(percent int) {
	v.Set(float32(percent) / 100)
}

// Factor returns the volume factor. Implements the wavhandler.VolumeReader
// interface.
func (v *Volume) Factor() float32 {
	return math.Float32frombits(v.bits.Load())
}
