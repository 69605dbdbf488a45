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

// Package sound connects an audio queue to an audio output device.
//
// The device calls a callback function whenever it needs more audio. The
// callback pulls fragments from the queue through a resampler, which converts
// the emulation's audio to the format of the device. The result is scaled by
// the volume and any one-shot sound (see the wavhandler package) is mixed in.
//
// The callback runs in a goroutine owned by the device. It never allocates and
// never waits for the control goroutine. Everything the callback needs is
// published through an atomic pointer, which is replaced only while the
// device is paused.
//
// Output is not started until the queue holds enough fragments. If the queue
// runs dry during output the resampler repeats the last fragment and output
// is stopped until the queue has filled again. These underruns are counted
// and are reported by ReportUnderruns(), which should be called periodically
// by the control goroutine.
package sound
