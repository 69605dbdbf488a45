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

// Package wavwriter is an audio device for the sound package that writes audio
// to a WAV file rather than to audio hardware. There is no hardware to
// request audio so the Render() function must be called to drive the
// callback.
//
// Note that audio data is buffered in memory in its entirety, and written to
// disk when the device is closed. It is therefore probably only suitable for
// testing purposes or for short recordings.
package wavwriter
