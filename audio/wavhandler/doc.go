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

// Package wavhandler plays WAV and MP3 files over the top of the emulation
// audio. The files are loaded on demand and cached for the lifetime of the
// Handler.
//
// Play(), Stop(), SetFormat() and SetSpeed() are called from the control
// goroutine. Mix() is called from the audio device callback and never blocks.
package wavhandler
