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

// Package sdlaudio is an audio device for the sound package that uses SDL.
//
// SDL can call a C function to request audio but a Go callback can't be given
// to SDL. Instead, a pump goroutine keeps the SDL audio queue topped up by
// calling the sound callback whenever the amount of queued audio falls below
// two fragments.
package sdlaudio
