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

// Package otoaudio is an audio device for the sound package that uses the oto
// library. Unlike SDL, oto pulls audio through an io.Reader, so the sound
// callback is called directly from the oto player.
//
// Oto allows only one context per process. The format of the context is fixed
// by the first call to Open(). Later calls to Open() with a different sample
// rate will be given the format of the existing context.
package otoaudio
