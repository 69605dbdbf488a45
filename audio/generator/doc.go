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

// Package generator produces audio fragments and pushes them into an audio
// queue, in the same way that a running emulation would.
//
// The Tone type is a simple model of the two TIA audio channels. The PCM type
// plays back samples that have been decoded from a file. Both implement the
// Source interface, which is used by the Producer to fill fragments.
package generator
