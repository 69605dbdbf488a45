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

// Package settings holds the user preferences for audio output. The values are
// stored with the prefs package and can be overridden on the command line.
//
// Most of the output parameters are governed by a preset. When the preset is
// anything other than "custom" the values of the preset take precedence over
// the individual preferences. The Effective() function returns the values
// that should actually be used.
package settings
