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

// Package paths contains functions to prepare paths to vcsaudio resources.
//
// The ResourcePath() function modifies the supplied resource string such that
// it is prepended with the appropriate config directory. For example, the
// following will return the path to the preferences file.
//
//	d, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
//
// If the base resource path, ".vcsaudio", is present in the program's current
// directory then that is the base path that will used. If it is not present
// then the user's config directory is used, as returned by os.UserConfigDir().
// On a modern Linux system:
//
//	/home/user/.config/vcsaudio/preferences
//
// The sub-path is created if it does not exist. The file is never created.
package paths
