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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function, in the same way as the fmt package's Errorf().
//
// The formatting pattern is stored with the error and used to identify it
// later. Sentinal patterns should be stored as a const string:
//
//	const DeviceOpenFailed = "sound: cannot open device: %v"
//
//	err := curated.Errorf(DeviceOpenFailed, sdlErr)
//	if curated.Is(err, DeviceOpenFailed) {
//		...
//	}
//
// The Has() function is similar but checks if a pattern occurs anywhere in
// the error chain:
//
//	f := curated.Errorf("sound: %v", err)
//	curated.Has(f, DeviceOpenFailed) // true
//	curated.Is(f, DeviceOpenFailed)  // false
//
// The Error() function normalises the error chain so that it does not contain
// duplicate adjacent parts. Wrapping an error with a pattern that begins with
// the same part as the wrapped error will not result in messages like:
//
//	sound: sound: invalid resampling quality (5)
//
// For the purposes of this package chains are composed of parts separated by
// the sub-string ': '.
//
// Values that are themselves errors are exposed through Unwrap() so the
// standard library's errors.Is() and errors.As() functions see through curated
// errors.
package curated
