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

// Package resampler converts a stream of audio fragments from one sample rate
// and channel count to another.
//
// A Resampler pulls source fragments on demand from a FragmentSource and
// writes exactly the number of samples requested by the caller on every call
// to FillFragment(). It never blocks and it never allocates.
//
// Time is tracked with an integer time index in units of 1/(from * to)
// seconds, where from and to are the source and destination sample rates. For
// every destination frame the index advances by the source rate and every
// whole multiple of the destination rate advances the source by one frame.
// The source position therefore advances by exactly from/to frames per
// destination frame, with no accumulated rounding error.
//
// Channel conversion follows one rule for all resamplers: a mono source is
// duplicated into both channels of a stereo destination and a stereo source is
// averaged into a mono destination.
//
// Before the first source fragment arrives the output is silence. If the
// source runs dry after that, the resamplers keep reading the last fragment
// they were given until a new fragment becomes available.
//
// The quality of resampling is chosen with the Quality type when the
// resampler is created:
//
//	NearestNeighbour: the nearest preceding source sample. the cheapest
//	method and the lowest quality. aliasing is audible at high frequencies.
//
//	Lanczos2, Lanczos3: windowed sinc interpolation with a kernel half-width
//	of two or three. Lanczos3 uses six taps per channel against the four of
//	Lanczos2, so costs 50% more, but aliases less.
package resampler
