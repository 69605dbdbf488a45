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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Unlike flag.FlagSet, the arguments are given with NewArgs() and Parse() is
// then called with no arguments. This allows a program to parse the leading
// flags, select a mode, and then parse the flags for that mode from the same
// argument list.
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("play", "oneshot", "convert", "devices")
//
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return nil
//	case modalflag.ParseError:
//		return err
//	}
//
// The first sub-mode is the default and is used if the first non-flag
// argument is not a mode name. Mode names are case insensitive and the
// selected mode is returned by Mode() in upper case.
//
//	switch md.Mode() {
//	case "PLAY":
//		md.NewMode()
//		backend := md.AddChoice("backend", "sdl", []string{"sdl", "oto"}, "audio device")
//		duration := md.AddDuration("duration", 0, "stop after duration")
//		p, err := md.Parse()
//		...
//	}
//
// Each call to NewMode() starts a new flag set. The mode path, available with
// Path(), grows with every mode selected and is used as the banner for help
// messages.
//
// After Parse() the non-flag arguments can be retrieved with RemainingArgs()
// or GetArg().
package modalflag
