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


// Package version reports the version of the program. The version number is
// set at link time:
//
//	go build -ldflags "-X github.com/jetsetilly/vcsaudio/version.number=v0.1.0"
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the program.
const ApplicationName = "vcsaudio"

// set by the linker. empty if the program was built without ldflags
var number string

// Info describes the build.
type Info struct {
	// the version number. "unreleased" if the program was built from a
	// repository without a version number. "local" if there is no version
	// control information either, which is the case with "go run ."
	Version string

	// the commit the program was built from. suffixed with "+dirty" if there
	// were uncommitted changes
	Revision string

	// true if the version is a numbered release
	Release bool
}

func (inf Info) String() string {
	if inf.Release {
		return fmt.Sprintf("%s %s", ApplicationName, inf.Version)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, inf.Version, inf.Revision)
}

var info Info

func init() {
	bi, _ := debug.ReadBuildInfo()
	info = fromBuildInfo(number, bi)
}

// fromBuildInfo creates the Info from the link time number and the build
// information. the build information can be nil.
func fromBuildInfo(number string, bi *debug.BuildInfo) Info {
	var vcs, modified bool
	var revision string

	if bi != nil {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				revision = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
	}

	inf := Info{
		Version:  number,
		Revision: revision,
		Release:  number != "",
	}

	if inf.Revision == "" {
		inf.Revision = "no revision information"
	} else if modified {
		inf.Revision += "+dirty"
	}

	if !inf.Release {
		if vcs {
			inf.Version = "unreleased"
		} else {
			inf.Version = "local"
		}
	}

	return inf
}

// Version returns information about the build.
func Version() Info {
	return info
}
