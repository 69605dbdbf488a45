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

package sound

import "fmt"

// DeviceSpec describes the format of an audio device.
type DeviceSpec struct {
	SampleRate int

	// number of frames in each callback
	FragmentSize int

	Stereo bool

	// index of the device in the list returned by Devices(). zero is the
	// system default device
	Device int
}

func (spec DeviceSpec) String() string {
	ch := "mono"
	if spec.Stereo {
		ch = "stereo"
	}
	return fmt.Sprintf("%dHz %d frames %s (device %d)", spec.SampleRate, spec.FragmentSize, ch, spec.Device)
}

// Channels returns the number of channels for the spec.
func (spec DeviceSpec) Channels() int {
	if spec.Stereo {
		return 2
	}
	return 1
}

// Callback is called by the device whenever it requires more audio. Every
// value in the stream must be written. The stream is interleaved if the
// device is stereo.
type Callback func(stream []float32)

// Device is implemented by audio output backends.
type Device interface {
	// Name of the backend.
	Name() string

	// Devices returns the list of available output devices. The first entry
	// is always the system default device.
	Devices() []string

	// Open the device with the requested format. The format returned is the
	// format that the device actually uses, which may be different. The
	// device starts paused.
	//
	// Opening a device that is already open closes it first.
	Open(req DeviceSpec, cb Callback) (DeviceSpec, error)

	// Pause stops or restarts calls to the callback function. Returns the
	// previous pause state. When pausing, the function does not return until
	// any in-progress callback has finished.
	Pause(pause bool) bool

	// Close the device. The callback is not called after Close() returns.
	Close() error
}
