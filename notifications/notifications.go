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

package notifications

// Notice describes events that change the audio output in a way the user
// should know about.
type Notice string

// List of defined notifications.
const (
	// the audio device could not be opened. sound will be silent
	NotifySoundDeviceFailed Notice = "NotifySoundDeviceFailed"

	// sound output has been enabled or disabled
	NotifySoundEnabled  Notice = "NotifySoundEnabled"
	NotifySoundDisabled Notice = "NotifySoundDisabled"

	// mute state has changed
	NotifyMuted   Notice = "NotifyMuted"
	NotifyUnmuted Notice = "NotifyUnmuted"

	// the volume has changed. the new value can be retrieved from the sound
	// system
	NotifyVolumeChanged Notice = "NotifyVolumeChanged"

	// the audio device has been reconfigured
	NotifyReconfigured Notice = "NotifyReconfigured"
)

// Notify is implemented by the user interface. The audio system never calls
// Notify() from the audio device callback.
type Notify interface {
	Notify(notice Notice) error
}

// NotifyFunc allows a function to be used as a Notify implementation.
type NotifyFunc func(notice Notice) error

// Notify implements the Notify interface.
func (f NotifyFunc) Notify(notice Notice) error {
	return f(notice)
}
