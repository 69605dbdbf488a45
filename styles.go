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


package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jetsetilly/vcsaudio/notifications"
	"github.com/jetsetilly/vcsaudio/version"
)

type styles struct {
	about  lipgloss.Style
	status lipgloss.Style
	notice lipgloss.Style
	device lipgloss.Style
	active lipgloss.Style
}

// ANSI colours are used so that the terminal theme decides the actual colour
func newStyles() styles {
	return styles{
		about:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.ANSIColor(4)).Padding(0, 1),
		status: lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)),
		notice: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(0)).Background(lipgloss.ANSIColor(3)),
		device: lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(6)),
		active: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(2)),
	}
}

// printAbout writes the description of the sound system inside a box.
func (st styles) printAbout(output io.Writer, about string) {
	about = fmt.Sprintf("%s\n\n%s", version.Version(), strings.TrimSpace(about))
	fmt.Fprintln(output, st.about.Render(about))
}

// notifier returns an implementation of notifications.Notify that prints
// notices to the output.
func (st styles) notifier(output io.Writer) notifications.Notify {
	return notifications.NotifyFunc(func(notice notifications.Notice) error {
		var s string
		switch notice {
		case notifications.NotifySoundDeviceFailed:
			s = "audio device failed"
		case notifications.NotifySoundEnabled:
			s = "sound enabled"
		case notifications.NotifySoundDisabled:
			s = "sound disabled"
		case notifications.NotifyMuted:
			s = "muted"
		case notifications.NotifyUnmuted:
			s = "unmuted"
		case notifications.NotifyVolumeChanged:
			s = "volume changed"
		case notifications.NotifyReconfigured:
			s = "audio reconfigured"
		default:
			return fmt.Errorf("unhandled notice: %s", notice)
		}
		_, err := fmt.Fprintf(output, "\r%s\n", st.notice.Render(" "+s+" "))
		return err
	})
}
