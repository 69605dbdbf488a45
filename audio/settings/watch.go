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

package settings

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jetsetilly/vcsaudio/curated"
	"github.com/jetsetilly/vcsaudio/logger"
)

// how long the settings file must be left alone before it is reloaded
const settlePeriod = 100 * time.Millisecond

// Watch the settings file for changes. When the file changes the settings are
// reloaded and the onChange function is called. Changes are only acted upon
// once the file has not been written to for a short period. The onChange
// function is not called if the reload fails.
//
// Watch blocks until the context is cancelled. It should be run in its own
// goroutine.
func (s *Settings) Watch(ctx context.Context, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return curated.Errorf("settings: watch: %v", err)
	}
	defer w.Close()

	// the directory is watched rather than the file because the file may not
	// exist yet and because some editors replace the file rather than write to
	// it
	path := filepath.Clean(s.Path())
	err = w.Add(filepath.Dir(path))
	if err != nil {
		return curated.Errorf("settings: watch: %v", err)
	}

	// the file is loaded once the events for the file have stopped for the
	// settle period. a single save by an editor or by os.WriteFile() produces
	// more than one event and the first event is often seen before the new
	// content has been written
	var settle *time.Timer
	var settled <-chan time.Time
	defer func() {
		if settle != nil {
			settle.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if settle == nil {
				settle = time.NewTimer(settlePeriod)
			} else {
				settle.Reset(settlePeriod)
			}
			settled = settle.C

		case <-settled:
			settled = nil
			err := s.Load()
			if err != nil {
				logger.Log(logger.Allow, "settings", err)
				continue
			}
			if onChange != nil {
				onChange()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Log(logger.Allow, "settings", err)
		}
	}
}
