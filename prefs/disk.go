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

package prefs

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/jetsetilly/vcsaudio/curated"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is the first line of every preferences file.
const WarningBoilerPlate = "*** do not edit this file by hand while the program is running ***"

// NoPrefsFile is returned by Load() when the preferences file does not exist.
const NoPrefsFile = "prefs: no prefs file (%s)"

// separator between key and value in the preferences file.
const keySep = " :: "

// Disk represents preference values as stored on disk.
type Disk struct {
	path string

	crit    sync.Mutex
	entries map[string]pref
}

func (dsk *Disk) String() string {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	s := strings.Builder{}
	for _, k := range dsk.sortedKeys() {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, dsk.entries[k]))
	}
	return s.String()
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, curated.Errorf("prefs: empty path")
	}
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Path returns the location of the preferences file.
func (dsk *Disk) Path() string {
	return dsk.path
}

// Add preference value to list of values to store/load from Disk. The key
// value is used to identify the value in the file.
func (dsk *Disk) Add(key string, p pref) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	if strings.Contains(key, keySep) || strings.TrimSpace(key) != key || key == "" {
		return curated.Errorf("prefs: illegal key name (%s)", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf("prefs: key already added (%s)", key)
	}

	dsk.entries[key] = p

	return nil
}

func (dsk *Disk) sortedKeys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// read the preferences file into a map of raw strings.
func readFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, curated.Errorf(NoPrefsFile, path)
		}
		return nil, curated.Errorf("prefs: %v", err)
	}
	defer f.Close()

	data := make(map[string]string)

	scanner := bufio.NewScanner(f)

	// the first line is boilerplate
	if !scanner.Scan() {
		return data, nil
	}
	if scanner.Text() != WarningBoilerPlate {
		return nil, curated.Errorf("prefs: not a valid prefs file (%s)", path)
	}

	for scanner.Scan() {
		kv := strings.SplitN(scanner.Text(), keySep, 2)
		if len(kv) != 2 {
			continue
		}
		data[kv[0]] = kv[1]
	}

	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf("prefs: %v", err)
	}

	return data, nil
}

// Save current preference values to disk. Values in the file that have not
// been added to this Disk instance are preserved, unless they are defunct.
func (dsk *Disk) Save() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	data, err := readFile(dsk.path)
	if err != nil {
		if !curated.Is(err, NoPrefsFile) {
			return err
		}
		data = make(map[string]string)
	}

	for k, p := range dsk.entries {
		data[k] = p.String()
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		if !isDefunct(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, data[k]))
	}

	err = os.WriteFile(dsk.path, []byte(s.String()), 0o600)
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	return nil
}

// Load preference values from disk. Command line preferences (see
// PushCommandLineStack()) override values found in the file.
//
// If saveOnFail is true and the file does not exist, the current values are
// saved to a new file. The NoPrefsFile error is still returned.
func (dsk *Disk) Load(saveOnFail bool) error {
	data, err := readFile(dsk.path)
	if err != nil {
		if curated.Is(err, NoPrefsFile) && saveOnFail {
			if serr := dsk.Save(); serr != nil {
				return serr
			}
		}
		if !curated.Is(err, NoPrefsFile) {
			return err
		}
	}

	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	for _, k := range dsk.sortedKeys() {
		p := dsk.entries[k]
		if v, ok := data[k]; ok {
			if serr := p.Set(v); serr != nil {
				return curated.Errorf("prefs: %s: %v", k, serr)
			}
		}
		if ok, v := GetCommandLinePref(k); ok {
			if serr := p.Set(v); serr != nil {
				return curated.Errorf("prefs: %s: %v", k, serr)
			}
		}
	}

	return err
}
