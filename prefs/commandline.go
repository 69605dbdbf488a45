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
	"fmt"
	"sort"
	"strings"
	"sync"
)

// command line preferences are pushed as groups. only the top group is
// consulted by GetCommandLinePref(). the stack can be accessed from any
// goroutine because preferences can be reloaded by a file watcher.
var (
	commandLineCrit  sync.Mutex
	commandLineStack []map[string]Value
)

// SizeCommandLineStack returns the number of groups that have been added with
// PushCommandLineStack().
func SizeCommandLineStack() int {
	commandLineCrit.Lock()
	defer commandLineCrit.Unlock()
	return len(commandLineStack)
}

// PopCommandLineStack forgets the most recent group added by
// PushCommandLineStack().
//
// Returns the "unused" preferences of the stack entry.
func PopCommandLineStack() string {
	commandLineCrit.Lock()
	defer commandLineCrit.Unlock()

	if len(commandLineStack) == 0 {
		return ""
	}

	popped := commandLineStack[len(commandLineStack)-1]
	commandLineStack = commandLineStack[:len(commandLineStack)-1]

	// rebuild the prefs string from the remaining entries from the old stack top
	keys := make([]string, 0, len(popped))
	for key := range popped {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, key := range keys {
		s.WriteString(fmt.Sprintf("%s::%v; ", key, popped[key]))
	}

	return strings.TrimSuffix(s.String(), "; ")
}

// PushCommandLineStack parses a command line and adds it as a new group. The
// prefs string is a list of key::value pairs separated by semi-colons:
//
//	audio.volume::50; audio.quality::lanczos3
func PushCommandLineStack(prefs string) {
	commandLineCrit.Lock()
	defer commandLineCrit.Unlock()

	cl := make(map[string]Value)
	commandLineStack = append(commandLineStack, cl)

	for _, p := range strings.Split(prefs, ";") {
		kv := strings.Split(p, "::")
		if len(kv) == 2 {
			cl[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}
}

// GetCommandLinePref value from current group. The value is deleted when it is
// returned.
func GetCommandLinePref(key string) (bool, Value) {
	commandLineCrit.Lock()
	defer commandLineCrit.Unlock()

	if len(commandLineStack) == 0 {
		return false, nil
	}

	cl := commandLineStack[len(commandLineStack)-1]
	if v, ok := cl[key]; ok {
		delete(cl, key)
		return true, v
	}

	return false, nil
}
