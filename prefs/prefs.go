// This file is part of MIA.
//
// MIA is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// MIA is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with MIA.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
)

// DefaultPrefsFile is the default filename for the global preferences file.
const DefaultPrefsFile = "mia.prefs"

// WarningBoilerPlate is the first line of every saved prefs file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// the string that separates the key from the value on a prefs file line.
const keySep = " :: "

// ErrNoPrefsFile is returned by Load() when no prefs file exists at the path
// given to NewDisk().
var ErrNoPrefsFile = errors.New("no prefs file")

// Disk represents preference values that are loaded from and saved to disk.
type Disk struct {
	crit    sync.Mutex
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("prefs: no path to prefs file")
	}

	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add a preference value to the list of values to load/save from disk. The
// key must be unique to this Disk instance.
func (dsk *Disk) Add(key string, p pref) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, strings.TrimSpace(keySep)) {
		return fmt.Errorf("prefs: invalid key: %q", key)
	}

	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: duplicate key: %q", key)
	}

	dsk.entries[key] = p

	return nil
}

// sorted list of keys registered with this Disk instance.
func (dsk *Disk) keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for key := range dsk.entries {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func (dsk *Disk) String() string {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	s := strings.Builder{}
	for _, key := range dsk.keys() {
		s.WriteString(fmt.Sprintf("%s%s%s\n", key, keySep, dsk.entries[key].String()))
	}
	return s.String()
}

// read the prefs file in its entirety. the returned map contains every key in
// the file, including keys not registered with this Disk instance. defunct
// keys are dropped.
func (dsk *Disk) readFile() (map[string]string, error) {
	saved := make(map[string]string)

	f, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return saved, fmt.Errorf("prefs: %w: %s", ErrNoPrefsFile, dsk.path)
		}
		return saved, fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	// the first line of a prefs file is the boilerplate warning
	if scanner.Scan() {
		if scanner.Text() != WarningBoilerPlate {
			return saved, fmt.Errorf("prefs: not a prefs file: %s", dsk.path)
		}
	}

	for scanner.Scan() {
		s := strings.SplitN(scanner.Text(), keySep, 2)
		if len(s) != 2 {
			continue
		}
		if isDefunct(s[0]) {
			continue
		}
		saved[s[0]] = s[1]
	}

	if err := scanner.Err(); err != nil {
		return saved, fmt.Errorf("prefs: %w", err)
	}

	return saved, nil
}

// Load preference values from disk, replacing the live values registered with
// this Disk instance. Values given on the command line take precedence over
// the disk copy.
//
// If saveOnFirstUse is true and the prefs file does not yet exist, the
// current values are saved instead, creating the file.
func (dsk *Disk) Load(saveOnFirstUse bool) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	saved, err := dsk.readFile()
	if err != nil {
		if errors.Is(err, ErrNoPrefsFile) && saveOnFirstUse {
			return dsk.save()
		}
		return err
	}

	for _, key := range dsk.keys() {
		if ok, v := GetCommandLinePref(key); ok {
			if err := dsk.entries[key].Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", key, err)
			}
			continue
		}

		if v, ok := saved[key]; ok {
			if err := dsk.entries[key].Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", key, err)
			}
		}
	}

	return nil
}

// Save current preference values to disk.
func (dsk *Disk) Save() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()
	return dsk.save()
}

func (dsk *Disk) save() error {
	// read the file as it currently exists so that keys belonging to other
	// Disk instances are preserved
	saved, err := dsk.readFile()
	if err != nil && !errors.Is(err, ErrNoPrefsFile) {
		return err
	}

	for key, p := range dsk.entries {
		saved[key] = p.String()
	}

	keys := make([]string, 0, len(saved))
	for key := range saved {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, key := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", key, keySep, saved[key]))
	}

	f, err := os.Create(dsk.path)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, s.String()); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Reset all preference values registered with this Disk instance to their
// zero state. The reset values are not saved to disk.
func (dsk *Disk) Reset() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	for _, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return fmt.Errorf("prefs: %w", err)
		}
	}

	return nil
}
