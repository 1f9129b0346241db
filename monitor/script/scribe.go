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

package script

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Scribe can be used again after a StartSession()/EndSession() cycle.
// IsActive() can be used to detect if a script is currently being captured
// but it is safe not to because most functions silently do nothing if there
// is no active session.
type Scribe struct {
	file       *os.File
	scriptfile string

	// the depth of script playbacks during the writing of a new script.
	// lines arriving from a playback are not written; the command that
	// started the playback is enough to reproduce them
	playbackDepth int

	// lines are buffered until the next Commit() so that a failed command
	// can be struck from the record with Rollback()
	inputLine  string
	outputLine string
}

// IsActive returns true if a script is currently being captured.
func (scr Scribe) IsActive() bool {
	return scr.file != nil
}

// StartSession begins capturing to a new script file. Existing files are
// never clobbered.
func (scr *Scribe) StartSession(scriptfile string) error {
	if scr.IsActive() {
		return fmt.Errorf("script: session already active")
	}

	_, err := os.Stat(scriptfile)
	if !os.IsNotExist(err) {
		return fmt.Errorf("script: file already exists: %s", scriptfile)
	}

	scr.file, err = os.Create(scriptfile)
	if err != nil {
		return fmt.Errorf("script: %w", err)
	}
	scr.scriptfile = scriptfile

	return nil
}

// EndSession the current scribe session.
func (scr *Scribe) EndSession() error {
	if !scr.IsActive() {
		return nil
	}

	defer func() {
		scr.file = nil
		scr.scriptfile = ""
		scr.playbackDepth = 0
		scr.inputLine = ""
		scr.outputLine = ""
	}()

	// make sure everything has been written to the output file
	err := scr.Commit()

	// if Commit() fails, continue with the close and return the Commit()
	// error if the close succeeds
	if errClose := scr.file.Close(); errClose != nil {
		return fmt.Errorf("script: %w", errClose)
	}

	return err
}

// StartPlayback indicates that a replayed script has begun.
func (scr *Scribe) StartPlayback() {
	if !scr.IsActive() {
		return
	}
	_ = scr.Commit()
	scr.playbackDepth++
}

// EndPlayback indicates that a replayed script has finished.
func (scr *Scribe) EndPlayback() {
	if !scr.IsActive() {
		return
	}
	_ = scr.Commit()
	scr.playbackDepth--
}

// Rollback undoes calls to WriteInput() and WriteOutput() since the last
// Commit().
func (scr *Scribe) Rollback() {
	if !scr.IsActive() {
		return
	}
	scr.inputLine = ""
	scr.outputLine = ""
}

// WriteInput writes a user command to the open script file.
func (scr *Scribe) WriteInput(command string) {
	if !scr.IsActive() || scr.playbackDepth > 0 {
		return
	}

	_ = scr.Commit()
	if command != "" {
		scr.inputLine = fmt.Sprintf("%s\n", command)
	}
}

// WriteOutput writes the result of a command to the open script file, as
// comment lines. Rescribing skips them; they are for the reader of the
// script file.
func (scr *Scribe) WriteOutput(result string) {
	if !scr.IsActive() || scr.playbackDepth > 0 {
		return
	}

	if result == "" {
		return
	}
	for _, l := range strings.Split(result, "\n") {
		scr.outputLine = fmt.Sprintf("%s%s %s\n", scr.outputLine, commentLine, l)
	}
}

// Commit the most recent calls to WriteInput() and WriteOutput().
func (scr *Scribe) Commit() error {
	if !scr.IsActive() {
		return nil
	}

	defer func() {
		scr.inputLine = ""
		scr.outputLine = ""
	}()

	if scr.inputLine != "" {
		if _, err := io.WriteString(scr.file, scr.inputLine); err != nil {
			return fmt.Errorf("script: %w", err)
		}
	}

	if scr.outputLine != "" {
		if _, err := io.WriteString(scr.file, scr.outputLine); err != nil {
			return fmt.Errorf("script: %w", err)
		}
	}

	return nil
}
