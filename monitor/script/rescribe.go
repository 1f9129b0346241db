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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/softlatch/mia/monitor/terminal"
)

// EndOfScript is returned by TermRead() when the rescribed script has no
// more input lines.
var EndOfScript = errors.New("end of script")

const commentLine = "#"

// check if line is prepended with commentLine (ignoring leading spaces)
func isOutputLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), commentLine)
}

// Rescribe represents a previously scribed script. The type implements the
// terminal.Input interface and is used as the input source for the
// monitor's input loop.
type Rescribe struct {
	scriptfile string
	lines      []string
	lineCt     int
}

// RescribeScript is the preferred method of initialisation for the Rescribe
// type.
func RescribeScript(scriptfile string) (*Rescribe, error) {
	buffer, err := os.ReadFile(scriptfile)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}

	scr := &Rescribe{scriptfile: scriptfile}
	scr.lines = strings.Split(string(buffer), "\n")

	// pass over any lines starting with the commentLine, leaving the line
	// counter at the first input line. reaching the end of the file is
	// okay; the first TermRead() will return EndOfScript as expected
	for scr.lineCt < len(scr.lines) && isOutputLine(scr.lines[scr.lineCt]) {
		scr.lineCt++
	}

	return scr, nil
}

// TermRead implements the terminal.Input interface.
func (scr *Rescribe) TermRead(_ terminal.Prompt, _ *terminal.ReadEvents) (string, error) {
	if scr.lineCt > len(scr.lines)-1 {
		return "", fmt.Errorf("script: %s: %w", scr.scriptfile, EndOfScript)
	}

	command := scr.lines[scr.lineCt]
	scr.lineCt++

	// pass over any lines starting with the commentLine
	for scr.lineCt < len(scr.lines) && isOutputLine(scr.lines[scr.lineCt]) {
		scr.lineCt++
	}

	return command, nil
}

// TermReadCheck implements the terminal.Input interface.
func (scr *Rescribe) TermReadCheck() bool {
	return false
}

// IsRealTerminal implements the terminal.Input interface.
func (scr *Rescribe) IsRealTerminal() bool {
	return false
}
