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

package monitor

import (
	"errors"
	"io"
	"strings"

	"github.com/softlatch/mia/monitor/script"
	"github.com/softlatch/mia/monitor/terminal"
)

// inputLoop reads and executes commands until the monitor stops running or
// the inputter runs dry. the loop recurses through the SCRIPT command, with
// a script standing in for the interactive terminal.
func (mon *Monitor) inputLoop(inputter terminal.Input) error {
	for mon.running {
		input, err := inputter.TermRead(mon.prompt(), mon.events)

		// errors returned by TermRead() need careful interpretation
		if err != nil {
			if errors.Is(err, terminal.UserInterrupt) {
				// user interrupts are triggered by the user (in a terminal
				// environment, usually by pressing ctrl-c)
				mon.handleInterrupt(inputter)
				continue // for loop
			}

			if errors.Is(err, terminal.UserQuit) || errors.Is(err, io.EOF) {
				// the terminal can say for certain that the user wants to
				// leave. treat EOF the same way, it is what a closed pipe
				// looks like
				mon.running = false
				continue // for loop
			}

			if errors.Is(err, script.EndOfScript) {
				// a script that is being played back ends with an
				// EndOfScript error. say so with a feedback style, not an
				// error style
				mon.printLine(terminal.StyleFeedback, "%s", err)
				return nil
			}

			// all other errors are passed upwards to the calling function
			return err
		}

		if err := mon.parseInput(input); err != nil {
			mon.printLine(terminal.StyleError, "%s", err)
		}
	}

	return nil
}

// interrupt errors that are sent back to the monitor need some special care
// depending on the current state and what sort of terminal is being used.
//
//   - if script recording is active then the interrupt ends the recording
//   - for non-interactive input the running flag is cleared immediately
//   - otherwise, the user is asked to confirm that the monitor should quit
func (mon *Monitor) handleInterrupt(inputter terminal.Input) {
	if mon.scribe.IsActive() {
		if err := mon.scribe.EndSession(); err != nil {
			mon.printLine(terminal.StyleError, "%s", err)
			return
		}
		mon.printLine(terminal.StyleFeedback, "script recording ended")
		return
	}

	if !inputter.IsRealTerminal() {
		mon.running = false
		return
	}

	confirm, err := inputter.TermRead(terminal.Prompt{
		Content: "really quit (y/n) ",
		Type:    terminal.PromptTypeConfirm,
	}, mon.events)
	if err != nil {
		// another user interrupt has occurred. we treat that as though 'y'
		// was pressed
		if errors.Is(err, terminal.UserInterrupt) {
			confirm = "y"
		} else {
			mon.printLine(terminal.StyleError, "%s", err)
		}
	}

	if strings.ToUpper(strings.TrimSpace(confirm)) == "Y" {
		mon.running = false
	}
}
