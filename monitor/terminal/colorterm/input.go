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

//go:build !windows
// +build !windows

package colorterm

import (
	"fmt"
	"unicode"

	"github.com/softlatch/mia/monitor/terminal"
	"github.com/softlatch/mia/monitor/terminal/colorterm/easyterm"
	"github.com/softlatch/mia/monitor/terminal/colorterm/easyterm/ansi"
)

// nextRune waits for the next rune from the reader goroutine, servicing any
// ReadEvents that arrive in the meantime.
func (ct *ColorTerminal) nextRune(events *terminal.ReadEvents) (rune, error) {
	if events == nil {
		rr := <-ct.reader
		return rr.r, rr.err
	}

	for {
		select {
		case rr := <-ct.reader:
			return rr.r, rr.err
		case sig := <-events.Signal:
			if err := events.SignalHandler(sig); err != nil {
				return 0, err
			}
		}
	}
}

// TermRead implements the terminal.Input interface.
func (ct *ColorTerminal) TermRead(prompt terminal.Prompt, events *terminal.ReadEvents) (string, error) {
	if ct.silenced {
		return "", nil
	}

	ct.RawMode()
	defer ct.CanonicalMode()

	input := []rune{}
	cursor := 0
	history := len(ct.commandHistory)

	// buffInput is used to store the latest input when we scroll through
	// history - we don't want to lose what we've typed in case the user wants
	// to resume where they left off
	buffInput := []rune{}

	p := prompt.String()

	// the method for cursor placement is as follows:
	// 	1. for each iteration in the loop
	//		2. store current cursor position
	//		3. clear the current line
	//		4. output the prompt
	//		5. output the input buffer
	//		6. restore the cursor position
	//
	// for this to work we need to place the cursor in its initial position
	ct.TermPrint("\r%s", ansi.CursorMove(len(p)))

	for {
		ct.TermPrint(ansi.CursorStore)
		ct.TermPrintLine(terminal.StylePrompt, fmt.Sprintf("%s%s", ansi.ClearLine, p))
		ct.TermPrint("%s", string(input))
		ct.TermPrint(ansi.CursorRestore)

		r, err := ct.nextRune(events)
		if err != nil {
			return "", err
		}

		switch r {
		case easyterm.KeyTab:
			if ct.tabCompletion != nil {
				s := []rune(ct.tabCompletion.Complete(string(input[:cursor])))

				// the difference in the length of the new input and the old
				// input
				d := len(s) - cursor

				// append everything after the cursor to the completed input
				input = append(s, input[cursor:]...)

				// advance cursor to the end of the completed word
				ct.TermPrint(ansi.CursorMove(d))
				cursor += d
			}

		case easyterm.KeyInterrupt:
			ct.TermPrint("\n")
			return "", terminal.UserInterrupt

		case easyterm.KeySuspend:
			// restore canonical mode before handing the process back to the
			// shell
			ct.CanonicalMode()
			easyterm.SuspendProcess()
			ct.RawMode()

		case easyterm.KeyCarriageReturn:
			ct.TermPrint("\n")

			// append to command history unless input is empty or the same as
			// the most recent entry
			if len(input) > 0 {
				if len(ct.commandHistory) == 0 || string(input) != ct.commandHistory[len(ct.commandHistory)-1] {
					ct.commandHistory = append(ct.commandHistory, string(input))
				}
			}

			return string(input), nil

		case easyterm.KeyEsc:
			// ESCAPE SEQUENCE BEGIN
			r, err := ct.nextRune(events)
			if err != nil {
				return "", err
			}

			switch r {
			case easyterm.EscCursor:
				// CURSOR KEY
				r, err := ct.nextRune(events)
				if err != nil {
					return "", err
				}

				switch r {
				case easyterm.CursorUp:
					// move up through command history
					if len(ct.commandHistory) > 0 {
						// if we're at the end of the command history then
						// store the current input in buffInput for possible
						// later editing
						if history == len(ct.commandHistory) {
							buffInput = append([]rune{}, input...)
						}

						if history > 0 {
							history--
							h := []rune(ct.commandHistory[history])
							ct.TermPrint(ansi.CursorMove(len(h) - cursor))
							input = h
							cursor = len(input)
						}
					}

				case easyterm.CursorDown:
					// move down through command history
					if len(ct.commandHistory) > 0 {
						if history < len(ct.commandHistory)-1 {
							history++
							h := []rune(ct.commandHistory[history])
							ct.TermPrint(ansi.CursorMove(len(h) - cursor))
							input = h
							cursor = len(input)
						} else if history == len(ct.commandHistory)-1 {
							history++
							ct.TermPrint(ansi.CursorMove(len(buffInput) - cursor))
							input = append([]rune{}, buffInput...)
							cursor = len(input)
						}
					}

				case easyterm.CursorForward:
					// move forward through current command input
					if cursor < len(input) {
						ct.TermPrint(ansi.CursorForwardOne)
						cursor++
					}

				case easyterm.CursorBackward:
					// move backward through current command input
					if cursor > 0 {
						ct.TermPrint(ansi.CursorBackwardOne)
						cursor--
					}

				case easyterm.EscHome:
					ct.TermPrint(ansi.CursorMove(-cursor))
					cursor = 0

				case easyterm.EscEnd:
					ct.TermPrint(ansi.CursorMove(len(input) - cursor))
					cursor = len(input)

				case easyterm.EscDelete:
					// DELETE. eat the tilde that terminates the sequence
					if _, err := ct.nextRune(events); err != nil {
						return "", err
					}

					if cursor < len(input) {
						input = append(input[:cursor], input[cursor+1:]...)
						history = len(ct.commandHistory)
					}
				}
			}

		case easyterm.KeyBackspace, easyterm.KeyRubout:
			// BACKSPACE
			if cursor > 0 {
				input = append(input[:cursor-1], input[cursor:]...)
				ct.TermPrint(ansi.CursorBackwardOne)
				cursor--
				history = len(ct.commandHistory)
			}

		default:
			if unicode.IsPrint(r) {
				input = append(input[:cursor], append([]rune{r}, input[cursor:]...)...)
				ct.TermPrint("%c", r)
				cursor++
				history = len(ct.commandHistory)
			}
		}
	}
}
